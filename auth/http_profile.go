package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/paperstack/blogd/auth/jwtware"
)

// ProfileController exposes the user profile surface. Reads are public;
// updates are self-service only, and account deletion follows the ownership
// policy (self or admin).
type ProfileController struct {
	Logger     Logger
	Auther     *Auther
	ContextKey string
}

func NewProfileController(auther *Auther, contextKey string) *ProfileController {
	if contextKey == "" {
		contextKey = "user"
	}
	return &ProfileController{
		Logger:     defLogger{},
		Auther:     auther,
		ContextKey: contextKey,
	}
}

func (p *ProfileController) WithLogger(logger Logger) *ProfileController {
	if logger != nil {
		p.Logger = logger
	}
	return p
}

// RegisterRoutes mounts public reads on pub and guarded routes on priv
func (p *ProfileController) RegisterRoutes(pub, priv fiber.Router) {
	pub.Get("/users/:username", p.GetByUsername)

	priv.Get("/me", p.Me)
	priv.Put("/me", p.UpdateMe)
	priv.Delete("/users/:id", p.DeleteAccount)
}

func (p *ProfileController) GetByUsername(c *fiber.Ctx) error {
	user, err := p.Auther.ProfileByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return RespondWithError(c, err)
	}
	return c.JSON(user)
}

func (p *ProfileController) Me(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, p.ContextKey)
	if claims == nil {
		return RespondWithError(c, jwtware.ErrJWTMissing)
	}

	user, err := p.Auther.Profile(c.UserContext(), claims.UserID())
	if err != nil {
		return RespondWithError(c, err)
	}
	return c.JSON(user)
}

func (p *ProfileController) UpdateMe(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, p.ContextKey)
	if claims == nil {
		return RespondWithError(c, jwtware.ErrJWTMissing)
	}

	payload := new(UpdateProfileMessage)
	if err := c.BodyParser(payload); err != nil {
		p.Logger.Error("update profile parse payload", "error", err)
		return RespondWithError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	user, err := p.Auther.UpdateProfile(c.UserContext(), claims.UserID(), *payload)
	if err != nil {
		return RespondWithError(c, err)
	}
	return c.JSON(user)
}

func (p *ProfileController) DeleteAccount(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, p.ContextKey)
	if claims == nil {
		return RespondWithError(c, jwtware.ErrJWTMissing)
	}

	if err := p.Auther.DeleteAccount(c.UserContext(), claims.UserID(), claims.Role(), c.Params("id")); err != nil {
		return RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}
