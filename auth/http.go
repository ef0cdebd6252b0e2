package auth

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// RefreshCookieName is the cookie carrying the refresh credential. The
// access credential is never placed in a cookie; it travels in the bearer
// Authorization header.
const RefreshCookieName = "refresh_token"

type AuthControllerRoutes struct {
	Register string
	Login    string
	Refresh  string
	Logout   string
}

// AuthController exposes the authentication boundary over HTTP: register,
// login, refresh, logout. Login plants the refresh cookie, logout clears it
// with matching attributes so browsers actually drop it.
type AuthController struct {
	Debug  bool
	Logger Logger
	Auther *Auther
	Routes *AuthControllerRoutes
	// Secure marks the refresh cookie Secure; off for local development
	Secure bool
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(auther *Auther, cfg Config, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Auther: auther,
		Secure: cfg.GetSecureCookies(),
		Routes: &AuthControllerRoutes{
			Register: "/register",
			Login:    "/login",
			Refresh:  "/refresh",
			Logout:   "/logout",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

// RegisterRoutes mounts the auth endpoints on the given router group
func (a *AuthController) RegisterRoutes(app fiber.Router) {
	app.Post(a.Routes.Register, a.RegisterPost)
	app.Post(a.Routes.Login, a.LoginPost)
	app.Post(a.Routes.Refresh, a.RefreshPost)
	app.Post(a.Routes.Logout, a.LogoutPost)
}

func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegisterMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return RespondWithError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	user, err := a.Auther.Register(c.UserContext(), *payload)
	if err != nil {
		return RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"id":      user.ID,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return RespondWithError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return RespondWithError(c, errors.Wrap(err, errors.CategoryValidation, "invalid login payload"))
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(fiber.Map{"email": payload.Email}))
		fmt.Println("=========================")
	}

	result, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return RespondWithError(c, err)
	}

	a.setRefreshCookie(c, result.Tokens.RefreshToken)

	return c.JSON(fiber.Map{
		"message":      "Login successful",
		"access_token": result.Tokens.AccessToken,
		"user":         result.User,
	})
}

func (a *AuthController) RefreshPost(c *fiber.Ctx) error {
	refresh := c.Cookies(RefreshCookieName)
	if refresh == "" {
		return RespondWithError(c, ErrNoRefreshCredential)
	}

	access, err := a.Auther.Refresh(refresh)
	if err != nil {
		return RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": access,
	})
}

func (a *AuthController) LogoutPost(c *fiber.Ctx) error {
	a.clearRefreshCookie(c)
	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

func (a *AuthController) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.Auther.Issuer().RefreshTTL().Seconds()),
		HTTPOnly: true,
		Secure:   a.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// clearRefreshCookie expires the cookie using the same attributes it was set
// with; mismatched attributes make browsers keep the original.
func (a *AuthController) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   a.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// RespondWithError maps a rich error to an HTTP response. Validation
// failures surface field errors; everything else surfaces its message under
// the status its code carries.
func RespondWithError(c *fiber.Ctx, err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verrs,
		})
	}

	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if richErr.Category == errors.CategoryValidation && richErr.Source != nil {
		if errors.As(richErr.Source, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": verrs,
			})
		}
	}

	status := richErr.Code
	if status == 0 {
		status = statusFromCategory(richErr.Category)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": richErr.Message,
	})
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
