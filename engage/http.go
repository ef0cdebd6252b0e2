package engage

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/paperstack/blogd/auth"
	"github.com/paperstack/blogd/auth/jwtware"
	"github.com/paperstack/blogd/repository"
)

// EngageController exposes likes, follows and ratings over HTTP. Toggle
// routes respond 200 with the resulting state; the same call flips the edge
// back, so clients never need to know the prior state.
type EngageController struct {
	Logger     Logger
	Likes      *LikeService
	Follows    *FollowService
	Ratings    *RatingService
	ContextKey string
}

func NewEngageController(likes *LikeService, follows *FollowService, ratings *RatingService, contextKey string) *EngageController {
	if contextKey == "" {
		contextKey = "user"
	}
	return &EngageController{
		Logger:     defLogger{},
		Likes:      likes,
		Follows:    follows,
		Ratings:    ratings,
		ContextKey: contextKey,
	}
}

func (e *EngageController) WithLogger(l Logger) *EngageController {
	if l != nil {
		e.Logger = l
	}
	return e
}

// RegisterRoutes mounts public read routes on pub and guarded routes on priv
func (e *EngageController) RegisterRoutes(pub, priv fiber.Router) {
	pub.Get("/blogs/:id/likes", e.BlogLikes)
	pub.Get("/blogs/:id/ratings", e.BlogRatings)
	pub.Get("/users/:id/followers", e.Followers)
	pub.Get("/users/:id/following", e.Following)
	pub.Get("/users/:id/follow-stats", e.FollowStats)

	priv.Post("/blogs/:id/like", e.ToggleLike)
	priv.Post("/users/:id/follow", e.ToggleFollow)
	priv.Post("/blogs/:id/rating", e.RateBlog)
	priv.Get("/blogs/:id/rating", e.OwnRating)
	priv.Delete("/blogs/:id/rating", e.DeleteRating)
}

func (e *EngageController) ToggleLike(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, e.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	result, err := e.Likes.Toggle(c.UserContext(), claims.UserID(), c.Params("id"))
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": result.Message,
		"liked":   result.State,
	})
}

func (e *EngageController) BlogLikes(c *fiber.Ctx) error {
	opts := listOptions(c)

	likes, total, err := e.Likes.BlogLikes(c.UserContext(), c.Params("id"), opts)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"likes": likes,
		"total": total,
		"page":  opts.Page,
	})
}

func (e *EngageController) ToggleFollow(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, e.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	result, err := e.Follows.Toggle(c.UserContext(), claims.UserID(), c.Params("id"))
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":   result.Message,
		"following": result.State,
	})
}

func (e *EngageController) Followers(c *fiber.Ctx) error {
	opts := listOptions(c)

	follows, total, err := e.Follows.Followers(c.UserContext(), c.Params("id"), opts)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"followers": follows,
		"total":     total,
		"page":      opts.Page,
	})
}

func (e *EngageController) Following(c *fiber.Ctx) error {
	opts := listOptions(c)

	follows, total, err := e.Follows.Following(c.UserContext(), c.Params("id"), opts)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": follows,
		"total":     total,
		"page":      opts.Page,
	})
}

func (e *EngageController) FollowStats(c *fiber.Ctx) error {
	stats, err := e.Follows.Stats(c.UserContext(), c.Params("id"))
	if err != nil {
		return auth.RespondWithError(c, err)
	}
	return c.JSON(stats)
}

// RateBlogMessage is the rating payload
type RateBlogMessage struct {
	Value int `json:"value"`
}

// Validate will run validation rules
func (m RateBlogMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Value, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

func (e *EngageController) RateBlog(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, e.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	payload := new(RateBlogMessage)
	if err := c.BodyParser(payload); err != nil {
		e.Logger.Error("rate blog parse payload", "error", err)
		return auth.RespondWithError(c, errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
			WithCode(errors.CodeBadRequest))
	}

	rating, err := e.Ratings.Rate(c.UserContext(), claims.UserID(), c.Params("id"), payload.Value)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog rated successfully",
		"rating":  rating,
	})
}

func (e *EngageController) OwnRating(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, e.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	rating, err := e.Ratings.UserRating(c.UserContext(), claims.UserID(), c.Params("id"))
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"rating": rating,
	})
}

func (e *EngageController) DeleteRating(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, e.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	if err := e.Ratings.DeleteRating(c.UserContext(), claims.UserID(), c.Params("id")); err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Rating removed successfully",
	})
}

func (e *EngageController) BlogRatings(c *fiber.Ctx) error {
	opts := listOptions(c)

	ratings, stats, err := e.Ratings.BlogRatings(c.UserContext(), c.Params("id"), opts)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"ratings": ratings,
		"stats":   stats,
		"page":    opts.Page,
	})
}

func listOptions(c *fiber.Ctx) repository.ListOptions {
	return repository.ListOptions{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
}
