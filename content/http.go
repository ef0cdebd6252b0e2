package content

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/paperstack/blogd/auth"
	"github.com/paperstack/blogd/auth/jwtware"
	"github.com/paperstack/blogd/repository"
)

// BlogController exposes blog and comment CRUD over HTTP. Mutating routes
// expect the authorization gate to have run; the caller's id and role come
// from the verified claims, never from the payload.
type BlogController struct {
	Logger     Logger
	Blogs      *BlogService
	Comments   *CommentService
	ContextKey string
}

func NewBlogController(blogs *BlogService, comments *CommentService, contextKey string) *BlogController {
	if contextKey == "" {
		contextKey = "user"
	}
	return &BlogController{
		Logger:     defLogger{},
		Blogs:      blogs,
		Comments:   comments,
		ContextKey: contextKey,
	}
}

func (b *BlogController) WithLogger(l Logger) *BlogController {
	if l != nil {
		b.Logger = l
	}
	return b
}

// RegisterRoutes mounts public read routes on pub and guarded mutating
// routes on priv.
func (b *BlogController) RegisterRoutes(pub, priv fiber.Router) {
	pub.Get("/blogs", b.ListBlogs)
	pub.Get("/blogs/search", b.SearchBlogs)
	pub.Get("/blogs/:id", b.GetBlog)
	pub.Get("/blogs/:id/comments", b.ListComments)

	priv.Post("/blogs", b.CreateBlog)
	priv.Put("/blogs/:id", b.UpdateBlog)
	priv.Delete("/blogs/:id", b.DeleteBlog)

	priv.Post("/blogs/:id/comments", b.CreateComment)
	priv.Put("/comments/:id", b.UpdateComment)
	priv.Delete("/comments/:id", b.DeleteComment)
}

func (b *BlogController) CreateBlog(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, b.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	payload := new(CreateBlogMessage)
	if err := c.BodyParser(payload); err != nil {
		b.Logger.Error("create blog parse payload", "error", err)
		return auth.RespondWithError(c, errParseBody(err))
	}

	blog, err := b.Blogs.Create(c.UserContext(), claims.UserID(), *payload)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(blog)
}

func (b *BlogController) GetBlog(c *fiber.Ctx) error {
	blog, err := b.Blogs.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return auth.RespondWithError(c, err)
	}
	return c.JSON(blog)
}

func (b *BlogController) ListBlogs(c *fiber.Ctx) error {
	opts := listOptions(c)

	blogs, total, err := b.Blogs.List(c.UserContext(), opts)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"blogs": blogs,
		"total": total,
		"page":  opts.Page,
	})
}

func (b *BlogController) SearchBlogs(c *fiber.Ctx) error {
	opts := listOptions(c)

	blogs, total, err := b.Blogs.Search(c.UserContext(), c.Query("q"), opts)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"blogs": blogs,
		"total": total,
		"page":  opts.Page,
	})
}

func (b *BlogController) UpdateBlog(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, b.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	payload := new(UpdateBlogMessage)
	if err := c.BodyParser(payload); err != nil {
		b.Logger.Error("update blog parse payload", "error", err)
		return auth.RespondWithError(c, errParseBody(err))
	}

	blog, err := b.Blogs.Update(c.UserContext(), claims.UserID(), claims.Role(), c.Params("id"), *payload)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(blog)
}

func (b *BlogController) DeleteBlog(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, b.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	if err := b.Blogs.Delete(c.UserContext(), claims.UserID(), claims.Role(), c.Params("id")); err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Blog deleted successfully",
	})
}

func (b *BlogController) CreateComment(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, b.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	payload := new(CommentMessage)
	if err := c.BodyParser(payload); err != nil {
		b.Logger.Error("create comment parse payload", "error", err)
		return auth.RespondWithError(c, errParseBody(err))
	}

	comment, err := b.Comments.Create(c.UserContext(), claims.UserID(), c.Params("id"), *payload)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (b *BlogController) ListComments(c *fiber.Ctx) error {
	opts := listOptions(c)

	comments, total, err := b.Comments.ListByBlog(c.UserContext(), c.Params("id"), opts)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"comments": comments,
		"total":    total,
		"page":     opts.Page,
	})
}

func (b *BlogController) UpdateComment(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, b.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	payload := new(CommentMessage)
	if err := c.BodyParser(payload); err != nil {
		b.Logger.Error("update comment parse payload", "error", err)
		return auth.RespondWithError(c, errParseBody(err))
	}

	comment, err := b.Comments.Update(c.UserContext(), claims.UserID(), claims.Role(), c.Params("id"), *payload)
	if err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(comment)
}

func (b *BlogController) DeleteComment(c *fiber.Ctx) error {
	claims := jwtware.ClaimsFromCtx(c, b.ContextKey)
	if claims == nil {
		return auth.RespondWithError(c, jwtware.ErrJWTMissing)
	}

	if err := b.Comments.Delete(c.UserContext(), claims.UserID(), claims.Role(), c.Params("id")); err != nil {
		return auth.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}

func errParseBody(err error) error {
	return errors.Wrap(err, errors.CategoryBadInput, "Error parsing body").
		WithCode(errors.CodeBadRequest)
}

func listOptions(c *fiber.Ctx) repository.ListOptions {
	return repository.ListOptions{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
}
