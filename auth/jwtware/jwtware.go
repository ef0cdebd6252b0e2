// Package jwtware is the request-pipeline authentication gate. It extracts
// the access credential from its carrier, validates it, and attaches the
// caller's claims to the request. The carrier is the bearer Authorization
// header; the refresh credential travels in a cookie and never reaches this
// gate. A missing credential and an invalid credential are rejected with
// distinct statuses (401 vs 403) so clients can tell "log in" apart from
// "token rejected". The gate performs no database lookup: authorization is
// entirely claim-based and trusts the signature.
package jwtware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

var defaultTokenLookup = "header:" + fiber.HeaderAuthorization

const (
	TextCodeNoCredential      = "NO_CREDENTIAL"
	TextCodeInvalidCredential = "INVALID_CREDENTIAL"
	TextCodeForbidden         = "FORBIDDEN"
)

// ErrJWTMissing is returned when no credential is present in the carrier
var ErrJWTMissing = errors.New("No token provided", errors.CategoryAuth).
	WithTextCode(TextCodeNoCredential).
	WithCode(errors.CodeUnauthorized)

// ErrJWTInvalid is returned when a credential is present but fails
// verification. Deliberately a 403, distinct from the missing-token 401.
var ErrJWTInvalid = errors.New("Invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredential).
	WithCode(errors.CodeForbidden)

// ErrInsufficientRole is returned when valid claims lack a required role
var ErrInsufficientRole = errors.New("You do not have permission to perform this action", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// TokenValidator validates tokens without an import cycle on the auth
// package. It mirrors auth.TokenService.Validate.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims mirrors the auth package's claim surface
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() string
	HasRole(role string) bool
	IsAdmin() bool
	Expires() time.Time
	IssuedAt() time.Time
}

type Config struct {
	// Filter skips the gate when it returns true
	Filter func(*fiber.Ctx) bool
	// SuccessHandler runs after the claims are attached
	SuccessHandler fiber.Handler
	// ErrorHandler maps gate failures to responses
	ErrorHandler fiber.ErrorHandler
	// TokenValidator is required; it carries the access-secret key
	TokenValidator TokenValidator
	// ContextKey is where claims are stored in c.Locals
	ContextKey string
	// TokenLookup is a "<source>:<name>" list, e.g. "header:Authorization"
	TokenLookup string
	// AuthScheme strips the scheme prefix from header carriers
	AuthScheme string
	// RequiredRole rejects claims that do not hold the role
	RequiredRole string
}

// New builds the gate middleware
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw, err := extractRawToken(c, cfg.extractors())
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			return cfg.ErrorHandler(c, ErrJWTInvalid)
		}

		if cfg.RequiredRole != "" && !claims.HasRole(cfg.RequiredRole) {
			return cfg.ErrorHandler(c, ErrInsufficientRole)
		}

		c.Locals(cfg.ContextKey, claims)

		return cfg.SuccessHandler(c)
	}
}

// ClaimsFromCtx returns the verified claims the gate attached, nil when the
// request never passed the gate.
func ClaimsFromCtx(c *fiber.Ctx, contextKey string) AuthClaims {
	claims, ok := c.Locals(contextKey).(AuthClaims)
	if !ok {
		return nil
	}
	return claims
}

func configDefault(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.TokenValidator == nil {
		panic("jwtware: TokenValidator is required")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.TokenLookup == "" {
		cfg.TokenLookup = defaultTokenLookup
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid token").
			WithCode(errors.CodeForbidden)
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusForbidden
	}

	return c.Status(status).JSON(fiber.Map{
		"error": richErr.Message,
	})
}

func extractRawToken(c *fiber.Ctx, extractors []Extractor) (string, error) {
	var raw string
	var err error

	for _, extractor := range extractors {
		raw, err = extractor(c)
		if raw != "" && err == nil {
			break
		}
	}

	return raw, err
}

// Extractor pulls a raw token out of a request carrier
type Extractor func(c *fiber.Ctx) (string, error)

func (cfg *Config) extractors() []Extractor {
	extractors := make([]Extractor, 0)

	// header:Authorization,cookie:access_token
	rootParts := strings.Split(cfg.TokenLookup, ",")
	for _, rootPart := range rootParts {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) < 2 {
			continue
		}

		source := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])

		switch source {
		case "header":
			extractors = append(extractors, fromHeader(name, cfg.AuthScheme))
		case "cookie":
			extractors = append(extractors, fromCookie(name))
		case "query":
			extractors = append(extractors, fromQuery(name))
		}
	}

	return extractors
}

// fromHeader returns an extractor that reads the request header.
func fromHeader(header, authScheme string) Extractor {
	return func(c *fiber.Ctx) (string, error) {
		a := c.Get(header)
		if a == "" {
			return "", ErrJWTMissing
		}

		l := len(authScheme)
		if l == 0 {
			return a, nil
		}

		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}

		return "", ErrJWTMissing
	}
}

// fromCookie returns an extractor that reads the named cookie.
func fromCookie(name string) Extractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Cookies(name)
		if token == "" {
			return "", ErrJWTMissing
		}
		return token, nil
	}
}

// fromQuery returns an extractor that reads the query string.
func fromQuery(param string) Extractor {
	return func(c *fiber.Ctx) (string, error) {
		token := c.Query(param)
		if token == "" {
			return "", ErrJWTMissing
		}
		return token, nil
	}
}
