package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"

	"github.com/paperstack/blogd/model"
)

// dummyHash is compared against on unknown-email logins so both failure
// paths pay the bcrypt cost. Hash of a throwaway string, never a password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// TokenPair bundles the credentials issued on login
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
}

// LoginResult carries the issued credentials and the authenticated user
type LoginResult struct {
	Tokens TokenPair
	User   *model.User
}

// RegisterMessage is the registration payload
type RegisterMessage struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	UseHashid bool   `json:"-"`
}

// Validate will run validation rules
func (m RegisterMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Username, validation.Required, validation.Length(3, 60)),
		validation.Field(&m.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&m.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&m.Name, validation.Required, validation.Length(1, 200)),
	)
}

// Auther orchestrates registration, login and credential refresh over an
// injected UserStore. It holds no mutable state of its own.
type Auther struct {
	store  UserStore
	issuer *CredentialIssuer
	logger Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store UserStore, cfg Config) *Auther {
	logger := defLogger{}
	return &Auther{
		store:  store,
		issuer: NewCredentialIssuer(cfg, logger),
		logger: logger,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Issuer returns the CredentialIssuer used by this Authenticator
func (s *Auther) Issuer() *CredentialIssuer {
	return s.issuer
}

// Register creates a new identity with the default role. Fails with
// ErrEmailTaken when the email is already present.
func (s *Auther) Register(ctx context.Context, msg RegisterMessage) (*model.User, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid registration payload")
	}

	existing, err := s.store.GetByEmail(ctx, msg.Email)
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check email uniqueness")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(msg.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Role:         model.RoleUser,
		Name:         msg.Name,
		Username:     msg.Username,
		Email:        msg.Email,
		PasswordHash: hash,
	}

	if msg.UseHashid {
		if id, err := hashid.NewUUID(msg.Email); err == nil {
			user.ID = id
		}
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		s.logger.Error("Register create user error", "error", err)
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create user")
	}

	return created, nil
}

// Login verifies the email/password pair and issues an access and a refresh
// credential. Unknown email and wrong password produce the identical error.
func (s *Auther) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			ComparePasswordAndHash(password, dummyHash)
			return nil, ErrMismatchedHashAndPassword
		}
		s.logger.Error("Login lookup error", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	identity := NewIdentityFromUser(user)

	access, err := s.issuer.IssueAccessToken(identity)
	if err != nil {
		s.logger.Error("Login access token error", "error", err)
		return nil, err
	}

	refresh, err := s.issuer.IssueRefreshToken(identity)
	if err != nil {
		s.logger.Error("Login refresh token error", "error", err)
		return nil, err
	}

	return &LoginResult{
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
		User:   user,
	}, nil
}

// Refresh verifies a refresh credential and mints a new access credential
// bound to the same subject and role. The refresh credential itself is not
// rotated: a refresh token stays valid for its original lifetime.
func (s *Auther) Refresh(refreshToken string) (string, error) {
	claims, err := s.issuer.RefreshTokens().Validate(refreshToken)
	if err != nil {
		s.logger.Info("Refresh token rejected", "error", err)
		return "", ErrInvalidRefresh
	}

	identity := claimsIdentity{id: claims.UserID(), role: claims.Role()}

	access, err := s.issuer.IssueAccessToken(identity)
	if err != nil {
		s.logger.Error("Refresh access token error", "error", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to mint access token")
	}

	return access, nil
}

type claimsIdentity struct {
	id   string
	role string
}

func (c claimsIdentity) ID() string       { return c.id }
func (c claimsIdentity) Username() string { return "" }
func (c claimsIdentity) Email() string    { return "" }
func (c claimsIdentity) Role() string     { return c.role }
