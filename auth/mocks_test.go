package auth_test

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/mock"

	"github.com/paperstack/blogd/model"
)

// MockUserStore implements auth.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// Create echoes the input model when configured with a nil return, matching
// repository create semantics.
func (m *MockUserStore) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return user, nil
}

func (m *MockUserStore) Update(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// errStoreMiss is what a repository returns for an empty lookup
var errStoreMiss = errors.New("record not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

// testConfig is a plain auth.Config for tests
type testConfig struct {
	signingKey        string
	refreshSigningKey string
	tokenExpiration   int
	refreshExpiration int
	secureCookies     bool
}

func newTestConfig() testConfig {
	return testConfig{
		signingKey:        "test-access-secret",
		refreshSigningKey: "test-refresh-secret",
	}
}

func (c testConfig) GetSigningKey() string        { return c.signingKey }
func (c testConfig) GetRefreshSigningKey() string { return c.refreshSigningKey }
func (c testConfig) GetTokenExpiration() int      { return c.tokenExpiration }
func (c testConfig) GetRefreshExpiration() int    { return c.refreshExpiration }
func (c testConfig) GetIssuer() string            { return "test-issuer" }
func (c testConfig) GetAudience() []string        { return []string{"test:audience"} }
func (c testConfig) GetContextKey() string        { return "user" }
func (c testConfig) GetTokenLookup() string       { return "header:Authorization" }
func (c testConfig) GetAuthScheme() string        { return "Bearer" }
func (c testConfig) GetSecureCookies() bool       { return c.secureCookies }
