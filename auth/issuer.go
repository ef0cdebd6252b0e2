package auth

import (
	"time"
)

// Default credential lifetimes. Access credentials are short-lived bearer
// claims; refresh credentials live in an HTTP-only cookie for a week.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// CredentialIssuer mints access and refresh credentials for an identity.
// The two token services are configured with independent signing secrets, so
// compromise of one secret does not make the other forgeable. Issuance is a
// pure function of identity and current time: nothing is persisted, any
// replica can verify any credential.
type CredentialIssuer struct {
	access     TokenService
	refresh    TokenService
	refreshTTL time.Duration
}

// NewCredentialIssuer builds an issuer from auth configuration
func NewCredentialIssuer(cfg Config, logger Logger) *CredentialIssuer {
	accessTTL := DefaultAccessTokenTTL
	if cfg.GetTokenExpiration() > 0 {
		accessTTL = time.Duration(cfg.GetTokenExpiration()) * time.Minute
	}

	refreshTTL := DefaultRefreshTokenTTL
	if cfg.GetRefreshExpiration() > 0 {
		refreshTTL = time.Duration(cfg.GetRefreshExpiration()) * time.Minute
	}

	return &CredentialIssuer{
		access:     NewTokenService([]byte(cfg.GetSigningKey()), accessTTL, cfg.GetIssuer(), cfg.GetAudience(), logger),
		refresh:    NewTokenService([]byte(cfg.GetRefreshSigningKey()), refreshTTL, cfg.GetIssuer(), cfg.GetAudience(), logger),
		refreshTTL: refreshTTL,
	}
}

// RefreshTTL reports the refresh credential lifetime, which also bounds the
// refresh cookie's max age.
func (ci *CredentialIssuer) RefreshTTL() time.Duration {
	return ci.refreshTTL
}

// IssueAccessToken mints a short-lived access credential
func (ci *CredentialIssuer) IssueAccessToken(identity Identity) (string, error) {
	return ci.access.Generate(identity)
}

// IssueRefreshToken mints a long-lived refresh credential
func (ci *CredentialIssuer) IssueRefreshToken(identity Identity) (string, error) {
	return ci.refresh.Generate(identity)
}

// AccessTokens returns the token service bound to the access secret
func (ci *CredentialIssuer) AccessTokens() TokenService {
	return ci.access
}

// RefreshTokens returns the token service bound to the refresh secret
func (ci *CredentialIssuer) RefreshTokens() TokenService {
	return ci.refresh
}
