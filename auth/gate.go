package auth

import (
	"github.com/paperstack/blogd/auth/jwtware"
)

// GateValidator adapts a TokenService to the gate middleware's validator
// interface. The claim value crosses unchanged; only the interface type
// differs, since jwtware keeps its own mirror to avoid importing this
// package.
func GateValidator(ts TokenService) jwtware.TokenValidator {
	return gateValidator{ts: ts}
}

type gateValidator struct {
	ts TokenService
}

func (g gateValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := g.ts.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
