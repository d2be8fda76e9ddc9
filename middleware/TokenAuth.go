package middleware

import (
	"strings"

	"github.com/ljpx/bind"
)

// TokenArtifact is the artifact name TokenAuth stores the accepted bearer
// token under, for handlers further along the chain.
const TokenArtifact = "middleware.token"

// TokenValidatorFunc reports whether a presented bearer token is valid.
type TokenValidatorFunc func(token string) bool

// TokenAuth is a before-phase middleware that requires requests to carry a
// valid bearer token in the Authorization header.  Requests without one are
// halted with an Unauthorized problem details response.
type TokenAuth struct {
	validate TokenValidatorFunc
}

// NewTokenAuth creates a new TokenAuth that accepts the tokens validate
// accepts.
func NewTokenAuth(validate TokenValidatorFunc) *TokenAuth {
	return &TokenAuth{validate: validate}
}

var _ bind.Middleware = &TokenAuth{}

// Handle validates the bearer token on the request.
func (m *TokenAuth) Handle(ctx *bind.Context) bool {
	header := ctx.Request().Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		ctx.Unauthorized("This endpoint requires a bearer token in the Authorization header.")
		return false
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" || !m.validate(token) {
		ctx.Unauthorized("The provided bearer token is not valid.")
		return false
	}

	ctx.SetArtifact(TokenArtifact, token)

	return true
}
