package auth

import (
	"strings"

	"github.com/shaadibazaarhub/marketplace-api/internal/apperror"
	"github.com/shaadibazaarhub/marketplace-api/internal/models"
)

// ErrUnauthenticated is returned for a missing header, a foreign scheme and
// every token verification failure alike.
var (
	ErrUnauthenticated = apperror.New(apperror.Unauthenticated, "not authenticated")
	ErrForbidden       = apperror.New(apperror.Forbidden, "insufficient role")
)

type Verifier interface {
	Verify(token string) (Identity, error)
}

type Guard struct {
	tokens Verifier
}

func NewGuard(tokens Verifier) *Guard {
	return &Guard{tokens: tokens}
}

// Authenticate validates a raw Authorization header value.
func (g *Guard) Authenticate(header string) (Identity, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return Identity{}, ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}
	id, err := g.tokens.Verify(token)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// RequireRole fails with ErrForbidden unless id carries role. Ownership is
// left to the calling operation.
func RequireRole(id Identity, role models.Role) error {
	if id.Role != role {
		return ErrForbidden
	}
	return nil
}
