package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/shaadibazaarhub/marketplace-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified claim set carried by a bearer token.
type Identity struct {
	AccountID uint
	Role      models.Role
	ExpiresAt time.Time
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenConfig struct {
	Secret     string
	Algorithm  string
	TTLMinutes int
}

// TokenService issues and verifies signed, time-boxed bearer tokens. The key
// and algorithm are fixed for the lifetime of the service.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
	ttl := cfg.TTLMinutes
	if ttl <= 0 {
		ttl = 120
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    time.Duration(ttl) * time.Minute,
		now:    time.Now,
	}, nil
}

// Issue signs a token for subject. A ttl of zero uses the configured default.
func (s *TokenService) Issue(subject uint, role models.Role, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	c := claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subject), 10),
			ExpiresAt: jwt.NewNumericDate(s.now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(s.method, c).SignedString(s.secret)
}

// Verify checks signature, structure and expiry. Every failure is reported
// as ErrInvalidToken.
func (s *TokenService) Verify(token string) (Identity, error) {
	c := &claims{}
	t, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !t.Valid {
		return Identity{}, ErrInvalidToken
	}

	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	role, err := models.ParseRole(c.Role)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{AccountID: uint(id), Role: role, ExpiresAt: c.ExpiresAt.Time}, nil
}
