package panel

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultTokenTTL = 5 * time.Minute

type tokenSource interface {
	Token() (string, error)
}

type staticToken string

func (t staticToken) Token() (string, error) { return string(t), nil }

// jwtSigner mints a short-lived HS256 token per request.
type jwtSigner struct {
	secret  []byte
	subject string
	ttl     time.Duration
	now     func() time.Time
}

func (s *jwtSigner) Token() (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := s.now().UTC()
	ttl := s.ttl
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	claims := jwt.RegisteredClaims{
		Subject:   s.subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func newTokenSource(opts Options) tokenSource {
	if token := strings.TrimSpace(opts.Token); token != "" {
		return staticToken(token)
	}
	if secret := strings.TrimSpace(opts.JWTSecret); secret != "" {
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		return &jwtSigner{
			secret:  []byte(secret),
			subject: strings.TrimSpace(opts.JWTSubject),
			ttl:     opts.JWTTTL,
			now:     now,
		}
	}
	return nil
}
