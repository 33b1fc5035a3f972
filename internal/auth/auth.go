// Package auth issues and verifies the JWT access tokens the mobile
// client holds between requests. Credential verification itself lives
// on the user repository.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"stockpilot/backend/internal/models"
	"stockpilot/backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type ctxKey string

const actorCtxKey = ctxKey("actor")

// Actor identifies the authenticated account on a request.
type Actor struct {
	UserID uint
	Email  string
	Role   models.Role
}

// LoginResponse is returned to the client on a successful login.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
	ExpiresAt   string      `json:"expires_at"`
}

type accountClaims struct {
	jwtlib.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type Manager struct {
	secret   []byte
	tokenTTL time.Duration
	users    *repository.UserRepository
}

func NewManager(secret string, tokenTTL time.Duration, users *repository.UserRepository) *Manager {
	if secret == "" {
		secret = "dev-change-me"
	}
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &Manager{secret: []byte(secret), tokenTTL: tokenTTL, users: users}
}

// Login authenticates against the user store and signs an access
// token. Wrong password, unknown email, and deactivated accounts are
// indistinguishable to the caller.
func (m *Manager) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	user, err := m.users.Authenticate(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return LoginResponse{}, err
	}
	if user == nil {
		return LoginResponse{}, ErrInvalidCredentials
	}
	expiresAt := time.Now().UTC().Add(m.tokenTTL)
	token, err := m.sign(user, expiresAt)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		AccessToken: token,
		User:        *user,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
	}, nil
}

// ParseToken validates a token string and returns the actor it names.
func (m *Manager) ParseToken(tokenStr string) (Actor, error) {
	claims := &accountClaims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Actor{}, errors.New("invalid or expired token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Actor{}, errors.New("invalid token subject")
	}
	var uid uint
	for _, r := range sub {
		if r < '0' || r > '9' {
			return Actor{}, errors.New("invalid token subject")
		}
		uid = uid*10 + uint(r-'0')
	}
	return Actor{UserID: uid, Email: claims.Email, Role: claims.Role}, nil
}

func (m *Manager) sign(user *models.User, expiresAt time.Time) (string, error) {
	claims := accountClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   itoa(user.ID),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			Issuer:    "stockpilot",
		},
		Email: user.Email,
		Role:  user.Role,
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func itoa(v uint) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// WithActor stores the actor in the request context.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, a)
}

// ActorFromContext extracts the authenticated actor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorCtxKey).(Actor)
	return a, ok
}

// Middleware attaches the actor to the context when a valid bearer
// token is present; it never rejects on its own.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if actor, err := m.ParseToken(token); err == nil {
				r = r.WithContext(WithActor(r.Context(), actor))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without an authenticated actor.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ActorFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
