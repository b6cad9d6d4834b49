package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/bizmanager/internal"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
)

// SessionCookieName carries the token for browser clients.
const SessionCookieName = "bizmanager_session"

// Store is the slice of storage the auth flow needs.
type Store interface {
	storage.UserStore
	storage.SessionStore
}

// ServiceAPI is what the HTTP layer depends on.
type ServiceAPI interface {
	Register(ctx context.Context, dto RegisterDTO) (*AuthResult, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (*internal.SessionUser, error)
	CurrentUser(ctx context.Context, userID int64) (*userDatamodel.User, error)
}

// TokenGenerator signs and verifies session tokens.
type TokenGenerator interface {
	GenerateToken(userID int64, username, sessionID string, expiresAt time.Time) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents JWT token claims. The registered ID (jti) is the session id.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret []byte
}

// AuthResult is a signed-in user with the token of the new session.
type AuthResult struct {
	User      *userDatamodel.User
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// AuthResponse flattens the user next to its token.
type AuthResponse struct {
	*userDatamodel.User
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (a *AuthResult) ToResponse() AuthResponse {
	return AuthResponse{
		User:      a.User,
		Token:     a.Token,
		ExpiresAt: a.ExpiresAt,
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionExpired     = errors.New("session expired")
)
