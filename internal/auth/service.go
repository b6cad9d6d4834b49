package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/bizmanager/internal"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
)

// WebLinkHost prefixes links derived from the company name at registration.
const WebLinkHost = "bizmanager.com/"

// Service is the main auth service with dependencies
type Service struct {
	store          Store
	tokenGenerator TokenGenerator
	sessionTTL     time.Duration
	bcryptCost     int
	logger         *slog.Logger
	now            func() time.Time

	// dummyHash is compared against when the username is unknown, so a failed
	// login costs one bcrypt comparison whether or not the account exists.
	dummyHash string
	verify    func(hashedPassword, password string) error
}

// NewService creates a new auth service
func NewService(store Store, tokenGen TokenGenerator, sessionTTL time.Duration, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummyHash, err := HashPassword(uuid.NewString(), bcryptCost)
	if err != nil {
		logger.Error("failed to prepare login hash", "error", err, "bcrypt_cost", bcryptCost)
	}
	return &Service{
		store:          store,
		tokenGenerator: tokenGen,
		sessionTTL:     sessionTTL,
		bcryptCost:     bcryptCost,
		logger:         logger,
		now:            time.Now,
		dummyHash:      dummyHash,
		verify:         VerifyPassword,
	}
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(secret string) *JWTTokenGenerator {
	return &JWTTokenGenerator{Secret: []byte(secret)}
}

// Register creates the account and signs it in.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*AuthResult, error) {
	dto.CompanyName = strings.TrimSpace(dto.CompanyName)
	if dto.CompanyName == "" {
		return nil, internal.NewValidationFieldError("companyName", "companyName must not be blank", internal.ErrCodeValidationFailed)
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := dto.ToDataModel(hash)
	if u.WebLink == nil || *u.WebLink == "" {
		link := DeriveWebLink(u.CompanyName)
		u.WebLink = &link
	}

	created, err := s.store.CreateUser(ctx, u)
	if err != nil {
		if !errors.Is(err, storage.ErrConflict) {
			s.logger.Error("failed to create user", "error", err)
		}
		return nil, err
	}
	s.logger.Info("user registered", "user_id", created.ID, "username", created.Username)

	return s.startSession(ctx, created)
}

// Login checks the password and opens a new session.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*AuthResult, error) {
	u, err := s.store.GetUserByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = s.verify(s.dummyHash, dto.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.verify(u.Password, dto.Password); err != nil {
		s.logger.Warn("login rejected", "username", dto.Username)
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, u)
}

// Logout revokes the session. Unknown sessions are already logged out.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.store.DeleteSession(ctx, sessionID); err != nil {
		s.logger.Error("failed to delete session", "error", err, "session_id", sessionID)
		return err
	}
	return nil
}

// Authenticate resolves a token to the caller. The token must be valid and
// its session still present and unexpired.
func (s *Service) Authenticate(ctx context.Context, token string) (*internal.SessionUser, error) {
	claims, err := s.tokenGenerator.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	session, err := s.store.GetSession(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if session.UserID != claims.UserID {
		return nil, ErrInvalidToken
	}
	if session.Expired(s.now()) {
		if _, err := s.store.DeleteSession(ctx, session.ID); err != nil {
			s.logger.Warn("failed to drop expired session", "error", err, "session_id", session.ID)
		}
		return nil, ErrSessionExpired
	}

	return &internal.SessionUser{
		ID:        claims.UserID,
		Username:  claims.Username,
		SessionID: session.ID,
	}, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*userDatamodel.User, error) {
	return s.store.GetUser(ctx, userID)
}

// SweepExpiredSessions deletes every session past its expiry.
func (s *Service) SweepExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired sessions removed", "count", n)
	}
	return n, nil
}

func (s *Service) startSession(ctx context.Context, u *userDatamodel.User) (*AuthResult, error) {
	now := s.now().UTC()
	session, err := s.store.CreateSession(ctx, &userDatamodel.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: now.Add(s.sessionTTL),
	})
	if err != nil {
		s.logger.Error("failed to create session", "error", err, "user_id", u.ID)
		return nil, err
	}

	token, err := s.tokenGenerator.GenerateToken(u.ID, u.Username, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResult{
		User:      u,
		Token:     token,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// GenerateToken signs an HS256 token bound to sessionID.
func (j *JWTTokenGenerator) GenerateToken(userID int64, username, sessionID string, expiresAt time.Time) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.ID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	return HashPassword(password, s.bcryptCost)
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// DeriveWebLink turns "Acme  Corp" into "bizmanager.com/acme-corp".
func DeriveWebLink(companyName string) string {
	return WebLinkHost + strings.Join(strings.Fields(strings.ToLower(companyName)), "-")
}
