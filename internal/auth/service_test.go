package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/bizmanager/internal"
	userDatamodel "github.com/frahmantamala/bizmanager/internal/core/datamodel/user"
	"github.com/frahmantamala/bizmanager/internal/storage"
	"github.com/frahmantamala/bizmanager/internal/storage/memory"
	"github.com/frahmantamala/bizmanager/pkg/logger"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

func strPtr(s string) *string { return &s }

var _ = ginkgo.Describe("AuthService", func() {
	var (
		ctx      context.Context
		store    *memory.Store
		tokenGen *JWTTokenGenerator
		service  *Service
		secret   = "test-secret-test-secret-test-secret"
		ttl      = time.Hour
	)

	register := func(username, company string) *AuthResult {
		result, err := service.Register(ctx, RegisterDTO{
			Username:    username,
			Password:    "correct_password",
			CompanyName: company,
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return result
	}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		store = memory.New()
		tokenGen = NewJWTTokenGenerator(secret)
		service = NewService(store, tokenGen, ttl, bcrypt.MinCost, logger.Discard())
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("should store a hashed password and open a session", func() {
			// When
			result := register("acme", "Acme Corp")

			// Then
			gomega.Expect(result.User.ID).To(gomega.Equal(int64(1)))
			gomega.Expect(result.User.Password).ToNot(gomega.Equal("correct_password"))
			gomega.Expect(VerifyPassword(result.User.Password, "correct_password")).To(gomega.Succeed())
			gomega.Expect(result.Token).ToNot(gomega.BeEmpty())

			session, err := store.GetSession(ctx, result.SessionID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(session.UserID).To(gomega.Equal(result.User.ID))
		})

		ginkgo.It("should derive the web link from the company name", func() {
			result := register("acme", "  Acme   Trading\tCo ")

			gomega.Expect(result.User.WebLink).ToNot(gomega.BeNil())
			gomega.Expect(*result.User.WebLink).To(gomega.Equal("bizmanager.com/acme-trading-co"))
			gomega.Expect(result.User.CompanyName).To(gomega.Equal("Acme   Trading\tCo"))
		})

		ginkgo.It("should reject a blank company name", func() {
			_, err := service.Register(ctx, RegisterDTO{Username: "acme", Password: "correct_password", CompanyName: " \t "})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(appErr.Details).To(gomega.Equal(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "companyName", Message: "companyName must not be blank", Code: string(internal.ErrCodeValidationFailed)},
			}}))

			_, err = store.GetUserByUsername(ctx, "acme")
			gomega.Expect(err).To(gomega.MatchError(storage.ErrNotFound))
		})

		ginkgo.It("should keep a web link the caller supplied", func() {
			result, err := service.Register(ctx, RegisterDTO{
				Username:    "acme",
				Password:    "correct_password",
				CompanyName: "Acme",
				WebLink:     strPtr("acme.example"),
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(*result.User.WebLink).To(gomega.Equal("acme.example"))
		})

		ginkgo.It("should reject a taken username", func() {
			register("acme", "Acme")

			_, err := service.Register(ctx, RegisterDTO{Username: "acme", Password: "another_password", CompanyName: "Other"})

			gomega.Expect(err).To(gomega.MatchError(storage.ErrConflict))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.BeforeEach(func() {
			register("acme", "Acme")
		})

		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should issue a token for a fresh session", func() {
				// When
				result, err := service.Login(ctx, LoginDTO{Username: "acme", Password: "correct_password"})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				claims, err := tokenGen.ValidateToken(result.Token)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal(result.User.ID))
				gomega.Expect(claims.Username).To(gomega.Equal("acme"))
				gomega.Expect(claims.ID).To(gomega.Equal(result.SessionID))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return error for unknown username", func() {
				_, err := service.Login(ctx, LoginDTO{Username: "nobody", Password: "correct_password"})
				gomega.Expect(err).To(gomega.MatchError(ErrInvalidCredentials))
			})

			ginkgo.It("should spend a bcrypt comparison on an unknown username", func() {
				var compared []string
				service.verify = func(hashedPassword, password string) error {
					compared = append(compared, hashedPassword)
					return VerifyPassword(hashedPassword, password)
				}

				_, err := service.Login(ctx, LoginDTO{Username: "nobody", Password: "correct_password"})

				gomega.Expect(err).To(gomega.MatchError(ErrInvalidCredentials))
				gomega.Expect(compared).To(gomega.Equal([]string{service.dummyHash}))
				cost, err := bcrypt.Cost([]byte(service.dummyHash))
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(cost).To(gomega.Equal(bcrypt.MinCost))
			})

			ginkgo.It("should return error for wrong password", func() {
				_, err := service.Login(ctx, LoginDTO{Username: "acme", Password: "wrong_password"})
				gomega.Expect(err).To(gomega.MatchError(ErrInvalidCredentials))
			})
		})
	})

	ginkgo.Describe("Authenticate", func() {
		var result *AuthResult

		ginkgo.BeforeEach(func() {
			result = register("acme", "Acme")
		})

		ginkgo.It("should resolve the session user", func() {
			user, err := service.Authenticate(ctx, result.Token)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.ID).To(gomega.Equal(result.User.ID))
			gomega.Expect(user.Username).To(gomega.Equal("acme"))
			gomega.Expect(user.SessionID).To(gomega.Equal(result.SessionID))
		})

		ginkgo.It("should reject a token after logout", func() {
			gomega.Expect(service.Logout(ctx, result.SessionID)).To(gomega.Succeed())

			_, err := service.Authenticate(ctx, result.Token)
			gomega.Expect(err).To(gomega.MatchError(ErrSessionExpired))
		})

		ginkgo.It("should reject and drop an expired session", func() {
			service.now = func() time.Time { return time.Now().Add(2 * ttl) }

			_, err := service.Authenticate(ctx, result.Token)
			gomega.Expect(err).To(gomega.HaveOccurred())

			_, err = store.GetSession(ctx, result.SessionID)
			gomega.Expect(err).To(gomega.MatchError(storage.ErrNotFound))
		})

		ginkgo.It("should reject a token signed with another secret", func() {
			other := NewJWTTokenGenerator("another-secret-another-secret-xx")
			forged, err := other.GenerateToken(result.User.ID, "acme", result.SessionID, time.Now().Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Authenticate(ctx, forged)
			gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
		})

		ginkgo.It("should reject a session presented for another user", func() {
			forged, err := tokenGen.GenerateToken(result.User.ID+1, "mallory", result.SessionID, time.Now().Add(time.Hour))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Authenticate(ctx, forged)
			gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
		})

		ginkgo.It("should reject malformed tokens", func() {
			_, err := service.Authenticate(ctx, "not-a-jwt")
			gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateToken", func() {
		ginkgo.It("should report expired tokens", func() {
			token, err := tokenGen.GenerateToken(1, "acme", "session", time.Now().Add(-time.Minute))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.MatchError(ErrTokenExpired))
		})

		ginkgo.It("should reject tokens without a session id", func() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
				UserID: 1,
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			})
			signed, err := token.SignedString([]byte(secret))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(signed)
			gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
		})

		ginkgo.It("should reject other signing algorithms", func() {
			token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
				UserID:           1,
				RegisteredClaims: jwt.RegisteredClaims{ID: "session"},
			})
			signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(signed)
			gomega.Expect(err).To(gomega.MatchError(ErrInvalidToken))
		})
	})

	ginkgo.Describe("SweepExpiredSessions", func() {
		ginkgo.It("should delete only sessions past their expiry", func() {
			now := time.Now().UTC()
			_, err := store.CreateSession(ctx, &userDatamodel.Session{ID: "old", UserID: 1, ExpiresAt: now.Add(-time.Minute)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = store.CreateSession(ctx, &userDatamodel.Session{ID: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			n, err := service.SweepExpiredSessions(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(n).To(gomega.Equal(int64(1)))
			_, err = store.GetSession(ctx, "live")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("DeriveWebLink", func() {
		ginkgo.It("should lower-case and hyphenate whitespace runs", func() {
			gomega.Expect(DeriveWebLink("Big  Shop")).To(gomega.Equal("bizmanager.com/big-shop"))
		})
	})
})
