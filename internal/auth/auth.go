// Package auth verifies the bearer tokens issued by the Budge account
// service. Signup and session management live upstream; the backend
// only checks the signature and resolves the subject to a user.
package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/budgeapp/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const userIDKey = "budge:user-id"

var (
	ErrNoToken      = errors.New("a bearer token is required to use this endpoint")
	ErrInvalidToken = errors.New("the bearer token is invalid or expired")
)

// Sign issues a token for the user. The account service does this in
// production, the backend only uses it in tests and local tooling.
func Sign(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now().In(time.UTC)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString([]byte(secret))
}

// Middleware authenticates the request and stores the user ID in the
// context.
//
// Users are provisioned on their first authenticated request: the
// account service owns the account lifecycle, so a valid token for an
// unknown subject means the row simply does not exist here yet. The
// provisioning creates the user's default categories.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrNoToken.Error()})
			return
		}

		claims := jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(
			strings.TrimPrefix(header, "Bearer "),
			&claims,
			func(*jwt.Token) (any, error) { return []byte(secret), nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		user := models.User{DefaultModel: models.DefaultModel{ID: userID}}
		err = models.DB.Where(&models.User{DefaultModel: models.DefaultModel{ID: userID}}).FirstOrCreate(&user).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": models.ErrGeneral.Error()})
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the context.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(userIDKey).(uuid.UUID)
}
