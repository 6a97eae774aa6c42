package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Marga-Ghale/ora-lists/internal/auth"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	profileIDKey = "profileID"
	profileKey   = "profile"
)

// AuthMiddleware verifies the bearer token, resolves the caller's Profile
// (creating it on first sign-in) and stores its id in both the gin context
// and the request context.
func AuthMiddleware(verifier *auth.Verifier, profiles service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			slog.Debug("Missing Authorization header", "context", "AuthMiddleware", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		identity, err := verifier.Verify(parts[1])
		if err != nil {
			slog.Info("Rejected token", "context", "AuthMiddleware", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		profile, err := profiles.Current(c.Request.Context(), *identity)
		if err != nil {
			slog.Error("Failed to resolve profile", "context", "AuthMiddleware", "userId", identity.UserID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve profile"})
			return
		}

		c.Set(profileIDKey, profile.ID)
		c.Set(profileKey, profile)
		c.Request = c.Request.WithContext(auth.WithProfileID(c.Request.Context(), profile.ID))
		c.Next()
	}
}

// GetProfileID extracts the caller's Profile id from gin context
func GetProfileID(c *gin.Context) string {
	return c.GetString(profileIDKey)
}

// RequireProfileID writes 401 and returns false when no caller is signed in.
func RequireProfileID(c *gin.Context) (string, bool) {
	profileID := GetProfileID(c)
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return profileID, true
}

// GetProfile returns the Profile resolved by AuthMiddleware.
func GetProfile(c *gin.Context) (*repository.Profile, bool) {
	v, ok := c.Get(profileKey)
	if !ok {
		return nil, false
	}
	profile, ok := v.(*repository.Profile)
	return profile, ok
}
