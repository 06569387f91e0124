package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"cityhelp-be/authz"
	"cityhelp-be/errs"
	"cityhelp-be/logger"
	"cityhelp-be/models"
	"cityhelp-be/services"
)

// Context keys set by the auth gate.
const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

// AuthCookie carries the session token for browser clients.
const AuthCookie = "auth_token"

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return strings.TrimSpace(header)
	}
	if cookie, err := c.Cookie(AuthCookie); err == nil {
		return cookie
	}
	return ""
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(UserKey, user)
	c.Set(UserIDKey, user.ID.Hex())

	l := logger.FromContext(c.Request.Context()).With().Str("user_id", user.ID.Hex()).Logger()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))
}

// AuthMiddleware rejects requests without a valid token for an existing user.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), bearerToken(c))
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug().Err(err).Msg("authentication failed")
			AbortWithError(c, err)
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				setUser(c, user)
			}
		}
		c.Next()
	}
}

// RequireAction lets the request through only if the caller may perform act.
func RequireAction(az services.Authorizer, act authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := az.Decide(CurrentUser(c), act, nil).Err(); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// AbortWithError writes the JSON error response for err and stops the chain.
// Internal failures are logged and answered with a generic message.
func AbortWithError(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	var event *zerolog.Event
	if status >= 500 {
		event = logger.FromContext(c.Request.Context()).Error()
	} else {
		event = logger.FromContext(c.Request.Context()).Debug()
	}
	event.Err(err).Int("status", status).Str("path", c.FullPath()).Msg("request failed")

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": errs.PublicMessage(err)})
}
