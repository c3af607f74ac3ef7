package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextUser   = "user"
	ContextUserID = "userID"
	ContextRole   = "role"
)

var errSessionEnded = errors.New("session ended or replaced by another sign-in")

// SessionSource reports who is signed in at the terminal.
type SessionSource interface {
	CurrentUser() *models.User
}

// AuthMiddleware accepts a bearer token only while its user is still the
// terminal's signed-in user.
func AuthMiddleware(sessions SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.AbortError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			return
		}
		authenticate(c, sessions, strings.TrimPrefix(authHeader, "Bearer "))
	}
}

func authenticate(c *gin.Context, sessions SessionSource, tokenString string) {
	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.AbortError(c, http.StatusUnauthorized, err)
		return
	}

	user := sessions.CurrentUser()
	if user == nil || user.ID != claims.UserID {
		utils.AbortError(c, http.StatusUnauthorized, errSessionEnded)
		return
	}

	c.Set(ContextUser, *user)
	c.Set(ContextUserID, user.ID)
	c.Set(ContextRole, user.Role)
	c.Next()
}

// CurrentUser returns the account stored by the auth middlewares.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
