package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

// ErrNoPermission is returned when the signed-in role lacks a capability.
var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

func roleOf(c *gin.Context) (models.UserRole, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(models.UserRole)
	return role, ok
}

// RequireIntent answers 403 unless the role may apply every listed intent.
func RequireIntent(kinds ...engine.IntentKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleOf(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			return
		}
		allowed := engine.AllowedIntents(role)
		for _, k := range kinds {
			if !allowed[k] {
				utils.AbortError(c, http.StatusForbidden, ErrNoPermission)
				return
			}
		}
		c.Next()
	}
}

// RequireView answers 403 unless the role may read one of the views.
func RequireView(views ...engine.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleOf(c)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			return
		}
		allowed := engine.AllowedViews(role)
		for _, v := range views {
			if allowed[v] {
				c.Next()
				return
			}
		}
		utils.AbortError(c, http.StatusForbidden, ErrNoPermission)
	}
}
