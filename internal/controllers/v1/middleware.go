package v1

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/models"
)

// contextUser is the gin context key the authenticated user is stored under.
const contextUser = "user"

// Authenticate verifies the Bearer token and loads the user it belongs
// to into the request context. Requests without a valid access token
// are rejected with HTTP 401.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(status(err), httpError{Error: err.Error()})
			return
		}

		claims, err := auth.Parse(token, auth.TokenTypeAccess)
		if err != nil {
			c.AbortWithStatusJSON(status(err), httpError{Error: err.Error()})
			return
		}

		var user models.User
		err = models.DB.First(&user, "id = ?", claims.UserID).Error
		if err != nil {
			// A token for a deleted user is as invalid as a forged one
			if errors.Is(err, models.ErrResourceNotFound) {
				err = auth.ErrTokenInvalid
			}
			c.AbortWithStatusJSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.Set(contextUser, user)
		c.Next()
	}
}

// currentUser returns the user Authenticate stored in the context.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(contextUser).(models.User)
}
