package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quillcms/quill-backend/internal/common"
	"github.com/quillcms/quill-backend/internal/domain"
	"github.com/quillcms/quill-backend/pkg/jwt"
)

const actorContextKey = "actor"

// JWTAuth resolves the acting user from the Authorization header. The engine
// never authenticates beyond this point; it only authorizes the resolved
// actor.
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		c.Set(actorContextKey, &domain.Actor{
			ID:       claims.UserID,
			Role:     claims.Role,
			Language: claims.Language,
		})

		c.Next()
	}
}

// GetActor extracts the actor from context, nil when unauthenticated.
func GetActor(c *gin.Context) *domain.Actor {
	value, exists := c.Get(actorContextKey)
	if !exists {
		return nil
	}
	if actor, ok := value.(*domain.Actor); ok {
		return actor
	}
	return nil
}
