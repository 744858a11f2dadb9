package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/devhive-app/devhive/internal/auth"
)

// AuthHeader is the request header carrying the session token.
// The client and server must agree on this name exactly.
const AuthHeader = "x-auth-token"

const principalKey = "principal"

// TokenAuthMiddleware validates the session token and attaches the subject id
// to the request context. It is a pure gate: no database access, and nothing
// beyond the subject id is trusted from the token. Handlers that need the
// rest of the identity re-fetch it from the user store.
func TokenAuthMiddleware(tokens *auth.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AuthHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			// Forged and expired get the same response; the log may differ
			log.Warn().Err(err).Msg("Rejected session token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token not valid"})
			return
		}

		c.Set(principalKey, userID)
		c.Next()
	}
}

// PrincipalID returns the authenticated user id attached by TokenAuthMiddleware
func PrincipalID(c *gin.Context) (string, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return "", false
	}

	id, ok := v.(string)
	return id, ok && id != ""
}
