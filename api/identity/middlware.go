package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-mazeviz/infrastruture/token"
	"github.com/beka-birhanu/vinom-mazeviz/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextSessionID is the key used to store the authorized session id.
	ContextSessionID = "sessionID"
	// SessionParam is the route parameter that must match the token's session.
	SessionParam = "ID"
)

// Authoriz accepts a Bearer token only on routes of the session it was
// issued for.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		sessionID, err := token.SessionID(claims)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if param := c.Param(SessionParam); param != "" && !strings.EqualFold(param, sessionID.String()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token does not grant access to this session"})
			return
		}

		c.Set(ContextSessionID, sessionID)
		c.Next()
	}
}
