package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie holding the opaque session token.
const SessionCookieName = "session_id"

const contextKeyIdentity = "identity"

// SetIdentity attaches the authenticated identity to the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(contextKeyIdentity, id)
}

// IdentityFromContext returns the identity set by the session middleware.
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequirePage redirects unauthenticated browser requests to /login.
func RequirePage(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolve(c, sessions)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		SetIdentity(c, id)
		c.Next()
	}
}

// RequireAPI rejects unauthenticated API requests with a 401 JSON body.
func RequireAPI(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resolve(c, sessions)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"Error": "authorization required"})
			return
		}
		SetIdentity(c, id)
		c.Next()
	}
}

func resolve(c *gin.Context, sessions *Store) (Identity, bool) {
	token, err := c.Cookie(SessionCookieName)
	if err != nil || token == "" {
		return Identity{}, false
	}
	return sessions.Get(c.Request.Context(), token)
}
