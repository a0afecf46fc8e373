package auth

import (
	"context"
	"net/http"
	"strings"

	"palette/logging"
	"palette/models"

	"github.com/gin-gonic/gin"
)

// HandlerFunc is called with the logged in member
type HandlerFunc func(c *gin.Context, member *models.Member)

type MemberLoader interface {
	FindByID(ctx context.Context, id uint64) (*models.Member, error)
}

// Router is a wrapper that loads the logged in Member before calling handlers.
// The member comes from the session cookie or from a bearer token.
type Router struct {
	Base    gin.IRoutes
	Members MemberLoader
	Secret  string // bearer tokens are ignored when empty
}

// MemberID resolves the caller without loading it, 0 for anonymous requests
func (cr *Router) MemberID(c *gin.Context) uint64 {
	if header := c.GetHeader("Authorization"); cr.Secret != "" && header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return 0
		}
		claims, err := ParseToken(cr.Secret, strings.TrimSpace(token))
		if err != nil {
			return 0
		}
		return claims.MemberID
	}
	if session := LoadSession(c); session != nil {
		return session.MemberID()
	}
	return 0
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	id := cr.MemberID(c)
	if id == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	member, err := cr.Members.FindByID(c.Request.Context(), id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	c.Set(logging.MemberIDKey, member.ID)
	handler(c, member)
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
