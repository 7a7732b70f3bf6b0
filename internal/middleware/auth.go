// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techstore/techstore-backend/internal/authz"
	"github.com/techstore/techstore-backend/internal/models"
	"github.com/techstore/techstore-backend/internal/utils"
)

const authContextKey = "authctx"

// AuthContext builds the request-scoped authorization context from the bearer
// token. Tokens minted for the other node are rejected: node identity travels
// with the request, never with ambient state. Requests without a token act as
// guests at this node, which is enough for browsing and guest checkout.
func AuthContext(localNode models.NodeID) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(authContextKey, authz.Context{Node: localNode, Role: authz.RoleGuest})
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateNodeToken(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		actx := authz.Context{
			Node:      models.NodeID(claims.Node),
			Role:      authz.Role(claims.Role),
			SubjectID: claims.Subject,
		}

		if actx.Role == authz.RolePeer {
			// Peer tokens are only valid on the /internal API.
			utils.ForbiddenResponse(c, "Peer tokens are not valid here")
			c.Abort()
			return
		}
		if actx.Node != localNode {
			utils.ForbiddenResponse(c, "Token was issued for the other node")
			c.Abort()
			return
		}

		c.Set(authContextKey, actx)
		c.Next()
	}
}

// EmployeeRequired gates operator endpoints; the node-level capability checks
// stay in the services.
func EmployeeRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actx := GetAuthContext(c)
		if actx.Role != authz.RoleEmployee {
			utils.ForbiddenResponse(c, "Employee account required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// PeerRequired guards the /internal API: only the other node's gateway client
// may call it.
func PeerRequired(localNode models.NodeID) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Peer authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateNodeToken(parts[1])
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if claims.Role != string(authz.RolePeer) || claims.Node != string(localNode.Peer()) {
			utils.ForbiddenResponse(c, "Not a recognized peer")
			c.Abort()
			return
		}

		c.Set(authContextKey, authz.Context{
			Node:      models.NodeID(claims.Node),
			Role:      authz.RolePeer,
			SubjectID: claims.Subject,
		})
		c.Next()
	}
}

// GetAuthContext returns the context set by AuthContext; missing means guest
// with no node, which fails every capability check.
func GetAuthContext(c *gin.Context) authz.Context {
	if v, exists := c.Get(authContextKey); exists {
		if actx, ok := v.(authz.Context); ok {
			return actx
		}
	}
	return authz.Context{Role: authz.RoleGuest}
}
