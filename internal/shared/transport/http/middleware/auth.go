package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"DawnEmpire/internal/shared/security"
)

const ctxKeyPlayerID = "playerID"

// Auth 校验 Bearer token / cookie token，把 playerID 注入 gin 上下文。
// 缺 token → 401；token 无效或过期 → 403。
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if v, err := c.Cookie("token"); err == nil {
				token = v
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := security.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ctxKeyPlayerID, claims.PlayerID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// PlayerID 从 gin 上下文取出鉴权后的玩家 id。
func PlayerID(c *gin.Context) (int, bool) {
	v, ok := c.Get(ctxKeyPlayerID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}
