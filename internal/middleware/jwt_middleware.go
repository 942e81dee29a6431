package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/pharmreg_api/internal/models"
	"github.com/GTDGit/pharmreg_api/internal/utils"
)

const claimsKey = "claims"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	ValidateJWT(raw string) (*utils.Claims, error)
}

// JWTMiddleware guards every protected route. Requests matched by one of the
// skip predicates pass through without a token.
type JWTMiddleware struct {
	tokens TokenVerifier
	skip   []func(*gin.Context) bool
}

func NewJWTMiddleware(tokens TokenVerifier, skip ...func(*gin.Context) bool) *JWTMiddleware {
	return &JWTMiddleware{tokens: tokens, skip: skip}
}

func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, skip := range m.skip {
			if skip(c) {
				c.Next()
				return
			}
		}

		// Absent header or no token part: 401. Anything else that fails to verify: 403.
		_, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")
		token = strings.TrimSpace(token)
		if token == "" {
			utils.Error(c, http.StatusUnauthorized, "Access denied, no token provided", "")
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateJWT(token)
		if err != nil {
			utils.Error(c, http.StatusForbidden, "Forbidden", "")
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// LanguageLookup matches GET /pltab?column=LANGGREDIS, which the login screen
// calls before a token exists.
func LanguageLookup(c *gin.Context) bool {
	return c.Request.Method == http.MethodGet &&
		c.FullPath() == "/pltab" &&
		strings.EqualFold(strings.TrimSpace(c.Query("column")), models.PltabLanguages)
}

// GetClaims returns the verified token claims, or nil on public routes.
func GetClaims(c *gin.Context) *utils.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}
