package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth validates an HS256 bearer token issued by the identity provider
// and stores its subject under ContextUserID.  Requests without a valid
// token, or whose token has no string subject, get 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (interface{}, error) { return []byte(secret), nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sub, status, msg := subjectFromRequest(c.Request(), parser, keyFunc)
			if status != 0 {
				return c.JSON(status, echo.Map{"error": msg})
			}
			c.Set(ContextUserID, sub)
			return next(c)
		}
	}
}

func subjectFromRequest(r *http.Request, parser *jwt.Parser, keyFunc jwt.Keyfunc) (string, int, string) {
	auth := r.Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", http.StatusUnauthorized, "missing bearer token"
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(raw, claims, keyFunc)
	if err != nil || !tok.Valid {
		return "", http.StatusUnauthorized, "invalid token"
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", http.StatusUnauthorized, "invalid claims"
	}
	return sub, 0, ""
}
