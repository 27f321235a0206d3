package middleware

import "github.com/labstack/echo/v4"

// ContextUserID is the echo context key holding the caller's identity.
const ContextUserID = "user_id"

// UserID returns the authenticated caller, or "" for anonymous requests.
func UserID(c echo.Context) string {
	if s, ok := c.Get(ContextUserID).(string); ok {
		return s
	}
	return ""
}

// rateSubject names the caller in rate limit keys.
func rateSubject(c echo.Context) string {
	if id := UserID(c); id != "" {
		return id
	}
	return "anon"
}
