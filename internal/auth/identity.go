package auth

import "github.com/labstack/echo/v4"

// ContextKey is the echo context key under which the JWT middleware stores
// the verified claims of the current request.
const ContextKey = "user"

// CurrentClaims returns the verified claims attached to the request, or
// false when the request never authenticated.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}

// CurrentUserID resolves the acting user's stable id from the request's
// verified claims: the user id claim first, falling back to the registered
// subject. Every protected operation must reject the request when this
// returns false, before touching storage.
func CurrentUserID(c echo.Context) (string, bool) {
	claims, ok := CurrentClaims(c)
	if !ok {
		return "", false
	}
	if claims.UserID != "" {
		return claims.UserID, true
	}
	if claims.Subject != "" {
		return claims.Subject, true
	}
	return "", false
}

// CurrentUsername resolves the acting user's name for display purposes.
// Not suitable for authorization decisions.
func CurrentUsername(c echo.Context) (string, bool) {
	claims, ok := CurrentClaims(c)
	if !ok || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
