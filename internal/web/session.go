package web

import (
	"net/http"

	"RugGuard/internal/domain/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookie holds the browser session id.
const SessionCookie = "rugguard_session"

// Session gives every browser a session cookie and carries its id in the
// request context. Unknown or malformed cookie values are replaced.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if ck, err := c.Cookie(SessionCookie); err == nil {
				if u, err := uuid.Parse(ck.Value); err == nil {
					id = u.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(models.ContextWithSession(req.Context(), id)))
			return next(c)
		}
	}
}
