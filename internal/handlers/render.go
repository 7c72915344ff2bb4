package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hibried/SportNow/internal/middlewares"
	"github.com/hibried/SportNow/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// perPage is the fixed page size for the listing and transaction pages.
const perPage = 9

func clearSession(c *gin.Context, store session.Store) {
	if s := middlewares.Current(c); s != nil {
		if err := store.Delete(c.Request.Context(), s.ID); err != nil {
			logrus.WithError(err).Warn("session delete failed")
		}
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
}

// forceLogin drops the session and redirects to the login page. Used when
// the API answers 401: the stored token is dead, not just this request.
func forceLogin(c *gin.Context, store session.Store) {
	clearSession(c, store)
	c.Redirect(http.StatusFound, middlewares.LoginPath)
	c.Abort()
}
