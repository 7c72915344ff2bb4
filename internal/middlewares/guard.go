package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hibried/SportNow/internal/session"
)

const (
	ctxSession = "session"

	// LoginPath is where anonymous users are sent.
	LoginPath = "/login"
	// LandingPath is where authenticated users are sent away from the
	// guest-only pages.
	LandingPath = "/activity"
)

// LoadSession resolves the session cookie against the store and attaches
// the session to the context. A missing or expired session just means
// guest; a store failure is logged and treated the same.
func LoadSession(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(session.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}
		s, err := store.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logrus.WithError(err).Warn("session lookup failed")
			}
			c.Next()
			return
		}
		c.Set(ctxSession, s)
		c.Next()
	}
}

// Current returns the session attached by LoadSession, or nil for guests.
func Current(c *gin.Context) *session.Session {
	v, ok := c.Get(ctxSession)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

// RequireAuth redirects anonymous requests to the login page before any
// protected handler runs.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := Current(c)
		if s == nil || s.Token == "" {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireGuest redirects authenticated users away from the login and
// register pages.
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := Current(c); s != nil && s.Token != "" {
			c.Redirect(http.StatusFound, LandingPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
