package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hibried/SportNow/internal/api"
	"github.com/hibried/SportNow/internal/middlewares"
	"github.com/hibried/SportNow/internal/session"
)

type AuthHandler struct {
	api   *api.Client
	store session.Store
}

func NewAuthHandler(a *api.Client, store session.Store) *AuthHandler {
	return &AuthHandler{api: a, store: store}
}

// GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Email": ""})
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if msg := validateCredentials(email, password); msg != "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Error": msg, "Email": email})
		return
	}

	token, err := h.api.Login(c.Request.Context(), email, password)
	if err != nil {
		msg := "Login failed, please try again."
		if api.IsUnauthorized(err) {
			msg = "Invalid email or password."
		}
		logrus.WithError(err).Info("login rejected")
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": msg, "Email": email})
		return
	}

	// Identity is display-only; a failed /me still leaves a usable session.
	user, err := h.api.Me(c.Request.Context(), token)
	if err != nil {
		logrus.WithError(err).Warn("current-user fetch failed")
	}

	s := session.New(token, user)
	if err := h.store.Put(c.Request.Context(), s); err != nil {
		logrus.WithError(err).Error("session save failed")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Could not start a session.", "Email": email})
		return
	}
	c.SetCookie(session.CookieName, s.ID, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, middlewares.LandingPath)
}

// GET /register
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Form": api.RegisterInput{}})
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	in := api.RegisterInput{
		Name:            strings.TrimSpace(c.PostForm("name")),
		Email:           strings.TrimSpace(c.PostForm("email")),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("c_password"),
		PhoneNumber:     strings.TrimSpace(c.PostForm("phone_number")),
		Role:            "user",
	}

	if msg := validateRegistration(in); msg != "" {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": msg, "Form": in})
		return
	}

	if err := h.api.Register(c.Request.Context(), in); err != nil {
		logrus.WithError(err).Info("registration rejected")
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Error": err.Error(), "Form": in})
		return
	}
	c.Redirect(http.StatusFound, middlewares.LoginPath)
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSession(c, h.store)
	c.Redirect(http.StatusFound, middlewares.LoginPath)
}

func validateCredentials(email, password string) string {
	if email == "" {
		return "Email is required."
	}
	if password == "" {
		return "Password is required."
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters."
	}
	return ""
}

func validateRegistration(in api.RegisterInput) string {
	if in.Name == "" {
		return "Name is required."
	}
	if msg := validateCredentials(in.Email, in.Password); msg != "" {
		return msg
	}
	if in.Password != in.ConfirmPassword {
		return "Passwords do not match."
	}
	if in.PhoneNumber == "" {
		return "Phone number is required."
	}
	return ""
}
