package handlers

import (
	"errors"
	"net/http"

	"github.com/vbman2012/project1CS50/internal/auth"
	"github.com/vbman2012/project1CS50/internal/dto"
	"github.com/vbman2012/project1CS50/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, register and logout pages.
type AuthHandler struct {
	sessions *auth.Store
	userSvc  *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Store, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, userSvc: userSvc}
}

// LoginPage renders the login form. Reaching the login page forgets any
// existing session.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	h.clearSession(c)
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": auth.PopFlash(c)})
}

// Login authenticates the posted credentials and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	h.clearSession(c)

	var form dto.LoginForm
	_ = c.ShouldBind(&form)
	if form.Username == "" {
		renderError(c, http.StatusBadRequest, "must provide username")
		return
	}
	if form.Password == "" {
		renderError(c, http.StatusBadRequest, "must provide password")
		return
	}

	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same message for unknown user and wrong password.
			renderError(c, http.StatusForbidden, "invalid username and/or password")
			return
		}
		renderError(c, http.StatusInternalServerError, "something went wrong, try again later")
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		renderError(c, http.StatusInternalServerError, "something went wrong, try again later")
		return
	}
	c.SetCookie(auth.SessionCookieName, token, 24*60*60, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	h.clearSession(c)
	c.HTML(http.StatusOK, "register.html", gin.H{"Flash": auth.PopFlash(c)})
}

// Register validates the form and creates the account. Success flashes a
// notice and sends the user to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	h.clearSession(c)

	var form dto.RegisterForm
	_ = c.ShouldBind(&form)
	if form.Username == "" {
		renderError(c, http.StatusBadRequest, "must provide username")
		return
	}
	if form.Password == "" {
		renderError(c, http.StatusBadRequest, "must provide password")
		return
	}
	if form.Confirmation == "" {
		renderError(c, http.StatusBadRequest, "must confirm password")
		return
	}
	if form.Password != form.Confirmation {
		renderError(c, http.StatusBadRequest, "passwords didn't match")
		return
	}

	_, err := h.userSvc.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			renderError(c, http.StatusConflict, "username already exist")
			return
		}
		renderError(c, http.StatusInternalServerError, "something went wrong, try again later")
		return
	}

	auth.SetFlash(c, "Account created")
	c.Redirect(http.StatusFound, "/login")
}

// Logout forgets the session and redirects home. Safe to call logged out.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSession(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) clearSession(c *gin.Context) {
	token, err := c.Cookie(auth.SessionCookieName)
	if err == nil && token != "" {
		_ = h.sessions.Delete(c.Request.Context(), token)
	}
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{"Message": message})
}
