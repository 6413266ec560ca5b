package controllers

import (
	"blueghost/internal/providers"
	"blueghost/internal/services"
	"blueghost/internal/structures"
	"blueghost/internal/views"
	"errors"
	"net/http"
)

type AuthController struct {
	renderer *views.Renderer
	auth     services.AuthServiceInterface
	cookie   structures.CookieConfig
	logger   providers.Logger
}

func NewAuthController(renderer *views.Renderer, auth services.AuthServiceInterface, conf *structures.Config, logger providers.Logger) *AuthController {
	return &AuthController{
		renderer: renderer,
		auth:     auth,
		cookie:   conf.Cookie,
		logger:   logger,
	}
}

func (ac *AuthController) renderLogin(w http.ResponseWriter, status int, page views.Page) {
	page.Title = "Login"
	if err := ac.renderer.Render(w, status, views.PageLogin, page); err != nil {
		ac.logger.Errorf(providers.TypeApp, "Failed to render login: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(ac.cookie.Name); err == nil {
		if _, err := ac.auth.Verify(cookie.Value); err == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	ac.renderLogin(w, http.StatusOK, views.Page{
		Warning: services.UserMessage(services.ErrMissingCredentials),
		Content: views.LoginContent{},
	})
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")

	id, err := ac.auth.Login(username, r.PostForm.Get("password"))
	if err != nil {
		page := views.Page{Content: views.LoginContent{Username: username}}
		status := http.StatusUnauthorized
		if errors.Is(err, services.ErrMissingCredentials) {
			page.Warning = services.UserMessage(err)
			status = http.StatusBadRequest
		} else {
			page.Error = services.UserMessage(err)
		}
		ac.renderLogin(w, status, page)
		return
	}

	token, expires, err := ac.auth.Issue(id)
	if err != nil {
		ac.logger.Errorf(providers.TypeAuth, "Failed to issue session for %s: %s", id.Username, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     ac.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   ac.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := providers.IdentityFromContext(r.Context()); ok {
		ac.logger.Infof(providers.TypeAuth, "User %s logged out", id.Username)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ac.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ac.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
