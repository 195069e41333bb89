package handlers

import (
	"net/http"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/models"
	"github.com/kingdavid103/Tracking-payment6/internal/notify"
	"github.com/kingdavid103/Tracking-payment6/internal/services"
	"github.com/kingdavid103/Tracking-payment6/internal/session"

	"github.com/rs/zerolog"
)

// Countries offered by the registration and profile forms.
var Countries = []string{
	"Australia", "Brazil", "Canada", "China", "France", "Germany", "Ghana",
	"India", "Italy", "Japan", "Kenya", "Mexico", "Netherlands", "Nigeria",
	"Peru", "South Africa", "Spain", "United Kingdom", "United States",
}

type AuthHandler struct {
	shell       *Shell
	authService *services.AuthService
	store       *session.Store
	guard       *session.Guard
	logger      zerolog.Logger
}

func NewAuthHandler(shell *Shell, authService *services.AuthService, store *session.Store, guard *session.Guard, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		shell:       shell,
		authService: authService,
		store:       store,
		guard:       guard,
		logger:      logger,
	}
}

type loginForm struct {
	Email string
}

type registerForm struct {
	FirstName string
	LastName  string
	Email     string
	Country   string
	Countries []string
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.guard.Current(r); ok {
		http.Redirect(w, r, session.HomeFor(sess.User), http.StatusSeeOther)
		return
	}
	h.shell.Render(w, r, http.StatusOK, "login.html", h.shell.Page(r, "Sign In", "login", loginForm{}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.shell.Notify(r, "Invalid request", notify.Error)
		h.shell.Redirect(w, r, session.LoginPath)
		return
	}
	req := models.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	res, err := h.authService.Login(r.Context(), req)
	if err != nil {
		h.shell.Notify(r, apperrors.UserMessage(err, "Login failed"), notify.Error)
		h.shell.Render(w, r, http.StatusOK, "login.html", h.shell.Page(r, "Sign In", "login", loginForm{Email: req.Email}))
		return
	}

	h.shell.Notify(r, res.Message, notify.Success)
	if err := h.store.Save(w, r, res.Session); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store session")
	}
	http.Redirect(w, r, session.HomeFor(res.Session.User), http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.guard.Current(r); ok {
		http.Redirect(w, r, session.HomeFor(sess.User), http.StatusSeeOther)
		return
	}
	h.shell.Render(w, r, http.StatusOK, "register.html", h.shell.Page(r, "Create Account", "register", registerForm{Countries: Countries}))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.shell.Notify(r, "Invalid request", notify.Error)
		h.shell.Redirect(w, r, "/register.html")
		return
	}
	req := models.RegisterRequest{
		FirstName:       r.PostFormValue("firstName"),
		LastName:        r.PostFormValue("lastName"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
		Country:         r.PostFormValue("country"),
	}

	res, err := h.authService.Register(r.Context(), req)
	if err != nil {
		h.shell.Notify(r, apperrors.UserMessage(err, "Registration failed"), notify.Error)
		form := registerForm{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Country:   req.Country,
			Countries: Countries,
		}
		h.shell.Render(w, r, http.StatusOK, "register.html", h.shell.Page(r, "Create Account", "register", form))
		return
	}

	h.shell.Notify(r, res.Message, notify.Success)
	if err := h.store.Save(w, r, res.Session); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store session")
	}
	http.Redirect(w, r, "/dashboard.html", http.StatusSeeOther)
}

// Logout forgets the token and user and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(w, r); err != nil {
		h.logger.Error().Err(err).Msg("Failed to clear session")
	}
	http.Redirect(w, r, session.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	h.shell.Render(w, r, http.StatusOK, "index.html", h.shell.Page(r, "Home", "home", nil))
}
