package handlers

import (
	"net/http"
	"strings"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/models"
	"github.com/kingdavid103/Tracking-payment6/internal/notify"
	"github.com/kingdavid103/Tracking-payment6/internal/services"
	"github.com/kingdavid103/Tracking-payment6/internal/session"
	"github.com/kingdavid103/Tracking-payment6/internal/views"

	"github.com/rs/zerolog"
)

const profilePath = "/profile.html"

type ProfileHandler struct {
	shell   *Shell
	profile *services.ProfileService
	store   *session.Store
	logger  zerolog.Logger
}

func NewProfileHandler(shell *Shell, profile *services.ProfileService, store *session.Store, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{shell: shell, profile: profile, store: store, logger: logger}
}

type preference struct {
	Name        string
	Description string
	Enabled     bool
}

var defaultPreferences = []preference{
	{"Two-Factor Authentication", "Add an extra layer of security to your account", false},
	{"Email Notifications", "Receive shipment updates by email", true},
	{"SMS Notifications", "Receive delivery alerts by text message", false},
	{"Marketing Emails", "Hear about offers and new services", false},
}

type profilePage struct {
	User        models.User
	Avatar      string
	Countries   []string
	Preferences []preference
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	avatar := sess.User.AvatarURL()
	if avatar == "" {
		avatar = views.PlaceholderAvatar
	}
	data := profilePage{
		User:        sess.User,
		Avatar:      avatar,
		Countries:   Countries,
		Preferences: defaultPreferences,
	}
	h.shell.Render(w, r, http.StatusOK, "profile.html", h.shell.Page(r, "Profile", "profile", data))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	req := models.ProfileUpdateRequest{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Email:     r.PostFormValue("email"),
		Country:   r.PostFormValue("country"),
	}

	user, err := h.profile.Update(r.Context(), sess, req)
	if err != nil {
		h.shell.Notify(r, apperrors.UserMessage(err, "Failed to update profile"), notify.Error)
		h.shell.Redirect(w, r, profilePath)
		return
	}
	h.saveUser(w, r, sess, user, "Profile updated successfully!")
}

func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	if err := r.ParseMultipartForm(MaxFormBytes); err != nil {
		h.logger.Warn().Err(err).Msg("Invalid avatar form")
		h.shell.Notify(r, formErrorMessage(err, "Failed to upload avatar"), notify.Error)
		h.shell.Redirect(w, r, profilePath)
		return
	}
	upload, err := formUpload(r, "avatar")
	if err != nil || upload == nil {
		h.shell.Notify(r, "Please select a valid image file", notify.Error)
		h.shell.Redirect(w, r, profilePath)
		return
	}

	user, err := h.profile.UploadAvatar(r.Context(), sess, *upload)
	if err != nil {
		h.shell.Notify(r, apperrors.UserMessage(err, "Failed to upload avatar"), notify.Error)
		h.shell.Redirect(w, r, profilePath)
		return
	}
	h.saveUser(w, r, sess, user, "Profile picture updated successfully!")
}

func (h *ProfileHandler) RemoveAvatar(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	h.saveUser(w, r, sess, h.profile.RemoveAvatar(sess), "Profile picture removed")
}

func (h *ProfileHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	setting := strings.TrimSpace(r.PostFormValue("setting"))
	if setting == "" {
		h.shell.Redirect(w, r, profilePath)
		return
	}
	enabled := r.PostFormValue("enabled") == "on"
	h.logger.Debug().Str("setting", setting).Bool("enabled", enabled).Msg("Preference toggled")
	h.shell.Notify(r, services.PreferenceMessage(setting, enabled), notify.Info)
	h.shell.Redirect(w, r, profilePath)
}

func (h *ProfileHandler) saveUser(w http.ResponseWriter, r *http.Request, sess models.Session, user models.User, message string) {
	h.shell.Notify(r, message, notify.Success)
	sess.User = user
	if err := h.store.Save(w, r, sess); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store session")
	}
	http.Redirect(w, r, profilePath, http.StatusSeeOther)
}
