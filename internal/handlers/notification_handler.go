package handlers

import (
	"net/http"
	"strings"
)

type NotificationHandler struct {
	shell *Shell
}

func NewNotificationHandler(shell *Shell) *NotificationHandler {
	return &NotificationHandler{shell: shell}
}

// Dismiss empties the notification slot. Scripts get a 204; the plain form
// behind the close button is sent back to the page it came from.
func (h *NotificationHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.shell.Dismiss(r)
	if wantsJSON(r) {
		h.shell.commit(w, r)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.shell.Redirect(w, r, localPath(r.PostFormValue("next")))
}

// localPath only lets same-site paths through; anything else goes home.
func localPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
