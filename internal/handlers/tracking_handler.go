package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/receipt"
	"github.com/kingdavid103/Tracking-payment6/internal/services"
	"github.com/kingdavid103/Tracking-payment6/internal/session"
	"github.com/kingdavid103/Tracking-payment6/internal/views"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type TrackingHandler struct {
	shell  *Shell
	orders *services.OrderService
	logger zerolog.Logger
}

func NewTrackingHandler(shell *Shell, orders *services.OrderService, logger zerolog.Logger) *TrackingHandler {
	return &TrackingHandler{shell: shell, orders: orders, logger: logger}
}

type trackPage struct {
	ID    string
	Order *views.OrderDetail
	Error string
}

// Track renders the tracking page; with ?id= it also looks the order up.
func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	data := trackPage{ID: r.URL.Query().Get("id")}
	title := "Track Order"

	if data.ID != "" {
		detail, err := h.orders.Track(r.Context(), sess.Token, data.ID)
		if err != nil {
			data.Error = trackError(err)
		} else {
			data.Order = detail
			title = "Track Order " + detail.TrackingID
		}
	}
	h.shell.Render(w, r, http.StatusOK, "track.html", h.shell.Page(r, title, "track", data))
}

func trackError(err error) string {
	if ae, ok := apperrors.IsAPIError(err); ok && ae.Cause != nil {
		return "Network error. Please check your connection and try again."
	}
	return apperrors.UserMessage(err, "Failed to load order details. Please try again later.")
}

// Receipt streams a PDF receipt for one order.
func (h *TrackingHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	id := mux.Vars(r)["id"]

	order, err := h.orders.Lookup(r.Context(), sess.Token, id)
	if err != nil {
		if ae, ok := apperrors.IsAPIError(err); ok && ae.NotFound() {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to load order details", http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := receipt.Generate(*order, time.Now(), &buf); err != nil {
		h.logger.Error().Err(err).Str("tracking_id", id).Msg("Receipt generation failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": "receipt-" + order.ID + ".pdf",
	}))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
