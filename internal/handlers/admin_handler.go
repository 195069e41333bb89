package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/models"
	"github.com/kingdavid103/Tracking-payment6/internal/notify"
	"github.com/kingdavid103/Tracking-payment6/internal/services"
	"github.com/kingdavid103/Tracking-payment6/internal/session"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// MaxFormBytes bounds a multipart form: the image limit plus room for the
// text fields.
const MaxFormBytes = services.MaxImageBytes + 1<<20

type AdminHandler struct {
	shell  *Shell
	orders *services.OrderService
	logger zerolog.Logger
}

func NewAdminHandler(shell *Shell, orders *services.OrderService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{shell: shell, orders: orders, logger: logger}
}

type adminPage struct {
	Overview *services.AdminOverview
	Draft    services.OrderDraft
	Summary  services.OrderSummary
	Statuses []models.OrderStatus
}

func (h *AdminHandler) render(w http.ResponseWriter, r *http.Request, draft services.OrderDraft) {
	sess, _ := session.FromContext(r.Context())
	overview, err := h.orders.AdminOverview(r.Context(), sess.Token)
	if err != nil {
		h.shell.Notify(r, "Failed to load dashboard data: "+apperrors.UserMessage(err, err.Error()), notify.Error)
	}
	data := adminPage{
		Overview: overview,
		Draft:    draft,
		Summary:  draft.Summary(),
		Statuses: models.OrderStatuses,
	}
	h.shell.Render(w, r, http.StatusOK, "admin.html", h.shell.Page(r, "Admin Dashboard", "admin", data))
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, services.OrderDraft{})
}

func (h *AdminHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, MaxFormBytes)
	if err := r.ParseMultipartForm(MaxFormBytes); err != nil {
		h.logger.Warn().Err(err).Msg("Invalid create-order form")
		h.shell.Notify(r, formErrorMessage(err, "Failed to create order"), notify.Error)
		h.shell.Redirect(w, r, "/admin.html#create-order")
		return
	}

	draft := services.OrderDraft{
		ProductName:     r.FormValue("productName"),
		Price:           r.FormValue("price"),
		Quantity:        r.FormValue("quantity"),
		Destination:     r.FormValue("destination"),
		Status:          r.FormValue("status"),
		Reason:          r.FormValue("reason"),
		TimeShipped:     r.FormValue("timeShipped"),
		DateShipped:     r.FormValue("dateShipped"),
		ExpectedArrival: r.FormValue("expectedArrival"),
	}
	upload, err := formUpload(r, "productImage")
	if err != nil {
		h.shell.Notify(r, "Failed to create order", notify.Error)
		h.render(w, r, draft)
		return
	}
	draft.Image = upload

	trackingID, err := h.orders.CreateOrder(r.Context(), sess.Token, draft)
	if err != nil {
		h.shell.Notify(r, apperrors.UserMessage(err, "Failed to create order"), notify.Error)
		h.render(w, r, draft)
		return
	}
	h.shell.Notify(r, services.CreatedMessage(trackingID), notify.Success)
	h.shell.Redirect(w, r, "/admin.html")
}

// ViewOrder shows a one-line summary of an order as a notification.
func (h *AdminHandler) ViewOrder(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	msg, err := h.orders.Describe(r.Context(), sess.Token, mux.Vars(r)["id"])
	if err != nil {
		h.shell.Notify(r, "Failed to load order details", notify.Error)
	} else {
		h.shell.Notify(r, msg, notify.Info)
	}
	h.shell.Redirect(w, r, "/admin.html#orders")
}

// formErrorMessage tells an oversized upload apart from a malformed form.
func formErrorMessage(err error, fallback string) string {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return "Image size must be less than 5MB"
	}
	return fallback
}

// formUpload reads an optional file field. A missing file is not an error.
func formUpload(r *http.Request, field string) (*models.Upload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &models.Upload{
		FieldName:   field,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
