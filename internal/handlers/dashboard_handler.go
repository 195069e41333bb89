package handlers

import (
	"net/http"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/notify"
	"github.com/kingdavid103/Tracking-payment6/internal/services"
	"github.com/kingdavid103/Tracking-payment6/internal/session"
)

type DashboardHandler struct {
	shell  *Shell
	orders *services.OrderService
}

func NewDashboardHandler(shell *Shell, orders *services.OrderService) *DashboardHandler {
	return &DashboardHandler{shell: shell, orders: orders}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	d, err := h.orders.Dashboard(r.Context(), sess.Token)
	if err != nil {
		h.shell.Notify(r, "Failed to load orders: "+apperrors.UserMessage(err, err.Error()), notify.Error)
	}

	page := h.shell.Page(r, "Dashboard", "dashboard", d)
	page.Shell.Unread = d.Unread
	h.shell.Render(w, r, http.StatusOK, "dashboard.html", page)
}

func (h *DashboardHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	h.shell.Render(w, r, http.StatusOK, "place-order.html", h.shell.Page(r, "Place Order", "place-order", nil))
}
