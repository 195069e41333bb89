package views

import (
	"net/url"

	"github.com/kingdavid103/Tracking-payment6/internal/models"
)

const (
	PlaceholderCard   = "/static/img/placeholder.svg"
	PlaceholderAvatar = "/static/img/avatar.svg"
)

type OrderCard struct {
	TrackingID  string
	ProductName string
	Image       string
	Status      models.OrderStatus
	StatusClass string
	StatusIcon  string
	Price       string
	Quantity    int
	Destination string
	TrackURL    string
}

func NewOrderCard(o models.Order) OrderCard {
	img := PlaceholderCard
	if o.Image != nil && *o.Image != "" {
		img = *o.Image
	}
	return OrderCard{
		TrackingID:  o.ID,
		ProductName: o.ProductName,
		Image:       img,
		Status:      o.Status,
		StatusClass: StatusClass(o.Status),
		StatusIcon:  StatusIcon(o.Status),
		Price:       Money(o.Price),
		Quantity:    o.Quantity,
		Destination: o.Destination,
		TrackURL:    TrackURL(o.ID),
	}
}

// OrderCards returns one card per order; an empty result means the page
// shows its empty-state call to action.
func OrderCards(orders []models.Order) []OrderCard {
	cards := make([]OrderCard, 0, len(orders))
	for _, o := range orders {
		cards = append(cards, NewOrderCard(o))
	}
	return cards
}

func TrackURL(id string) string {
	return "/track.html?id=" + url.QueryEscape(id)
}

// OrderDetail is everything the tracking page shows about one order.
type OrderDetail struct {
	OrderCard
	Placed          string
	Reason          string
	TimeShipped     string
	DateShipped     string
	ExpectedArrival string
	Progress        Progress
}

func NewOrderDetail(o models.Order) OrderDetail {
	d := OrderDetail{
		OrderCard: NewOrderCard(o),
		Placed:    FormatDate(o.CreatedAt),
		Progress:  TrackingProgress(o.Status),
	}
	if o.Status.NeedsReason() {
		d.Reason = o.ReasonText()
	}
	if o.TimeShipped != nil {
		d.TimeShipped = *o.TimeShipped
	}
	if o.DateShipped != nil {
		d.DateShipped = FormatDate(*o.DateShipped)
	}
	if o.ExpectedArrival != nil {
		d.ExpectedArrival = FormatDate(*o.ExpectedArrival)
	}
	return d
}
