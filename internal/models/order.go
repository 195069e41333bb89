package models

import (
	"encoding/json"
	"strings"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusHold       OrderStatus = "Hold"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusHold,
}

// ParseOrderStatus maps any casing of a known status to its canonical form.
// Unknown values are returned unchanged with ok=false.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return OrderStatus(s), false
}

// NeedsReason reports whether orders in this status carry an explanation.
func (s OrderStatus) NeedsReason() bool {
	return s == OrderStatusHold || s == OrderStatusPending
}

// NeedsShipping reports whether orders in this status carry shipping dates.
func (s OrderStatus) NeedsShipping() bool {
	return s == OrderStatusShipped || s == OrderStatusDelivered
}

type Order struct {
	ID              string      `json:"id"`
	ProductName     string      `json:"productName"`
	Price           float64     `json:"price"`
	Quantity        int         `json:"quantity"`
	Destination     string      `json:"destination"`
	Status          OrderStatus `json:"status"`
	Reason          *string     `json:"reason"`
	Image           *string     `json:"image"`
	TimeShipped     *string     `json:"timeShipped"`
	DateShipped     *string     `json:"dateShipped"`
	ExpectedArrival *string     `json:"expectedArrival"`
	CreatedAt       string      `json:"createdAt"`
}

// UnmarshalJSON also accepts the seed file's destinationCountry and
// shippingStatus names, and normalizes status casing. Price and quantity may
// arrive as numbers or as the strings the order form posted; values that are
// not numeric count as 0.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	aux := struct {
		*plain
		Price              json.RawMessage `json:"price"`
		Quantity           json.RawMessage `json:"quantity"`
		DestinationCountry string          `json:"destinationCountry"`
		ShippingStatus     string          `json:"shippingStatus"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.Price = looseFloat(aux.Price)
	o.Quantity = looseInt(aux.Quantity)
	if o.Destination == "" {
		o.Destination = aux.DestinationCountry
	}
	if o.Status == "" {
		o.Status = OrderStatus(aux.ShippingStatus)
	}
	if st, ok := ParseOrderStatus(string(o.Status)); ok {
		o.Status = st
	}
	return nil
}

func (o Order) Total() float64 {
	return o.Price * float64(o.Quantity)
}

func (o Order) ReasonText() string {
	if o.Reason == nil {
		return ""
	}
	return *o.Reason
}

type CreateOrderRequest struct {
	ProductName     string
	Price           string
	Quantity        string
	Destination     string
	Status          OrderStatus
	Reason          string
	TimeShipped     string
	DateShipped     string
	ExpectedArrival string
	Image           *Upload
}

// Upload is a file forwarded to the backend as a multipart part.
type Upload struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

type OrdersResponse struct {
	Success bool    `json:"success"`
	Orders  []Order `json:"orders"`
	Error   string  `json:"error,omitempty"`
}

type OrderResponse struct {
	Success bool   `json:"success"`
	Order   *Order `json:"order,omitempty"`
	Error   string `json:"error,omitempty"`
}

type CreateOrderResponse struct {
	Success    bool   `json:"success"`
	TrackingID string `json:"trackingId,omitempty"`
	Error      string `json:"error,omitempty"`
}
