package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/models"
	"github.com/kingdavid103/Tracking-payment6/internal/views"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	recentOrdersLimit    = 5
	topDestinationsLimit = 5
	productImageMaxSide  = 1024
)

type OrderService struct {
	backend OrderBackend
	logger  zerolog.Logger
	now     func() time.Time
}

func NewOrderService(backend OrderBackend, logger zerolog.Logger) *OrderService {
	return &OrderService{
		backend: backend,
		logger:  logger,
		now:     time.Now,
	}
}

// Dashboard is what the customer dashboard shows.
type Dashboard struct {
	Orders []views.OrderCard
	Unread int
}

// Dashboard loads the user's orders and the chat badge. Both degrade to empty
// values on failure so the page always renders; a failed order fetch is
// returned alongside the empty model. The badge fails silently.
func (s *OrderService) Dashboard(ctx context.Context, token string) (Dashboard, error) {
	var d Dashboard

	orders, ordersErr := s.backend.UserOrders(ctx, token)
	if ordersErr != nil {
		s.logger.Warn().Err(ordersErr).Msg("Failed to load user orders")
		orders = []models.Order{}
	}
	d.Orders = views.OrderCards(orders)

	chats, err := s.backend.UserChats(ctx, token)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load chat summary")
	}
	for _, c := range chats {
		d.Unread += c.UnreadCount
	}
	return d, ordersErr
}

// AdminOverview is the admin dashboard model.
type AdminOverview struct {
	Stats           views.Stats
	Recent          []views.OrderCard
	Orders          []views.OrderCard
	Users           []models.User
	TopDestinations []views.DestinationCount
	Revenue         []views.RevenuePoint
	RevenueChart    views.LineChart
	Distribution    []views.StatusSlice
	Donut           views.Donut
}

// AdminOverview fetches all orders and users concurrently. If either call
// fails the overview is returned with zero stats together with the error.
func (s *OrderService) AdminOverview(ctx context.Context, token string) (*AdminOverview, error) {
	var (
		wg                  sync.WaitGroup
		orders              []models.Order
		users               []models.User
		ordersErr, usersErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		orders, ordersErr = s.backend.AdminOrders(ctx, token)
	}()
	go func() {
		defer wg.Done()
		users, usersErr = s.backend.AdminUsers(ctx, token)
	}()
	wg.Wait()

	var err error
	switch {
	case ordersErr != nil:
		err = fmt.Errorf("orders: %w", ordersErr)
	case usersErr != nil:
		err = fmt.Errorf("users: %w", usersErr)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load admin dashboard")
		orders, users = []models.Order{}, []models.User{}
	}

	now := s.now()
	overview := &AdminOverview{
		Stats:           views.ComputeStats(orders, users),
		Recent:          views.OrderCards(views.RecentOrders(orders, recentOrdersLimit)),
		Orders:          views.OrderCards(orders),
		Users:           users,
		TopDestinations: views.TopDestinations(orders, topDestinationsLimit),
		Revenue:         views.RevenueSeries(orders, now),
		Distribution:    views.StatusDistribution(orders),
	}
	overview.RevenueChart = views.RevenueChart(overview.Revenue)
	overview.Donut = views.StatusDonut(overview.Distribution)
	return overview, err
}

// OrderDraft is the admin create-order form as submitted.
type OrderDraft struct {
	ProductName     string
	Price           string
	Quantity        string
	Destination     string
	Status          string
	Reason          string
	TimeShipped     string
	DateShipped     string
	ExpectedArrival string
	Image           *models.Upload
}

type draftField struct {
	name  string
	label string
	value func(d OrderDraft) string
}

// draftSteps mirrors the steps of the create-order wizard; each step's
// fields are checked in order and the first empty one is reported.
var draftSteps = [][]draftField{
	{
		{"productName", "Product Name", func(d OrderDraft) string { return d.ProductName }},
		{"price", "Price", func(d OrderDraft) string { return d.Price }},
		{"quantity", "Quantity", func(d OrderDraft) string { return d.Quantity }},
	},
	{
		{"destination", "Destination", func(d OrderDraft) string { return d.Destination }},
		{"status", "Status", func(d OrderDraft) string { return d.Status }},
	},
}

func (d OrderDraft) Validate() error {
	for _, step := range draftSteps {
		for _, f := range step {
			if strings.TrimSpace(f.value(d)) == "" {
				return apperrors.NewValidationError(f.name, "Please fill in "+f.label)
			}
		}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
	if err != nil || price.IsNegative() {
		return apperrors.NewValidationError("price", "Please enter a valid price")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if err != nil || qty < 1 {
		return apperrors.NewValidationError("quantity", "Please enter a valid quantity")
	}
	status, ok := models.ParseOrderStatus(d.Status)
	if !ok {
		return apperrors.NewValidationError("status", "Please select a valid status")
	}
	if status.NeedsReason() && strings.TrimSpace(d.Reason) == "" {
		return apperrors.NewValidationError("reason", "Please fill in Reason")
	}
	if status.NeedsShipping() {
		shipping := []draftField{
			{"timeShipped", "Time Shipped", func(d OrderDraft) string { return d.TimeShipped }},
			{"dateShipped", "Date Shipped", func(d OrderDraft) string { return d.DateShipped }},
			{"expectedArrival", "Expected Arrival", func(d OrderDraft) string { return d.ExpectedArrival }},
		}
		for _, f := range shipping {
			if strings.TrimSpace(f.value(d)) == "" {
				return apperrors.NewValidationError(f.name, "Please fill in "+f.label)
			}
		}
	}
	return nil
}

// OrderSummary is the review step of the wizard.
type OrderSummary struct {
	Product     string
	Quantity    string
	Price       string
	Destination string
	Total       string
}

func (d OrderDraft) Summary() OrderSummary {
	sum := OrderSummary{
		Product:     orDefault(d.ProductName, "-"),
		Quantity:    orDefault(d.Quantity, "-"),
		Price:       "-",
		Destination: orDefault(d.Destination, "-"),
		Total:       "$0.00",
	}
	if d.Price != "" {
		sum.Price = "$" + d.Price
	}
	price, perr := decimal.NewFromString(strings.TrimSpace(d.Price))
	qty, qerr := strconv.Atoi(strings.TrimSpace(d.Quantity))
	if perr == nil && qerr == nil {
		sum.Total = "$" + price.Mul(decimal.NewFromInt(int64(qty))).StringFixed(2)
	}
	return sum
}

// request builds the backend form. Reason is only sent for statuses that
// carry one, shipping details only for statuses that ship.
func (d OrderDraft) request() models.CreateOrderRequest {
	status, _ := models.ParseOrderStatus(d.Status)
	req := models.CreateOrderRequest{
		ProductName: strings.TrimSpace(d.ProductName),
		Price:       strings.TrimSpace(d.Price),
		Quantity:    strings.TrimSpace(d.Quantity),
		Destination: strings.TrimSpace(d.Destination),
		Status:      status,
		Image:       d.Image,
	}
	if status.NeedsReason() {
		req.Reason = strings.TrimSpace(d.Reason)
	}
	if status.NeedsShipping() {
		req.TimeShipped = d.TimeShipped
		req.DateShipped = d.DateShipped
		req.ExpectedArrival = d.ExpectedArrival
	}
	return req
}

// CreateOrder validates the draft, downsizes the product image and submits
// it. The returned string is the new tracking id.
func (s *OrderService) CreateOrder(ctx context.Context, token string, d OrderDraft) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	if d.Image != nil && len(d.Image.Data) > 0 {
		img, err := PrepareImage(*d.Image, productImageMaxSide)
		if err != nil {
			return "", err
		}
		img.FieldName = "productImage"
		d.Image = &img
	} else {
		d.Image = nil
	}

	res, err := s.backend.CreateOrder(ctx, token, d.request())
	if err != nil {
		s.logger.Error().Err(err).Str("product", d.ProductName).Msg("Create order failed")
		return "", err
	}
	s.logger.Info().Str("tracking_id", res.TrackingID).Str("status", d.Status).Msg("Order created")
	return res.TrackingID, nil
}

// CreatedMessage is the notification shown after a successful create.
func CreatedMessage(trackingID string) string {
	return "Order created successfully! Tracking ID: " + trackingID
}

// Track looks an order up by tracking id and maps failures to the messages
// shown on the tracking page.
func (s *OrderService) Track(ctx context.Context, token, id string) (*views.OrderDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.NewValidationError("id", "Please enter a tracking ID")
	}
	order, err := s.backend.Track(ctx, token, id)
	if err != nil {
		if ae, ok := apperrors.IsAPIError(err); ok && ae.NotFound() {
			return nil, apperrors.NewAPIError(ae.Endpoint, http.StatusNotFound,
				"Order not found. Please check your tracking ID and try again.")
		}
		s.logger.Warn().Err(err).Str("tracking_id", id).Msg("Track failed")
		return nil, err
	}
	detail := views.NewOrderDetail(*order)
	return &detail, nil
}

// Describe fetches one order for the admin quick view. Any failure is shown
// as "Failed to load order details" by the caller.
func (s *OrderService) Describe(ctx context.Context, token, id string) (string, error) {
	order, err := s.backend.Track(ctx, token, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("order_id", id).Msg("View order failed")
		return "", err
	}
	return fmt.Sprintf("Order #%s - %s - Status: %s", order.ID, order.ProductName, order.Status), nil
}

// Lookup returns the raw order, for the receipt download.
func (s *OrderService) Lookup(ctx context.Context, token, id string) (*models.Order, error) {
	order, err := s.backend.Track(ctx, token, strings.TrimSpace(id))
	if err != nil {
		s.logger.Warn().Err(err).Str("tracking_id", id).Msg("Order lookup failed")
		return nil, err
	}
	return order, nil
}
