package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/metrics"
	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/rs/zerolog"
)

// maxBody bounds how much of a backend response is read.
const maxBody = 4 << 20

type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger: logger.With().Str("component", "backend").Logger(),
	}
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminOrders(ctx context.Context, token string) ([]models.Order, error) {
	var out models.OrdersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/admin/orders", token, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return []models.Order{}, nil
	}
	return out.Orders, nil
}

func (c *Client) AdminUsers(ctx context.Context, token string) ([]models.User, error) {
	var out models.UsersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", token, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return []models.User{}, nil
	}
	return out.Users, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	fields := map[string]string{
		"productName":     req.ProductName,
		"price":           req.Price,
		"quantity":        req.Quantity,
		"destination":     req.Destination,
		"status":          string(req.Status),
		"reason":          req.Reason,
		"timeShipped":     req.TimeShipped,
		"dateShipped":     req.DateShipped,
		"expectedArrival": req.ExpectedArrival,
	}
	var out models.CreateOrderResponse
	if err := c.doMultipart(ctx, "/admin/create-order", token, fields, req.Image, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "Failed to create order"
		}
		return nil, apperrors.NewAPIError("/admin/create-order", http.StatusOK, msg)
	}
	return &out, nil
}

func (c *Client) UserOrders(ctx context.Context, token string) ([]models.Order, error) {
	var out models.OrdersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/orders", token, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Orders == nil {
		if out.Error != "" {
			c.logger.Warn().Str("error", out.Error).Msg("User orders returned unsuccessful result")
		}
		return []models.Order{}, nil
	}
	return out.Orders, nil
}

func (c *Client) Track(ctx context.Context, token, id string) (*models.Order, error) {
	endpoint := "/track/" + url.PathEscape(id)
	var out models.OrderResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, token, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Order == nil {
		return nil, apperrors.NewAPIError(endpoint, http.StatusOK, out.Error)
	}
	return out.Order, nil
}

func (c *Client) ChatMessages(ctx context.Context, token string) ([]models.ChatMessage, error) {
	var out models.MessagesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chat/messages", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) SendChat(ctx context.Context, token, message string) error {
	return c.doJSON(ctx, http.MethodPost, "/chat/send", token, models.SendChatRequest{Message: message}, nil)
}

func (c *Client) UserChats(ctx context.Context, token string) ([]models.ChatSummary, error) {
	var out models.ChatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/chats", token, nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, nil
	}
	return out.Chats, nil
}

func (c *Client) UnreadCount(ctx context.Context, token string) (int, error) {
	var out models.UnreadCountResponse
	if err := c.doJSON(ctx, http.MethodGet, "/chat/unread-count", token, nil, &out); err != nil {
		return 0, err
	}
	return out.UnreadCount, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, req models.ProfileUpdateRequest) (*models.User, error) {
	var out models.ProfileResponse
	if err := c.doJSON(ctx, http.MethodPut, "/profile/update", token, req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "Failed to update profile"
		}
		return nil, apperrors.NewAPIError("/profile/update", http.StatusOK, msg)
	}
	if out.User == nil {
		return &models.User{}, nil
	}
	return out.User, nil
}

func (c *Client) UploadAvatar(ctx context.Context, token string, file models.Upload) (string, error) {
	file.FieldName = "avatar"
	var out models.AvatarResponse
	if err := c.doMultipart(ctx, "/profile/upload-avatar", token, nil, &file, &out); err != nil {
		return "", err
	}
	if !out.Success {
		msg := out.Message
		if msg == "" {
			msg = "Failed to upload avatar"
		}
		return "", apperrors.NewAPIError("/profile/upload-avatar", http.StatusOK, msg)
	}
	return out.Avatar, nil
}

func (c *Client) Weather(ctx context.Context, lat, lon float64) (*models.Weather, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	var out models.Weather
	if err := c.doJSON(ctx, http.MethodGet, "/api/weather?"+q.Encode(), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, endpoint, token, out)
}

func (c *Client) doMultipart(ctx context.Context, endpoint, token string, fields map[string]string, file *models.Upload, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if file != nil && len(file.Data) > 0 {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.FileName))
		h.Set("Content-Type", file.ContentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return fmt.Errorf("write file part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, endpoint, token, out)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(req *http.Request, endpoint, token string, out interface{}) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	// Metrics are labelled by route, not by the concrete path.
	label := routeLabel(endpoint)
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(label, "transport_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Backend request failed")
		return apperrors.NewTransportError(endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(label, "transport_error").Inc()
		return apperrors.NewTransportError(endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.BackendRequestsTotal.WithLabelValues(label, strconv.Itoa(resp.StatusCode)).Inc()
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("message", msg).
			Msg("Backend returned non-OK status")
		return apperrors.NewAPIError(endpoint, resp.StatusCode, msg)
	}

	metrics.BackendRequestsTotal.WithLabelValues(label, "ok").Inc()
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Invalid backend response")
		return apperrors.NewTransportError(endpoint, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func routeLabel(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "/track/"):
		return "/track/:id"
	case strings.HasPrefix(endpoint, "/api/weather"):
		return "/api/weather"
	}
	return endpoint
}
