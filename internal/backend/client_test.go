package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zerolog.Nop())
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/user/orders", r.URL.Path)
		w.Write([]byte(`{"success":true,"orders":[{"id":"A","status":"shipped","price":2,"quantity":3}]}`))
	})

	orders, err := c.UserOrders(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusShipped, orders[0].Status)
}

func TestClient_OrdersWithStringNumbers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"orders":[
			{"id":"A","price":"299.99","quantity":"2","status":"Pending"},
			{"id":"B","price":10,"quantity":1,"status":"Shipped"}]}`))
	})

	orders, err := c.AdminOrders(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 299.99, orders[0].Price)
	assert.Equal(t, 2, orders[0].Quantity)
	assert.Equal(t, 10.0, orders[1].Price)
}

func TestClient_LenientTimestamps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"success":true,"token":"t","user":{"id":1,"createdAt":"2024-01-15 14:30:00"}}`))
		case "/chat/messages":
			w.Write([]byte(`{"messages":[{"id":1,"message":"hi","sender":"admin","timestamp":"2024-01-15 14:30:00"}]}`))
		}
	})

	res, err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, res.User.CreatedAt)
	assert.Equal(t, 2024, res.User.CreatedAt.Year())

	msgs, err := c.ChatMessages(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, 14, msgs[0].Timestamp.Hour())
}

func TestClient_UnsuccessfulOrdersBecomeEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"nope"}`))
	})

	orders, err := c.UserOrders(context.Background(), "tok")
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestClient_NonOKStatusIsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Order not found"}`))
	})

	_, err := c.Track(context.Background(), "tok", "ZZZZ-0000-1111")
	require.Error(t, err)

	ae, ok := apperrors.IsAPIError(err)
	require.True(t, ok)
	assert.True(t, ae.NotFound())
	assert.Equal(t, "Order not found", ae.Message)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, zerolog.Nop())
	_, err := c.AdminOrders(context.Background(), "tok")

	ae, ok := apperrors.IsAPIError(err)
	require.True(t, ok)
	assert.NotNil(t, ae.Cause)
	assert.Equal(t, "Network error. Please try again.", apperrors.UserMessage(err, "x"))
}

func TestClient_LoginPostsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.c", req.Email)
		w.Write([]byte(`{"success":true,"token":"t","user":{"id":1,"firstName":"A","isAdmin":true}}`))
	})

	res, err := c.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, models.ID("1"), res.User.ID)
	assert.True(t, res.User.IsAdmin)
}

func TestClient_CreateOrderMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Widget", r.FormValue("productName"))
		assert.Equal(t, "Hold", r.FormValue("status"))
		f, hdr, err := r.FormFile("productImage")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "img.png", hdr.Filename)
		assert.Equal(t, []byte("png-bytes"), data)
		w.Write([]byte(`{"success":true,"trackingId":"AAAA-BBBB-CCCC"}`))
	})

	res, err := c.CreateOrder(context.Background(), "tok", models.CreateOrderRequest{
		ProductName: "Widget",
		Price:       "10",
		Quantity:    "1",
		Destination: "Peru",
		Status:      models.OrderStatusHold,
		Reason:      "Customs",
		Image:       &models.Upload{FieldName: "productImage", FileName: "img.png", ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, "AAAA-BBBB-CCCC", res.TrackingID)
}

func TestClient_UpdateProfileFailureMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{"success":false,"message":"Email already taken"}`))
	})

	_, err := c.UpdateProfile(context.Background(), "tok", models.ProfileUpdateRequest{FirstName: "A"})
	assert.Equal(t, "Email already taken", apperrors.UserMessage(err, "fallback"))
}

func TestClient_UnreadCountAndWeather(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chat/unread-count":
			w.Write([]byte(`{"unreadCount":3}`))
		case "/api/weather":
			assert.Equal(t, "1.5", r.URL.Query().Get("lat"))
			assert.Equal(t, "-2", r.URL.Query().Get("lon"))
			w.Write([]byte(`{"temperature":21.6,"condition":"clouds"}`))
		}
	})

	n, err := c.UnreadCount(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	wx, err := c.Weather(context.Background(), 1.5, -2)
	require.NoError(t, err)
	assert.Equal(t, "clouds", wx.Condition)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/track/:id", routeLabel("/track/ABC"))
	assert.Equal(t, "/api/weather", routeLabel("/api/weather?lat=1"))
	assert.Equal(t, "/chat/send", routeLabel("/chat/send"))
}
