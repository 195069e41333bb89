package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_DecodesCanonicalFields(t *testing.T) {
	var o Order
	err := json.Unmarshal([]byte(`{"id":"AB12-CD34-EF56","productName":"Box","price":10.5,"quantity":2,"destination":"Canada","status":"Shipped","createdAt":"2024-01-15T14:30:00.000Z"}`), &o)
	require.NoError(t, err)

	assert.Equal(t, "AB12-CD34-EF56", o.ID)
	assert.Equal(t, "Canada", o.Destination)
	assert.Equal(t, OrderStatusShipped, o.Status)
	assert.Equal(t, 21.0, o.Total())
	assert.Nil(t, o.Reason)
}

func TestOrder_DecodesSeedFieldNames(t *testing.T) {
	var o Order
	err := json.Unmarshal([]byte(`{"id":"X","destinationCountry":"United Kingdom","shippingStatus":"pending","reason":"customs"}`), &o)
	require.NoError(t, err)

	assert.Equal(t, "United Kingdom", o.Destination)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, "customs", o.ReasonText())
}

func TestOrder_UnknownStatusIsKept(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Lost"}`), &o))
	assert.Equal(t, OrderStatus("Lost"), o.Status)
}

func TestOrderStatus_Flags(t *testing.T) {
	assert.True(t, OrderStatusHold.NeedsReason())
	assert.True(t, OrderStatusPending.NeedsReason())
	assert.False(t, OrderStatusShipped.NeedsReason())
	assert.True(t, OrderStatusDelivered.NeedsShipping())
	assert.False(t, OrderStatusProcessing.NeedsShipping())
}

func TestID_AcceptsNumbersAndStrings(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"firstName":"Ada","lastName":"Lovelace"}`), &u))
	assert.Equal(t, ID("42"), u.ID)
	assert.Equal(t, "Ada Lovelace", u.FullName())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"u-7"}`), &u))
	assert.Equal(t, ID("u-7"), u.ID)
}

func TestSession_Validity(t *testing.T) {
	assert.False(t, Session{}.Valid())
	assert.False(t, Session{Token: "t"}.Valid())
	assert.True(t, Session{Token: "t", User: User{ID: "1"}}.Valid())
	assert.False(t, Session{Token: "t", User: User{ID: "1"}}.ValidAdmin())
	assert.True(t, Session{Token: "t", User: User{ID: "1", IsAdmin: true}}.ValidAdmin())
}

func TestOrdersResponse_AcceptsStringNumbers(t *testing.T) {
	var res OrdersResponse
	err := json.Unmarshal([]byte(`{"success":true,"orders":[
		{"id":"A","price":"299.99","quantity":"2"},
		{"id":"B","price":10,"quantity":3},
		{"id":"C","price":"n/a","quantity":null},
		{"id":"D","price":"-5","quantity":"1"},
		{"id":"E","price":"NaN","quantity":"2.7"}
	]}`), &res)
	require.NoError(t, err)
	require.Len(t, res.Orders, 5)

	assert.Equal(t, 299.99, res.Orders[0].Price)
	assert.Equal(t, 2, res.Orders[0].Quantity)
	assert.Equal(t, 30.0, res.Orders[1].Total())
	assert.Zero(t, res.Orders[2].Price)
	assert.Zero(t, res.Orders[2].Quantity)
	assert.Equal(t, -5.0, res.Orders[3].Price)
	assert.Zero(t, res.Orders[4].Price)
	assert.Equal(t, 2, res.Orders[4].Quantity)
}

func TestAuthResponse_LenientCreatedAt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{"rfc3339", `"2024-01-15T14:30:00Z"`, ptrTime(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC))},
		{"space separated", `"2024-01-15 14:30:00"`, ptrTime(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC))},
		{"date only", `"2024-01-15"`, ptrTime(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))},
		{"unix millis", `1705329000000`, ptrTime(time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC))},
		{"garbage", `"yesterday"`, nil},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res AuthResponse
			err := json.Unmarshal([]byte(`{"success":true,"token":"tok","user":{"id":1,"createdAt":`+tt.raw+`}}`), &res)
			require.NoError(t, err)
			require.NotNil(t, res.User)
			assert.Equal(t, ID("1"), res.User.ID)
			if tt.want == nil {
				assert.Nil(t, res.User.CreatedAt)
				return
			}
			require.NotNil(t, res.User.CreatedAt)
			assert.True(t, tt.want.Equal(*res.User.CreatedAt), res.User.CreatedAt.String())
		})
	}
}

func TestMessagesResponse_LenientTimestamp(t *testing.T) {
	var res MessagesResponse
	err := json.Unmarshal([]byte(`{"messages":[
		{"id":1,"message":"hi","sender":"user","timestamp":"2024-01-15 14:30:00"},
		{"id":2,"message":"hello","sender":"admin","timestamp":"not a time"}
	]}`), &res)
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)

	assert.True(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC).Equal(res.Messages[0].Timestamp))
	assert.Equal(t, SenderAdmin, res.Messages[1].Sender)
	assert.True(t, res.Messages[1].Timestamp.IsZero())
}

func TestSession_RoundTripKeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	data, err := json.Marshal(Session{Token: "t", User: User{ID: "1", CreatedAt: &created}})
	require.NoError(t, err)

	var s Session
	require.NoError(t, json.Unmarshal(data, &s))
	require.NotNil(t, s.User.CreatedAt)
	assert.True(t, created.Equal(*s.User.CreatedAt))
}

func ptrTime(t time.Time) *time.Time { return &t }
