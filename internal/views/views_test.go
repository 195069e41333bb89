package views

import (
	"testing"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id string, price float64, qty int, dest string, status models.OrderStatus, created string) models.Order {
	return models.Order{
		ID:          id,
		ProductName: "Item " + id,
		Price:       price,
		Quantity:    qty,
		Destination: dest,
		Status:      status,
		CreatedAt:   created,
	}
}

func TestComputeStats_RevenueIsSumOfLineTotals(t *testing.T) {
	orders := []models.Order{
		order("A", 299.99, 1, "US", models.OrderStatusShipped, ""),
		order("B", 149.5, 2, "CA", models.OrderStatusDelivered, ""),
		order("C", 599.99, 1, "UK", models.OrderStatusPending, ""),
		order("D", 0.1, 3, "UK", models.OrderStatus("pending"), ""),
	}

	stats := ComputeStats(orders, []models.User{{ID: "1"}, {ID: "2"}})

	assert.True(t, decimal.RequireFromString("1199.28").Equal(stats.TotalRevenue), stats.TotalRevenue.String())
	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 2, stats.PendingOrders)
}

func TestComputeStats_KeepsNegativeLineTotals(t *testing.T) {
	orders := []models.Order{
		order("A", 100, 2, "US", models.OrderStatusShipped, ""),
		order("B", -30, 1, "US", models.OrderStatusShipped, ""),
		order("C", 10, -1, "US", models.OrderStatusShipped, ""),
	}

	stats := ComputeStats(orders, nil)

	assert.True(t, decimal.NewFromInt(160).Equal(stats.TotalRevenue), stats.TotalRevenue.String())
	assert.True(t, decimal.NewFromInt(-30).Equal(LineTotal(orders[1])))
}

func TestRevenueChart_NegativeDayStaysOnBaseline(t *testing.T) {
	chart := RevenueChart([]RevenuePoint{
		{Label: "Mon", Revenue: decimal.NewFromInt(100)},
		{Label: "Tue", Revenue: decimal.NewFromInt(-50)},
	})

	assert.Equal(t, "0.0,0.0 600.0,220.0", chart.Points)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil)

	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, 0, stats.PendingOrders)
}

func TestRevenueSeries_SevenDaysOldestFirst(t *testing.T) {
	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		order("A", 10, 2, "US", models.OrderStatusShipped, "2024-01-16T10:00:00.000Z"),
		order("B", 5, 1, "US", models.OrderStatusShipped, "2024-01-16T11:00:00.000Z"),
		order("C", 7, 1, "US", models.OrderStatusShipped, "2024-01-10T09:15:00.000Z"),
		order("D", 100, 1, "US", models.OrderStatusShipped, "2024-01-09T09:15:00.000Z"),
	}

	series := RevenueSeries(orders, now)

	require.Len(t, series, 7)
	assert.Equal(t, "2024-01-10", series[0].Date)
	assert.Equal(t, "Jan 10", series[0].Label)
	assert.True(t, decimal.NewFromInt(7).Equal(series[0].Revenue))
	assert.Equal(t, "2024-01-16", series[6].Date)
	assert.True(t, decimal.NewFromInt(25).Equal(series[6].Revenue))
	assert.True(t, series[3].Revenue.IsZero())
}

func TestStatusDistribution_FirstSeenOrder(t *testing.T) {
	orders := []models.Order{
		order("A", 1, 1, "US", models.OrderStatusShipped, ""),
		order("B", 1, 1, "US", models.OrderStatusPending, ""),
		order("C", 1, 1, "US", models.OrderStatusShipped, ""),
	}

	dist := StatusDistribution(orders)

	require.Len(t, dist, 2)
	assert.Equal(t, StatusSlice{Status: "Shipped", Count: 2, Color: "#6366f1"}, dist[0])
	assert.Equal(t, StatusSlice{Status: "Pending", Count: 1, Color: "#10b981"}, dist[1])
}

func TestTopDestinations(t *testing.T) {
	var orders []models.Order
	for i, d := range []string{"US", "CA", "CA", "UK", "CA", "UK", "DE", "FR", "JP"} {
		orders = append(orders, order(string(rune('A'+i)), 1, 1, d, models.OrderStatusShipped, ""))
	}

	top := TopDestinations(orders, 5)

	require.Len(t, top, 5)
	assert.Equal(t, DestinationCount{Rank: 1, Destination: "CA", Count: 3}, top[0])
	assert.Equal(t, DestinationCount{Rank: 2, Destination: "UK", Count: 2}, top[1])
	assert.Equal(t, "US", top[2].Destination)
	assert.Equal(t, "DE", top[3].Destination)
	assert.Equal(t, "FR", top[4].Destination)
}

func TestRecentOrders(t *testing.T) {
	orders := make([]models.Order, 8)
	assert.Len(t, RecentOrders(orders, 5), 5)
	assert.Len(t, RecentOrders(orders[:2], 5), 2)
}

func TestRevenueChart(t *testing.T) {
	series := []RevenuePoint{
		{Label: "a", Revenue: decimal.Zero},
		{Label: "b", Revenue: decimal.NewFromInt(50)},
		{Label: "c", Revenue: decimal.NewFromInt(100)},
	}

	chart := RevenueChart(series)

	assert.Equal(t, "0.0,220.0 300.0,110.0 600.0,0.0", chart.Points)
	assert.Len(t, chart.Labels, 3)
	assert.True(t, decimal.NewFromInt(100).Equal(chart.Max))
}

func TestRevenueChart_AllZeroStaysOnBaseline(t *testing.T) {
	chart := RevenueChart([]RevenuePoint{{Revenue: decimal.Zero}, {Revenue: decimal.Zero}})
	assert.Equal(t, "0.0,220.0 600.0,220.0", chart.Points)
}

func TestStatusDonut(t *testing.T) {
	donut := StatusDonut([]StatusSlice{{Status: "A", Count: 1}, {Status: "B", Count: 1}})

	require.Len(t, donut.Segments, 2)
	assert.Equal(t, "219.91 219.91", donut.Segments[0].DashArray)
	assert.Equal(t, "0.00", donut.Segments[0].DashOffset)
	assert.Equal(t, "-219.91", donut.Segments[1].DashOffset)

	assert.Empty(t, StatusDonut(nil).Segments)
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;<br>", EscapeHTML("<b>hi</b>\n"))
	assert.Equal(t, "a &amp; b", EscapeHTML("a & b"))
}

func TestMoneyAndWholeDollars(t *testing.T) {
	assert.Equal(t, "$299.99", Money(299.99))
	assert.Equal(t, "$5.00", Money(5))
	assert.Equal(t, "$1,199", WholeDollars(decimal.RequireFromString("1199.28")))
	assert.Equal(t, "$1,234,567", WholeDollars(decimal.NewFromInt(1234567)))
	assert.Equal(t, "$0", WholeDollars(decimal.Zero))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", TimeAgo("2024-01-16T11:59:30Z", now))
	assert.Equal(t, "5m ago", TimeAgo("2024-01-16T11:55:00Z", now))
	assert.Equal(t, "2h ago", TimeAgo("2024-01-16T10:00:00.000Z", now))
	assert.Equal(t, "6d ago", TimeAgo("2024-01-10T09:15:00.000Z", now))
	assert.Equal(t, "", TimeAgo("garbage", now))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "January 15, 2024", FormatDate("2024-01-15"))
	assert.Equal(t, "January 10, 2024", FormatDate("2024-01-10T09:15:00.000Z"))
	assert.Equal(t, "soon", FormatDate("soon"))
}

func TestTrackingProgress(t *testing.T) {
	assert.Equal(t, Progress{25, 10}, TrackingProgress(models.OrderStatusPending))
	assert.Equal(t, Progress{50, 30}, TrackingProgress(models.OrderStatusProcessing))
	assert.Equal(t, Progress{75, 60}, TrackingProgress(models.OrderStatusShipped))
	assert.Equal(t, Progress{100, 90}, TrackingProgress(models.OrderStatusDelivered))
	assert.Equal(t, Progress{25, 15}, TrackingProgress(models.OrderStatusHold))
	assert.Equal(t, Progress{25, 10}, TrackingProgress("Lost"))
}

func TestIcons(t *testing.T) {
	assert.Equal(t, "fa-shipping-fast", StatusIcon(models.OrderStatusShipped))
	assert.Equal(t, "fa-question-circle", StatusIcon("Lost"))
	assert.Equal(t, "fa-cloud-rain", WeatherIcon("rain"))
	assert.Equal(t, "fa-sun", WeatherIcon("tornado"))
}

func TestOrderCards(t *testing.T) {
	img := "/uploads/x.png"
	o := order("BX9K-F03Z-MQ18", 299.99, 1, "United States", models.OrderStatusShipped, "")
	o.Image = &img

	cards := OrderCards([]models.Order{o, order("Z", 1, 1, "X", models.OrderStatusHold, "")})

	require.Len(t, cards, 2)
	assert.Equal(t, "$299.99", cards[0].Price)
	assert.Equal(t, "status-shipped", cards[0].StatusClass)
	assert.Equal(t, img, cards[0].Image)
	assert.Equal(t, "/track.html?id=BX9K-F03Z-MQ18", cards[0].TrackURL)
	assert.Equal(t, PlaceholderCard, cards[1].Image)

	assert.Empty(t, OrderCards(nil))
}

func TestNewOrderDetail_ReasonOnlyForHoldOrPending(t *testing.T) {
	reason := "Awaiting customs clearance documentation"
	shipped := "2024-01-15"

	held := order("A", 1, 1, "UK", models.OrderStatusHold, "2024-01-16T10:00:00.000Z")
	held.Reason = &reason
	d := NewOrderDetail(held)
	assert.Equal(t, reason, d.Reason)
	assert.Equal(t, "January 16, 2024", d.Placed)

	moving := order("B", 1, 1, "UK", models.OrderStatusShipped, "")
	moving.Reason = &reason
	moving.DateShipped = &shipped
	d = NewOrderDetail(moving)
	assert.Empty(t, d.Reason)
	assert.Equal(t, "January 15, 2024", d.DateShipped)
	assert.Equal(t, 75, d.Progress.Percent)
}
