package views

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/shopspring/decimal"
)

// Stats are the admin dashboard counters.
type Stats struct {
	TotalRevenue  decimal.Decimal
	TotalOrders   int
	TotalUsers    int
	PendingOrders int
}

func ComputeStats(orders []models.Order, users []models.User) Stats {
	stats := Stats{
		TotalRevenue: decimal.Zero,
		TotalOrders:  len(orders),
		TotalUsers:   len(users),
	}
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(LineTotal(o))
		if strings.EqualFold(string(o.Status), string(models.OrderStatusPending)) {
			stats.PendingOrders++
		}
	}
	return stats
}

// LineTotal is price × quantity. Negative values are kept, so a refund-style
// record lowers revenue; missing values decode as zero.
func LineTotal(o models.Order) decimal.Decimal {
	return decimal.NewFromFloat(o.Price).Mul(decimal.NewFromInt(int64(o.Quantity)))
}

type RevenuePoint struct {
	Date    string
	Label   string
	Revenue decimal.Decimal
}

// RevenueSeries buckets revenue into the seven UTC days ending at now, oldest
// first. An order belongs to a day when its createdAt starts with that date.
func RevenueSeries(orders []models.Order, now time.Time) []RevenuePoint {
	now = now.UTC()
	points := make([]RevenuePoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := day.Format("2006-01-02")
		sum := decimal.Zero
		for _, o := range orders {
			if strings.HasPrefix(o.CreatedAt, date) {
				sum = sum.Add(LineTotal(o))
			}
		}
		points = append(points, RevenuePoint{
			Date:    date,
			Label:   day.Format("Jan 2"),
			Revenue: sum,
		})
	}
	return points
}

var donutPalette = []string{"#6366f1", "#10b981", "#f59e0b", "#ef4444"}

type StatusSlice struct {
	Status string
	Count  int
	Color  string
}

// StatusDistribution counts orders per status in first-seen order.
func StatusDistribution(orders []models.Order) []StatusSlice {
	index := make(map[string]int)
	var out []StatusSlice
	for _, o := range orders {
		st := string(o.Status)
		if i, ok := index[st]; ok {
			out[i].Count++
			continue
		}
		index[st] = len(out)
		out = append(out, StatusSlice{
			Status: st,
			Count:  1,
			Color:  donutPalette[len(out)%len(donutPalette)],
		})
	}
	return out
}

type DestinationCount struct {
	Rank        int
	Destination string
	Count       int
}

func TopDestinations(orders []models.Order, n int) []DestinationCount {
	index := make(map[string]int)
	var all []DestinationCount
	for _, o := range orders {
		if i, ok := index[o.Destination]; ok {
			all[i].Count++
			continue
		}
		index[o.Destination] = len(all)
		all = append(all, DestinationCount{Destination: o.Destination, Count: 1})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Count > all[j].Count })
	if len(all) > n {
		all = all[:n]
	}
	for i := range all {
		all[i].Rank = i + 1
	}
	return all
}

// RecentOrders returns the first n orders as delivered by the backend.
func RecentOrders(orders []models.Order, n int) []models.Order {
	if len(orders) > n {
		return orders[:n]
	}
	return orders
}

// Chart geometry for the server-rendered SVG charts.
const (
	chartWidth  = 600.0
	chartHeight = 220.0
	donutRadius = 70.0
)

type LineChart struct {
	Width  float64
	Height float64
	Points string
	Labels []ChartLabel
	Max    decimal.Decimal
}

type ChartLabel struct {
	X    float64
	Text string
}

func RevenueChart(series []RevenuePoint) LineChart {
	chart := LineChart{Width: chartWidth, Height: chartHeight, Max: decimal.Zero}
	for _, p := range series {
		if p.Revenue.GreaterThan(chart.Max) {
			chart.Max = p.Revenue
		}
	}
	if len(series) == 0 {
		return chart
	}
	step := chartWidth
	if len(series) > 1 {
		step = chartWidth / float64(len(series)-1)
	}
	peak := chart.Max.InexactFloat64()
	pts := make([]string, 0, len(series))
	for i, p := range series {
		x := float64(i) * step
		y := chartHeight
		if peak > 0 {
			y = chartHeight - p.Revenue.InexactFloat64()/peak*chartHeight
		}
		// a negative day sits on the baseline
		if y > chartHeight {
			y = chartHeight
		}
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
		chart.Labels = append(chart.Labels, ChartLabel{X: x, Text: p.Label})
	}
	chart.Points = strings.Join(pts, " ")
	return chart
}

type DonutSegment struct {
	StatusSlice
	DashArray  string
	DashOffset string
}

type Donut struct {
	Radius   float64
	Segments []DonutSegment
}

// StatusDonut lays the slices out as stroke-dasharray segments of one circle.
func StatusDonut(slices []StatusSlice) Donut {
	d := Donut{Radius: donutRadius}
	total := 0
	for _, s := range slices {
		total += s.Count
	}
	if total == 0 {
		return d
	}
	circumference := 2 * math.Pi * donutRadius
	// Each segment starts where the previous one ended; SVG wants a
	// negative offset to move forward along the circle.
	start := 0.0
	for _, s := range slices {
		length := float64(s.Count) / float64(total) * circumference
		d.Segments = append(d.Segments, DonutSegment{
			StatusSlice: s,
			DashArray:   fmt.Sprintf("%.2f %.2f", length, circumference-length),
			DashOffset:  fmt.Sprintf("%.2f", start),
		})
		start -= length
	}
	return d
}
