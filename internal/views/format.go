package views

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/shopspring/decimal"
)

// EscapeHTML escapes markup and turns newlines into line breaks.
func EscapeHTML(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

func Money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// WholeDollars renders an amount floored to whole dollars with thousands
// separators, the way the dashboard counters show revenue.
func WholeDollars(d decimal.Decimal) string {
	return "$" + groupThousands(d.Floor().String())
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func TimeAgo(createdAt string, now time.Time) string {
	t, ok := models.ParseTime(createdAt)
	if !ok {
		return ""
	}
	secs := int(now.Sub(t).Seconds())
	switch {
	case secs < 60:
		return "Just now"
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	default:
		return fmt.Sprintf("%dd ago", secs/86400)
	}
}

// FormatDate renders "January 2, 2006"; unparseable input is returned as is.
func FormatDate(s string) string {
	t, ok := models.ParseTime(s)
	if !ok {
		return s
	}
	return t.Format("January 2, 2006")
}

func FormatClock(t time.Time) string {
	if t.IsZero() {
		return "Now"
	}
	return t.Local().Format("03:04 PM")
}

func StatusIcon(status models.OrderStatus) string {
	switch status {
	case models.OrderStatusPending:
		return "fa-clock"
	case models.OrderStatusProcessing:
		return "fa-cog fa-spin"
	case models.OrderStatusShipped:
		return "fa-shipping-fast"
	case models.OrderStatusDelivered:
		return "fa-check-circle"
	case models.OrderStatusHold:
		return "fa-pause-circle"
	}
	return "fa-question-circle"
}

func StatusClass(status models.OrderStatus) string {
	return "status-" + strings.ToLower(string(status))
}

func WeatherIcon(condition string) string {
	switch strings.ToLower(condition) {
	case "clouds":
		return "fa-cloud"
	case "rain":
		return "fa-cloud-rain"
	case "snow":
		return "fa-snowflake"
	case "thunderstorm":
		return "fa-bolt"
	case "mist":
		return "fa-smog"
	}
	return "fa-sun"
}

type Progress struct {
	Percent int
	Pin     int
}

func TrackingProgress(status models.OrderStatus) Progress {
	switch strings.ToLower(string(status)) {
	case "processing":
		return Progress{Percent: 50, Pin: 30}
	case "shipped":
		return Progress{Percent: 75, Pin: 60}
	case "delivered":
		return Progress{Percent: 100, Pin: 90}
	case "hold":
		return Progress{Percent: 25, Pin: 15}
	}
	return Progress{Percent: 25, Pin: 10}
}
