package chat

import (
	"strings"

	"github.com/kingdavid103/Tracking-payment6/internal/metrics"
	"github.com/kingdavid103/Tracking-payment6/internal/models"
)

// Rule is one entry of the autoresponder table. Match receives the message
// already lowercased.
type Rule struct {
	Name    string
	Match   func(msg string) bool
	Replies func(u models.User) []string
}

func containsAll(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if !strings.Contains(msg, w) {
				return false
			}
		}
		return true
	}
}

func containsAny(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
}

func fixed(lines ...string) func(models.User) []string {
	return func(models.User) []string { return lines }
}

var DefaultRules = []Rule{
	{
		Name:  "place_order",
		Match: containsAll("place", "order"),
		Replies: fixed(
			"I'd be happy to help you place a new order! 📦",
			"To get started, I'll need some information:",
			"• What would you like to ship?\n• Where are you shipping from?\n• What's the destination?\n• Approximate weight and dimensions?",
			"You can also visit our order form for a detailed quote. Would you like me to guide you through the process?",
		),
	},
	{
		Name:  "track_order",
		Match: containsAll("track", "order"),
		Replies: fixed(
			"I can help you track your order! 🔍",
			"Please provide your tracking ID (format: XXXX-XXXX-XXXX) and I'll get you the latest updates on your shipment.",
			"You can also use our tracking page for real-time updates with map visualization.",
		),
	},
	{
		Name:  "shipping_rates",
		Match: containsAll("shipping", "rate"),
		Replies: fixed(
			"Our shipping rates depend on several factors: 💰",
			"• Package weight and dimensions\n• Origin and destination\n• Shipping speed (Standard/Express)\n• Package value for insurance",
			"Standard international shipping starts at $15 for packages under 1kg. Would you like a personalized quote?",
		),
	},
	{
		Name:  "delivery_times",
		Match: containsAny("delivery", "when"),
		Replies: fixed(
			"Delivery times vary by destination: ⏰",
			"• Standard shipping: 15-30 days\n• Express shipping: 7-15 days\n• Priority shipping: 3-7 days",
			"All shipments include real-time tracking and insurance. Is there a specific destination you're asking about?",
		),
	},
	{
		Name:  "greeting",
		Match: containsAny("hello", "hi", "hey"),
		Replies: func(u models.User) []string {
			return []string{
				"Hello " + u.FirstName + "! 👋 Welcome to CBL Dispatch support.",
				"I'm here to help you with all your shipping needs. How can I assist you today?",
			}
		},
	},
	{
		Name:  "default",
		Match: func(string) bool { return true },
		Replies: fixed(
			"Thank you for your message! 😊",
			"Our support team will get back to you shortly. In the meantime, you can:",
			"• Check our FAQ section\n• Track your orders\n• Browse our services",
			"Is there anything specific I can help you with right now?",
		),
	},
}

// Responder picks canned replies for a user message. The first matching rule
// wins; the table must end with a rule that always matches.
type Responder struct {
	rules []Rule
}

func NewResponder(rules []Rule) *Responder {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Responder{rules: rules}
}

func (r *Responder) Match(text string) Rule {
	msg := strings.ToLower(text)
	for _, rule := range r.rules {
		if rule.Match(msg) {
			return rule
		}
	}
	return r.rules[len(r.rules)-1]
}

func (r *Responder) Respond(text string, user models.User) []string {
	rule := r.Match(text)
	metrics.AutoResponsesTotal.WithLabelValues(rule.Name).Inc()
	return rule.Replies(user)
}
