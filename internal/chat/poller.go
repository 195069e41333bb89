package chat

import (
	"context"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/rs/zerolog"
)

type FetchFunc func(ctx context.Context) ([]models.ChatMessage, error)

// Poller re-fetches the conversation on an interval and emits only messages
// it has not seen before. One poller belongs to one open chat stream and
// stops when that stream's context is cancelled.
type Poller struct {
	fetch    FetchFunc
	interval time.Duration
	emit     func(models.ChatMessage)
	seen     map[string]struct{}
	logger   zerolog.Logger
}

func NewPoller(fetch FetchFunc, interval time.Duration, emit func(models.ChatMessage), logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		fetch:    fetch,
		interval: interval,
		emit:     emit,
		seen:     make(map[string]struct{}),
		logger:   logger,
	}
}

// Prime marks messages that are already on the page.
func (p *Poller) Prime(msgs []models.ChatMessage) {
	for _, m := range msgs {
		p.seen[messageKey(m)] = struct{}{}
	}
}

func (p *Poller) Poll(ctx context.Context) int {
	msgs, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn().Err(err).Msg("Chat poll failed")
		}
		return 0
	}
	n := 0
	for _, m := range msgs {
		key := messageKey(m)
		if _, ok := p.seen[key]; ok {
			continue
		}
		p.seen[key] = struct{}{}
		p.emit(m)
		n++
	}
	return n
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

func messageKey(m models.ChatMessage) string {
	if m.ID != "" {
		return string(m.ID)
	}
	return string(m.Sender) + "|" + m.Timestamp.UTC().Format(time.RFC3339Nano) + "|" + m.Message
}
