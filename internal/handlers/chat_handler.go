package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/chat"
	"github.com/kingdavid103/Tracking-payment6/internal/metrics"
	"github.com/kingdavid103/Tracking-payment6/internal/models"
	"github.com/kingdavid103/Tracking-payment6/internal/notify"
	"github.com/kingdavid103/Tracking-payment6/internal/services"
	"github.com/kingdavid103/Tracking-payment6/internal/session"
	"github.com/kingdavid103/Tracking-payment6/internal/views"

	"github.com/rs/zerolog"
)

const keepAliveInterval = 25 * time.Second

type ChatHandler struct {
	shell        *Shell
	chat         *services.ChatService
	pollInterval time.Duration
	logger       zerolog.Logger
}

func NewChatHandler(shell *Shell, chatService *services.ChatService, pollInterval time.Duration, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		shell:        shell,
		chat:         chatService,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// chatLine is one rendered message, on the page and on the stream.
type chatLine struct {
	ID    string        `json:"id"`
	Class string        `json:"class"`
	HTML  template.HTML `json:"html"`
	Time  string        `json:"time"`
}

func newChatLine(m models.ChatMessage) chatLine {
	return chatLine{
		ID:    string(m.ID),
		Class: string(m.Sender),
		// EscapeHTML escapes the message; only the <br> tags are markup.
		HTML: template.HTML(views.EscapeHTML(m.Message)),
		Time: views.FormatClock(m.Timestamp),
	}
}

type chatPage struct {
	Messages []chatLine
}

func (h *ChatHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	history := h.chat.History(r.Context(), sess.Token)
	lines := make([]chatLine, 0, len(history))
	for _, m := range history {
		lines = append(lines, newChatLine(m))
	}
	h.shell.Render(w, r, http.StatusOK, "chat.html", h.shell.Page(r, "Support Chat", "chat", chatPage{Messages: lines}))
}

// Send accepts a message from the chat form. Scripts get a JSON reply and
// see the message arrive on their stream; plain form posts are redirected.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	err := h.chat.Send(r.Context(), sess, r.PostFormValue("message"))

	if wantsJSON(r) {
		switch {
		case err == nil:
			respondWithJSON(w, http.StatusAccepted, map[string]bool{"success": true})
		case errors.Is(err, apperrors.ErrUnauthenticated):
			respondWithError(w, http.StatusUnauthorized, "unauthenticated", "Please sign in again")
		case isValidation(err):
			respondWithError(w, http.StatusBadRequest, "invalid_message", apperrors.UserMessage(err, ""))
		default:
			respondWithError(w, http.StatusBadGateway, "send_failed", "Failed to send message. Please try again.")
		}
		return
	}
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		h.shell.Redirect(w, r, session.LoginPath)
		return
	}
	if err != nil && isValidation(err) {
		h.shell.Notify(r, apperrors.UserMessage(err, ""), notify.Error)
	}
	h.shell.Redirect(w, r, "/chat.html")
}

func isValidation(err error) bool {
	_, ok := apperrors.IsValidationError(err)
	return ok
}

// Stream is the Server-Sent Events feed for an open chat page. It owns one
// poller that lives exactly as long as the connection.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.Debug().Err(err).Msg("Could not clear write deadline")
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events, unsubscribe := h.chat.Hub().Subscribe(sess.User.ID)
	defer unsubscribe()

	metrics.ChatStreamsActive.Inc()
	defer metrics.ChatStreamsActive.Dec()

	polled := make(chan models.ChatMessage, 16)
	poller := chat.NewPoller(func(ctx context.Context) ([]models.ChatMessage, error) {
		return h.chat.Fetch(ctx, sess.Token)
	}, h.pollInterval, func(m models.ChatMessage) {
		select {
		case polled <- m:
		case <-ctx.Done():
		}
	}, h.logger)
	poller.Prime(h.chat.History(ctx, sess.Token))
	go poller.Run(ctx)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.Error().Err(err).Msg("Streaming unsupported")
		return
	}

	// Messages the user sent are already on the page as local echoes; the
	// backend's copy arriving through the poller is skipped once per echo.
	echoed := make(map[string]int)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			if ev.Kind == chat.EventMessage && ev.Message.Sender == models.SenderUser {
				echoed[ev.Message.Message]++
			}
			err = writeEvent(w, ev.Kind, ev.Message)
		case m := <-polled:
			if m.Sender == models.SenderUser && echoed[m.Message] > 0 {
				echoed[m.Message]--
				continue
			}
			err = writeEvent(w, chat.EventMessage, m)
		case <-keepAlive.C:
			_, err = fmt.Fprint(w, ": ping\n\n")
		}
		if err != nil {
			h.logger.Debug().Err(err).Msg("Chat stream closed")
			return
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, kind chat.EventKind, m models.ChatMessage) error {
	if kind != chat.EventMessage {
		_, err := fmt.Fprintf(w, "event: %s\ndata: {}\n\n", kind)
		return err
	}
	data, err := json.Marshal(newChatLine(m))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
	return err
}
