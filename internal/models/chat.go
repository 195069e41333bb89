package models

import (
	"encoding/json"
	"time"
)

type Sender string

const (
	SenderUser   Sender = "user"
	SenderAdmin  Sender = "admin"
	SenderSystem Sender = "system"
)

type ChatMessage struct {
	ID        ID        `json:"id"`
	Message   string    `json:"message"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// UnmarshalJSON tolerates timestamps in any of TimeLayouts. An unreadable
// value becomes the zero time, which renders as "Now".
func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	type plain ChatMessage
	aux := struct {
		*plain
		Timestamp json.RawMessage `json:"timestamp"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Timestamp = looseTime(aux.Timestamp)
	return nil
}

type ChatSummary struct {
	ID          ID  `json:"id"`
	UnreadCount int `json:"unreadCount"`
}

type SendChatRequest struct {
	Message string `json:"message"`
}

type MessagesResponse struct {
	Messages []ChatMessage `json:"messages"`
}

type ChatsResponse struct {
	Success bool          `json:"success"`
	Chats   []ChatSummary `json:"chats"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

type Weather struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
}
