package services

import (
	"context"

	"github.com/kingdavid103/Tracking-payment6/internal/models"
)

// The services depend on these narrow views of the backend client so tests
// can supply fakes.

type AuthBackend interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
}

type OrderBackend interface {
	UserOrders(ctx context.Context, token string) ([]models.Order, error)
	AdminOrders(ctx context.Context, token string) ([]models.Order, error)
	AdminUsers(ctx context.Context, token string) ([]models.User, error)
	CreateOrder(ctx context.Context, token string, req models.CreateOrderRequest) (*models.CreateOrderResponse, error)
	Track(ctx context.Context, token, id string) (*models.Order, error)
	UserChats(ctx context.Context, token string) ([]models.ChatSummary, error)
}

type ChatBackend interface {
	ChatMessages(ctx context.Context, token string) ([]models.ChatMessage, error)
	SendChat(ctx context.Context, token, message string) error
	UnreadCount(ctx context.Context, token string) (int, error)
}

type ProfileBackend interface {
	UpdateProfile(ctx context.Context, token string, req models.ProfileUpdateRequest) (*models.User, error)
	UploadAvatar(ctx context.Context, token string, file models.Upload) (string, error)
}
