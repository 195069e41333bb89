package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/rs/zerolog"
)

const minPasswordLength = 6

type AuthService struct {
	backend AuthBackend
	logger  zerolog.Logger
}

func NewAuthService(backend AuthBackend, logger zerolog.Logger) *AuthService {
	return &AuthService{
		backend: backend,
		logger:  logger,
	}
}

// AuthResult is a successful login or registration: the session to store and
// the message to show.
type AuthResult struct {
	Session models.Session
	Message string
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("", "Please fill in all fields")
	}

	res, err := s.backend.Login(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		return nil, err
	}
	if !res.Success || res.Token == "" || res.User == nil {
		s.logger.Warn().Str("email", req.Email).Msg("Login rejected")
		return nil, apperrors.NewAPIError("/auth/login", http.StatusOK, orDefault(res.Error, "Login failed"))
	}

	s.logger.Info().Str("user_id", string(res.User.ID)).Bool("admin", res.User.IsAdmin).Msg("User logged in")
	return &AuthResult{
		Session: models.Session{Token: res.Token, User: *res.User},
		Message: orDefault(res.Message, "Login successful"),
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}

	res, err := s.backend.Register(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		return nil, err
	}
	if !res.Success || res.Token == "" || res.User == nil {
		return nil, apperrors.NewAPIError("/auth/register", http.StatusOK, orDefault(res.Error, "Registration failed"))
	}

	s.logger.Info().Str("user_id", string(res.User.ID)).Str("email", req.Email).Msg("User registered successfully")
	return &AuthResult{
		Session: models.Session{Token: res.Token, User: *res.User},
		Message: orDefault(res.Message, "Registration successful"),
	}, nil
}

// ValidateRegistration runs the checks made before anything is sent.
func ValidateRegistration(req models.RegisterRequest) error {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" ||
		req.Password == "" || req.ConfirmPassword == "" || req.Country == "" {
		return apperrors.NewValidationError("", "Please fill in all fields")
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.NewValidationError("confirmPassword", "Passwords do not match")
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.NewValidationError("password", "Password must be at least 6 characters")
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
