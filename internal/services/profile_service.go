package services

import (
	"context"
	"strings"

	"github.com/kingdavid103/Tracking-payment6/internal/apperrors"
	"github.com/kingdavid103/Tracking-payment6/internal/models"

	"github.com/rs/zerolog"
)

const avatarMaxSide = 256

type ProfileService struct {
	backend ProfileBackend
	logger  zerolog.Logger
}

func NewProfileService(backend ProfileBackend, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		backend: backend,
		logger:  logger,
	}
}

// Update sends the profile form and returns the session user merged with
// whatever the backend sent back.
func (s *ProfileService) Update(ctx context.Context, sess models.Session, req models.ProfileUpdateRequest) (models.User, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Country = strings.TrimSpace(req.Country)
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Country == "" {
		return sess.User, apperrors.NewValidationError("", "Please fill in all required fields")
	}

	updated, err := s.backend.UpdateProfile(ctx, sess.Token, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", string(sess.User.ID)).Msg("Profile update failed")
		return sess.User, err
	}

	merged := sess.User
	merged.FirstName = req.FirstName
	merged.LastName = req.LastName
	merged.Email = req.Email
	country := req.Country
	merged.Country = &country
	mergeUser(&merged, *updated)

	s.logger.Info().Str("user_id", string(merged.ID)).Msg("Profile updated")
	return merged, nil
}

// mergeUser copies the non-empty fields of src over dst.
func mergeUser(dst *models.User, src models.User) {
	if src.ID != "" {
		dst.ID = src.ID
	}
	if src.FirstName != "" {
		dst.FirstName = src.FirstName
	}
	if src.LastName != "" {
		dst.LastName = src.LastName
	}
	if src.Email != "" {
		dst.Email = src.Email
	}
	if src.Avatar != nil {
		dst.Avatar = src.Avatar
	}
	if src.Country != nil {
		dst.Country = src.Country
	}
	if src.CreatedAt != nil {
		dst.CreatedAt = src.CreatedAt
	}
	if src.IsAdmin {
		dst.IsAdmin = true
	}
}

// UploadAvatar validates and downsizes the file, uploads it and returns the
// user with the new avatar URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, sess models.Session, file models.Upload) (models.User, error) {
	prepared, err := PrepareImage(file, avatarMaxSide)
	if err != nil {
		return sess.User, err
	}
	url, err := s.backend.UploadAvatar(ctx, sess.Token, prepared)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", string(sess.User.ID)).Msg("Avatar upload failed")
		return sess.User, err
	}
	user := sess.User
	user.Avatar = &url
	return user, nil
}

// RemoveAvatar clears the avatar locally; nothing is sent to the backend.
func (s *ProfileService) RemoveAvatar(sess models.Session) models.User {
	user := sess.User
	user.Avatar = nil
	return user
}

// PreferenceMessage is the notification for a toggled preference.
func PreferenceMessage(setting string, enabled bool) string {
	if enabled {
		return setting + " enabled"
	}
	return setting + " disabled"
}
