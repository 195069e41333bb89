package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// ID is an opaque backend identifier. The backend is not consistent about
// sending numbers or strings, so both decode into the same value.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

type User struct {
	ID        ID         `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	IsAdmin   bool       `json:"isAdmin"`
	Avatar    *string    `json:"avatar,omitempty"`
	Country   *string    `json:"country,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// UnmarshalJSON tolerates createdAt in any of TimeLayouts. An unreadable
// value leaves CreatedAt nil instead of failing the whole response.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.CreatedAt = nil
	if t := looseTime(aux.CreatedAt); !t.IsZero() {
		u.CreatedAt = &t
	}
	return nil
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) AvatarURL() string {
	if u.Avatar == nil {
		return ""
	}
	return *u.Avatar
}

func (u User) CountryName() string {
	if u.Country == nil {
		return ""
	}
	return *u.Country
}

// Session is the client-held token + user pair gating protected pages.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s Session) Valid() bool {
	return s.Token != "" && s.User.ID != ""
}

func (s Session) ValidAdmin() bool {
	return s.Valid() && s.User.IsAdmin
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	Country         string `json:"country"`
}

type ProfileUpdateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Country   string `json:"country"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type UsersResponse struct {
	Success bool   `json:"success"`
	Users   []User `json:"users"`
	Error   string `json:"error,omitempty"`
}

type ProfileResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

type AvatarResponse struct {
	Success bool   `json:"success"`
	Avatar  string `json:"avatar"`
	Message string `json:"message,omitempty"`
}
