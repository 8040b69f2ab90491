package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RequestMeta carries the client address and agent captured for audit
// records.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// LoginRequest carries the credentials presented at POST /auth/login.
// IP and UserAgent are filled by the handler, never by the client.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// Meta returns the client metadata captured with the request.
func (r LoginRequest) Meta() RequestMeta {
	return RequestMeta{IP: r.IP, UserAgent: r.UserAgent}
}

// RegisterRequest is the self-service signup payload. Accounts created
// through this path are always plain users.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FullName  string `json:"full_name" validate:"required,min=2,max=100"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// Meta returns the client metadata captured with the request.
func (r RegisterRequest) Meta() RequestMeta {
	return RequestMeta{IP: r.IP, UserAgent: r.UserAgent}
}

// RefreshTokenRequest trades a live refresh token for a new session.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	IP           string `json:"-"`
	UserAgent    string `json:"-"`
}

// Meta returns the client metadata captured with the request.
func (r RefreshTokenRequest) Meta() RequestMeta {
	return RequestMeta{IP: r.IP, UserAgent: r.UserAgent}
}

// ChangePasswordRequest swaps the caller's password after re-verifying the
// old one.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// UserInfo is the trimmed account view embedded in session responses.
type UserInfo struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
}

// NewUserInfo trims a stored user down to the fields sessions expose.
func NewUserInfo(u *User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// LoginResponse is the session payload issued on login and registration.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	User         UserInfo  `json:"user"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshTokenResponse carries the rotated token pair.
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	IssuedAt     time.Time `json:"issued_at"`
}

// JWTClaims is the access token payload.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
