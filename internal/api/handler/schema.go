package handler

import (
	"time"

	"github.com/99minutos/account-service/internal/core/domain"
)

// --- Request types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Age      *int   `json:"age"      validate:"required,gte=0"`
	Gender   string `json:"gender"   validate:"required,oneof=Male Female Other"`
	City     string `json:"city"     validate:"required"`
	Country  string `json:"country"  validate:"required"`
	Address  string `json:"address"  validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name    string `json:"name"    validate:"required"`
	Age     *int   `json:"age"     validate:"required,gte=0"`
	Gender  string `json:"gender"  validate:"required,oneof=Male Female Other"`
	City    string `json:"city"    validate:"required"`
	Country string `json:"country" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type profilePatchRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1"`
	Age     *int    `json:"age"     validate:"omitempty,gte=0"`
	Gender  *string `json:"gender"  validate:"omitempty,oneof=Male Female Other"`
	City    *string `json:"city"    validate:"omitempty,min=1"`
	Country *string `json:"country" validate:"omitempty,min=1"`
	Address *string `json:"address" validate:"omitempty,min=1"`
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type userIDRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}

type postRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// --- Response types ---

// ErrorResponse is the error envelope: {"error": "...", "code": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// dataResponse is the success envelope: {"message": "...", "data": ...}.
type dataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type loginResponse struct {
	Token     string               `json:"token"`
	ExpiresIn int64                `json:"expires_in"`
	User      domain.PublicAccount `json:"user"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ownedPostResponse struct {
	postResponse
	OwnerID int64 `json:"userId"`
}

type adminPostResponse struct {
	postResponse
	User domain.OwnerSummary `json:"user"`
}

type deletedCountResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
