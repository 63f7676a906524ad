package domain

import "errors"

// Credential and token errors.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrInvalidToken        = errors.New("invalid or expired credential")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")
)

// Authorization errors.
var (
	ErrAccountInactive  = errors.New("account no longer active")
	ErrInsufficientRole = errors.New("forbidden: insufficient role")
	ErrNotOwner         = errors.New("forbidden: not resource owner")
)

// Lifecycle errors.
var (
	ErrAlreadyDeactivated = errors.New("already deactivated")
	ErrAlreadyActive      = errors.New("already active")
	ErrAdminImmune        = errors.New("cannot deactivate an admin account")
	ErrNotDeactivated     = errors.New("account must be deactivated before removal")
	ErrInvalidState       = errors.New("unknown lifecycle state")
)

// Store and lookup errors.
var (
	ErrEmailTaken       = errors.New("user already exists")
	ErrAccountNotFound  = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrNoPosts          = errors.New("no posts found")
	ErrStoreUnavailable = errors.New("account store unavailable")
	ErrValidation       = errors.New("invalid request")
)
