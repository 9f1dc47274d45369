package domain

import "errors"

// Common domain errors
var (
	// Enhancement request errors
	ErrEmptyPrompt   = errors.New("prompt cannot be empty")
	ErrPromptTooLong = errors.New("prompt exceeds maximum length")
	ErrInvalidMode   = errors.New("invalid enhancement mode")
	ErrUnknownPreset = errors.New("unknown technique preset")

	// Prompt record errors
	ErrPromptNotFound   = errors.New("prompt not found")
	ErrTooManyFavorites = errors.New("maximum number of favorites reached")

	// Analytics errors
	ErrAnalyticsNotFound = errors.New("analytics record not found")

	// Provider errors
	ErrProviderUnavailable = errors.New("enhancement provider unavailable")
	ErrProviderTimeout     = errors.New("enhancement provider timed out")
)
