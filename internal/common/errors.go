package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Podcast/episode errors
	ErrPodcastNotFound = errors.New("podcast not found")
	ErrEpisodeNotFound = errors.New("episode not found")

	// MediaRef errors
	ErrMediaRefNotFound = errors.New("mediaRef not found")

	// History errors
	ErrHistoryItemNotFound = errors.New("userHistoryItem not found")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
