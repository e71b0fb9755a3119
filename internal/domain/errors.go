package domain

import "errors"

var (
	ErrInvalidConfig           = errors.New("invalid configuration")
	ErrSpeechUnavailable       = errors.New("speech unavailable")
	ErrConfigurationNotFound   = errors.New("configuration not found")
	ErrUnknownConfigurationKey = errors.New("unknown configuration key")
)
