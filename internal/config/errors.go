package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkers is returned when the download concurrency is not positive.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrInvalidMaxNameLength is returned when the file name cap is not positive.
	ErrInvalidMaxNameLength = errors.New("invalid max name length: must be positive")

	// ErrEmptyOutputDir is returned when no output directory is set.
	ErrEmptyOutputDir = errors.New("output directory must not be empty")
)
