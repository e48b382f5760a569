package service

import "errors"

var (
	ErrEntityNotFound   = errors.New("entity not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrUnsupportedScope = errors.New("unsupported scope")
	ErrMissingEndTime   = errors.New("match payload has no endDateTime")
	ErrIngestDisabled   = errors.New("STRATZ_API_KEY is not configured")
)
