package storage

import "errors"

var (
	ErrInvalidCapacity = errors.New("buffer capacity must be positive")
	ErrNilReading      = errors.New("reading cannot be nil")
	ErrCSVNotFound     = errors.New("csv file not found")
)
