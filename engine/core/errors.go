package core

import (
	"errors"
)

var (
	// ErrShuttingDown is returned by subsystems asked to do work after
	// their shutdown has begun.
	ErrShuttingDown = errors.New("engine is shutting down")

	// ErrNotInitialized is returned when a subsystem is used before its
	// Initialize call.
	ErrNotInitialized = errors.New("subsystem not initialized")
)
