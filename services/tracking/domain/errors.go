package domain

import "errors"

// Sentinel errors for the tracking domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist in the organisation.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates an item with the same device id already
	// exists in the organisation. Creation treats this as a no-op (the
	// existing row wins), so the error normally never reaches a handler.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrUnknownDomain indicates an equipment domain outside the tracked set.
	ErrUnknownDomain = errors.New("unknown equipment domain")

	// ErrUnknownEventType indicates an event type the equipment domain does not define.
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrInvalidDeviceID indicates a device id violating structural constraints.
	ErrInvalidDeviceID = errors.New("invalid device id")
)
