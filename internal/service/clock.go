package service

import (
	"errors"
	"time"
)

// ErrStoreUnavailable wraps any failure to read from or write to the database.
var ErrStoreUnavailable = errors.New("store unavailable")

// Clock supplies the current instant. Tests swap in a fixed time.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}
