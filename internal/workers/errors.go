package workers

import "errors"

// ErrMailQueueFull is returned when a message cannot be queued for delivery.
var ErrMailQueueFull = errors.New("mail queue is full")
