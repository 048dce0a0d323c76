package core

import "fmt"

var (
	// ErrSendInFlight is returned when a send is attempted while another send
	// on the same dispatcher has not yet settled. Sends are rejected, never
	// queued.
	ErrSendInFlight = fmt.Errorf("a send is already in flight")

	// ErrEmptyMessage is returned when a send is attempted with no text.
	ErrEmptyMessage = fmt.Errorf("message text is empty")
)
