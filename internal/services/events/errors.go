package events

// EventsError is a custom error type for dispatcher errors
type EventsError string

// Error implements the error interface
func (e EventsError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        EventsError = "config cannot be nil"
	ErrNilClock         EventsError = "clock cannot be nil"
	ErrNilUUIDGenerator EventsError = "UUID generator cannot be nil"
	ErrNoTransports     EventsError = "at least one transport is required"

	ErrUnknownConfinementType EventsError = "no counter for confinement type"
)
