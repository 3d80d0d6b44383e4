package sweep

// SweepError is a custom error type for sweep construction errors
type SweepError string

// Error implements the error interface
func (e SweepError) Error() string {
	return string(e)
}

const (
	ErrNilConfig        SweepError = "config cannot be nil"
	ErrNilCharacterRepo SweepError = "character repository cannot be nil"
	ErrNilConfinement   SweepError = "confinement service cannot be nil"
	ErrNilAchievements  SweepError = "achievement service cannot be nil"
	ErrNilEvents        SweepError = "event dispatcher cannot be nil"
)
