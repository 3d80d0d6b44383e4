package catalog

// CatalogError is a custom error type for catalog construction errors
type CatalogError string

// Error implements the error interface
func (e CatalogError) Error() string {
	return string(e)
}

const (
	ErrNilConfig    CatalogError = "config cannot be nil"
	ErrDuplicateID  CatalogError = "duplicate crime ID"
	ErrEmptyCrimeID CatalogError = "crime ID cannot be empty"
)
