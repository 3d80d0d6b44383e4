package models

// ModelError is returned when a model fails validation
type ModelError string

func (e ModelError) Error() string {
	return string(e)
}
