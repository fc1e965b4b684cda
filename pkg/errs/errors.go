package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer     = errors.New("Internal server error")
	ErrClient             = errors.New("Bad request")
	ErrValidation         = errors.New("Validation failed")
	ErrInvalidID          = errors.New("Invalid product ID")
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrNotFound           = errors.New("Resource not found")
	ErrSlugAlreadyUsed    = errors.New("Slug already exists")
	ErrImageUpload        = errors.New("Image upload failed")
)

var errorMap = map[error]int{
	ErrInternalServer:     ErrStatusInternalServer,
	ErrClient:             ErrStatusClient,
	ErrValidation:         ErrStatusClient,
	ErrInvalidID:          ErrStatusClient,
	ErrUnauthorized:       ErrStatusUnauthorized,
	ErrInvalidCredentials: ErrStatusUnauthorized,
	ErrNotFound:           ErrStatusNotFound,
	ErrSlugAlreadyUsed:    ErrStatusConflict,
	ErrImageUpload:        ErrStatusInternalServer,
}

// Known returns the sentinel err wraps, or nil when err is not part of the taxonomy.
func Known(err error) error {
	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func GetErrorStatusCode(err error) int {
	if sentinel := Known(err); sentinel != nil {
		return errorMap[sentinel]
	}
	return errorMap[ErrInternalServer]
}
