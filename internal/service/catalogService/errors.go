package catalogService

import (
	"errors"
	"fmt"

	"book_catalog_tgbot/internal/model"
)

var (
	ErrNoOpenForm  = errors.New("no open form")
	ErrNotModified = errors.New("form data not modified")
	ErrNotFound    = errors.New("book not found")
	ErrBadPageSize = errors.New("page size out of range")
)

const (
	minPageSize = 1
	maxPageSize = 20
)

// ValidationError blocks a submit before anything reaches the gateway.
type ValidationError struct {
	Fields map[model.FormField]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}
