package application

import (
	"github.com/dvdk01/trove-counter/internal/schema"
)

// Application is a display surface that shows one rendering at a time.
type Application interface {
	Clear() error
	Render(display schema.Display) error
}
