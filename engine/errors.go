package engine

import "fmt"

// LayoutError is returned when content can not be placed even on an empty
// page. Rendering is aborted rather than producing pages forever.
type LayoutError struct {
	Band      string
	Need      float64
	Available float64
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: needs %.2fpt, only %.2fpt available on empty page", e.Band, e.Need, e.Available)
}
