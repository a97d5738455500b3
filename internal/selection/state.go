package selection

import "course-scanner/internal/domain"

// State is the brand -> course dropdown state. It is one of Idle, Loading or
// Loaded; a course list only exists together with the brand it was fetched for.
type State interface {
	isState()
}

// Idle means no brand is selected and the course list is empty.
type Idle struct{}

// Loading means a course list fetch for Brand is in flight.
type Loading struct {
	Brand string
}

// Loaded holds the selectable courses for Brand. Err is set when the fetch
// failed; Courses is then empty.
type Loaded struct {
	Brand   string
	Courses []domain.Course
	Err     error
}

func (Idle) isState()    {}
func (Loading) isState() {}
func (Loaded) isState()  {}

// BrandOf returns the brand a state belongs to, "" for Idle.
func BrandOf(s State) string {
	switch s := s.(type) {
	case Loading:
		return s.Brand
	case Loaded:
		return s.Brand
	}
	return ""
}
