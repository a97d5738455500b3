package selection

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"course-scanner/internal/domain"
	"course-scanner/internal/validation"

	"github.com/rs/zerolog"
)

// DefaultFetchTimeout bounds a brand scoped course fetch.
const DefaultFetchTimeout = 10 * time.Second

// CourseSource fetches the raw course list of one brand.
type CourseSource interface {
	CourseNames(ctx context.Context, brand string) ([]domain.Course, error)
}

// Controller keeps the selected brand, the selected course id and the course
// list the id is drawn from consistent with each other.
//
// Only the fetch started by the latest SetBrand may change the course list;
// results of superseded fetches are dropped, and their context is cancelled.
type Controller struct {
	src      CourseSource
	log      zerolog.Logger
	timeout  time.Duration
	onChange func(State)

	mu       sync.Mutex
	brand    string
	courseID string
	state    State
	seq      uint64
	cancel   context.CancelFunc

	// notifyMu serialises onChange calls so a superseded state is never
	// delivered after a newer one.
	notifyMu sync.Mutex

	wg sync.WaitGroup
}

type Option func(*Controller)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithTimeout sets the per fetch timeout. Expiry counts as a fetch failure.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithOnChange registers a callback run after every state transition that is
// still current when delivered; superseded states are skipped. Calls are
// serialised and may come from a fetch goroutine. The callback must not call
// SetBrand.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func New(src CourseSource, opts ...Option) *Controller {
	c := &Controller{
		src:     src,
		log:     zerolog.Nop(),
		timeout: DefaultFetchTimeout,
		state:   Idle{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetBrand selects a brand. The selected course is always cleared. An empty
// brand empties the course list without fetching; otherwise the brand's
// courses are fetched in the background.
func (c *Controller) SetBrand(ctx context.Context, brand string) {
	brand = strings.TrimSpace(brand)

	c.mu.Lock()
	c.brand = brand
	c.courseID = ""
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if brand == "" {
		c.state = Idle{}
		seq := c.seq
		c.mu.Unlock()
		c.notify(seq, Idle{})
		return
	}

	seq := c.seq
	fctx, cancel := context.WithTimeout(ctx, c.timeout)
	c.cancel = cancel
	next := Loading{Brand: brand}
	c.state = next
	c.wg.Add(1)
	c.mu.Unlock()

	c.notify(seq, next)
	go c.fetch(fctx, cancel, seq, brand)
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, brand string) {
	defer c.wg.Done()
	defer cancel()

	raw, err := c.src.CourseNames(ctx, brand)

	var next Loaded
	if err != nil {
		next = Loaded{Brand: brand, Courses: []domain.Course{}, Err: err}
	} else {
		next = Loaded{Brand: brand, Courses: PrepareCourseList(raw)}
	}

	c.mu.Lock()
	if seq != c.seq || brand != c.brand {
		c.mu.Unlock()
		c.log.Debug().Str("brand", brand).Msg("dropping stale course list")
		return
	}
	c.state = next
	c.cancel = nil
	c.mu.Unlock()

	if err != nil {
		c.log.Error().Err(err).Str("brand", brand).Msg("failed to fetch course names")
	} else {
		c.log.Info().Str("brand", brand).Int("raw", len(raw)).Int("courses", len(next.Courses)).Msg("course list loaded")
	}
	c.notify(seq, next)
}

// SetCourse selects a course id. It has no other effect.
func (c *Controller) SetCourse(courseID string) {
	c.mu.Lock()
	c.courseID = courseID
	c.mu.Unlock()
}

// BuildSearchQuery assembles the /search parameters from the current
// selection. If any field is blank it returns an *apperrors.ValidationError
// naming every missing field.
func (c *Controller) BuildSearchQuery(startDate, region string) (domain.SearchQuery, error) {
	c.mu.Lock()
	q := domain.SearchQuery{
		BrandName: c.brand,
		CourseID:  strings.TrimSpace(c.courseID),
		StartDate: strings.TrimSpace(startDate),
		Region:    strings.TrimSpace(region),
	}
	c.mu.Unlock()

	if err := validation.Struct(q); err != nil {
		return domain.SearchQuery{}, err
	}
	return q, nil
}

// State returns the current dropdown state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.state.(Loaded); ok {
		l.Courses = slices.Clone(l.Courses)
		return l
	}
	return c.state
}

func (c *Controller) Brand() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.brand
}

func (c *Controller) CourseID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.courseID
}

// Courses returns a copy of the selectable course list; empty unless Loaded.
func (c *Controller) Courses() []domain.Course {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.state.(Loaded); ok {
		return slices.Clone(l.Courses)
	}
	return []domain.Course{}
}

// SelectedCourse looks the selected id up in the current course list.
func (c *Controller) SelectedCourse() (domain.Course, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.state.(Loaded)
	if !ok || c.courseID == "" {
		return domain.Course{}, false
	}
	for _, course := range l.Courses {
		if course.CourseID == c.courseID {
			return course, true
		}
	}
	return domain.Course{}, false
}

// Wait blocks until every started fetch has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels the in-flight fetch, if any, and waits for it.
func (c *Controller) Close() {
	c.mu.Lock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// notify delivers s unless a later SetBrand or Close has superseded seq.
func (c *Controller) notify(seq uint64, s State) {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	current := seq == c.seq
	c.mu.Unlock()
	if !current {
		c.log.Debug().Str("brand", BrandOf(s)).Msg("skipping superseded state change")
		return
	}
	c.onChange(s)
}
