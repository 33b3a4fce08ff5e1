// Package session keeps the per-tab state of storefront visitors.
package session

import (
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/time/rate"

	"github.com/htol/bookshop/navigation"
	"github.com/htol/bookshop/recommend"
	"github.com/htol/bookshop/view"
)

const (
	DefaultTTL = 12 * time.Hour

	// loginAttempts per minute before further attempts fail outright.
	loginAttempts = 5
)

// Session is one browser tab's state.
type Session struct {
	ID string

	mu       sync.Mutex
	nav      *navigation.Navigator
	catalog  view.CatalogFilter
	orders   view.OrderFilter
	errors   map[string]string
	panel    *recommend.Panel
	login    *rate.Limiter
	lastSeen time.Time
}

// State is what handlers read and mutate under the session lock.
type State struct {
	Nav     *navigation.Navigator
	Catalog *view.CatalogFilter
	Orders  *view.OrderFilter
	// Errors holds the field errors of the last rejected form.
	Errors map[string]string
}

func newSession(fragment string, now time.Time) *Session {
	return &Session{
		ID:       "sess-" + gonanoid.Must(),
		nav:      navigation.New(fragment),
		panel:    recommend.NewPanel(),
		login:    rate.NewLimiter(rate.Every(time.Minute/loginAttempts), loginAttempts),
		lastSeen: now,
	}
}

// With runs fn while holding the session lock.
func (s *Session) With(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &State{Nav: s.nav, Catalog: &s.catalog, Orders: &s.orders, Errors: s.errors}
	fn(st)
	s.errors = st.Errors
}

// Panel is the detail view's recommendation state. It has its own lock so
// background fetches never wait on request handlers.
func (s *Session) Panel() *recommend.Panel {
	return s.panel
}

// Local collects the view state kept outside the store.
func (s *Session) Local() view.Local {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.localLocked()
}

func (s *Session) localLocked() view.Local {
	return view.Local{
		Catalog:         s.catalog,
		Orders:          s.orders,
		Recommendations: s.panel.State(),
		Errors:          s.errors,
	}
}

// AllowLogin reports whether another login attempt may be checked.
func (s *Session) AllowLogin() bool {
	return s.login.Allow()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
