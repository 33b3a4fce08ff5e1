package recommend

import (
	"slices"
	"sync"

	"github.com/htol/bookshop/book"
)

// Status is the lifecycle of a recommendation panel.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusEmpty   Status = "empty"
)

// State is what the detail view shows in its recommendation panel.
type State struct {
	BookID string             `json:"bookId,omitempty"`
	Status Status             `json:"status"`
	Items  []book.PartialBook `json:"items"`
}

// Ticket identifies one request. Only the newest ticket may resolve.
type Ticket struct {
	BookID     string
	generation uint64
}

// Panel holds the recommendation state of one detail view and discards
// results that arrive after the customer moved on.
type Panel struct {
	mu         sync.Mutex
	generation uint64
	state      State
}

// NewPanel returns an idle panel.
func NewPanel() *Panel {
	return &Panel{state: State{Status: StatusIdle, Items: []book.PartialBook{}}}
}

// Begin moves the panel to loading for bookID and invalidates earlier tickets.
func (p *Panel) Begin(bookID string) Ticket {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.state = State{BookID: bookID, Status: StatusLoading, Items: []book.PartialBook{}}
	return Ticket{BookID: bookID, generation: p.generation}
}

// Resolve applies items if t is still current and reports whether it did.
func (p *Panel) Resolve(t Ticket, items []book.PartialBook) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t.generation != p.generation || t.BookID != p.state.BookID {
		return false
	}

	status := StatusReady
	if len(items) == 0 {
		status = StatusEmpty
	}
	p.state = State{BookID: t.BookID, Status: status, Items: slices.Clone(items)}
	if p.state.Items == nil {
		p.state.Items = []book.PartialBook{}
	}
	return true
}

// Reset clears the panel and invalidates outstanding tickets.
func (p *Panel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.state = State{Status: StatusIdle, Items: []book.PartialBook{}}
}

// State returns a copy of what the panel currently shows.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.state
	s.Items = slices.Clone(p.state.Items)
	return s
}
