// Package navigation resolves which storefront screen a session is on and
// owns the transitions between screens.
package navigation

import "strings"

// Screen identifies a top-level view.
type Screen string

const (
	ScreenHome       Screen = "home"
	ScreenCatalog    Screen = "catalog"
	ScreenBookDetail Screen = "bookDetail"
	ScreenContact    Screen = "contact"
	ScreenPrivacy    Screen = "privacy"
	ScreenAdmin      Screen = "admin"
)

var fragments = map[Screen]string{
	ScreenHome:    "home",
	ScreenCatalog: "allBooks",
	ScreenContact: "contact",
	ScreenPrivacy: "privacy",
	ScreenAdmin:   "admin",
}

// Fragment returns the URL fragment for s. Book detail has none because it
// depends on an in-memory selection.
func (s Screen) Fragment() (string, bool) {
	f, ok := fragments[s]
	return f, ok
}

// ParseFragment maps a URL fragment to a screen, defaulting to home.
func ParseFragment(fragment string) Screen {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	for s, f := range fragments {
		if f == fragment {
			return s
		}
	}
	return ScreenHome
}

// View is the current view state. The set of implementations is closed.
type View interface {
	Screen() Screen
	isView()
}

type (
	Home    struct{}
	Catalog struct{}
	Contact struct{}
	Privacy struct{}

	// BookDetail shows one book. BookID is a non-owning reference into the store.
	BookDetail struct{ BookID string }

	// Admin is either the login prompt or the dashboard.
	Admin struct{ Access Access }
)

func (Home) Screen() Screen       { return ScreenHome }
func (Catalog) Screen() Screen    { return ScreenCatalog }
func (Contact) Screen() Screen    { return ScreenContact }
func (Privacy) Screen() Screen    { return ScreenPrivacy }
func (BookDetail) Screen() Screen { return ScreenBookDetail }
func (Admin) Screen() Screen      { return ScreenAdmin }

func (Home) isView()       {}
func (Catalog) isView()    {}
func (Contact) isView()    {}
func (Privacy) isView()    {}
func (BookDetail) isView() {}
func (Admin) isView()      {}

// Access is the admin sub-state.
type Access interface {
	isAccess()
}

// LoginPrompt asks for credentials. Failed is set after a rejected attempt.
type LoginPrompt struct{ Failed bool }

// Dashboard is the authenticated admin panel.
type Dashboard struct{ Tab Tab }

func (LoginPrompt) isAccess() {}
func (Dashboard) isAccess()   {}

// Tab is a section of the admin dashboard.
type Tab string

const (
	TabBooks   Tab = "books"
	TabOrders  Tab = "orders"
	TabContent Tab = "content"
)

// ParseTab returns the tab named s.
func ParseTab(s string) (Tab, bool) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabBooks, TabOrders, TabContent:
		return t, true
	}
	return "", false
}
