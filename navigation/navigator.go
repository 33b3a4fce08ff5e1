package navigation

import (
	"errors"
	"fmt"
)

var (
	ErrNoBookSelected = errors.New("book detail requires a selected book")
	ErrNotOnDashboard = errors.New("not on the admin dashboard")
)

// Navigator holds one session's view state. It is not safe for concurrent
// use; callers serialize access.
type Navigator struct {
	view          View
	authenticated bool
	fragment      string
}

// New starts a navigator on the screen named by fragment.
func New(fragment string) *Navigator {
	n := &Navigator{view: Home{}}
	// ParseFragment never yields book detail, so this cannot fail.
	_ = n.Navigate(ParseFragment(fragment))
	return n
}

// View returns the current view.
func (n *Navigator) View() View { return n.view }

// Fragment is the last fragment written by navigation.
func (n *Navigator) Fragment() string { return n.fragment }

// Authenticated reports whether the session passed the admin login.
func (n *Navigator) Authenticated() bool { return n.authenticated }

// SelectedBook returns the book shown by the detail view.
func (n *Navigator) SelectedBook() (string, bool) {
	if d, ok := n.view.(BookDetail); ok {
		return d.BookID, true
	}
	return "", false
}

// Navigate moves to s, dropping any view-scoped selection.
func (n *Navigator) Navigate(s Screen) error {
	switch s {
	case ScreenHome:
		n.view = Home{}
	case ScreenCatalog:
		n.view = Catalog{}
	case ScreenContact:
		n.view = Contact{}
	case ScreenPrivacy:
		n.view = Privacy{}
	case ScreenAdmin:
		n.view = n.adminEntry()
	case ScreenBookDetail:
		return ErrNoBookSelected
	default:
		return fmt.Errorf("unknown screen %q", s)
	}
	if f, ok := s.Fragment(); ok {
		n.fragment = f
	}
	return nil
}

// NavigateFragment navigates to the screen named by fragment.
func (n *Navigator) NavigateFragment(fragment string) {
	_ = n.Navigate(ParseFragment(fragment))
}

func (n *Navigator) adminEntry() View {
	if n.authenticated {
		return Admin{Access: Dashboard{Tab: TabBooks}}
	}
	return Admin{Access: LoginPrompt{}}
}

// OpenBook shows the detail view for id. The fragment is left unchanged.
func (n *Navigator) OpenBook(id string) error {
	if id == "" {
		return ErrNoBookSelected
	}
	n.view = BookDetail{BookID: id}
	return nil
}

// Authenticate records the verdict of a credential check. A successful
// verdict on the login prompt opens the dashboard.
func (n *Navigator) Authenticate(ok bool) {
	admin, onAdmin := n.view.(Admin)
	if ok {
		n.authenticated = true
		if onAdmin {
			if _, prompting := admin.Access.(LoginPrompt); prompting {
				n.view = Admin{Access: Dashboard{Tab: TabBooks}}
			}
		}
		return
	}
	if onAdmin && !n.authenticated {
		n.view = Admin{Access: LoginPrompt{Failed: true}}
	}
}

// Logout drops the session flag and returns home with the fragment cleared.
func (n *Navigator) Logout() {
	n.authenticated = false
	n.view = Home{}
	n.fragment = ""
}

// SelectTab switches the dashboard tab.
func (n *Navigator) SelectTab(t Tab) error {
	admin, ok := n.view.(Admin)
	if !ok {
		return ErrNotOnDashboard
	}
	if _, ok := admin.Access.(Dashboard); !ok {
		return ErrNotOnDashboard
	}
	n.view = Admin{Access: Dashboard{Tab: t}}
	return nil
}

// Resolve falls back to the catalog when the detail view's book no longer
// exists, and returns the resulting view.
func (n *Navigator) Resolve(exists func(bookID string) bool) View {
	if d, ok := n.view.(BookDetail); ok && !exists(d.BookID) {
		n.view = Catalog{}
	}
	return n.view
}
