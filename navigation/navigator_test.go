package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFragment(t *testing.T) {
	tests := []struct {
		in   string
		want Screen
	}{
		{"", ScreenHome},
		{"#", ScreenHome},
		{"#home", ScreenHome},
		{"allBooks", ScreenCatalog},
		{"#contact", ScreenContact},
		{"privacy", ScreenPrivacy},
		{"#admin", ScreenAdmin},
		{"bookDetail", ScreenHome},
		{"#catalog", ScreenHome},
		{"%%garbage/../x", ScreenHome},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFragment(tt.in))
		})
	}
}

func TestNew_UnrecognizedFragmentIsHome(t *testing.T) {
	n := New("#no-such-view")
	assert.Equal(t, Home{}, n.View())
	assert.Equal(t, "home", n.Fragment())
}

func TestNew_AdminWithoutSessionPrompts(t *testing.T) {
	n := New("#admin")
	assert.Equal(t, Admin{Access: LoginPrompt{}}, n.View())
	assert.Equal(t, "admin", n.Fragment())
}

func TestNavigate_LeavingDetailClearsSelection(t *testing.T) {
	n := New("allBooks")
	require.NoError(t, n.OpenBook("book-1"))
	id, ok := n.SelectedBook()
	require.True(t, ok)
	assert.Equal(t, "book-1", id)
	assert.Equal(t, "allBooks", n.Fragment(), "detail does not write the fragment")

	require.NoError(t, n.Navigate(ScreenContact))
	_, ok = n.SelectedBook()
	assert.False(t, ok)
	assert.Equal(t, "contact", n.Fragment())
}

func TestNavigate_DetailNeedsBook(t *testing.T) {
	n := New("")
	assert.ErrorIs(t, n.Navigate(ScreenBookDetail), ErrNoBookSelected)
	assert.ErrorIs(t, n.OpenBook(""), ErrNoBookSelected)
	assert.Equal(t, Home{}, n.View())
	assert.Error(t, n.Navigate(Screen("nope")))
}

func TestAuthenticate(t *testing.T) {
	n := New("admin")

	n.Authenticate(false)
	assert.Equal(t, Admin{Access: LoginPrompt{Failed: true}}, n.View())
	assert.False(t, n.Authenticated())

	n.Authenticate(true)
	assert.True(t, n.Authenticated())
	assert.Equal(t, Admin{Access: Dashboard{Tab: TabBooks}}, n.View())

	require.NoError(t, n.Navigate(ScreenHome))
	require.NoError(t, n.Navigate(ScreenAdmin))
	assert.Equal(t, Admin{Access: Dashboard{Tab: TabBooks}}, n.View(), "session survives navigation")
}

func TestAuthenticate_OutsideAdmin(t *testing.T) {
	n := New("contact")
	n.Authenticate(false)
	assert.Equal(t, Contact{}, n.View())
	n.Authenticate(true)
	assert.Equal(t, Contact{}, n.View())
	assert.True(t, n.Authenticated())
}

func TestLogout(t *testing.T) {
	n := New("admin")
	n.Authenticate(true)
	n.Logout()

	assert.False(t, n.Authenticated())
	assert.Equal(t, Home{}, n.View())
	assert.Equal(t, "", n.Fragment())

	require.NoError(t, n.Navigate(ScreenAdmin))
	assert.Equal(t, Admin{Access: LoginPrompt{}}, n.View())
}

func TestSelectTab(t *testing.T) {
	n := New("admin")
	assert.ErrorIs(t, n.SelectTab(TabOrders), ErrNotOnDashboard)

	n.Authenticate(true)
	require.NoError(t, n.SelectTab(TabOrders))
	assert.Equal(t, Admin{Access: Dashboard{Tab: TabOrders}}, n.View())

	tab, ok := ParseTab(" Content ")
	require.True(t, ok)
	assert.Equal(t, TabContent, tab)
	_, ok = ParseTab("reports")
	assert.False(t, ok)
}

func TestResolve_VanishedBookFallsBackToCatalog(t *testing.T) {
	n := New("")
	require.NoError(t, n.OpenBook("book-gone"))

	v := n.Resolve(func(id string) bool { return id != "book-gone" })
	assert.Equal(t, Catalog{}, v)

	require.NoError(t, n.OpenBook("book-1"))
	v = n.Resolve(func(string) bool { return true })
	assert.Equal(t, BookDetail{BookID: "book-1"}, v)
}
