package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/navigation"
	"github.com/htol/bookshop/recommend"
	"github.com/htol/bookshop/repo"
)

func testSnapshot() repo.Snapshot {
	return repo.Snapshot{
		Revision: 7,
		Categories: []book.Category{
			{ID: "cat-novel", Name: "Novel"},
			{ID: "cat-poetry", Name: "Poetry"},
		},
		Books: []book.Book{
			{ID: "book-1", Title: "Pather Panchali", Author: "Bibhutibhushan Bandyopadhyay", Price: 450, Genre: "Novel", Featured: true},
			{ID: "book-2", Title: "Gitanjali", Author: "Rabindranath Tagore", Price: 300, Genre: "Poetry", Featured: true},
			{ID: "book-3", Title: "Sonar Kella", Author: "Satyajit Ray", Price: 250, Genre: "Thriller", Featured: true},
			{ID: "book-4", Title: "Lalsalu", Author: "Syed Waliullah", Price: 320, Genre: "novel", Featured: true},
			{ID: "book-5", Title: "Himu", Author: "Humayun Ahmed", Price: 280, Genre: "Novel", Featured: true},
			{ID: "book-9", Title: "ÉCOLE", Author: "Anon", Genre: "Recommended"},
		},
		Orders: []book.Order{
			{ID: "order-1", BookID: "book-2", BookTitle: "Gitanjali", CustomerName: "Rahim", Phone: "01711", Address: "Dhaka", Status: book.StatusDelivered, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "order-2", BookID: "book-gone", BookTitle: "Deleted Book", CustomerName: "Karim", Phone: "01822", Address: "Sylhet", Status: book.StatusPending},
		},
		Contact: book.ContactInfo{Email: "hello@example.com"},
		Privacy: book.PrivacyPolicy{Title: "Privacy Policy"},
	}
}

func TestChromeHiddenOnlyOnLogin(t *testing.T) {
	snap := testSnapshot()
	views := []navigation.View{
		navigation.Home{},
		navigation.Catalog{},
		navigation.BookDetail{BookID: "book-1"},
		navigation.Contact{},
		navigation.Privacy{},
		navigation.Admin{Access: navigation.Dashboard{Tab: navigation.TabBooks}},
	}
	for _, v := range views {
		assert.True(t, Render(v, snap, Local{}).Chrome, "chrome on %s", v.Screen())
	}

	p := Render(navigation.Admin{Access: navigation.LoginPrompt{}}, snap, Local{})
	assert.False(t, p.Chrome)
	require.NotNil(t, p.Login)
	assert.Empty(t, p.Login.Error)
}

func TestLoginFailureMessage(t *testing.T) {
	p := Render(navigation.Admin{Access: navigation.LoginPrompt{Failed: true}}, testSnapshot(), Local{})

	require.NotNil(t, p.Login)
	assert.Equal(t, WrongCredentials, p.Login.Error)
}

func TestHomeShowsAtMostFourFeatured(t *testing.T) {
	p := Render(navigation.Home{}, testSnapshot(), Local{})

	require.NotNil(t, p.Home)
	require.Len(t, p.Home.Featured, MaxFeatured)
	assert.Equal(t, "book-1", p.Home.Featured[0].ID)
	assert.Equal(t, "book-4", p.Home.Featured[3].ID)
	assert.Equal(t, "allBooks", p.Home.CallToAction)
	assert.Equal(t, uint64(7), p.Revision)
}

func TestCatalogFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  CatalogFilter
		want    []string
		allChip bool
	}{
		{name: "all", filter: CatalogFilter{}, want: []string{"book-1", "book-2", "book-3", "book-4", "book-5", "book-9"}, allChip: true},
		{name: "category matches genre ignoring case", filter: CatalogFilter{CategoryID: "cat-novel"}, want: []string{"book-1", "book-4", "book-5"}},
		{name: "unknown category", filter: CatalogFilter{CategoryID: "cat-nope"}, want: []string{"book-1", "book-2", "book-3", "book-4", "book-5", "book-9"}, allChip: true},
		{name: "title query", filter: CatalogFilter{Query: "  gitan "}, want: []string{"book-2"}, allChip: true},
		{name: "author query", filter: CatalogFilter{Query: "TAGORE"}, want: []string{"book-2"}, allChip: true},
		{name: "unicode folding", filter: CatalogFilter{Query: "école"}, want: []string{"book-9"}, allChip: true},
		{name: "category and query", filter: CatalogFilter{CategoryID: "cat-novel", Query: "himu"}, want: []string{"book-5"}},
		{name: "nothing", filter: CatalogFilter{Query: "zzz"}, want: []string{}, allChip: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Render(navigation.Catalog{}, testSnapshot(), Local{Catalog: tt.filter})
			require.NotNil(t, p.Catalog)

			got := make([]string, 0, len(p.Catalog.Books))
			for _, b := range p.Catalog.Books {
				got = append(got, b.ID)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) == 0, p.Catalog.Empty)
			assert.Equal(t, tt.allChip, p.Catalog.AllActive)
			assert.Len(t, p.Catalog.Categories, 2)
		})
	}
}

func TestDetailFallsBackToCatalog(t *testing.T) {
	p := Render(navigation.BookDetail{BookID: "book-gone"}, testSnapshot(), Local{})

	assert.Equal(t, navigation.ScreenCatalog, p.Screen)
	assert.Nil(t, p.Detail)
	assert.NotNil(t, p.Catalog)
}

func TestDetailRecommendations(t *testing.T) {
	snap := testSnapshot()
	items := []book.PartialBook{{Title: "Chokher Bali", Author: "Rabindranath Tagore"}}

	t.Run("result for another book shows loading", func(t *testing.T) {
		local := Local{Recommendations: recommend.State{BookID: "book-1", Status: recommend.StatusReady, Items: items}}
		p := Render(navigation.BookDetail{BookID: "book-2"}, snap, local)
		require.NotNil(t, p.Detail)
		assert.Equal(t, recommend.StatusLoading, p.Detail.Recommendations.Status)
		assert.Empty(t, p.Detail.Recommendations.Items)
	})

	t.Run("ready", func(t *testing.T) {
		local := Local{Recommendations: recommend.State{BookID: "book-2", Status: recommend.StatusReady, Items: items}}
		p := Render(navigation.BookDetail{BookID: "book-2"}, snap, local)
		assert.Equal(t, items, p.Detail.Recommendations.Items)
		assert.Empty(t, p.Detail.Message)
	})

	t.Run("empty", func(t *testing.T) {
		local := Local{Recommendations: recommend.State{BookID: "book-2", Status: recommend.StatusEmpty}}
		p := Render(navigation.BookDetail{BookID: "book-2"}, snap, local)
		assert.Equal(t, NoRecommendations, p.Detail.Message)
	})
}

func TestBuyableAndPriceLabel(t *testing.T) {
	p := Render(navigation.BookDetail{BookID: "book-9"}, testSnapshot(), Local{})
	assert.False(t, p.Detail.Book.Buyable)
	assert.Equal(t, PriceOnRequest, p.Detail.Book.PriceLabel)

	p = Render(navigation.BookDetail{BookID: "book-2"}, testSnapshot(), Local{})
	assert.True(t, p.Detail.Book.Buyable)
	assert.Equal(t, "৳300", p.Detail.Book.PriceLabel)
	assert.Equal(t, "৳99.5", PriceLabel(99.5))
}

func TestDashboardTabs(t *testing.T) {
	snap := testSnapshot()

	books := Render(navigation.Admin{Access: navigation.Dashboard{Tab: navigation.TabBooks}}, snap, Local{}).Dashboard
	require.NotNil(t, books)
	assert.Len(t, books.Books, len(snap.Books))
	assert.Nil(t, books.Orders)

	content := Render(navigation.Admin{Access: navigation.Dashboard{Tab: navigation.TabContent}}, snap, Local{}).Dashboard
	require.NotNil(t, content.Contact)
	assert.Equal(t, "hello@example.com", content.Contact.Email)
	assert.Equal(t, "Privacy Policy", content.Privacy.Title)
}

func TestFilterOrders(t *testing.T) {
	snap := testSnapshot()
	ids := func(rows []OrderRow) []string {
		out := []string{}
		for _, r := range rows {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"order-1", "order-2"}, ids(FilterOrders(snap, OrderFilter{})))
	assert.Equal(t, []string{"order-2"}, ids(FilterOrders(snap, OrderFilter{Status: book.StatusPending})))
	assert.Equal(t, []string{"order-1"}, ids(FilterOrders(snap, OrderFilter{Query: "dhaka"})))
	assert.Equal(t, []string{"order-2"}, ids(FilterOrders(snap, OrderFilter{Query: "deleted"})))
	assert.Equal(t, []string{"order-2"}, ids(FilterOrders(snap, OrderFilter{Query: "01822"})))
	assert.Equal(t, []string{"order-1"}, ids(FilterOrders(snap, OrderFilter{Query: "ORDER-1"})))
	assert.Empty(t, ids(FilterOrders(snap, OrderFilter{Status: book.StatusShipped})))
}

func TestOrdersKeepTitleOfDeletedBook(t *testing.T) {
	p := Render(navigation.Admin{Access: navigation.Dashboard{Tab: navigation.TabOrders}}, testSnapshot(), Local{})

	require.NotNil(t, p.Dashboard)
	rows := p.Dashboard.Orders
	require.Len(t, rows, 2)
	assert.False(t, rows[0].BookMissing)
	assert.True(t, rows[1].BookMissing)
	assert.Equal(t, "Deleted Book", rows[1].BookTitle)
	assert.Equal(t, book.OrderStatuses, p.Dashboard.Statuses)
}

func TestMatchBook(t *testing.T) {
	b := book.Book{Title: "Pather Panchali", Author: "Bibhutibhushan"}

	assert.True(t, MatchBook(b, ""))
	assert.True(t, MatchBook(b, "PANCH"))
	assert.True(t, MatchBook(b, "bibhuti"))
	assert.False(t, MatchBook(b, "tagore"))
}
