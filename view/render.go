package view

import (
	"slices"
	"strconv"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/navigation"
	"github.com/htol/bookshop/recommend"
	"github.com/htol/bookshop/repo"
)

// Render builds the page for v. A detail view whose book is gone renders
// the catalog instead.
func Render(v navigation.View, snap repo.Snapshot, local Local) Page {
	p := Page{
		Screen:   v.Screen(),
		Chrome:   true,
		Revision: snap.Revision,
		Errors:   local.Errors,
	}

	switch v := v.(type) {
	case navigation.Home:
		p.Home = renderHome(snap)
	case navigation.Catalog:
		p.Catalog = renderCatalog(snap, local.Catalog)
	case navigation.BookDetail:
		b, ok := snap.FindBook(v.BookID)
		if !ok {
			p.Screen = navigation.ScreenCatalog
			p.Catalog = renderCatalog(snap, local.Catalog)
			break
		}
		p.Detail = renderDetail(b, local.Recommendations)
	case navigation.Contact:
		p.Contact = &ContactPage{Info: snap.Contact}
	case navigation.Privacy:
		p.Privacy = &PrivacyPage{Policy: snap.Privacy}
	case navigation.Admin:
		switch a := v.Access.(type) {
		case navigation.LoginPrompt:
			p.Chrome = false
			p.Login = &LoginPage{Failed: a.Failed}
			if a.Failed {
				p.Login.Error = WrongCredentials
			}
		case navigation.Dashboard:
			p.Dashboard = renderDashboard(a.Tab, snap, local.Orders)
		}
	}
	return p
}

// Card wraps b with its display price.
func Card(b book.Book) BookCard {
	return BookCard{Book: b, PriceLabel: PriceLabel(b.Price), Buyable: b.Purchasable()}
}

// PriceLabel formats a price in taka. Unpriced books show PriceOnRequest.
func PriceLabel(price float64) string {
	if price <= 0 {
		return PriceOnRequest
	}
	return currencySymbol + strconv.FormatFloat(price, 'f', -1, 64)
}

func cards(books []book.Book) []BookCard {
	out := make([]BookCard, 0, len(books))
	for _, b := range books {
		out = append(out, Card(b))
	}
	return out
}

func renderHome(snap repo.Snapshot) *HomePage {
	featured := make([]book.Book, 0, MaxFeatured)
	for _, b := range snap.Books {
		if len(featured) == MaxFeatured {
			break
		}
		if b.Featured {
			featured = append(featured, b)
		}
	}
	return &HomePage{Featured: cards(featured), CallToAction: catalogCallToAction}
}

func renderCatalog(snap repo.Snapshot, f CatalogFilter) *CatalogPage {
	page := &CatalogPage{
		Categories: make([]CategoryChip, 0, len(snap.Categories)),
		Query:      f.Query,
	}

	genre := categoryName(snap, f.CategoryID)
	for _, c := range snap.Categories {
		page.Categories = append(page.Categories, CategoryChip{ID: c.ID, Name: c.Name, Image: c.Image, Selected: c.ID == f.CategoryID})
	}
	// An unknown category id behaves like "all".
	page.AllActive = genre == ""

	books := FilterBooks(snap, f)
	page.Books = cards(books)
	page.Empty = len(page.Books) == 0
	return page
}

func categoryName(snap repo.Snapshot, id string) string {
	for _, c := range snap.Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// FilterBooks returns the books in f's category whose title or author
// contains f's query, in store order.
func FilterBooks(snap repo.Snapshot, f CatalogFilter) []book.Book {
	genre := categoryName(snap, f.CategoryID)
	m := newMatcher(f.Query)
	books := []book.Book{}
	for _, b := range snap.Books {
		if genre != "" && !m.equal(b.Genre, genre) {
			continue
		}
		if m.any(b.Title, b.Author) {
			books = append(books, b)
		}
	}
	return books
}

func renderDetail(b book.Book, rec recommend.State) *DetailPage {
	page := &DetailPage{Book: Card(b)}
	if rec.BookID != b.ID || rec.Status == recommend.StatusIdle {
		// A result for another book is never shown here.
		page.Recommendations = recommend.State{BookID: b.ID, Status: recommend.StatusLoading, Items: []book.PartialBook{}}
		return page
	}
	page.Recommendations = rec
	if rec.Status == recommend.StatusEmpty {
		page.Message = NoRecommendations
	}
	return page
}

func renderDashboard(tab navigation.Tab, snap repo.Snapshot, f OrderFilter) *DashboardPage {
	page := &DashboardPage{
		Tab:  tab,
		Tabs: []navigation.Tab{navigation.TabBooks, navigation.TabOrders, navigation.TabContent},
	}

	switch tab {
	case navigation.TabBooks:
		page.Books = cards(snap.Books)
		page.Categories = slices.Clone(snap.Categories)
	case navigation.TabOrders:
		page.Orders = FilterOrders(snap, f)
		page.Statuses = slices.Clone(book.OrderStatuses)
		page.Filter = &f
	case navigation.TabContent:
		contact, privacy := snap.Contact, snap.Privacy
		page.Contact = &contact
		page.Privacy = &privacy
	}
	return page
}

// FilterOrders returns the orders matching f in store order.
func FilterOrders(snap repo.Snapshot, f OrderFilter) []OrderRow {
	m := newMatcher(f.Query)
	rows := make([]OrderRow, 0, len(snap.Orders))
	for _, o := range snap.Orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if !m.any(o.ID, o.CustomerName, o.Phone, o.Address, o.BookTitle) {
			continue
		}
		_, found := snap.FindBook(o.BookID)
		rows = append(rows, OrderRow{Order: o, BookMissing: !found})
	}
	return rows
}
