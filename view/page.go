// Package view turns the current navigation state and a store snapshot into
// the page a client draws. Rendering has no side effects.
package view

import (
	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/navigation"
	"github.com/htol/bookshop/recommend"
)

const (
	MaxFeatured         = 4
	WrongCredentials    = "wrong credentials"
	NoRecommendations   = "no recommendations available"
	PriceOnRequest      = "price on request"
	currencySymbol      = "৳"
	catalogCallToAction = "allBooks"
)

// CatalogFilter narrows the catalog. Empty fields match everything.
type CatalogFilter struct {
	CategoryID string `json:"categoryId"`
	Query      string `json:"query"`
}

// OrderFilter narrows the dashboard order list.
type OrderFilter struct {
	Status book.OrderStatus `json:"status"`
	Query  string           `json:"query"`
}

// Local is the view state a session keeps outside the store.
type Local struct {
	Catalog         CatalogFilter
	Orders          OrderFilter
	Recommendations recommend.State
	Errors          map[string]string
}

// Page is one rendered screen. Exactly one of the screen fields is set.
type Page struct {
	Screen   navigation.Screen `json:"screen"`
	Chrome   bool              `json:"chrome"`
	Revision uint64            `json:"revision"`
	Errors   map[string]string `json:"errors,omitempty"`

	Home      *HomePage      `json:"home,omitempty"`
	Catalog   *CatalogPage   `json:"catalog,omitempty"`
	Detail    *DetailPage    `json:"detail,omitempty"`
	Contact   *ContactPage   `json:"contact,omitempty"`
	Privacy   *PrivacyPage   `json:"privacy,omitempty"`
	Login     *LoginPage     `json:"login,omitempty"`
	Dashboard *DashboardPage `json:"dashboard,omitempty"`
}

// BookCard is a book as listed, with its display price.
type BookCard struct {
	book.Book
	PriceLabel string `json:"priceLabel"`
	Buyable    bool   `json:"buyable"`
}

// HomePage lists up to MaxFeatured featured books below the call to action.
type HomePage struct {
	Featured     []BookCard `json:"featured"`
	CallToAction string     `json:"callToAction"`
}

type CategoryChip struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Selected bool   `json:"selected"`
}

// CatalogPage is the filtered list of all books.
type CatalogPage struct {
	Categories []CategoryChip `json:"categories"`
	AllActive  bool           `json:"allActive"`
	Query      string         `json:"query"`
	Books      []BookCard     `json:"books"`
	Empty      bool           `json:"empty"`
}

// DetailPage shows one book and its recommendation panel.
type DetailPage struct {
	Book            BookCard        `json:"book"`
	Recommendations recommend.State `json:"recommendations"`
	Message         string          `json:"message,omitempty"`
}

type ContactPage struct {
	Info book.ContactInfo `json:"info"`
}

type PrivacyPage struct {
	Policy book.PrivacyPolicy `json:"policy"`
}

type LoginPage struct {
	Failed bool   `json:"failed"`
	Error  string `json:"error,omitempty"`
}

// OrderRow is an order as listed on the dashboard. BookMissing is set when
// the ordered book has since been deleted.
type OrderRow struct {
	book.Order
	BookMissing bool `json:"bookMissing"`
}

// DashboardPage holds the data of the selected admin tab only.
type DashboardPage struct {
	Tab  navigation.Tab   `json:"tab"`
	Tabs []navigation.Tab `json:"tabs"`

	Books      []BookCard      `json:"books,omitempty"`
	Categories []book.Category `json:"categories,omitempty"`

	Orders   []OrderRow         `json:"orders,omitempty"`
	Statuses []book.OrderStatus `json:"statuses,omitempty"`
	Filter   *OrderFilter       `json:"filter,omitempty"`

	Contact *book.ContactInfo   `json:"contact,omitempty"`
	Privacy *book.PrivacyPolicy `json:"privacy,omitempty"`
}
