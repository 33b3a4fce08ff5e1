package opds

import (
	"encoding/xml"
	"net/url"
	"strconv"
	"time"

	"github.com/htol/bookshop/book"
)

var feedAuthor = Author{
	Name: "bookshop",
	URI:  "https://github.com/htol/bookshop",
}

// NewNavigationFeed creates a new navigation feed
func NewNavigationFeed(id, title, selfURL, startURL string) *Feed {
	return newFeed(id, title, Link{Rel: RelSelf, Href: selfURL, Type: TypeNavigation}, startURL)
}

// NewAcquisitionFeed creates a new acquisition feed
func NewAcquisitionFeed(id, title, selfURL, startURL string) *Feed {
	return newFeed(id, title, Link{Rel: RelSelf, Href: selfURL, Type: TypeAcquisition}, startURL)
}

func newFeed(id, title string, self Link, startURL string) *Feed {
	author := feedAuthor
	return &Feed{
		Xmlns:     NamespaceAtom,
		XmlnsDc:   NamespaceDC,
		XmlnsOpds: NamespaceOpds,
		ID:        id,
		Title:     title,
		Updated:   time.Now().UTC(),
		Author:    &author,
		Links: []Link{
			self,
			{Rel: RelStart, Href: startURL, Type: TypeNavigation},
		},
		Entries: []Entry{},
	}
}

// AddSearchLink adds an OpenSearch link to the feed
func (f *Feed) AddSearchLink(searchURL string) {
	f.Links = append(f.Links, Link{
		Rel:  RelSearch,
		Href: searchURL,
		Type: TypeOpenSearch,
	})
}

// AddUpLink adds a parent navigation link
func (f *Feed) AddUpLink(upURL string) {
	f.Links = append(f.Links, Link{Rel: RelUp, Href: upURL, Type: TypeNavigation})
}

// AddAcquisitionNavigationEntry adds a navigation entry that links to an acquisition feed
func (f *Feed) AddAcquisitionNavigationEntry(id, title, href, content string) {
	entry := Entry{
		ID:      id,
		Title:   title,
		Updated: f.Updated,
		Links: []Link{
			{Rel: RelSubsection, Href: href, Type: TypeAcquisition},
		},
	}
	if content != "" {
		entry.Content = &Content{Type: "text", Value: content}
	}
	f.Entries = append(f.Entries, entry)
}

// AddBookEntry adds a book entry. Priced books carry a buy link pointing
// at the storefront; unpriced ones are listed without one
func (f *Feed) AddBookEntry(b book.Book, baseURL string) {
	entry := Entry{
		ID:        "urn:bookshop:" + b.ID,
		Title:     b.Title,
		Updated:   f.Updated,
		Summary:   b.Tagline,
		Language:  b.Language,
		Publisher: b.Publisher,
		Links:     []Link{},
	}
	if b.Author != "" {
		entry.Authors = []Author{{Name: b.Author}}
	}
	if b.Description != "" {
		entry.Content = &Content{Type: "text", Value: b.Description}
	}
	if b.Genre != "" {
		entry.Categories = []Category{{Term: b.Genre, Label: b.Genre}}
	}

	if b.CoverImage != "" {
		entry.Links = append(entry.Links,
			Link{Rel: RelImage, Href: b.CoverImage, Type: "image/jpeg"},
			Link{Rel: RelImageThumbnail, Href: b.CoverImage, Type: "image/jpeg"},
		)
	}

	storefront := baseURL + "/?book=" + url.QueryEscape(b.ID)
	entry.Links = append(entry.Links, Link{Rel: RelAlternate, Href: storefront, Type: TypeHTML})
	if b.Purchasable() {
		entry.Links = append(entry.Links, Link{
			Rel:  RelAcquisitionBuy,
			Href: storefront,
			Type: TypeHTML,
			Price: &Price{
				CurrencyCode: CurrencyCode,
				Value:        strconv.FormatFloat(b.Price, 'f', 2, 64),
			},
		})
	}

	f.Entries = append(f.Entries, entry)
}

// Marshal returns the XML representation of the feed
func (f *Feed) Marshal() ([]byte, error) {
	output, err := xml.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), output...), nil
}
