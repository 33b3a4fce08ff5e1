package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/logger"
	"github.com/htol/bookshop/opds"
	"github.com/htol/bookshop/repo"
	"github.com/htol/bookshop/view"
)

const (
	opdsRootURL        = "/opds"
	opdsOpenSearchURL  = "/opds/opensearch.xml"
	opdsSearchFeedURL  = "/opds/search"
	catalogTitle       = "Bookshop"
	catalogDescription = "Catalog of the bookshop storefront"
)

// respondWithOPDS writes an OPDS feed response with proper content type
func respondWithOPDS(w http.ResponseWriter, feed *opds.Feed, contentType string) {
	output, err := feed.Marshal()
	if err != nil {
		respondWithError(w, "Failed to generate feed", err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType+"; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(output); err != nil {
		logger.Debug("Failed to write feed", "error", err)
	}
}

// getBaseURL extracts the base URL from the request
func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	// Check for X-Forwarded-Proto header (common with reverse proxies)
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func (h *handler) snapshotOrFail(w http.ResponseWriter, r *http.Request) (repo.Snapshot, bool) {
	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		respondWithError(w, "Failed to read catalog", err, http.StatusInternalServerError)
		return repo.Snapshot{}, false
	}
	return snap, true
}

// opdsRoot returns the OPDS catalog root (navigation feed)
func (h *handler) opdsRoot(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrFail(w, r)
	if !ok {
		return
	}
	baseURL := getBaseURL(r)

	feed := opds.NewNavigationFeed("urn:bookshop:root", catalogTitle, baseURL+opdsRootURL, baseURL+opdsRootURL)
	feed.AddSearchLink(baseURL + opdsOpenSearchURL)

	feed.AddAcquisitionNavigationEntry("urn:bookshop:books", "All books", baseURL+"/opds/books",
		fmt.Sprintf("%d titles", len(snap.Books)))
	feed.AddAcquisitionNavigationEntry("urn:bookshop:featured", "Featured", baseURL+"/opds/featured",
		"Hand-picked titles")
	for _, c := range snap.Categories {
		feed.AddAcquisitionNavigationEntry("urn:bookshop:category:"+c.ID, c.Name,
			baseURL+"/opds/categories/"+url.PathEscape(c.ID), "")
	}

	respondWithOPDS(w, feed, opds.TypeNavigation)
}

// opdsOpenSearch returns the OpenSearch description XML
func (h *handler) opdsOpenSearch(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrFail(w, r)
	if !ok {
		return
	}
	desc := opds.NewOpenSearchDescription(opds.SearchEndpoint{
		ShortName:   catalogTitle,
		Description: catalogDescription,
		Contact:     snap.Contact.Email,
		FeedURL:     getBaseURL(r) + opdsSearchFeedURL,
	})
	output, err := desc.Marshal()
	if err != nil {
		respondWithError(w, "Failed to generate OpenSearch description", err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", opds.TypeOpenSearch+"; charset=utf-8")
	if _, err := w.Write(output); err != nil {
		logger.Debug("Failed to write OpenSearch description", "error", err)
	}
}

// acquisitionFeed lists books in an acquisition feed below the root
func acquisitionFeed(r *http.Request, id, title, selfPath string, books []book.Book) *opds.Feed {
	baseURL := getBaseURL(r)
	feed := opds.NewAcquisitionFeed(id, title, baseURL+selfPath, baseURL+opdsRootURL)
	feed.AddUpLink(baseURL + opdsRootURL)
	feed.AddSearchLink(baseURL + opdsOpenSearchURL)
	for _, b := range books {
		feed.AddBookEntry(b, baseURL)
	}
	return feed
}

// opdsSearch returns search results as acquisition feed
func (h *handler) opdsSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithValidationError(w, "missing 'q' query parameter")
		return
	}
	snap, ok := h.snapshotOrFail(w, r)
	if !ok {
		return
	}

	var results []book.Book
	for _, b := range snap.Books {
		if view.MatchBook(b, query) {
			results = append(results, b)
		}
	}

	feed := acquisitionFeed(r, "urn:bookshop:search:"+url.QueryEscape(query), "Search: "+query,
		opdsSearchFeedURL+"?q="+url.QueryEscape(query), results)
	respondWithOPDS(w, feed, opds.TypeAcquisition)
}

func (h *handler) opdsAllBooks(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrFail(w, r)
	if !ok {
		return
	}
	respondWithOPDS(w, acquisitionFeed(r, "urn:bookshop:books", "All books", "/opds/books", snap.Books), opds.TypeAcquisition)
}

func (h *handler) opdsFeatured(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrFail(w, r)
	if !ok {
		return
	}
	var featured []book.Book
	for _, b := range snap.Books {
		if b.Featured {
			featured = append(featured, b)
		}
	}
	respondWithOPDS(w, acquisitionFeed(r, "urn:bookshop:featured", "Featured", "/opds/featured", featured), opds.TypeAcquisition)
}

// opdsCategory lists the books whose genre is the category's name
func (h *handler) opdsCategory(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrFail(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var category *book.Category
	for i := range snap.Categories {
		if snap.Categories[i].ID == id {
			category = &snap.Categories[i]
			break
		}
	}
	if category == nil {
		respondWithError(w, "category not found", repo.ErrNotFound, http.StatusNotFound)
		return
	}

	books := view.FilterBooks(snap, view.CatalogFilter{CategoryID: id})
	respondWithOPDS(w, acquisitionFeed(r, "urn:bookshop:category:"+id, category.Name,
		"/opds/categories/"+url.PathEscape(id), books), opds.TypeAcquisition)
}
