package book

// Defaults applied when a recommended title is materialized into a Book.
const (
	PlaceholderPrice = 0.0
	RecommendedGenre = "Recommended"
	DefaultLanguage  = "Bangla"
	UnknownPublisher = "Unknown publisher"
)

// PlaceholderDescription is the description given to a hydrated recommendation.
func PlaceholderDescription(p PartialBook) string {
	if p.Tagline == "" {
		return "Recommended for readers of similar books. Details coming soon."
	}
	return p.Tagline + " Recommended for readers of similar books. Details coming soon."
}

// Hydrate expands a recommendation into a full Book with the given identifier.
func Hydrate(p PartialBook, id string) Book {
	return Book{
		ID:          id,
		Title:       p.Title,
		Author:      p.Author,
		Tagline:     p.Tagline,
		CoverImage:  p.CoverImage,
		Price:       PlaceholderPrice,
		Description: PlaceholderDescription(p),
		Genre:       RecommendedGenre,
		Language:    DefaultLanguage,
		Publisher:   UnknownPublisher,
		Featured:    false,
	}
}
