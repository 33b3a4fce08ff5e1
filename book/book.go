// Package book holds the storefront data model.
package book

// Book is a catalog entry.
type Book struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Author      string  `json:"author" yaml:"author"`
	Price       float64 `json:"price" yaml:"price"`
	CoverImage  string  `json:"coverImage" yaml:"coverImage"`
	Description string  `json:"description" yaml:"description"`
	Genre       string  `json:"genre" yaml:"genre"`
	Tagline     string  `json:"tagline" yaml:"tagline"`
	Language    string  `json:"language" yaml:"language"`
	Publisher   string  `json:"publisher" yaml:"publisher"`
	Featured    bool    `json:"isFeatured" yaml:"featured"`
}

// Purchasable reports whether the book can be ordered. Unpriced books,
// such as freshly opened recommendations, cannot.
func (b Book) Purchasable() bool {
	return b.Price > 0
}

// PartialBook is the reduced shape returned by the recommendation service.
type PartialBook struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Tagline    string `json:"tagline"`
	CoverImage string `json:"coverImage"`
}

// Category labels books by genre name. Read-only.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image,omitempty" yaml:"image"`
}
