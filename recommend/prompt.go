package recommend

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/htol/bookshop/book"
)

// Count is the number of recommendations requested per book.
const Count = 4

// BuildPrompt asks the model for books similar to b.
func BuildPrompt(b book.Book) string {
	lang := b.Language
	if lang == "" {
		lang = book.DefaultLanguage
	}
	return fmt.Sprintf(
		"Recommend %d books similar to %q (author: %s, genre: %s). "+
			"For each book give a title, the author, a very short one-sentence tagline "+
			"and a cover image URL from picsum.photos in the format https://picsum.photos/seed/your-seed/400/600. "+
			"Write every answer in %s.",
		Count, b.Title, b.Author, b.Genre, lang,
	)
}

// ResponseSchema is the structured output the model must produce. Every
// item field is required.
func ResponseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recommendations": {
				Type:        genai.TypeArray,
				Description: "List of recommended books.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":      str("Title of the recommended book."),
						"author":     str("Author of the recommended book."),
						"tagline":    str("A short, catchy tagline for the book."),
						"coverImage": str("URL of a cover image from picsum.photos."),
					},
					Required: []string{"title", "author", "tagline", "coverImage"},
				},
			},
		},
		Required: []string{"recommendations"},
	}
}
