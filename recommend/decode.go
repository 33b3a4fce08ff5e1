package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/validator"
)

type response struct {
	Recommendations []recommendation `json:"recommendations" validate:"required,dive"`
}

type recommendation struct {
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	Tagline    string `json:"tagline" validate:"required"`
	CoverImage string `json:"coverImage" validate:"required"`
}

var validate = validator.New()

// Decode parses a model response. Any deviation from the schema, including
// unknown fields and trailing data, fails the whole response.
func Decode(raw string) ([]book.PartialBook, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(raw)))
	dec.DisallowUnknownFields()

	var resp response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode recommendations: trailing data")
	}
	if err := validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	items := make([]book.PartialBook, 0, len(resp.Recommendations))
	for _, r := range resp.Recommendations {
		items = append(items, book.PartialBook{
			Title:      r.Title,
			Author:     r.Author,
			Tagline:    r.Tagline,
			CoverImage: r.CoverImage,
		})
	}
	return items, nil
}
