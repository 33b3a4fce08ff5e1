package repo

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/htol/bookshop/book"
)

//go:embed seed/catalog.yaml
var defaultSeed []byte

// Seed is the initial content of the store
type Seed struct {
	Categories []book.Category    `yaml:"categories"`
	Books      []book.Book        `yaml:"books"`
	Orders     []book.Order       `yaml:"orders"`
	Contact    book.ContactInfo   `yaml:"contact"`
	Privacy    book.PrivacyPolicy `yaml:"privacy"`
}

// LoadSeed decodes a YAML catalog. Unknown keys are rejected
func LoadSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &seed, nil
}

// DefaultSeed returns the catalog embedded in the binary
func DefaultSeed() (*Seed, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// LoadSeedFile reads the catalog at path, or the embedded one when path is empty
func LoadSeedFile(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}
