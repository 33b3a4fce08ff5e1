package opds

import (
	"encoding/xml"
	"net/url"
)

// OpenSearchDescription is the OpenSearch 1.1 document that tells OPDS
// readers how to query the storefront catalog
type OpenSearchDescription struct {
	XMLName     xml.Name      `xml:"OpenSearchDescription"`
	Xmlns       string        `xml:"xmlns,attr"`
	ShortName   string        `xml:"ShortName"`
	Description string        `xml:"Description"`
	Contact     string        `xml:"Contact,omitempty"`
	Language    string        `xml:"Language,omitempty"`
	InputEnc    string        `xml:"InputEncoding"`
	OutputEnc   string        `xml:"OutputEncoding"`
	URL         OpenSearchURL `xml:"Url"`
}

type OpenSearchURL struct {
	Type     string `xml:"type,attr"`
	Template string `xml:"template,attr"`
}

// SearchEndpoint describes the shop's catalog search
type SearchEndpoint struct {
	ShortName   string
	Description string
	// Contact is the shop's public email, if it has one
	Contact string
	// FeedURL is the absolute URL of the OPDS search feed; the query goes
	// in its q parameter
	FeedURL string
}

// NewOpenSearchDescription builds the description document for e
func NewOpenSearchDescription(e SearchEndpoint) *OpenSearchDescription {
	return &OpenSearchDescription{
		Xmlns:       NamespaceSearch,
		ShortName:   e.ShortName,
		Description: e.Description,
		Contact:     e.Contact,
		Language:    "*",
		InputEnc:    "UTF-8",
		OutputEnc:   "UTF-8",
		URL:         OpenSearchURL{Type: TypeAcquisition, Template: searchTemplate(e.FeedURL)},
	}
}

// searchTemplate appends the searchTerms placeholder to rawURL, keeping any
// query it already has. The placeholder must stay unescaped
func searchTemplate(rawURL string) string {
	sep := "?"
	if u, err := url.Parse(rawURL); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return rawURL + sep + "q={searchTerms}"
}

func (o *OpenSearchDescription) Marshal() ([]byte, error) {
	output, err := xml.MarshalIndent(o, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), output...), nil
}
