package book

// ContactInfo is the editable contact page document.
type ContactInfo struct {
	AddressLines []string `json:"addressLines" yaml:"addressLines"`
	Email        string   `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone" yaml:"phone"`
	Hours        string   `json:"hours" yaml:"hours"`
}

// PrivacyPolicy is the editable privacy policy document.
type PrivacyPolicy struct {
	Title       string          `json:"title" yaml:"title" validate:"required"`
	LastUpdated string          `json:"lastUpdated" yaml:"lastUpdated"`
	Sections    []PolicySection `json:"sections" yaml:"sections" validate:"dive"`
}

// PolicySection is one titled part of the privacy policy.
type PolicySection struct {
	Title   string `json:"title" yaml:"title" validate:"required"`
	Content string `json:"content" yaml:"content"`
}
