package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/logger"
)

// ContactMessage is a note left on the contact page
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}

// SaveContactInfo replaces the contact page document
func (s *Service) SaveContactInfo(ctx context.Context, c book.ContactInfo) error {
	c.Email = strings.TrimSpace(c.Email)
	lines := make([]string, 0, len(c.AddressLines))
	for _, l := range c.AddressLines {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	c.AddressLines = lines

	if err := s.validate.Struct(c); err != nil {
		return err
	}
	if err := s.repo.SetContactInfo(ctx, c); err != nil {
		return fmt.Errorf("save contact info: %w", err)
	}
	return nil
}

// SavePrivacyPolicy replaces the privacy policy document
func (s *Service) SavePrivacyPolicy(ctx context.Context, p book.PrivacyPolicy) error {
	p.Title = strings.TrimSpace(p.Title)
	for i := range p.Sections {
		p.Sections[i].Title = strings.TrimSpace(p.Sections[i].Title)
	}
	if err := s.validate.Struct(p); err != nil {
		return err
	}
	if err := s.repo.SetPrivacyPolicy(ctx, p); err != nil {
		return fmt.Errorf("save privacy policy: %w", err)
	}
	return nil
}

// SendContactMessage accepts a contact form message. Messages are logged,
// not stored
func (s *Service) SendContactMessage(ctx context.Context, m ContactMessage) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)
	if err := s.validate.Struct(m); err != nil {
		return err
	}

	n := s.messages.Add(1)
	logger.Info("contact message received", "from", m.Email, "length", len(m.Message), "total", n)
	return nil
}

// MessagesReceived counts accepted contact messages since startup
func (s *Service) MessagesReceived() int64 {
	return s.messages.Load()
}
