package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/htol/bookshop/book"
)

const (
	contentContact = "contact"
	contentPrivacy = "privacy"
)

func saveContent(ctx context.Context, ex execer, name string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s content: %w", name, err)
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO content (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body`, name, string(body))
	if err != nil {
		return fmt.Errorf("save %s content: %w", name, err)
	}
	return nil
}

// loadContent leaves dst untouched when the document was never saved
func (r *Repo) loadContent(ctx context.Context, name string, dst any) error {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM content WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s content: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("decode %s content: %w", name, err)
	}
	return nil
}

func (r *Repo) ContactInfo(ctx context.Context) (book.ContactInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var c book.ContactInfo
	err := r.loadContent(ctx, contentContact, &c)
	return c, err
}

func (r *Repo) SetContactInfo(ctx context.Context, c book.ContactInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := saveContent(ctx, r.db, contentContact, c); err != nil {
		return err
	}
	r.bump()
	return nil
}

func (r *Repo) PrivacyPolicy(ctx context.Context) (book.PrivacyPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var p book.PrivacyPolicy
	err := r.loadContent(ctx, contentPrivacy, &p)
	return p, err
}

func (r *Repo) SetPrivacyPolicy(ctx context.Context, p book.PrivacyPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := saveContent(ctx, r.db, contentPrivacy, p); err != nil {
		return err
	}
	r.bump()
	return nil
}
