package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/logger"
	"github.com/htol/bookshop/repo"
	"github.com/htol/bookshop/validator"
)

func init() {
	// Initialize logger for tests
	logger.Init("error")
}

type fakeRecommender struct {
	items []book.PartialBook
	seen  []string
}

func (f *fakeRecommender) Recommend(ctx context.Context, b book.Book) []book.PartialBook {
	f.seen = append(f.seen, b.ID)
	return f.items
}

func newTestService(t *testing.T) (*Service, *repo.Repo) {
	t.Helper()
	seed, err := repo.DefaultSeed()
	require.NoError(t, err)
	r, err := repo.Open(context.Background(), seed)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	svc, err := New(r, nil, Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, r
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	fe, ok := validator.AsFieldErrors(err)
	require.True(t, ok, "expected field errors, got %v", err)
	return fe.Fields
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(nil, nil, Credentials{Username: "admin"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)

	assert.True(t, svc.Login("admin", "secret"))
	assert.False(t, svc.Login("admin", "wrong"))
	assert.False(t, svc.Login("root", "secret"))
	assert.False(t, svc.Login("", ""))
}

func TestSaveBookRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.SaveBook(ctx, book.Book{Title: "Padma Nadir Majhi", Author: "Manik Bandopadhyay", Price: 320})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	edited := created
	edited.Price = 350
	edited.Tagline = "Life on the river"
	edited.Featured = true
	_, err = svc.SaveBook(ctx, edited)
	require.NoError(t, err)

	got, err := svc.FindBook(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(edited, got); diff != "" {
		t.Errorf("book mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveBookUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveBook(context.Background(), book.Book{ID: "book-missing", Title: "T", Author: "A"})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestSaveBookRequiresTitleAndAuthor(t *testing.T) {
	svc, r := newTestService(t)
	before := r.Revision()

	_, err := svc.SaveBook(context.Background(), book.Book{Price: -1})

	assert.Equal(t, map[string]string{
		"title":  "is required",
		"author": "is required",
		"price":  "must be a non-negative number",
	}, fieldErrors(t, err))
	assert.Equal(t, before, r.Revision())
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "250", want: 250},
		{in: " 99.5 ", want: 99.5},
		{in: "0", want: 0},
		{in: "-3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBookForm(t *testing.T) {
	svc, _ := newTestService(t)

	b, err := svc.ParseBookForm(BookForm{ID: " book-1 ", Title: " Debdas ", Author: "Sarat Chandra", Price: "180", Featured: true})
	require.NoError(t, err)
	assert.Equal(t, book.Book{ID: "book-1", Title: "Debdas", Author: "Sarat Chandra", Price: 180, Featured: true}, b)

	_, err = svc.ParseBookForm(BookForm{Title: "Debdas", Price: "cheap"})
	assert.Equal(t, map[string]string{
		"author": "is required",
		"price":  "must be a non-negative number",
	}, fieldErrors(t, err))
}

func TestDeleteBookRequiresConfirmation(t *testing.T) {
	svc, r := newTestService(t)
	ctx := context.Background()

	err := svc.DeleteBook(ctx, "book-1", false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	_, err = r.FindBook(ctx, "book-1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, "book-1", true))
	_, err = r.FindBook(ctx, "book-1")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteBook(ctx, "book-1", true), repo.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteBook(ctx, "../etc", true), validator.ErrInvalidID)
}

func TestSubmitOrderAssignsSystemFields(t *testing.T) {
	svc, r := newTestService(t)
	ctx := context.Background()

	o, err := svc.SubmitOrder(ctx, OrderForm{
		BookID:       "book-2",
		CustomerName: "  Rahim Uddin ",
		Phone:        "+8801711000000",
		Address:      "House 5, Road 2, Dhanmondi",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(o.ID, "order-"))
	assert.Equal(t, book.StatusPending, o.Status)
	assert.Equal(t, svc.now(), o.Date)
	assert.Equal(t, "Gitanjali", o.BookTitle)
	assert.Equal(t, "Rahim Uddin", o.CustomerName)

	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, o, orders[len(orders)-1])
}

func TestSubmitOrderValidationCreatesNothing(t *testing.T) {
	tests := []struct {
		name string
		form OrderForm
		want map[string]string
	}{
		{
			name: "all empty",
			form: OrderForm{BookID: "book-2", CustomerName: "  ", Phone: "", Address: "\t"},
			want: map[string]string{
				"customerName": "is required",
				"phone":        "is required",
				"address":      "is required",
			},
		},
		{
			name: "bad phone",
			form: OrderForm{BookID: "book-2", CustomerName: "Karim", Phone: "017-11", Address: "Sylhet"},
			want: map[string]string{"phone": "must be a valid phone number"},
		},
		{
			name: "plus in the middle",
			form: OrderForm{BookID: "book-2", CustomerName: "Karim", Phone: "01+711", Address: "Sylhet"},
			want: map[string]string{"phone": "must be a valid phone number"},
		},
		{
			name: "validation before lookup",
			form: OrderForm{BookID: "book-missing", CustomerName: "Karim", Phone: "x", Address: "Sylhet"},
			want: map[string]string{"phone": "must be a valid phone number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, r := newTestService(t)
			ctx := context.Background()
			before, err := r.ListOrders(ctx)
			require.NoError(t, err)

			_, err = svc.SubmitOrder(ctx, tt.form)
			assert.Equal(t, tt.want, fieldErrors(t, err))

			after, err := r.ListOrders(ctx)
			require.NoError(t, err)
			assert.Len(t, after, len(before))
		})
	}
}

func TestSubmitOrderBookChecks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	form := OrderForm{CustomerName: "Karim", Phone: "01711000000", Address: "Sylhet"}

	form.BookID = "book-missing"
	_, err := svc.SubmitOrder(ctx, form)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	rec, err := svc.OpenRecommended(ctx, book.PartialBook{Title: "Aparajito", Author: "Bibhutibhushan"})
	require.NoError(t, err)
	form.BookID = rec.ID
	_, err = svc.SubmitOrder(ctx, form)
	assert.ErrorIs(t, err, ErrNotPurchasable)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, r := newTestService(t)
	ctx := context.Background()
	const id = "order-1714557600000"

	// Any status may follow any other, including leaving Delivered.
	for _, st := range []string{"pending", "Cancelled", "SHIPPED", "Delivered"} {
		require.NoError(t, svc.UpdateOrderStatus(ctx, id, st))
	}
	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, book.StatusDelivered, orders[0].Status)

	err = svc.UpdateOrderStatus(ctx, id, "Lost")
	assert.Contains(t, fieldErrors(t, err), "status")
	assert.ErrorIs(t, svc.UpdateOrderStatus(ctx, "order-1", "Shipped"), repo.ErrNotFound)
}

func TestDeleteOrderKeepsTitleOfDeletedBook(t *testing.T) {
	svc, r := newTestService(t)
	ctx := context.Background()

	o, err := svc.SubmitOrder(ctx, OrderForm{BookID: "book-3", CustomerName: "Karim", Phone: "01711000000", Address: "Sylhet"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBook(ctx, "book-3", true))

	orders, err := r.ListOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sonar Kella", orders[len(orders)-1].BookTitle)

	assert.ErrorIs(t, svc.DeleteOrder(ctx, o.ID, false), ErrConfirmationRequired)
	require.NoError(t, svc.DeleteOrder(ctx, o.ID, true))
	assert.ErrorIs(t, svc.DeleteOrder(ctx, o.ID, true), repo.ErrNotFound)
}

func TestSaveContent(t *testing.T) {
	svc, r := newTestService(t)
	ctx := context.Background()

	err := svc.SaveContactInfo(ctx, book.ContactInfo{Email: "not-an-email"})
	assert.Equal(t, map[string]string{"email": "must be a valid email address"}, fieldErrors(t, err))

	contact := book.ContactInfo{AddressLines: []string{" 12 College Street ", "", "Kolkata"}, Email: "hello@boipoka.test", Phone: "+8801700000000", Hours: "10-8"}
	require.NoError(t, svc.SaveContactInfo(ctx, contact))
	got, err := r.ContactInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"12 College Street", "Kolkata"}, got.AddressLines)

	err = svc.SavePrivacyPolicy(ctx, book.PrivacyPolicy{Title: "Privacy", Sections: []book.PolicySection{{Content: "orphan"}}})
	assert.Equal(t, map[string]string{"sections[0].title": "is required"}, fieldErrors(t, err))

	policy := book.PrivacyPolicy{Title: "Privacy", LastUpdated: "June 2024", Sections: []book.PolicySection{{Title: "Data", Content: "We keep little."}}}
	require.NoError(t, svc.SavePrivacyPolicy(ctx, policy))
	gotPolicy, err := r.PrivacyPolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, policy, gotPolicy)
}

func TestSendContactMessage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	err := svc.SendContactMessage(ctx, ContactMessage{Name: "Mitu", Email: "mitu", Message: " "})
	assert.Equal(t, map[string]string{
		"email":   "must be a valid email address",
		"message": "is required",
	}, fieldErrors(t, err))
	assert.Zero(t, svc.MessagesReceived())

	require.NoError(t, svc.SendContactMessage(ctx, ContactMessage{Name: "Mitu", Email: "mitu@example.com", Message: "Do you ship abroad?"}))
	assert.Equal(t, int64(1), svc.MessagesReceived())
}

func TestOpenRecommendedReusesExisting(t *testing.T) {
	svc, r := newTestService(t)
	ctx := context.Background()

	first, err := svc.OpenRecommended(ctx, book.PartialBook{Title: "Aparajito", Author: "Bibhutibhushan", Tagline: "The sequel."})
	require.NoError(t, err)
	assert.Equal(t, book.RecommendedGenre, first.Genre)

	again, err := svc.OpenRecommended(ctx, book.PartialBook{Title: "aparajito", Author: "BIBHUTIBHUSHAN"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = svc.OpenRecommended(ctx, book.PartialBook{Title: "No author"})
	assert.Equal(t, map[string]string{"author": "is required"}, fieldErrors(t, err))

	books, err := r.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 9)
}

func TestRecommend(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Empty(t, svc.Recommend(context.Background(), book.Book{ID: "book-1"}))

	fake := &fakeRecommender{items: []book.PartialBook{{Title: "x"}}}
	svc.recommender = fake
	assert.Len(t, svc.Recommend(context.Background(), book.Book{ID: "book-1"}), 1)
	assert.Equal(t, []string{"book-1"}, fake.seen)
}

func TestSnapshotAndPing(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Ping(context.Background()))
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Books)
	assert.False(t, errors.Is(err, repo.ErrNotFound))
}
