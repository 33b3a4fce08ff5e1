package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/navigation"
	"github.com/htol/bookshop/service"
	"github.com/htol/bookshop/session"
	"github.com/htol/bookshop/validator"
	"github.com/htol/bookshop/view"
)

func validatorFields(err error) (map[string]string, bool) {
	fe, ok := validator.AsFieldErrors(err)
	if !ok {
		return nil, false
	}
	return fe.Fields, true
}

// confirmed reads the confirm query parameter of destructive requests
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

type tabRequest struct {
	Tab string `json:"tab"`
}

func (h *handler) selectTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}
	tab, ok := navigation.ParseTab(req.Tab)
	if !ok {
		respondWithValidationError(w, "unknown tab "+strconv.Quote(req.Tab))
		return
	}

	s := sessionFrom(r.Context())
	s.With(func(st *session.State) {
		leave(s, st, func(nav *navigation.Navigator) {
			if err := nav.SelectTab(tab); err != nil {
				_ = nav.Navigate(navigation.ScreenAdmin)
				_ = nav.SelectTab(tab)
			}
		})
	})
	h.respondWithPage(w, r, http.StatusOK)
}

type orderFilterRequest struct {
	Status string `json:"status"`
	Query  string `json:"query"`
}

func (h *handler) filterOrders(w http.ResponseWriter, r *http.Request) {
	var req orderFilterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	f := view.OrderFilter{Query: req.Query}
	if req.Status != "" {
		st, err := book.ParseOrderStatus(req.Status)
		if err != nil {
			respondWithValidationError(w, err.Error())
			return
		}
		f.Status = st
	}

	sessionFrom(r.Context()).With(func(st *session.State) { *st.Orders = f })
	h.respondWithPage(w, r, http.StatusOK)
}

// saveBook creates a book when the form has no id and replaces it otherwise
func (h *handler) saveBook(w http.ResponseWriter, r *http.Request) {
	var f service.BookForm
	if err := decodeJSON(r, &f); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	b, err := h.svc.ParseBookForm(f)
	if err == nil {
		b, err = h.svc.SaveBook(r.Context(), b)
	}
	rememberFieldErrors(sessionFrom(r.Context()), err)
	if err != nil {
		respondWithServiceError(w, "Failed to save book", err)
		return
	}

	status := http.StatusOK
	if f.ID == "" {
		status = http.StatusCreated
	}
	respondJSON(w, status, b)
}

func (h *handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBook(r.Context(), chi.URLParam(r, "id"), confirmed(r)); err != nil {
		respondWithServiceError(w, "Failed to delete book", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}
	if err := h.svc.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		respondWithServiceError(w, "Failed to update order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteOrder(r.Context(), chi.URLParam(r, "id"), confirmed(r)); err != nil {
		respondWithServiceError(w, "Failed to delete order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) saveContactInfo(w http.ResponseWriter, r *http.Request) {
	var c book.ContactInfo
	if err := decodeJSON(r, &c); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}
	err := h.svc.SaveContactInfo(r.Context(), c)
	rememberFieldErrors(sessionFrom(r.Context()), err)
	if err != nil {
		respondWithServiceError(w, "Failed to save contact info", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) savePrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	var p book.PrivacyPolicy
	if err := decodeJSON(r, &p); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}
	err := h.svc.SavePrivacyPolicy(r.Context(), p)
	rememberFieldErrors(sessionFrom(r.Context()), err)
	if err != nil {
		respondWithServiceError(w, "Failed to save privacy policy", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
