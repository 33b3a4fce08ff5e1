package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/htol/bookshop/book"
	"github.com/htol/bookshop/navigation"
	"github.com/htol/bookshop/recommend"
	"github.com/htol/bookshop/service"
	"github.com/htol/bookshop/session"
	"github.com/htol/bookshop/view"
)

type fragmentRequest struct {
	Fragment string `json:"fragment"`
}

// createSession starts a fresh session, as a page load does
func (h *handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req fragmentRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondWithValidationError(w, err.Error())
			return
		}
	}

	s := h.sessions.Create(req.Fragment)
	setSessionCookie(w, r, s)

	resp, err := h.render(r.Context(), s)
	if err != nil {
		respondWithError(w, "Failed to render page", err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (h *handler) currentView(w http.ResponseWriter, r *http.Request) {
	h.respondWithPage(w, r, http.StatusOK)
}

func (h *handler) navigate(w http.ResponseWriter, r *http.Request) {
	var req fragmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	s := sessionFrom(r.Context())
	s.With(func(st *session.State) {
		leave(s, st, func(nav *navigation.Navigator) { nav.NavigateFragment(req.Fragment) })
		st.Errors = nil
	})
	h.respondWithPage(w, r, http.StatusOK)
}

// showBook moves the session to b's detail view and starts fetching
// recommendations in the background. The panel ticket is taken under the
// session lock so the newest open always owns the panel
func (h *handler) showBook(s *session.Session, b book.Book) (<-chan struct{}, error) {
	var (
		err    error
		ticket recommend.Ticket
	)
	p := s.Panel()
	s.With(func(st *session.State) {
		leave(s, st, func(nav *navigation.Navigator) { err = nav.OpenBook(b.ID) })
		st.Errors = nil
		if err == nil {
			ticket = p.Begin(b.ID)
		}
	})
	if err != nil {
		return nil, err
	}
	return recommend.Load(h.baseCtx, h.svc, p, ticket, b), nil
}

func (h *handler) openBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.FindBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, "Failed to open book", err)
		return
	}
	if _, err := h.showBook(sessionFrom(r.Context()), b); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}
	h.respondWithPage(w, r, http.StatusOK)
}

// openRecommended adds a recommended title to the catalog if needed and
// shows it
func (h *handler) openRecommended(w http.ResponseWriter, r *http.Request) {
	var p book.PartialBook
	if err := decodeJSON(r, &p); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	b, err := h.svc.OpenRecommended(r.Context(), p)
	if err != nil {
		respondWithServiceError(w, "Failed to open recommended book", err)
		return
	}
	if _, err := h.showBook(sessionFrom(r.Context()), b); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}
	h.respondWithPage(w, r, http.StatusOK)
}

func (h *handler) recommendations(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, sessionFrom(r.Context()).Panel().State())
}

// filterCatalog sets the catalog filter and shows the catalog
func (h *handler) filterCatalog(w http.ResponseWriter, r *http.Request) {
	var f view.CatalogFilter
	if err := decodeJSON(r, &f); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	s := sessionFrom(r.Context())
	s.With(func(st *session.State) {
		*st.Catalog = f
		if _, onCatalog := st.Nav.View().(navigation.Catalog); !onCatalog {
			leave(s, st, func(nav *navigation.Navigator) { _ = nav.Navigate(navigation.ScreenCatalog) })
		}
	})
	h.respondWithPage(w, r, http.StatusOK)
}

func (h *handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var f service.OrderForm
	if err := decodeJSON(r, &f); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	o, err := h.svc.SubmitOrder(r.Context(), f)
	rememberFieldErrors(sessionFrom(r.Context()), err)
	if err != nil {
		respondWithServiceError(w, "Failed to submit order", err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (h *handler) sendContactMessage(w http.ResponseWriter, r *http.Request) {
	var m service.ContactMessage
	if err := decodeJSON(r, &m); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	err := h.svc.SendContactMessage(r.Context(), m)
	rememberFieldErrors(sessionFrom(r.Context()), err)
	if err != nil {
		respondWithServiceError(w, "Failed to send message", err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login checks admin credentials. Throttled attempts fail exactly like
// wrong credentials
func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithValidationError(w, err.Error())
		return
	}

	s := sessionFrom(r.Context())
	ok := s.AllowLogin() && h.svc.Login(req.Username, req.Password)
	s.With(func(st *session.State) {
		if _, onAdmin := st.Nav.View().(navigation.Admin); !onAdmin {
			leave(s, st, func(nav *navigation.Navigator) { _ = nav.Navigate(navigation.ScreenAdmin) })
		}
		st.Nav.Authenticate(ok)
	})

	status := http.StatusOK
	if !ok {
		status = http.StatusUnauthorized
	}
	h.respondWithPage(w, r, status)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	s.With(func(st *session.State) {
		leave(s, st, func(nav *navigation.Navigator) { nav.Logout() })
		st.Errors = nil
	})
	h.respondWithPage(w, r, http.StatusOK)
}

// rememberFieldErrors keeps the last form's field errors for rendering
func rememberFieldErrors(s *session.Session, err error) {
	s.With(func(st *session.State) {
		st.Errors = nil
		if fe, ok := validatorFields(err); ok {
			st.Errors = fe
		}
	})
}
