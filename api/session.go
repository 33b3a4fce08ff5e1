package api

import (
	"context"
	"net/http"

	"github.com/htol/bookshop/navigation"
	"github.com/htol/bookshop/session"
	"github.com/htol/bookshop/view"
)

const (
	sessionCookie  = "bookshop_session"
	fragmentHeader = "X-Fragment"
)

type sessionKey struct{}

func sessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, s *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// withSession attaches the caller's session, starting one from the
// client's fragment when the cookie is missing or expired
func (h *handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var s *session.Session
		if c, err := r.Cookie(sessionCookie); err == nil {
			s, _ = h.sessions.Get(c.Value)
		}
		if s == nil {
			fragment := r.Header.Get(fragmentHeader)
			if fragment == "" {
				fragment = r.URL.Query().Get("fragment")
			}
			s = h.sessions.Create(fragment)
			setSessionCookie(w, r, s)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, s)))
	})
}

// requireAdmin rejects requests from sessions that have not logged in
func (h *handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authenticated := false
		sessionFrom(r.Context()).With(func(st *session.State) {
			authenticated = st.Nav.Authenticated()
		})
		if !authenticated {
			respondWithError(w, "admin login required", nil, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// pageResponse is a rendered page plus the navigation state the client
// mirrors in its address bar
type pageResponse struct {
	view.Page
	Fragment      string `json:"fragment"`
	Authenticated bool   `json:"authenticated"`
}

// render draws the session's current page against a fresh snapshot
func (h *handler) render(ctx context.Context, s *session.Session) (pageResponse, error) {
	snap, err := h.svc.Snapshot(ctx)
	if err != nil {
		return pageResponse{}, err
	}

	var resp pageResponse
	var v navigation.View
	s.With(func(st *session.State) {
		leave(s, st, func(nav *navigation.Navigator) {
			v = nav.Resolve(func(id string) bool {
				_, ok := snap.FindBook(id)
				return ok
			})
		})
		resp.Fragment = st.Nav.Fragment()
		resp.Authenticated = st.Nav.Authenticated()
	})

	resp.Page = view.Render(v, snap, s.Local())
	return resp, nil
}

func (h *handler) respondWithPage(w http.ResponseWriter, r *http.Request, statusCode int) {
	resp, err := h.render(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		respondWithError(w, "Failed to render page", err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, statusCode, resp)
}

// leave applies a navigation change and drops detail-view state when the
// session moves away from a book
func leave(s *session.Session, st *session.State, move func(nav *navigation.Navigator)) {
	before, wasDetail := st.Nav.SelectedBook()
	move(st.Nav)
	after, isDetail := st.Nav.SelectedBook()
	if wasDetail && (!isDetail || after != before) {
		s.Panel().Reset()
	}
}
