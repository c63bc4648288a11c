package web

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"StockView/internal/catalog"
	"StockView/internal/view"
	"StockView/pkg/kit"
)

type Server struct {
	View    *view.View
	Catalog catalog.Catalog
	Log     *zap.Logger
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Catalog.Ping(ctx); err != nil {
		if s.Log != nil {
			s.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// pageData is what the index template renders: a consistent view snapshot
// plus per-request form state from a failed submit.
type pageData struct {
	view.Snapshot

	FormErrors []view.FieldError
	FormValue  string
}

// handleIndex syncs the view's navigable state from the URL query
// ("search", "page", "edit") and renders the inventory page. The search
// text lives in the URL so it is shareable and survives reload.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.View.SetSearch(q.Get("search"))
	if raw := q.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			s.View.SetPage(n)
		}
	}

	if id := q.Get("edit"); id != "" {
		// unknown id: page renders without a modal
		s.View.OpenEdit(id)
	} else {
		s.View.CloseEdit()
	}

	s.render(w, http.StatusOK, pageData{Snapshot: s.View.Snapshot()})
}

func (s *Server) handleSubmitStock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	back := returnURL(r.PostFormValue("search"), r.PostFormValue("page"))
	raw := r.PostFormValue("stock")

	res := s.View.SubmitStock(r.PostFormValue("token"), raw)
	switch {
	case res.Stale:
		// no modal open for this token; nothing was saved
		http.Redirect(w, r, back, http.StatusSeeOther)

	case len(res.Errors) > 0:
		s.render(w, http.StatusUnprocessableEntity, pageData{
			Snapshot:   s.View.Snapshot(),
			FormErrors: res.Errors,
			FormValue:  raw,
		})

	default:
		if s.Log != nil {
			s.Log.Info("stock updated",
				zap.String("product_id", chi.URLParam(r, "id")),
				zap.String("notice", res.Notice),
			)
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "invalid page", map[string]any{"page": raw})
			return
		}
		page = n
	}

	kit.WriteJSON(w, http.StatusOK, s.View.Query(q.Get("search"), page))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Catalog.FetchByID(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index.tmpl", data); err != nil {
		if s.Log != nil {
			s.Log.Error("render index failed", zap.Error(err))
		}
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func returnURL(search, page string) string {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page != "" && page != "1" {
		q.Set("page", page)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
