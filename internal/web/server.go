// Package web serves the task form pages over HTTP.
package web

import (
	"context"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/JamesPrial/tasklist/internal/form"
	"github.com/JamesPrial/tasklist/internal/tasklist"
)

const maxFormBytes = 64 << 10

// Server renders the board's pages and applies their form submissions.
type Server struct {
	board  *tasklist.Board
	tmpl   *template.Template
	logger *log.Logger
}

// NewServer creates a Server for every page of board. A nil logger discards
// output.
func NewServer(board *tasklist.Board, logger *log.Logger) (*Server, error) {
	if board == nil {
		return nil, errors.New("web: missing board")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	tmpl, err := template.New("page").Parse(pageHTML)
	if err != nil {
		return nil, err
	}

	return &Server{board: board, tmpl: tmpl, logger: logger}, nil
}

// Handler returns the routes for every page, wrapped with security headers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /p/{slug}", s.handlePage)
	mux.HandleFunc("POST /p/{slug}/tasks", s.handleSubmit)
	mux.HandleFunc("POST /p/{slug}/tasks/{index}/delete", s.handleDelete)
	mux.HandleFunc("GET /static/app.css", s.handleCSS)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return withSecurityHeaders(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	c, err := s.board.Controller("")
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, r, c, http.StatusOK, tasklist.Outcome{})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	s.render(w, r, c, http.StatusOK, tasklist.Outcome{})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	out, err := c.Submit(r.Context(), r.PostForm)
	if err != nil {
		s.fail(w, err)
		return
	}

	status := http.StatusOK
	if !out.Accepted {
		status = http.StatusUnprocessableEntity
	}
	s.render(w, r, c, status, out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	if _, err := c.Delete(r.Context(), index); err != nil {
		s.fail(w, err)
		return
	}
	http.Redirect(w, r, pagePath(c.Page().Slug), http.StatusSeeOther)
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(appCSS))
}

// controller resolves the {slug} path value, writing a 404 when it names no
// page.
func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*tasklist.Controller, bool) {
	c, err := s.board.Controller(r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, tasklist.ErrUnknownPage) {
			http.NotFound(w, r)
			return nil, false
		}
		s.fail(w, err)
		return nil, false
	}
	return c, true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, c *tasklist.Controller, status int, out tasklist.Outcome) {
	rows, err := c.Rows(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	model := s.buildModel(c.Page(), out, rows)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.Execute(w, model); err != nil {
		s.logger.Printf("render %s: %v", c.Page().Slug, err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Printf("error: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func pagePath(slug string) string {
	return "/p/" + url.PathEscape(slug)
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; base-uri 'none'; form-action 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

type navLink struct {
	Href    string
	Title   string
	Current bool
}

type optionView struct {
	Value    string
	Text     string
	Selected bool
}

type fieldView struct {
	ID        string
	Label     string
	Kind      string
	InputType string
	Value     string
	Checked   bool
	Options   []optionView
	Error     string
}

type pageModel struct {
	Title     string
	Action    string
	Nav       []navLink
	Fields    []fieldView
	Headers   [3]string
	ShowTable bool
	Rows      []rowView
	Notice    string
}

type rowView struct {
	tasklist.Row
	DeleteAction string
}

func (s *Server) buildModel(page form.Page, out tasklist.Outcome, rows []tasklist.Row) pageModel {
	base := pagePath(page.Slug)

	pages := s.board.Pages()
	nav := make([]navLink, 0, len(pages))
	if len(pages) > 1 {
		for _, p := range pages {
			nav = append(nav, navLink{Href: pagePath(p.Slug), Title: p.Title, Current: p.Slug == page.Slug})
		}
	}

	fields := page.Fields.All()
	views := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, fieldViewOf(f, out.Values, out.ErrorFor(f.ID)))
	}

	rowViews := make([]rowView, len(rows))
	for i, r := range rows {
		rowViews[i] = rowView{Row: r, DeleteAction: base + "/tasks/" + strconv.Itoa(r.Index) + "/delete"}
	}

	return pageModel{
		Title:     page.Title,
		Action:    base + "/tasks",
		Nav:       nav,
		Fields:    views,
		Headers:   [3]string{page.Fields.Name1.Label, page.Fields.Name2.Label, page.Fields.Date.Label},
		ShowTable: page.ShowTable(),
		Rows:      rowViews,
		Notice:    out.Notice,
	}
}

// fieldViewOf prepares f for the template, refilled from values.
func fieldViewOf(f form.Field, values url.Values, errMsg string) fieldView {
	submitted := values.Get(f.ID)
	v := fieldView{
		ID:        f.ID,
		Label:     f.Label,
		Kind:      string(f.Kind),
		InputType: f.InputType(),
		Value:     submitted,
		Error:     errMsg,
	}

	switch f.Kind {
	case form.KindCheckbox:
		v.Checked = submitted != ""
	case form.KindSelect, form.KindRadio:
		for _, o := range f.Options {
			v.Options = append(v.Options, optionView{
				Value:    o.Value,
				Text:     o.Text(),
				Selected: submitted != "" && o.Value == submitted,
			})
		}
	}
	return v
}
