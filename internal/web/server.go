package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"inhouse/internal/back"
	"inhouse/internal/config"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(s.localizer)

	r.Get("/", s.index)
	r.Get("/index.html", s.index)
	r.Get("/players/{id}.html", s.getOnePlayer)
	r.Get("/ratings.svg", s.statsRatings)

	fs := http.StripPrefix("/_/", http.FileServer(http.Dir(filepath.Join(s.baseDir, "static"))))
	r.Get("/_/*", func(w http.ResponseWriter, r *http.Request) {
		s.cache(w, "public", 24*time.Hour)
		fs.ServeHTTP(w, r)
	})

	return r
}

// Server renders the leaderboard pages, either to a directory (Render) or
// over HTTP (Serve) for local previews.
type Server struct {
	http *http.Server
	back *back.Back
	conf *config.Config

	baseDir     string
	tpl         map[string]*template.Template
	locales     map[string]*gotext.Locale
	localeNames []string // default first
	matcher     language.Matcher
}

func NewServer(back *back.Back, conf *config.Config) (*Server, error) {
	s := &Server{
		back:    back,
		conf:    conf,
		baseDir: conf.ResourcesDir,
	}

	var err error
	s.locales, s.localeNames, err = loadLocales(s.baseDir, conf.Locale)
	if err != nil {
		return nil, fmt.Errorf("unable to load locales: %w", err)
	}
	s.matcher = newLocaleMatcher(s.localeNames)

	if s.tpl, err = s.loadTemplates(s.baseDir); err != nil {
		return nil, fmt.Errorf("unable to load templates: %w", err)
	}

	s.http = &http.Server{
		Addr:         conf.ListenAddr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s, nil
}

// Handler returns the HTTP handler serving the pages.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Printf("info: starting HTTP server on http://%s", s.http.Addr)
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			log.Println("info: HTTP server closed")
			return
		}

		log.Fatalf("webserver crashed: %s", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		log.Printf("warning: unable to close webserver: %s", err)
	}
}

// response renders a page, the whole page is buffered so a template error
// still yields a proper error status.
func (s *Server) response(
	w http.ResponseWriter,
	r *http.Request,
	code int,
	name string,
	data interface{},
) {
	var buf bytes.Buffer
	payload := s.newPageData(localeFromContext(r.Context()), "/", data)
	if err := s.execute(&buf, name, payload); err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("error: unable to send response: %s", err)
	}
}

func (s *Server) error(w http.ResponseWriter, r *http.Request, err error, code int) {
	if err != nil {
		log.Printf("error: %s %s: %s", r.Method, r.URL.Path, err)
	}

	http.Error(w, http.StatusText(code), code)
}

func (s *Server) cache(w http.ResponseWriter, scope string, d time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("%s,max-age=%d", scope, d/time.Second))
}
