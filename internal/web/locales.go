package web

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

type ctxKey int

const (
	ctxKeyLocale ctxKey = iota
)

const localeDomain = "default"

// loadLocales reads every locale found in baseDir/locales, the default locale
// is always available even without a catalog, untranslated strings are
// returned as-is.
func loadLocales(baseDir, defaultLocale string) (map[string]*gotext.Locale, []string, error) {
	dir := filepath.Join(baseDir, "locales")
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}

	names := []string{defaultLocale}
	for _, v := range entries {
		if v.IsDir() && v.Name() != defaultLocale {
			names = append(names, v.Name())
		}
	}
	sort.Strings(names[1:])

	ret := make(map[string]*gotext.Locale, len(names))
	for _, name := range names {
		l := gotext.NewLocale(dir, name)
		l.AddDomain(localeDomain)
		ret[name] = l
	}
	log.Printf("debug: loaded locales %v", names)

	return ret, names, nil
}

// locale returns the catalog for the given name or the default one.
func (s *Server) locale(name string) *gotext.Locale {
	if l, ok := s.locales[name]; ok {
		return l
	}

	return s.locales[s.conf.Locale]
}

func newLocaleMatcher(names []string) language.Matcher {
	tags := make([]language.Tag, 0, len(names))
	for _, v := range names {
		tags = append(tags, language.Make(v))
	}

	return language.NewMatcher(tags)
}

// localeFromRequest picks a locale from the `lang` query parameter or the
// Accept-Language header, the default locale is used if nothing matches.
func (s *Server) localeFromRequest(r *http.Request) string {
	header := r.Header.Get("Accept-Language")
	if lang := r.URL.Query().Get("lang"); lang != "" {
		header = lang
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return s.localeNames[0]
	}

	_, index, confidence := s.matcher.Match(tags...)
	if confidence == language.No {
		return s.localeNames[0]
	}

	return s.localeNames[index]
}

func (s *Server) localizer(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := s.localeFromRequest(r)
		w.Header().Set("Content-Language", locale)
		h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyLocale, locale)))
	})
}

func localeFromContext(ctx context.Context) string {
	locale, _ := ctx.Value(ctxKeyLocale).(string)
	return locale
}
