package web

import (
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"inhouse/internal/util"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/russross/blackfriday/v2"
)

// pageData is the root object given to every layout.
type pageData struct {
	Locale      string
	Root        string // path to the site root, relative for static output
	Title       string
	Description string
	Data        interface{}
}

func (s *Server) loadTemplates(baseDir string) (map[string]*template.Template, error) {
	layouts, err := filepath.Glob(filepath.Join(baseDir, "templates/layouts/*.html"))
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no layout found in %s", baseDir)
	}

	includes, err := filepath.Glob(filepath.Join(baseDir, "templates/includes/*.html"))
	if err != nil {
		return nil, err
	}

	ret := make(map[string]*template.Template, len(layouts))
	for _, layout := range layouts {
		tpl, err := template.New("").
			Funcs(s.getTemplateFuncMap(baseDir)).
			ParseFiles(append(includes, layout)...)
		if err != nil {
			return nil, err
		}

		ret[filepath.Base(layout)] = tpl
	}

	return ret, nil
}

func (s *Server) getTemplateFuncMap(baseDir string) template.FuncMap {
	return template.FuncMap{
		"t": func(locale string, str string) string {
			return s.locale(locale).Get(str)
		},

		"tf": func(locale string, str string, args ...interface{}) string {
			return fmt.Sprintf(s.locale(locale).Get(str), args...)
		},

		"tmd": func(locale, str string) template.HTML {
			return template.HTML(blackfriday.Run( // nolint:gosec
				[]byte(s.locale(locale).Get(str)),
			))
		},

		"markdown":       tplMarkdown,
		"date":           util.Date,
		"datetime":       util.Datetime,
		"assetURL":       tplAssetURL,
		"assetIntegrity": tplAssetIntegrity(baseDir),
		"playerURL":      tplPlayerURL,
		"dict":           tplDict,
	}
}

// tplMarkdown renders configuration-provided markdown, it is trusted input.
func tplMarkdown(str string) template.HTML {
	if strings.TrimSpace(str) == "" {
		return ""
	}

	return template.HTML(blackfriday.Run([]byte(str))) // nolint:gosec
}

// tplDict builds a map from key/value pairs to pass several values to a
// sub-template.
func tplDict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}

	ret := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		ret[k] = pairs[i+1]
	}

	return ret, nil
}

func tplAssetURL(root, name string) string {
	return root + "_/" + name
}

func tplPlayerURL(root, steamID string) string {
	return root + "players/" + playerFileName(steamID)
}

func playerFileName(steamID string) string {
	return url.PathEscape(steamID) + ".html"
}

func tplAssetIntegrity(baseDir string) func(name string) (string, error) {
	var mu sync.Mutex
	hashCache := map[string]string{}

	return func(name string) (string, error) {
		mu.Lock()
		defer mu.Unlock()

		if hash, ok := hashCache[name]; ok {
			return hash, nil
		}

		f, err := os.Open(filepath.Join(baseDir, "static", name))
		if err != nil {
			return "", err
		}
		defer f.Close() // nolint:gosec

		h := sha512.New()
		if _, err := io.Copy(h, f); err != nil {
			return "", err
		}

		hashCache[name] = "sha512-" + base64.StdEncoding.EncodeToString(h.Sum(nil))
		return hashCache[name], nil
	}
}

// execute renders a layout into w.
func (s *Server) execute(w io.Writer, name string, data pageData) error {
	tpl, ok := s.tpl[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}

	return tpl.ExecuteTemplate(w, "base", data)
}

func (s *Server) newPageData(locale, root string, data interface{}) pageData {
	return pageData{
		Locale:      locale,
		Root:        root,
		Title:       s.conf.Title,
		Description: s.conf.Description,
		Data:        data,
	}
}
