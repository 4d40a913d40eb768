package web

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Render writes the whole site to outDir. Links are relative so the result
// can be opened from disk or uploaded to any static host.
func (s *Server) Render(outDir string) error {
	start := time.Now()
	locale := s.localeNames[0]

	if err := os.MkdirAll(filepath.Join(outDir, "players"), 0o755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := s.renderPage(
		filepath.Join(outDir, "index.html"),
		"index.html",
		s.newPageData(locale, "", s.getIndexTemplateData()),
	); err != nil {
		return err
	}

	for _, v := range s.back.GetLeaderboard() {
		data, err := s.getPlayerTemplateData(v.SteamID)
		if err != nil {
			return err
		}

		if err := s.renderPage(
			filepath.Join(outDir, "players", playerFileName(v.SteamID)),
			"one_player.html",
			s.newPageData(locale, "../", data),
		); err != nil {
			return err
		}
	}

	svg, err := s.back.GetRatingsDistributionGraph()
	if err != nil {
		return fmt.Errorf("unable to render ratings graph: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "ratings.svg"), svg, 0o644); err != nil { // nolint:gosec
		return err
	}

	if err := copyDir(filepath.Join(s.baseDir, "static"), filepath.Join(outDir, "_")); err != nil {
		return fmt.Errorf("unable to copy static assets: %w", err)
	}

	log.Printf("info: rendered site to %s in %s", outDir, time.Since(start))
	return nil
}

func (s *Server) renderPage(path, name string, data pageData) error {
	var buf bytes.Buffer
	if err := s.execute(&buf, name, data); err != nil {
		return fmt.Errorf("unable to render %s: %w", path, err)
	}

	return os.WriteFile(path, buf.Bytes(), 0o644) // nolint:gosec
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
