package site

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"robofed.org/web/internal/assets"
)

// BuildReport summarizes a static export.
type BuildReport struct {
	Pages    int
	Files    int
	Runtime  int
	Duration time.Duration
}

// Build exports the site into outDir: pages are composed once in the default language,
// every other file is copied and the embedded runtime is written under js/. A runtime
// file the site ships itself takes precedence over the embedded one.
func (s *Site) Build(ctx context.Context, outDir string) (BuildReport, error) {
	start := time.Now()
	var rep BuildReport
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return rep, fmt.Errorf("site: create %s: %w", outDir, err)
	}

	for _, name := range assets.Names() {
		if _, err := fs.Stat(s.pages, name); err == nil {
			continue
		}
		if err := copyFile(assets.FS(), name, filepath.Join(outDir, filepath.FromSlash(name))); err != nil {
			return rep, err
		}
		rep.Runtime++
	}

	req := Request{Lang: s.settings.Lang, Now: start}
	err := fs.WalkDir(s.pages, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := filepath.Join(outDir, filepath.FromSlash(p))
		if d.IsDir() {
			if p != "." && d.Name()[0] == '.' {
				return fs.SkipDir
			}
			return os.MkdirAll(dst, 0o755)
		}
		if !IsPage(p) {
			if err := copyFile(s.pages, p, dst); err != nil {
				return err
			}
			rep.Files++
			return nil
		}
		page, err := s.Render(ctx, p, req)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, page.HTML, 0o644); err != nil {
			return fmt.Errorf("site: write %s: %w", dst, err)
		}
		log.Printf("build: %s (base=%s, components=%d, skipped=%d)", p, page.Base, len(page.Report.Rendered), len(page.Report.Skipped))
		rep.Pages++
		return nil
	})
	rep.Duration = time.Since(start)
	return rep, err
}

func copyFile(fsys fs.FS, name, dst string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("site: open %s: %w", name, err)
	}
	defer src.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("site: create %s: %w", filepath.Dir(dst), err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("site: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return fmt.Errorf("site: copy %s: %w", name, err)
	}
	return out.Close()
}
