// Package build runs one complete site build: directory setup, the optional
// bootstrap extraction, and assembly of the home page and every SEO page.
package build

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Bitlatte/assembler/internal/assemble"
	"github.com/Bitlatte/assembler/internal/config"
	"github.com/Bitlatte/assembler/internal/extract"
	"github.com/Bitlatte/assembler/internal/fragment"
	"github.com/Bitlatte/assembler/internal/model"
	"github.com/Bitlatte/assembler/internal/sitemap"
)

const sitemapFile = "sitemap.xml"

var rule = strings.Repeat("-", 40)

// Driver holds everything a build needs. The zero values of Out, Logger and
// Now are replaced by io.Discard, a no-op logger and time.Now.
type Driver struct {
	Config config.Config
	// Dir is the build directory; fragment, output and legacy paths are
	// relative to it.
	Dir    string
	Out    io.Writer
	Logger *zap.Logger
	Now    func() time.Time
}

// Summary describes a finished build.
type Summary struct {
	Pages    int
	Files    []string
	Finished time.Time
}

// Run performs the build. The first file system error aborts the run; pages
// already written are left in place.
func (d *Driver) Run() (Summary, error) {
	d.setDefaults()
	cfg := d.Config
	if err := cfg.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprintf(d.Out, "%s Website Builder\n", cfg.SiteName)
	fmt.Fprintln(d.Out, rule)

	if err := d.createDirectories(); err != nil {
		return Summary{}, err
	}

	if err := d.bootstrap(); err != nil {
		return Summary{}, err
	}

	loader := fragment.NewLoader(os.DirFS(d.Dir), cfg.SrcDir, d.Logger)
	asm := assemble.New(cfg.Site(), cfg.Home(), loader)

	var summary Summary

	fmt.Fprintf(d.Out, "Building %s...\n", cfg.HomeFile)
	home, err := asm.Page(cfg.HomeSections, nil)
	if err != nil {
		return summary, fmt.Errorf("failed to build %s: %w", cfg.HomeFile, err)
	}
	if err := d.writeOutput(cfg.HomeFile, []byte(home)); err != nil {
		return summary, err
	}
	summary.Pages++
	summary.Files = append(summary.Files, cfg.HomeFile)
	fmt.Fprintf(d.Out, "✓ %s built successfully\n", cfg.HomeFile)

	fmt.Fprintln(d.Out, "\nBuilding SEO pages...")
	for i := range cfg.Pages {
		page := cfg.Pages[i]
		html, err := asm.Page(page.SectionIDs, &page)
		if err != nil {
			return summary, fmt.Errorf("failed to build %s: %w", page.Filename, err)
		}
		if err := d.writeOutput(page.Filename, []byte(html)); err != nil {
			return summary, err
		}
		summary.Pages++
		summary.Files = append(summary.Files, page.Filename)
		fmt.Fprintf(d.Out, "✓ %s built successfully\n", page.Filename)
	}

	if cfg.Sitemap {
		if err := d.writeSitemap(); err != nil {
			return summary, err
		}
		summary.Files = append(summary.Files, sitemapFile)
		fmt.Fprintf(d.Out, "✓ %s built successfully\n", sitemapFile)
	}

	summary.Finished = d.Now()
	fmt.Fprintln(d.Out, "\n"+rule)
	fmt.Fprintf(d.Out, "Build completed at %s\n", summary.Finished.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(d.Out, "Total pages built: %d\n", summary.Pages)
	return summary, nil
}

func (d *Driver) setDefaults() {
	if d.Dir == "" {
		d.Dir = "."
	}
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}

func (d *Driver) createDirectories() error {
	dirs := []string{
		filepath.Join(d.Dir, "css"),
		filepath.Join(d.Dir, "js"),
		d.srcPath("components"),
		d.srcPath("sections"),
		d.outputPath(""),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}
	return nil
}

// bootstrap runs the extractor once when the first home section has neither
// an HTML nor a Markdown fragment.
func (d *Driver) bootstrap() error {
	if len(d.Config.HomeSections) == 0 {
		return nil
	}
	first := d.Config.HomeSections[0]
	for _, ext := range []string{".html", ".md"} {
		_, err := os.Stat(d.srcPath("sections", first+ext))
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check fragment %s: %w", first+ext, err)
		}
	}

	fmt.Fprintf(d.Out, "Components not found, attempting to extract from %s...\n", d.Config.LegacyFile)
	if err := Bootstrap(d.Dir, d.Config, d.Out, d.Logger); err != nil {
		return err
	}
	fmt.Fprintln(d.Out)
	return nil
}

// Bootstrap extracts fragments from the configured legacy file and prints one
// line per fragment written. A missing legacy file is only a warning.
func Bootstrap(dir string, cfg config.Config, out io.Writer, logger *zap.Logger) error {
	report, err := extract.New(dir, cfg.SrcDir, logger).Extract(cfg.LegacyFile)
	if errors.Is(err, extract.ErrLegacyNotFound) {
		logger.Warn("legacy file not found, skipping extraction", zap.String("path", cfg.LegacyFile))
		return nil
	}
	if err != nil {
		return err
	}
	for _, p := range report.Written {
		fmt.Fprintf(out, "Extracted %s\n", p)
	}
	if len(report.Missing) > 0 {
		fmt.Fprintf(out, "Not found in %s: %s\n", cfg.LegacyFile, strings.Join(report.Missing, ", "))
	}
	for _, p := range report.Problems {
		fmt.Fprintf(out, "Skipped %v\n", p)
	}
	return nil
}

func (d *Driver) writeOutput(name string, data []byte) error {
	p := d.outputPath(name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file '%s': %w", p, err)
	}
	return nil
}

func (d *Driver) writeSitemap() error {
	var canonicals []string
	for _, p := range Pages(d.Config) {
		canonicals = append(canonicals, p.Canonical)
	}
	var buf bytes.Buffer
	if err := sitemap.Write(&buf, d.Config.SiteURL, canonicals); err != nil {
		return err
	}
	return d.writeOutput(sitemapFile, buf.Bytes())
}

func (d *Driver) srcPath(elem ...string) string {
	return filepath.Join(append([]string{d.Dir, filepath.FromSlash(d.Config.SrcDir)}, elem...)...)
}

func (d *Driver) outputPath(name string) string {
	base := d.Config.OutputDir
	if !filepath.IsAbs(base) {
		base = filepath.Join(d.Dir, base)
	}
	return filepath.Join(base, name)
}

// Pages returns every page configuration the build writes, home page first.
func Pages(cfg config.Config) []model.PageConfig {
	return append([]model.PageConfig{cfg.Home()}, cfg.Pages...)
}
