// Package extract bootstraps a fragment library from a legacy single-file
// page. Boundaries are HTML comments ("<!-- Hero Section -->", "<!-- Header -->",
// "<!-- Main Content -->", "<!-- Footer -->") and the footer-main element.
//
// Extraction never guesses: a section whose marker is missing, repeated or
// never followed by another boundary is reported and no file is written for it.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SectionNames lists the sections a legacy page is expected to contain, in
// document order.
var SectionNames = []string{
	"hero", "evidence", "testimonials", "features",
	"comparison", "resources", "advisors", "faq",
}

const (
	headerName = "header"
	footerName = "footer"
)

var (
	ErrLegacyNotFound  = errors.New("legacy file not found")
	ErrDuplicateMarker = errors.New("boundary marker appears more than once")
	ErrUnterminated    = errors.New("no closing boundary after marker")
	ErrEmptyRegion     = errors.New("region between boundaries is empty")
)

// BoundaryError reports a fragment that could not be extracted cleanly.
type BoundaryError struct {
	Fragment string
	Err      error
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Fragment, e.Err)
}

func (e *BoundaryError) Unwrap() error { return e.Err }

// Split is the result of dividing a legacy page into fragments.
type Split struct {
	Sections map[string]string
	Header   string
	Footer   string
	// Missing names fragments whose boundary marker is absent.
	Missing  []string
	Problems []error
}

// Err joins all problems, or returns nil when there are none.
func (s Split) Err() error {
	return errors.Join(s.Problems...)
}

// SplitPage divides src into section, header and footer fragments.
//
// A section runs from the end of its marker to the next section or footer
// marker. When a section's marker is absent, the previous section runs on to
// the next marker that is present.
func SplitPage(src []byte) Split {
	res := scan(src)
	out := Split{Sections: make(map[string]string)}

	problem := func(name string, err error) {
		out.Problems = append(out.Problems, &BoundaryError{Fragment: name, Err: err})
	}

	for _, name := range SectionNames {
		var found []marker
		for _, m := range res.markers {
			if m.kind == markerSection && strings.EqualFold(m.label, name) {
				found = append(found, m)
			}
		}
		switch {
		case len(found) == 0:
			out.Missing = append(out.Missing, name)
			continue
		case len(found) > 1:
			problem(name, ErrDuplicateMarker)
			continue
		}

		next, ok := nextMarker(res.markers, found[0].end, markerSection, markerFooter)
		if !ok {
			problem(name, ErrUnterminated)
			continue
		}
		content := strings.TrimSpace(string(src[found[0].end:next.start]))
		if content == "" {
			problem(name, ErrEmptyRegion)
			continue
		}
		out.Sections[name] = content
	}

	var headers []marker
	for _, m := range res.markers {
		if m.kind == markerHeader {
			headers = append(headers, m)
		}
	}
	switch len(headers) {
	case 0:
		out.Missing = append(out.Missing, headerName)
	case 1:
		next, ok := nextMarker(res.markers, headers[0].end, markerMain)
		if !ok {
			problem(headerName, ErrUnterminated)
			break
		}
		content := strings.TrimSpace(string(src[headers[0].end:next.start]))
		if content == "" {
			problem(headerName, ErrEmptyRegion)
			break
		}
		out.Header = content
	default:
		problem(headerName, ErrDuplicateMarker)
	}

	switch {
	case len(res.footers) == 0 && res.unclosedFooter:
		problem(footerName, ErrUnterminated)
	case len(res.footers) == 0:
		out.Missing = append(out.Missing, footerName)
	case len(res.footers) > 1:
		problem(footerName, ErrDuplicateMarker)
	default:
		out.Footer = string(src[res.footers[0].start:res.footers[0].end])
	}

	return out
}

func nextMarker(markers []marker, after int, kinds ...markerKind) (marker, bool) {
	for _, m := range markers {
		if m.start < after {
			continue
		}
		for _, k := range kinds {
			if m.kind == k {
				return m, true
			}
		}
	}
	return marker{}, false
}

// Report lists what one extraction run produced.
type Report struct {
	// Written holds slash-separated paths relative to the build directory.
	Written  []string
	Missing  []string
	Problems []error
}

// Extractor writes fragments below <dir>/<srcDir>.
type Extractor struct {
	dir    string
	srcDir string
	logger *zap.Logger
}

func New(dir, srcDir string, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{dir: dir, srcDir: srcDir, logger: logger}
}

// Extract splits the legacy file (relative to the build directory) and writes
// one file per fragment found. Fragments with problems are skipped and listed
// in the report; only I/O failures are returned as errors.
func (e *Extractor) Extract(legacy string) (Report, error) {
	src, err := os.ReadFile(filepath.Join(e.dir, filepath.FromSlash(legacy)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %w", ErrLegacyNotFound, err)
		}
		return Report{}, fmt.Errorf("failed to read legacy file %s: %w", legacy, err)
	}

	split := SplitPage(src)
	report := Report{Missing: split.Missing, Problems: split.Problems}

	for _, name := range SectionNames {
		content, ok := split.Sections[name]
		if !ok {
			continue
		}
		rel := path.Join(e.srcDir, "sections", name+".html")
		if err := e.write(rel, content); err != nil {
			return report, err
		}
		report.Written = append(report.Written, rel)
	}
	if split.Header != "" {
		rel := path.Join(e.srcDir, "components", headerName+".html")
		if err := e.write(rel, split.Header); err != nil {
			return report, err
		}
		report.Written = append(report.Written, rel)
	}
	if split.Footer != "" {
		rel := path.Join(e.srcDir, "components", footerName+".html")
		if err := e.write(rel, split.Footer); err != nil {
			return report, err
		}
		report.Written = append(report.Written, rel)
	}

	for _, p := range report.Problems {
		e.logger.Warn("fragment not extracted", zap.Error(p))
	}
	return report, nil
}

func (e *Extractor) write(rel, content string) error {
	full := filepath.Join(e.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write fragment %s: %w", rel, err)
	}
	e.logger.Debug("extracted fragment", zap.String("path", rel))
	return nil
}
