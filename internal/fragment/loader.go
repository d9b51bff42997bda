// Package fragment resolves named HTML fragments on disk. A missing fragment
// never fails a build: it is replaced by a placeholder comment and a warning.
package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"go.uber.org/zap"
)

const (
	componentsDir = "components"
	sectionsDir   = "sections"
)

// Fragment is the resolved content of one fragment file.
type Fragment struct {
	Path    string
	Content string
	// Label overrides the identifying comment of a section when non-empty.
	Label string
	// Missing is set when Content is a placeholder.
	Missing bool
}

// Loader reads fragments from fsys. Paths are slash separated and relative to
// the root of fsys, which is usually the build directory.
type Loader struct {
	fsys     fs.FS
	srcDir   string
	logger   *zap.Logger
	markdown *Markdown
}

// NewLoader returns a loader reading <srcDir>/components and <srcDir>/sections
// from fsys.
func NewLoader(fsys fs.FS, srcDir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fsys:     fsys,
		srcDir:   srcDir,
		logger:   logger,
		markdown: NewMarkdown(),
	}
}

// Placeholder is the comment substituted for a fragment that does not exist.
func Placeholder(p string) string {
	return fmt.Sprintf("<!-- %s component not found -->\n", p)
}

// ComponentPath returns the path of a named component such as "header".
func (l *Loader) ComponentPath(name string) string {
	return path.Join(l.srcDir, componentsDir, name+".html")
}

// SectionPath returns the path of a named section such as "hero".
func (l *Loader) SectionPath(name string) string {
	return path.Join(l.srcDir, sectionsDir, name+".html")
}

// Load returns the text of the file at p, or a placeholder when it does not
// exist. Any other error is returned to the caller.
func (l *Loader) Load(p string) (Fragment, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err == nil {
		return Fragment{Path: p, Content: string(data)}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Fragment{}, fmt.Errorf("failed to read fragment %s: %w", p, err)
	}

	// An authored Markdown sibling stands in for the HTML file.
	mdPath := p[:len(p)-len(path.Ext(p))] + ".md"
	frag, err := l.loadMarkdown(mdPath)
	if err == nil {
		return frag, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Fragment{}, err
	}

	l.logger.Warn("fragment not found, using placeholder", zap.String("path", p))
	return Fragment{Path: p, Content: Placeholder(p), Missing: true}, nil
}

// Component loads a named component.
func (l *Loader) Component(name string) (Fragment, error) {
	return l.Load(l.ComponentPath(name))
}

// Section loads a named section.
func (l *Loader) Section(name string) (Fragment, error) {
	return l.Load(l.SectionPath(name))
}

func (l *Loader) loadMarkdown(p string) (Fragment, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Fragment{}, err
	}
	html, label, err := l.markdown.Render(data)
	if err != nil {
		return Fragment{}, fmt.Errorf("failed to render markdown fragment %s: %w", p, err)
	}
	l.logger.Debug("rendered markdown fragment", zap.String("path", p))
	return Fragment{Path: p, Content: html, Label: label}, nil
}
