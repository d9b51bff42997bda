package fragment

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown renders authored Markdown fragments to HTML.
type Markdown struct {
	md goldmark.Markdown
}

// fragmentMatter is the front matter a Markdown fragment may carry.
type fragmentMatter struct {
	Label string `yaml:"label"`
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("dracula"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			// Fragments are trusted, hand-authored site content.
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// Render strips optional front matter from src and converts the remaining
// Markdown. It returns the HTML and the label from the front matter, if any.
func (m *Markdown) Render(src []byte) (string, string, error) {
	var matter fragmentMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &matter)
	if err != nil {
		return "", "", fmt.Errorf("invalid front matter: %w", err)
	}

	var buf bytes.Buffer
	if err := m.md.Convert(body, &buf); err != nil {
		return "", "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), matter.Label, nil
}
