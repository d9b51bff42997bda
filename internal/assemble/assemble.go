// Package assemble composes complete HTML documents from the head prologue,
// fixed page chrome and named section fragments.
package assemble

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Bitlatte/assembler/internal/fragment"
	"github.com/Bitlatte/assembler/internal/meta"
	"github.com/Bitlatte/assembler/internal/model"
)

const sectionIndent = "        "

const accessibilityBlock = `    <!-- Accessibility -->
    <a href="#main" class="skip-link">Skip to main content</a>
    <div class="progress-bar" role="progressbar" aria-label="Page scroll progress"></div>
    
`

// The waitlist modal is kept commented out; CTAs link to quiz.html instead.
const modalBlock = `    <!-- Waitlist Modal - Not currently in use (CTAs link directly to quiz.html)
         Preserved for potential future use -->
    <!--
    <div class="modal" id="waitlist-modal" role="dialog" aria-modal="true" aria-labelledby="modal-title">
        <div class="modal__content">
            <button class="modal__close" aria-label="Close modal">×</button>
            <h3 id="modal-title" class="modal__title">Join the Waitlist</h3>
            <p class="modal__subtitle">Be among the first to access our evidence-based program</p>
            
            <form id="waitlist-form" aria-label="Join waitlist form">
                <div class="form__group">
                    <label for="name" class="form__label">Your Name</label>
                    <input type="text" id="name" name="name" class="form__input" required aria-required="true">
                </div>
                <div class="form__group">
                    <label for="email" class="form__label">Email Address</label>
                    <input type="email" id="email" name="email" class="form__input" required aria-required="true">
                </div>
                <button type="submit" class="btn">Join the Waitlist</button>
                <div class="form__status" role="status" aria-live="polite"></div>
            </form>
        </div>
    </div>
    -->

`

const stickyCTABlock = `    <!-- Sticky CTA -->
    <a href="quiz.html" class="sticky-cta" aria-label="Take the quiz">
        Take the Quiz
    </a>

`

const disclaimerBlock = `    <!-- Footer Disclaimer -->
    <footer class="footer-disclaimer">
        <p>*Numbers shown are illustrative placeholders—replace with verified sources before publishing. This is an educational wellness program, not medical treatment.</p>
    </footer>

`

// Assembler builds pages for one site from one fragment library.
type Assembler struct {
	site   model.Site
	home   model.PageConfig
	loader *fragment.Loader
	caser  cases.Caser
}

// New returns an assembler. home is used for calls that pass no page.
func New(site model.Site, home model.PageConfig, loader *fragment.Loader) *Assembler {
	return &Assembler{
		site:   site,
		home:   home,
		loader: loader,
		caser:  cases.Title(language.English),
	}
}

// Page renders a complete document with the given sections in order. A nil
// page renders with the home page metadata.
func (a *Assembler) Page(sections []string, page *model.PageConfig) (string, error) {
	cfg := a.home
	if page != nil {
		cfg = *page
	}

	head, err := meta.Generate(a.site, cfg)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("</head>\n<body>\n")
	b.WriteString(accessibilityBlock)

	header, err := a.loader.Component("header")
	if err != nil {
		return "", err
	}
	b.WriteString("    <!-- Header -->\n")
	b.WriteString(header.Content)
	b.WriteString("\n")

	b.WriteString("    <!-- Main Content -->\n    <main id=\"main\">\n")
	for _, name := range sections {
		section, err := a.loader.Section(name)
		if err != nil {
			return "", fmt.Errorf("section %s: %w", name, err)
		}
		if section.Content == "" {
			continue
		}
		fmt.Fprintf(&b, "%s<!-- %s Section -->\n", sectionIndent, a.label(name, section))
		b.WriteString(Indent(section.Content))
		b.WriteString("\n\n")
	}
	b.WriteString("    </main>\n\n")

	footer, err := a.loader.Component("footer")
	if err != nil {
		return "", err
	}
	b.WriteString("    <!-- Footer -->\n")
	b.WriteString(footer.Content)
	b.WriteString("\n")

	b.WriteString(modalBlock)
	b.WriteString(stickyCTABlock)
	b.WriteString(disclaimerBlock)
	b.WriteString("    <script src=\"js/main.js\"></script>\n")
	b.WriteString("</body>\n</html>")

	return b.String(), nil
}

func (a *Assembler) label(name string, section fragment.Fragment) string {
	if section.Label != "" {
		return section.Label
	}
	return a.caser.String(name)
}

// Indent shifts a fragment into the main element: the first line and every
// line after a line break gain eight spaces.
func Indent(content string) string {
	return sectionIndent + strings.ReplaceAll(content, "\n", "\n"+sectionIndent)
}
