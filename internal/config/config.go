package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/Bitlatte/assembler/internal/model"
)

// Config is the complete description of one build. It is passed by value into
// the build driver; nothing in the assembler reads process-wide settings.
type Config struct {
	SiteName     string             `mapstructure:"siteName" yaml:"siteName"`
	SiteURL      string             `mapstructure:"siteURL" yaml:"siteURL"`
	Description  string             `mapstructure:"description" yaml:"description"`
	OGImage      string             `mapstructure:"ogImage" yaml:"ogImage"`
	HomeTitle    string             `mapstructure:"homeTitle" yaml:"homeTitle"`
	HomeFile     string             `mapstructure:"homeFile" yaml:"homeFile"`
	SrcDir       string             `mapstructure:"srcDir" yaml:"srcDir"`
	OutputDir    string             `mapstructure:"outputDir" yaml:"outputDir"`
	LegacyFile   string             `mapstructure:"legacyFile" yaml:"legacyFile"`
	Sitemap      bool               `mapstructure:"sitemap" yaml:"sitemap"`
	HomeSections []string           `mapstructure:"homeSections" yaml:"homeSections"`
	Pages        []model.PageConfig `mapstructure:"pages" yaml:"pages"`
}

// Default returns the ReadytoFly site configuration.
func Default() Config {
	return Config{
		SiteName:    "ReadytoFly",
		SiteURL:     "https://readytofly.com",
		Description: "Evidence-based fear of flying program using CBT and exposure therapy",
		OGImage:     "./images/hero-background.png",
		HomeTitle:   "ReadytoFly - Evidence-Based Fear of Flying Program",
		HomeFile:    "index.html",
		SrcDir:      "src",
		OutputDir:   ".",
		LegacyFile:  "index.html",
		HomeSections: []string{
			"hero", "evidence", "testimonials", "features",
			"comparison", "resources", "advisors", "faq",
		},
		Pages: []model.PageConfig{
			{
				Filename:    "how-it-works.html",
				Title:       "How ReadytoFly Works | Evidence-Based Flight Anxiety Treatment",
				Description: "Learn how our CBT-based program helps overcome fear of flying with proven techniques",
				Canonical:   "/how-it-works",
				SectionIDs:  []string{"evidence", "features", "comparison"},
			},
			{
				Filename:    "reviews.html",
				Title:       "ReadytoFly Reviews | Success Stories from Our Program",
				Description: "Read testimonials from people who overcame their fear of flying with ReadytoFly",
				Canonical:   "/reviews",
				SectionIDs:  []string{"testimonials", "advisors"},
			},
			{
				Filename:    "program.html",
				Title:       "Fear of Flying Program | Personalized CBT Treatment",
				Description: "Our personalized program uses exposure therapy and CBT to help you fly confidently",
				Canonical:   "/program",
				SectionIDs:  []string{"features", "resources", "comparison"},
			},
			{
				Filename:    "faq.html",
				Title:       "Frequently Asked Questions | ReadytoFly",
				Description: "Common questions about our fear of flying program, CBT techniques, and success rates",
				Canonical:   "/faq",
				SectionIDs:  []string{"faq", "advisors"},
			},
		},
	}
}

// Site returns the site-wide values used in every page head.
func (c Config) Site() model.Site {
	return model.Site{
		Name:        c.SiteName,
		URL:         c.SiteURL,
		Description: c.Description,
		OGImage:     c.OGImage,
	}
}

// Home returns the page configuration of the home page.
func (c Config) Home() model.PageConfig {
	return model.PageConfig{
		Filename:    c.HomeFile,
		Title:       c.HomeTitle,
		Description: c.Description,
		Canonical:   "/",
		SectionIDs:  c.HomeSections,
	}
}

// Validate reports configurations that cannot produce a build.
func (c Config) Validate() error {
	if c.SiteURL == "" {
		return errors.New("siteURL must not be empty")
	}
	if c.SrcDir == "" || !fs.ValidPath(path.Clean(c.SrcDir)) {
		return fmt.Errorf("srcDir %q must be a relative path inside the build directory", c.SrcDir)
	}
	if c.HomeFile == "" {
		return errors.New("homeFile must not be empty")
	}
	seen := map[string]bool{path.Clean(c.HomeFile): true}
	for i, p := range c.Pages {
		if p.Filename == "" {
			return fmt.Errorf("page %d (%q) has no filename", i, p.Title)
		}
		name := path.Clean(p.Filename)
		if seen[name] {
			return fmt.Errorf("page %d: output file %s is generated more than once", i, p.Filename)
		}
		seen[name] = true
	}
	return nil
}
