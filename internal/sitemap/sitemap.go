package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
)

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []url    `xml:"url"`
}

type url struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
}

// Write emits a sitemap listing siteURL joined with each canonical path.
// No lastmod is written so that unchanged builds stay byte-identical.
func Write(w io.Writer, siteURL string, canonicals []string) error {
	set := urlset{Xmlns: namespace}
	for _, c := range canonicals {
		set.URLs = append(set.URLs, url{Loc: siteURL + c, ChangeFreq: "weekly"})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
