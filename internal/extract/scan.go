package extract

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

type markerKind int

const (
	markerSection markerKind = iota
	markerHeader
	markerMain
	markerFooter
)

// marker is a boundary comment and its byte span in the source.
type marker struct {
	kind  markerKind
	label string
	start int
	end   int
}

// span is a byte range in the source.
type span struct {
	start int
	end   int
}

// scanResult holds every boundary found in one pass over a document.
type scanResult struct {
	markers []marker
	// footers are the footer-main elements, open tag through close tag.
	footers []span
	// unclosedFooter is set when a footer-main element never closes.
	unclosedFooter bool
}

// scan tokenizes src and records boundary comments and footer-main elements
// with their byte offsets. Tokens are contiguous, so summing the raw token
// lengths gives each token's position.
func scan(src []byte) scanResult {
	var res scanResult
	z := html.NewTokenizer(bytes.NewReader(src))

	offset := 0
	footerDepth := 0
	footerStart := 0
	for {
		tt := z.Next()
		// Reading from memory, the only error is io.EOF.
		if tt == html.ErrorToken {
			break
		}
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.CommentToken:
			if m, ok := classify(string(z.Text())); ok {
				m.start, m.end = start, offset
				res.markers = append(res.markers, m)
			}
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "footer" {
				continue
			}
			if footerDepth > 0 {
				footerDepth++
				continue
			}
			if hasAttr && hasClass(z, "footer-main") {
				footerDepth = 1
				footerStart = start
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) != "footer" || footerDepth == 0 {
				continue
			}
			footerDepth--
			if footerDepth == 0 {
				res.footers = append(res.footers, span{start: footerStart, end: offset})
			}
		}
	}
	res.unclosedFooter = footerDepth > 0
	return res
}

// classify recognizes the boundary comments of a legacy page:
// "<Word> Section", "Header", "Main Content" and "Footer".
func classify(text string) (marker, bool) {
	fields := strings.Fields(text)
	switch {
	case len(fields) == 2 && fields[1] == "Section":
		return marker{kind: markerSection, label: fields[0]}, true
	case len(fields) == 1 && fields[0] == "Header":
		return marker{kind: markerHeader}, true
	case len(fields) == 1 && fields[0] == "Footer":
		return marker{kind: markerFooter}, true
	case len(fields) == 2 && fields[0] == "Main" && fields[1] == "Content":
		return marker{kind: markerMain}, true
	}
	return marker{}, false
}

func hasClass(z *html.Tokenizer, class string) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == class {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}
