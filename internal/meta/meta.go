// Package meta renders the document prologue: doctype, opening html tag and
// the head contents carrying SEO metadata.
//
// Values are interpolated verbatim. Titles and descriptions containing <, >,
// & or quotes must be sanitized by the caller.
package meta

import (
	"fmt"

	"github.com/cbroglie/mustache"

	"github.com/Bitlatte/assembler/internal/model"
)

const headSource = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{{title}}}</title>
    <meta name="description" content="{{{description}}}">
    <link rel="canonical" href="{{{url}}}">
    
    <!-- Open Graph / Facebook -->
    <meta property="og:type" content="website">
    <meta property="og:url" content="{{{url}}}">
    <meta property="og:title" content="{{{title}}}">
    <meta property="og:description" content="{{{description}}}">
    <meta property="og:image" content="{{{image}}}">
    
    <!-- Twitter -->
    <meta property="twitter:card" content="summary_large_image">
    <meta property="twitter:url" content="{{{url}}}">
    <meta property="twitter:title" content="{{{title}}}">
    <meta property="twitter:description" content="{{{description}}}">
    <meta property="twitter:image" content="{{{image}}}">
    
    <!-- Styles -->
    <link rel="stylesheet" href="css/styles.css">
`

var headTemplate = mustParse(headSource)

func mustParse(src string) *mustache.Template {
	tmpl, err := mustache.ParseString(src)
	if err != nil {
		panic(fmt.Sprintf("meta: invalid head template: %v", err))
	}
	return tmpl
}

// Generate renders the prologue for page. Empty fields fall back to the site
// name and description; an empty canonical path links to the site root URL.
func Generate(site model.Site, page model.PageConfig) (string, error) {
	title := page.Title
	if title == "" {
		title = site.Name
	}
	description := page.Description
	if description == "" {
		description = site.Description
	}

	out, err := headTemplate.Render(map[string]string{
		"title":       title,
		"description": description,
		"url":         site.URL + page.Canonical,
		"image":       site.OGImage,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render head for %q: %w", title, err)
	}
	return out, nil
}
