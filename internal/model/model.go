package model

// Site holds the site-wide values every generated page shares.
type Site struct {
	Name        string
	URL         string
	Description string
	OGImage     string
}
