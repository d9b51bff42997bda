package model

// PageConfig describes one generated page: its SEO metadata and the ordered
// list of section fragments that make up its body.
type PageConfig struct {
	Filename    string   `mapstructure:"filename" yaml:"filename"`
	Title       string   `mapstructure:"title" yaml:"title"`
	Description string   `mapstructure:"description" yaml:"description"`
	Canonical   string   `mapstructure:"canonical" yaml:"canonical"`
	SectionIDs  []string `mapstructure:"sectionIDs" yaml:"sectionIDs"`
}
