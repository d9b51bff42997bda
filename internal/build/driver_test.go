package build

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Bitlatte/assembler/internal/config"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func newDriver(dir string, cfg config.Config) (*Driver, *bytes.Buffer) {
	var out bytes.Buffer
	return &Driver{
		Config: cfg,
		Dir:    dir,
		Out:    &out,
		Logger: zap.NewNop(),
		Now:    func() time.Time { return fixedTime },
	}, &out
}

func TestRunHeroOnlyLibrary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/sections/hero.html", "<div>Hero</div>")

	cfg := config.Default()
	cfg.HomeSections = []string{"hero", "evidence"}
	cfg.Pages = nil

	d, _ := newDriver(dir, cfg)
	summary, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Pages)

	index := readFile(t, dir, "index.html")
	assert.Contains(t, index, "        <!-- Hero Section -->\n        <div>Hero</div>\n")
	placeholder := "<!-- src/sections/evidence.html component not found -->"
	assert.Contains(t, index, "        <!-- Evidence Section -->\n        "+placeholder)
	assert.Less(t, strings.Index(index, "<div>Hero</div>"), strings.Index(index, placeholder))
}

func TestRunCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/sections/hero.html", "<div>Hero</div>")

	d, _ := newDriver(dir, config.Default())
	_, err := d.Run()
	require.NoError(t, err)

	for _, sub := range []string{"css", "js", "src/components", "src/sections"} {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(sub)))
		require.NoError(t, err, sub)
		assert.True(t, info.IsDir(), sub)
	}
}

func TestRunWritesEveryPage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/sections/hero.html", "<div>Hero</div>")
	writeFile(t, dir, "src/sections/faq.html", "<div>FAQ</div>")

	d, out := newDriver(dir, config.Default())
	summary, err := d.Run()
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Pages)
	assert.Equal(t, []string{"index.html", "how-it-works.html", "reviews.html", "program.html", "faq.html"}, summary.Files)
	assert.Equal(t, fixedTime, summary.Finished)

	faq := readFile(t, dir, "faq.html")
	assert.Contains(t, faq, "<title>Frequently Asked Questions | ReadytoFly</title>")
	assert.Contains(t, faq, `<link rel="canonical" href="https://readytofly.com/faq">`)
	assert.Contains(t, faq, "<div>FAQ</div>")
	assert.Contains(t, faq, "<!-- Advisors Section -->")
	assert.NotContains(t, faq, "<div>Hero</div>")

	index := readFile(t, dir, "index.html")
	assert.Contains(t, index, "<title>ReadytoFly - Evidence-Based Fear of Flying Program</title>")
	assert.Contains(t, index, `<link rel="canonical" href="https://readytofly.com/">`)

	log := out.String()
	assert.True(t, strings.HasPrefix(log, "ReadytoFly Website Builder\n"))
	assert.Contains(t, log, "✓ index.html built successfully\n")
	assert.Contains(t, log, "✓ faq.html built successfully\n")
	assert.Contains(t, log, "Build completed at 2026-01-02 03:04:05\n")
	assert.Contains(t, log, "Total pages built: 5\n")
	assert.NotContains(t, log, "Components not found")
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/components/header.html", "<header>Nav</header>")
	writeFile(t, dir, "src/sections/hero.html", "<div>\n  Hero\n</div>")

	snapshot := func() map[string]string {
		files := map[string]string{}
		for _, name := range []string{"index.html", "how-it-works.html", "reviews.html", "program.html", "faq.html"} {
			files[name] = readFile(t, dir, name)
		}
		return files
	}

	d, _ := newDriver(dir, config.Default())
	_, err := d.Run()
	require.NoError(t, err)
	first := snapshot()

	d, _ = newDriver(dir, config.Default())
	d.Now = func() time.Time { return fixedTime.Add(time.Hour) }
	_, err = d.Run()
	require.NoError(t, err)

	if diff := cmp.Diff(first, snapshot()); diff != "" {
		t.Fatalf("second build differs (-first +second):\n%s", diff)
	}
}

const legacyIndex = `<!DOCTYPE html>
<html lang="en">
<body>
    <!-- Header -->
    <header class="site-header">Legacy nav</header>

    <!-- Main Content -->
    <main id="main">
        <!-- Hero Section -->
        <section id="hero">Legacy hero</section>

        <!-- FAQ Section -->
        <section id="faq">Legacy faq</section>
    </main>

    <!-- Footer -->
    <footer class="footer-main">Legacy footer</footer>
</body>
</html>
`

func TestRunBootstrapsFromLegacyPage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", legacyIndex)

	d, out := newDriver(dir, config.Default())
	_, err := d.Run()
	require.NoError(t, err)

	assert.Equal(t, `<section id="hero">Legacy hero</section>`, readFile(t, dir, "src/sections/hero.html"))
	assert.Equal(t, `<header class="site-header">Legacy nav</header>`, readFile(t, dir, "src/components/header.html"))
	assert.Equal(t, `<footer class="footer-main">Legacy footer</footer>`, readFile(t, dir, "src/components/footer.html"))

	log := out.String()
	assert.Contains(t, log, "Components not found, attempting to extract from index.html...\n")
	assert.Contains(t, log, "Extracted src/sections/hero.html\n")
	assert.Contains(t, log, "Not found in index.html: evidence, testimonials, features, comparison, resources, advisors\n")

	// The legacy page is replaced by the assembled one.
	index := readFile(t, dir, "index.html")
	assert.Contains(t, index, "        <!-- Hero Section -->\n        <section id=\"hero\">Legacy hero</section>")
	assert.Contains(t, index, "<!-- src/sections/evidence.html component not found -->")
	assert.Contains(t, index, "<title>ReadytoFly - Evidence-Based Fear of Flying Program</title>")
}

func TestRunSkipsBootstrapWhenMarkdownHeroExists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/sections/hero.md", "# Ready to fly\n")
	writeFile(t, dir, "index.html", legacyIndex)

	d, out := newDriver(dir, config.Default())
	_, err := d.Run()
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "Components not found")
	assert.Contains(t, readFile(t, dir, "index.html"), `<h1 id="ready-to-fly">Ready to fly</h1>`)
}

func TestRunWithoutLegacyPageWarns(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)

	d, _ := newDriver(dir, config.Default())
	d.Logger = zap.New(core)
	summary, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Pages)

	assert.Equal(t, 1, logs.FilterMessage("legacy file not found, skipping extraction").Len())
	assert.NotZero(t, logs.FilterMessage("fragment not found, using placeholder").Len())
	assert.Contains(t, readFile(t, dir, "index.html"), "<!-- src/sections/hero.html component not found -->")
}

func TestRunAbortsOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/sections/hero.html", "<div>Hero</div>")

	cfg := config.Default()
	cfg.Pages[1].Filename = "missing/reviews.html"

	d, _ := newDriver(dir, cfg)
	summary, err := d.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write output file")
	assert.Equal(t, 2, summary.Pages)

	_, err = os.Stat(filepath.Join(dir, "how-it-works.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "program.html"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SiteURL = ""

	d, _ := newDriver(t.TempDir(), cfg)
	_, err := d.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRunWritesSitemap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/sections/hero.html", "<div>Hero</div>")

	cfg := config.Default()
	cfg.Sitemap = true

	d, _ := newDriver(dir, cfg)
	summary, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Pages)
	assert.Contains(t, summary.Files, "sitemap.xml")

	sm := readFile(t, dir, "sitemap.xml")
	assert.Contains(t, sm, "<loc>https://readytofly.com/</loc>")
	assert.Contains(t, sm, "<loc>https://readytofly.com/how-it-works</loc>")
	assert.Equal(t, 5, strings.Count(sm, "<url>"))
}

func TestRunSeparateOutputDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/sections/hero.html", "<div>Hero</div>")

	cfg := config.Default()
	cfg.OutputDir = "public"

	d, _ := newDriver(dir, cfg)
	_, err := d.Run()
	require.NoError(t, err)

	assert.Contains(t, readFile(t, dir, "public/index.html"), "<div>Hero</div>")
	assert.FileExists(t, filepath.Join(dir, "public", "faq.html"))
}

func TestPages(t *testing.T) {
	pages := Pages(config.Default())
	require.Len(t, pages, 5)
	assert.Equal(t, "/", pages[0].Canonical)
	assert.Equal(t, "index.html", pages[0].Filename)
	assert.Equal(t, "/faq", pages[4].Canonical)
}
