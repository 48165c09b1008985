// internal/render/render.go
//
// Rendering loop: resolved Page → HTML document.
//
// The mutation path fails loud; this is the one place that deliberately
// fails soft.  Each section renders in isolation:
//
//   1. Unknown section type      → warn and skip; the rest of the page
//      still renders.
//   2. Empty content             → skip (the operator added the section
//      but has not configured it yet).
//   3. Renderer error or panic   → visible inline placeholder naming the
//      type, then continue.
//   4. Nothing rendered at all   → deterministic "under construction"
//      state instead of a blank page.
//
// Sections are re-sorted by SortOrder before the loop even though storage
// writes them sorted — persisted order is never trusted blindly.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/atelier/internal/block"
	"github.com/yanizio/atelier/internal/cache"
	"github.com/yanizio/atelier/internal/head"
	"github.com/yanizio/atelier/internal/metrics"
	"github.com/yanizio/atelier/internal/page"
	"github.com/yanizio/atelier/internal/site"
)

// Finished documents keyed by everything the shell bakes in: the page
// itself, the site record (name and branding), and the sibling list the
// navigation is computed from.  Any edit that could change the output
// changes the key, so stale entries just age out of the LRU.
var docLRU = cache.New(512)

// NavLink is one entry in the header or footer navigation.
type NavLink struct {
	Title string
	Path  string
}

// shellData feeds the document shell template.
type shellData struct {
	Head      *head.Builder
	SiteName  string
	HeaderNav []NavLink
	FooterNav []NavLink
	Fragments []template.HTML
}

// Page writes the full HTML document for p to w.  siblings is the site's
// page list used to compute navigation; it may be nil when the caller has
// no navigation to show.
func Page(w io.Writer, s *site.Record, p *page.Record, siblings []page.Record) error {
	key := docKey(s, p, siblings)
	if v, ok := docLRU.Get(key); ok {
		_, err := w.Write(v.([]byte))
		metrics.PageRenderTotal.Inc()
		return err
	}

	header, footer := page.Navigation(siblings)
	data := shellData{
		Head:      headFor(s, p),
		SiteName:  s.Name,
		HeaderNav: navLinks(header),
		FooterNav: navLinks(footer),
		Fragments: Sections(p),
	}

	var buf bytes.Buffer
	if err := shellTmpl.Execute(&buf, data); err != nil {
		return err
	}
	docLRU.Add(key, buf.Bytes())
	metrics.PageRenderTotal.Inc()
	_, err := w.Write(buf.Bytes())
	return err
}

// Sections renders each of p's sections in SortOrder, isolating
// per-section failures.  The result is never empty: when no section
// produced output the single "under construction" fragment is returned.
func Sections(p *page.Record) []template.HTML {
	sections := p.Sections()
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].SortOrder < sections[j].SortOrder
	})

	out := make([]template.HTML, 0, len(sections))
	for _, sec := range sections {
		entry, ok := block.Lookup(sec.Type)
		if !ok {
			zap.L().Warn("unknown section type, skipping",
				zap.String("page", p.ID),
				zap.String("section", sec.ID),
				zap.String("type", sec.Type))
			metrics.SectionSkipTotal.WithLabelValues("unknown_type").Inc()
			continue
		}
		if len(sec.Content) == 0 {
			metrics.SectionSkipTotal.WithLabelValues("empty_content").Inc()
			continue
		}
		html, err := renderOne(entry.Renderer, sec.Content)
		if err != nil {
			zap.L().Error("section render failed",
				zap.String("page", p.ID),
				zap.String("section", sec.ID),
				zap.String("type", sec.Type),
				zap.Error(err))
			metrics.SectionSkipTotal.WithLabelValues("render_error").Inc()
			out = append(out, errorPlaceholder(sec.Type))
			continue
		}
		out = append(out, html)
	}

	if len(out) == 0 {
		return []template.HTML{underConstruction}
	}
	return out
}

// renderOne invokes the renderer and converts a panic into an error so one
// misbehaving block cannot take the whole page down.
func renderOne(r block.Renderer, content map[string]any) (html template.HTML, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("renderer panic: %v", rec)
		}
	}()
	return r.Render(content)
}

const keyStamp = "20060102150405.000"

// docKey fingerprints every input the rendered document depends on.  The
// sibling component covers both edits (newest updated-at) and the list
// shape (count), so renaming, hiding, reordering, adding, or deleting a
// sibling page forces a fresh render of this one.
func docKey(s *site.Record, p *page.Record, siblings []page.Record) string {
	var newest time.Time
	for _, sib := range siblings {
		if sib.UpdatedAt.After(newest) {
			newest = sib.UpdatedAt
		}
	}
	return p.ID +
		"::" + p.UpdatedAt.UTC().Format(keyStamp) +
		"::" + s.UpdatedAt.UTC().Format(keyStamp) +
		"::" + strconv.Itoa(len(siblings)) +
		"::" + newest.UTC().Format(keyStamp)
}

// headFor seeds a head.Builder from the page's meta fields.  MetaTitle
// overrides the display title; the site name is always appended.
func headFor(s *site.Record, p *page.Record) *head.Builder {
	b := head.New()
	title := p.Title()
	if p.MetaTitle != nil && *p.MetaTitle != "" {
		title = *p.MetaTitle
	}
	b.SetTitle(title + " | " + s.Name)
	if p.MetaDescription != nil {
		b.Description(*p.MetaDescription)
	}
	b.Link(`<link rel="icon" href="/favicon.ico">`)
	return b
}

func navLinks(pages []page.Record) []NavLink {
	out := make([]NavLink, 0, len(pages))
	for _, p := range pages {
		out = append(out, NavLink{Title: p.Title(), Path: "/" + p.Slug})
	}
	return out
}

func errorPlaceholder(typ string) template.HTML {
	var buf bytes.Buffer
	// template.HTMLEscape keeps a malicious type string from becoming
	// markup.
	template.HTMLEscape(&buf, []byte(typ))
	return template.HTML(
		`<div class="section-error">Failed to render section &ldquo;` +
			buf.String() + `&rdquo;</div>`)
}

const underConstruction = template.HTML(
	`<div class="under-construction"><h2>Under construction</h2>` +
		`<p>This page has no published content yet.</p></div>`)

var shellTmpl = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{.Head.Title}}{{.Head.Metas}}{{.Head.Links}}{{.Head.JSON}}
</head>
<body>
<header class="site-header">
<span class="site-name">{{.SiteName}}</span>
<nav>{{range .HeaderNav}}<a href="{{.Path}}">{{.Title}}</a>{{end}}</nav>
</header>
<main>
{{range .Fragments}}{{.}}
{{end}}</main>
<footer class="site-footer">
<nav>{{range .FooterNav}}<a href="{{.Path}}">{{.Title}}</a>{{end}}</nav>
</footer>
</body>
</html>
`))
