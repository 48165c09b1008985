// blocks/blocks_test.go
//
// Rendering tests for the built-in blocks.  Payloads come in as the loose
// maps the storage layer hands the renderer, so these double as checks
// that partial or oddly-typed content degrades instead of erroring.
package blocks

import (
	"strings"
	"testing"

	"github.com/yanizio/atelier/internal/block"
)

func TestAllBlocksRegistered(t *testing.T) {
	want := []string{
		"Cta", "Faq", "Features", "Hero", "Logos",
		"Products", "Stats", "Team", "Testimonial",
	}
	for _, typ := range want {
		if _, ok := block.Lookup(typ); !ok {
			t.Errorf("block %q not registered", typ)
		}
	}
}

func TestHeroRendersFullPayload(t *testing.T) {
	out, err := Hero{}.Render(map[string]any{
		"badge":       "New",
		"heading":     "Build faster",
		"description": "Launch your site today.",
		"buttons": map[string]any{
			"primary": map[string]any{"text": "Get started", "url": "/signup"},
		},
		"image": map[string]any{"src": "/img/hero.png", "alt": "screenshot"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"Build faster", "Get started", "/signup", "/img/hero.png"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "btn-secondary") {
		t.Errorf("secondary button rendered without content:\n%s", html)
	}
}

func TestHeroTolerantOfSparseContent(t *testing.T) {
	out, err := Hero{}.Render(map[string]any{"heading": "Only a heading"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "Only a heading") {
		t.Errorf("heading missing from output:\n%s", out)
	}
}

func TestHeroEscapesContent(t *testing.T) {
	out, err := Hero{}.Render(map[string]any{
		"heading": `<script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Errorf("unescaped script tag in output:\n%s", out)
	}
}

func TestFaqRendersItemsAndSupport(t *testing.T) {
	out, err := Faq{}.Render(map[string]any{
		"heading": "FAQ",
		"items": []any{
			map[string]any{"id": "q1", "question": "How?", "answer": "Like this."},
			map[string]any{"id": "q2", "question": "Why?", "answer": "Because."},
		},
		"supportHeading":    "Still stuck?",
		"supportButtonText": "Contact us",
		"supportButtonUrl":  "/contact",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"How?", "Because.", "Still stuck?", "/contact"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestStatsRendersEveryEntry(t *testing.T) {
	out, err := Stats{}.Render(map[string]any{
		"heading": "By the numbers",
		"stats": []any{
			map[string]any{"id": "s1", "value": "99.9%", "label": "uptime"},
			map[string]any{"id": "s2", "value": "200+", "label": "integrations"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"99.9%", "uptime", "200+", "integrations"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q:\n%s", want, html)
		}
	}
}

func TestBlocksSurviveWrongTypes(t *testing.T) {
	// A string where an array is expected fails the decode; the renderer
	// must surface that as an error, not a panic.
	if _, err := (Features{}).Render(map[string]any{"features": "not-a-list"}); err == nil {
		t.Error("Features accepted a non-list features payload")
	}
}

func TestRegistryMetadataCategories(t *testing.T) {
	cats := block.Categories()
	seen := map[string]bool{}
	for _, c := range cats {
		seen[c] = true
	}
	for _, want := range []string{"Header", "Content", "Social Proof", "Conversion", "About", "Commerce"} {
		if !seen[want] {
			t.Errorf("category %q missing from %v", want, cats)
		}
	}
}
