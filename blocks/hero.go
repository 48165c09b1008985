package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Hero is the prominent banner block, typically first on a page.
type Hero struct{}

func (Hero) Type() string { return "Hero" }

type heroContent struct {
	Badge       string `json:"badge"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Buttons     struct {
		Primary   *link `json:"primary"`
		Secondary *link `json:"secondary"`
	} `json:"buttons"`
	Image struct {
		Src string `json:"src"`
		Alt string `json:"alt"`
	} `json:"image"`
}

var heroTmpl = template.Must(template.New("hero").Parse(`<section class="block block-hero">
  <div class="hero-copy">
    {{if .Badge}}<span class="hero-badge">{{.Badge}}</span>{{end}}
    <h1>{{.Heading}}</h1>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
    <div class="hero-actions">
      {{with .Buttons.Primary}}<a class="btn btn-primary" href="{{.URL}}">{{.Text}}</a>{{end}}
      {{with .Buttons.Secondary}}<a class="btn btn-secondary" href="{{.URL}}">{{.Text}}</a>{{end}}
    </div>
  </div>
  {{if .Image.Src}}<img src="{{.Image.Src}}" alt="{{.Image.Alt}}">{{end}}
</section>`))

func (Hero) Render(content map[string]any) (template.HTML, error) {
	var c heroContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(heroTmpl, c)
}

func init() {
	block.Register(Hero{}, block.Meta{
		Name:         "Hero Section",
		Description:  "A prominent banner section, typically at the top of a page",
		Category:     "Header",
		Tags:         []string{"header", "banner", "intro"},
		PreviewImage: "/previews/hero.png",
	})
}
