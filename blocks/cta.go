package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Cta nudges the visitor toward one action.
type Cta struct{}

func (Cta) Type() string { return "Cta" }

type ctaContent struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Buttons     struct {
		Primary   *link `json:"primary"`
		Secondary *link `json:"secondary"`
	} `json:"buttons"`
}

var ctaTmpl = template.Must(template.New("cta").Parse(`<section class="block block-cta">
  <h2>{{.Heading}}</h2>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <div class="cta-actions">
    {{with .Buttons.Primary}}<a class="btn btn-primary" href="{{.URL}}">{{.Text}}</a>{{end}}
    {{with .Buttons.Secondary}}<a class="btn btn-secondary" href="{{.URL}}">{{.Text}}</a>{{end}}
  </div>
</section>`))

func (Cta) Render(content map[string]any) (template.HTML, error) {
	var c ctaContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(ctaTmpl, c)
}

func init() {
	block.Register(Cta{}, block.Meta{
		Name:         "Call to Action Section",
		Description:  "Encourage users to take a specific action",
		Category:     "Conversion",
		Tags:         []string{"cta", "action", "button"},
		PreviewImage: "/previews/cta.png",
	})
}
