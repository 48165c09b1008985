package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Logos shows a strip of partner or client marks.
type Logos struct{}

func (Logos) Type() string { return "Logos" }

type logosContent struct {
	Heading string `json:"heading"`
	Logos   []struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		Image       string `json:"image"`
	} `json:"logos"`
}

var logosTmpl = template.Must(template.New("logos").Parse(`<section class="block block-logos">
  {{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
  <div class="logos-strip">
    {{range .Logos}}<img src="{{.Image}}" alt="{{.Description}}">{{end}}
  </div>
</section>`))

func (Logos) Render(content map[string]any) (template.HTML, error) {
	var c logosContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(logosTmpl, c)
}

func init() {
	block.Register(Logos{}, block.Meta{
		Name:         "Logos Section",
		Description:  "Display partner or client logos",
		Category:     "Social Proof",
		Tags:         []string{"clients", "partners", "brands"},
		PreviewImage: "/previews/logos.png",
	})
}
