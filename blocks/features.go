package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Features lists product or service highlights in a grid.
type Features struct{}

func (Features) Type() string { return "Features" }

type featuresContent struct {
	Heading     string `json:"heading"`
	Subheading  string `json:"subheading"`
	Description string `json:"description"`
	Features    []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		IconURL     string `json:"iconUrl"`
	} `json:"features"`
}

var featuresTmpl = template.Must(template.New("features").Parse(`<section class="block block-features">
  {{if .Subheading}}<span class="features-subheading">{{.Subheading}}</span>{{end}}
  {{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <div class="features-grid">
    {{range .Features}}<div class="feature">
      {{if .IconURL}}<img src="{{.IconURL}}" alt="">{{end}}
      <h3>{{.Title}}</h3>
      <p>{{.Description}}</p>
    </div>{{end}}
  </div>
</section>`))

func (Features) Render(content map[string]any) (template.HTML, error) {
	var c featuresContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(featuresTmpl, c)
}

func init() {
	block.Register(Features{}, block.Meta{
		Name:         "Features Section",
		Description:  "Showcase your product or service features",
		Category:     "Content",
		Tags:         []string{"features", "highlights", "benefits"},
		PreviewImage: "/previews/features.png",
	})
}
