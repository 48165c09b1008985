package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Stats shows a row of headline metrics.
type Stats struct{}

func (Stats) Type() string { return "Stats" }

type statsContent struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Link        *link  `json:"link"`
	Stats       []struct {
		ID    string `json:"id"`
		Value string `json:"value"`
		Label string `json:"label"`
	} `json:"stats"`
}

var statsTmpl = template.Must(template.New("stats").Parse(`<section class="block block-stats">
  {{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  {{with .Link}}<a href="{{.URL}}">{{.Text}}</a>{{end}}
  <div class="stats-row">
    {{range .Stats}}<div class="stat">
      <span class="stat-value">{{.Value}}</span>
      <span class="stat-label">{{.Label}}</span>
    </div>{{end}}
  </div>
</section>`))

func (Stats) Render(content map[string]any) (template.HTML, error) {
	var c statsContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(statsTmpl, c)
}

func init() {
	block.Register(Stats{}, block.Meta{
		Name:         "Stats Section",
		Description:  "Display important metrics and statistics",
		Category:     "Content",
		Tags:         []string{"numbers", "metrics", "statistics"},
		PreviewImage: "/previews/stats.png",
	})
}
