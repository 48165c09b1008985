package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Team introduces the people behind the site.
type Team struct{}

func (Team) Type() string { return "Team" }

type teamContent struct {
	Title       string `json:"title"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
	People      []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Role        string `json:"role"`
		Description string `json:"description"`
		Avatar      string `json:"avatar"`
	} `json:"people"`
}

var teamTmpl = template.Must(template.New("team").Parse(`<section class="block block-team">
  {{if .Title}}<span class="team-title">{{.Title}}</span>{{end}}
  {{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <div class="team-grid">
    {{range .People}}<div class="team-member">
      {{if .Avatar}}<img src="{{.Avatar}}" alt="{{.Name}}">{{end}}
      <h3>{{.Name}}</h3>
      <span class="team-role">{{.Role}}</span>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </div>{{end}}
  </div>
</section>`))

func (Team) Render(content map[string]any) (template.HTML, error) {
	var c teamContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(teamTmpl, c)
}

func init() {
	block.Register(Team{}, block.Meta{
		Name:         "Team Section",
		Description:  "Showcase your team members",
		Category:     "About",
		Tags:         []string{"team", "people", "staff"},
		PreviewImage: "/previews/team.png",
	})
}
