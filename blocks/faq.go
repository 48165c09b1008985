package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Faq renders question and answer pairs plus an optional support callout.
type Faq struct{}

func (Faq) Type() string { return "Faq" }

type faqContent struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
	Items       []struct {
		ID       string `json:"id"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"items"`
	SupportHeading     string `json:"supportHeading"`
	SupportDescription string `json:"supportDescription"`
	SupportButtonText  string `json:"supportButtonText"`
	SupportButtonURL   string `json:"supportButtonUrl"`
}

var faqTmpl = template.Must(template.New("faq").Parse(`<section class="block block-faq">
  {{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <dl class="faq-list">
    {{range .Items}}<div class="faq-item">
      <dt>{{.Question}}</dt>
      <dd>{{.Answer}}</dd>
    </div>{{end}}
  </dl>
  {{if .SupportHeading}}<div class="faq-support">
    <h3>{{.SupportHeading}}</h3>
    {{if .SupportDescription}}<p>{{.SupportDescription}}</p>{{end}}
    {{if .SupportButtonText}}<a class="btn" href="{{.SupportButtonURL}}">{{.SupportButtonText}}</a>{{end}}
  </div>{{end}}
</section>`))

func (Faq) Render(content map[string]any) (template.HTML, error) {
	var c faqContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(faqTmpl, c)
}

func init() {
	block.Register(Faq{}, block.Meta{
		Name:         "FAQ Section",
		Description:  "Answer frequently asked questions",
		Category:     "Content",
		Tags:         []string{"questions", "answers", "faq"},
		PreviewImage: "/previews/faq.png",
	})
}
