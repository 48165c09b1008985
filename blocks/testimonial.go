package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Testimonial cycles customer quotes with attribution.
type Testimonial struct{}

func (Testimonial) Type() string { return "Testimonial" }

type testimonialContent struct {
	Testimonials []struct {
		ID     string `json:"id"`
		Text   string `json:"text"`
		Name   string `json:"name"`
		Role   string `json:"role"`
		Avatar string `json:"avatar"`
		Rating int    `json:"rating"`
	} `json:"testimonials"`
}

var testimonialTmpl = template.Must(template.New("testimonial").Parse(`<section class="block block-testimonial">
  {{range .Testimonials}}<figure class="testimonial">
    <blockquote>{{.Text}}</blockquote>
    <figcaption>
      {{if .Avatar}}<img src="{{.Avatar}}" alt="{{.Name}}">{{end}}
      <span class="testimonial-name">{{.Name}}</span>
      {{if .Role}}<span class="testimonial-role">{{.Role}}</span>{{end}}
    </figcaption>
  </figure>{{end}}
</section>`))

func (Testimonial) Render(content map[string]any) (template.HTML, error) {
	var c testimonialContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(testimonialTmpl, c)
}

func init() {
	block.Register(Testimonial{}, block.Meta{
		Name:         "Testimonial Section",
		Description:  "Share customer reviews and testimonials",
		Category:     "Social Proof",
		Tags:         []string{"reviews", "quotes", "testimonials"},
		PreviewImage: "/previews/testimonial.png",
	})
}
