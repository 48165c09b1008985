package blocks

import (
	"html/template"

	"github.com/yanizio/atelier/internal/block"
)

// Products shows a catalogue grid of products or services.
type Products struct{}

func (Products) Type() string { return "Products" }

type productsContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Products    []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		ImageURL    string `json:"imageUrl"`
		Link        string `json:"link"`
	} `json:"products"`
}

var productsTmpl = template.Must(template.New("products").Parse(`<section class="block block-products">
  {{if .Title}}<h2>{{.Title}}</h2>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  <div class="products-grid">
    {{range .Products}}<div class="product">
      {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Name}}">{{end}}
      <h3>{{.Name}}</h3>
      <p>{{.Description}}</p>
      {{if .Link}}<a href="{{.Link}}">Learn more</a>{{end}}
    </div>{{end}}
  </div>
</section>`))

func (Products) Render(content map[string]any) (template.HTML, error) {
	var c productsContent
	if err := decode(content, &c); err != nil {
		return "", err
	}
	return execute(productsTmpl, c)
}

func init() {
	block.Register(Products{}, block.Meta{
		Name:         "Products Section",
		Description:  "Display products or services",
		Category:     "Commerce",
		Tags:         []string{"products", "services", "catalog"},
		PreviewImage: "/previews/products.png",
	})
}
