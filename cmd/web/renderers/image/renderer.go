package image

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/shencore/shen/pkg/render"
	"github.com/shencore/shen/pkg/search"
)

//go:embed template.html
var imageTemplate string

// Placeholder replaces images that fail to load.
const Placeholder = "https://placehold.co/400?text=Image+Error"

// ImageRenderer renders square image tiles linking to the page the image
// was found on.
type ImageRenderer struct {
	template *template.Template
}

type imageData struct {
	search.Item
	Placeholder string
}

func init() {
	render.RegisterRenderer(NewImageRenderer())
}

func NewImageRenderer() *ImageRenderer {
	tmpl := template.Must(template.New("image").Funcs(render.GetTemplateFuncs()).Parse(imageTemplate))
	return &ImageRenderer{template: tmpl}
}

func (r *ImageRenderer) Render(item search.Item) template.HTML {
	var buf strings.Builder
	if err := r.template.Execute(&buf, imageData{Item: item, Placeholder: Placeholder}); err != nil {
		return template.HTML("<!-- error rendering image result -->")
	}
	return template.HTML(buf.String())
}

func (r *ImageRenderer) Type() search.Type {
	return search.TypeImage
}
