package text

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/shencore/shen/pkg/render"
	"github.com/shencore/shen/pkg/search"
)

//go:embed template.html
var textTemplate string

// TextRenderer renders plain web results: formatted URL, highlighted title
// and snippet.
type TextRenderer struct {
	template *template.Template
}

func init() {
	render.RegisterRenderer(NewTextRenderer())
}

func NewTextRenderer() *TextRenderer {
	tmpl := template.Must(template.New("text").Funcs(render.GetTemplateFuncs()).Parse(textTemplate))
	return &TextRenderer{template: tmpl}
}

func (r *TextRenderer) Render(item search.Item) template.HTML {
	var buf strings.Builder
	if err := r.template.Execute(&buf, item); err != nil {
		return template.HTML("<!-- error rendering text result -->")
	}
	return template.HTML(buf.String())
}

func (r *TextRenderer) Type() search.Type {
	return search.TypeAll
}
