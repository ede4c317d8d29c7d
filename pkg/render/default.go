package render

import (
	"html/template"
	"strings"

	"github.com/shencore/shen/pkg/search"
)

// defaultTemplate is used when no renderer is registered for a type. It
// shows the link and the plain title and snippet.
var defaultTemplate = `<div class="result result-default">
  <a href="{{.Link}}" target="_blank" rel="noopener noreferrer">{{default .Link .Title}}</a>
  {{with .Snippet}}<p>{{.}}</p>{{end}}
</div>`

// DefaultRenderer is the fallback renderer.
type DefaultRenderer struct {
	template *template.Template
}

// NewDefaultRenderer creates the fallback renderer.
func NewDefaultRenderer() *DefaultRenderer {
	tmpl := template.Must(template.New("default").Funcs(GetTemplateFuncs()).Parse(defaultTemplate))
	return &DefaultRenderer{template: tmpl}
}

func (r *DefaultRenderer) Render(item search.Item) template.HTML {
	var buf strings.Builder
	if err := r.template.Execute(&buf, item); err != nil {
		return template.HTML("<!-- error rendering result -->")
	}
	return template.HTML(buf.String())
}

// Type returns the empty type since this renderer handles any type.
func (r *DefaultRenderer) Type() search.Type {
	return ""
}
