package video

import (
	_ "embed"
	"html/template"
	"strings"

	"github.com/shencore/shen/pkg/render"
	"github.com/shencore/shen/pkg/search"
)

//go:embed template.html
var videoTemplate string

// Placeholder is shown for videos without a pagemap thumbnail.
const Placeholder = "/static/video-placeholder.svg"

// VideoRenderer renders video cards with a thumbnail and a play overlay.
type VideoRenderer struct {
	template *template.Template
}

type videoData struct {
	search.Item
	ThumbnailURL string
}

func init() {
	render.RegisterRenderer(NewVideoRenderer())
}

func NewVideoRenderer() *VideoRenderer {
	tmpl := template.Must(template.New("video").Funcs(render.GetTemplateFuncs()).Parse(videoTemplate))
	return &VideoRenderer{template: tmpl}
}

func (r *VideoRenderer) Render(item search.Item) template.HTML {
	thumb := item.Thumbnail()
	if thumb == "" {
		thumb = Placeholder
	}

	var buf strings.Builder
	if err := r.template.Execute(&buf, videoData{Item: item, ThumbnailURL: thumb}); err != nil {
		return template.HTML("<!-- error rendering video result -->")
	}
	return template.HTML(buf.String())
}

func (r *VideoRenderer) Type() search.Type {
	return search.TypeVideo
}
