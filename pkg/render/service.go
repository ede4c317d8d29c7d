package render

import (
	"html/template"

	"github.com/shencore/shen/pkg/search"
)

// Card is one rendered result ready to be placed in a page.
type Card struct {
	Key  string
	HTML template.HTML
}

// Service renders result lists for pages. It is safe for concurrent use
// because the registry is internally synchronized.
type Service struct {
	registry *RendererRegistry
}

// NewService creates a Service. A nil registry means only the built-in
// fallback renderer is used.
func NewService(reg *RendererRegistry) *Service {
	if reg == nil {
		reg = NewRendererRegistry()
	}
	return &Service{registry: reg}
}

// Cards renders items in order with the renderer for t.
func (s *Service) Cards(t search.Type, items []search.Item) []Card {
	rendered := s.registry.RenderAll(t, items)
	cards := make([]Card, len(items))
	for i, item := range items {
		cards[i] = Card{Key: item.Key(), HTML: rendered[i]}
	}
	return cards
}

// Registry returns the underlying registry.
func (s *Service) Registry() *RendererRegistry {
	return s.registry
}

// LayoutClass returns the CSS class of the result container for t: a single
// column for web results, a dense grid for images and a wide grid for videos.
func LayoutClass(t search.Type) string {
	switch t {
	case search.TypeImage:
		return "results results-image"
	case search.TypeVideo:
		return "results results-video"
	default:
		return "results results-all"
	}
}
