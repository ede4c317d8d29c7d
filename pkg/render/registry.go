package render

import (
	"html/template"
	"slices"
	"sync"

	"github.com/shencore/shen/pkg/search"
)

// ResultRenderer turns one search hit into an HTML card. Each result type
// (all, image, video) has its own renderer.
type ResultRenderer interface {
	// Render returns trusted HTML; implementations escape or sanitize
	// everything taken from the item.
	Render(item search.Item) template.HTML

	// Type returns the result type this renderer handles.
	Type() search.Type
}

var (
	globalMu        sync.Mutex
	globalRenderers []ResultRenderer
)

// RegisterRenderer adds a renderer to the global set. Renderer packages call
// it from init.
func RegisterRenderer(r ResultRenderer) {
	if r == nil {
		return
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	globalRenderers = append(globalRenderers, r)
}

// GetRegisteredRenderers returns all registered renderers.
func GetRegisteredRenderers() []ResultRenderer {
	globalMu.Lock()
	defer globalMu.Unlock()
	return slices.Clone(globalRenderers)
}

// RendererRegistry maps result types to renderers and falls back to a
// default renderer for types without one.
type RendererRegistry struct {
	mu              sync.RWMutex
	renderers       map[search.Type]ResultRenderer
	defaultRenderer ResultRenderer
}

// NewRendererRegistry creates an empty registry with the built-in fallback.
func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{
		renderers:       make(map[search.Type]ResultRenderer),
		defaultRenderer: NewDefaultRenderer(),
	}
}

// GetGlobalRegistry builds a registry from all auto-registered renderers.
// The renderer for plain web results, when registered, becomes the fallback.
func GetGlobalRegistry() *RendererRegistry {
	reg := NewRendererRegistry()
	for _, r := range GetRegisteredRenderers() {
		reg.Register(r)
	}
	if r, ok := reg.GetRenderer(search.TypeAll); ok {
		reg.SetDefaultRenderer(r)
	}
	return reg
}

// Register adds r, replacing any renderer for the same type.
func (r *RendererRegistry) Register(renderer ResultRenderer) {
	if renderer == nil {
		return
	}
	r.mu.Lock()
	r.renderers[renderer.Type()] = renderer
	r.mu.Unlock()
}

// Render renders item with the renderer for t.
func (r *RendererRegistry) Render(t search.Type, item search.Item) template.HTML {
	return r.rendererFor(t).Render(item)
}

// RenderAll renders items in order with the renderer for t.
func (r *RendererRegistry) RenderAll(t search.Type, items []search.Item) []template.HTML {
	renderer := r.rendererFor(t)
	out := make([]template.HTML, len(items))
	for i, item := range items {
		out[i] = renderer.Render(item)
	}
	return out
}

func (r *RendererRegistry) rendererFor(t search.Type) ResultRenderer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.renderers[t]; ok {
		return renderer
	}
	return r.defaultRenderer
}

// GetRenderer returns the renderer registered for t, without fallback.
func (r *RendererRegistry) GetRenderer(t search.Type) (ResultRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[t]
	return renderer, ok
}

// ListRendererTypes returns the registered types in display order.
func (r *RendererRegistry) ListRendererTypes() []search.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]search.Type, 0, len(r.renderers))
	for _, t := range search.Types {
		if _, ok := r.renderers[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// SetDefaultRenderer overrides the fallback renderer.
func (r *RendererRegistry) SetDefaultRenderer(renderer ResultRenderer) {
	if renderer == nil {
		return
	}
	r.mu.Lock()
	r.defaultRenderer = renderer
	r.mu.Unlock()
}

// DefaultRenderer returns the currently configured fallback renderer.
func (r *RendererRegistry) DefaultRenderer() ResultRenderer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultRenderer
}
