package templet

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// Group is an explicit registry of named templates that are defined
// separately and compiled together. Compilation failures are aggregated,
// so one pass reports every broken template rather than the first.
type Group struct {
	definitions map[string]definition
	compiled    map[string]*Template
}

type definition struct {
	src    Source
	params []string
	opts   []Option
}

// NewGroup creates an empty template group.
func NewGroup() *Group {
	return &Group{
		definitions: map[string]definition{},
	}
}

// Add records a named template definition. Adding a name twice replaces the
// earlier definition. Definitions take effect at the next Compile call.
func (g *Group) Add(name string, src Source, params []string, opts ...Option) {
	opts = append([]Option{WithName(name)}, opts...)
	g.definitions[name] = definition{src: src, params: params, opts: opts}
}

// Compile compiles every definition in the group. All failures are
// aggregated into the returned error; templates that compiled cleanly are
// available through Template and Render regardless.
func (g *Group) Compile() error {
	g.compiled = make(map[string]*Template, len(g.definitions))

	names := make([]string, 0, len(g.definitions))
	for name := range g.definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	var result *multierror.Error
	for _, name := range names {
		def := g.definitions[name]
		tmpl, err := Compile(def.src, def.params, def.opts...)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("template %s: %w", name, err))
			continue
		}
		g.compiled[name] = tmpl
	}
	return result.ErrorOrNil()
}

// Template returns the compiled template with the given name.
func (g *Group) Template(name string) (*Template, bool) {
	tmpl, ok := g.compiled[name]
	return tmpl, ok
}

// Render renders the named template with the given arguments.
func (g *Group) Render(ctx context.Context, name string, args map[string]any) (string, error) {
	tmpl, ok := g.compiled[name]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", name)
	}
	return tmpl.Render(ctx, args)
}
