package render

import (
	"github.com/charmbracelet/glamour"
)

// NewTerminalRenderer returns a function that renders markdown for a
// terminal of the given width using glamour.
func NewTerminalRenderer(width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
