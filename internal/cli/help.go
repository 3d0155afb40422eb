package cli

import (
	"os"

	"github.com/arthur-debert/dotsetup/pkg/ui"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// MarkdownRenderer renders markdown help text for a terminal
type MarkdownRenderer struct {
	Style string // "dark", "light", "notty", "auto", or path to custom style
	Width int    // 0 = no wrapping
}

// NewMarkdownRenderer creates a renderer with automatic style detection
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{Style: "auto"}
}

// Render converts markdown to styled terminal output, returning content
// unchanged if glamour fails
func (r *MarkdownRenderer) Render(content string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// installHelp renders the markdown long help with glamour when help goes to
// a terminal. Otherwise the markdown is printed as is.
func installHelp(cmd *cobra.Command) {
	defaultHelp := cmd.HelpFunc()
	renderer := NewMarkdownRenderer()

	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		f, ok := c.OutOrStdout().(*os.File)
		if !ok || !ui.IsTerminal(f) {
			defaultHelp(c, args)
			return
		}
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			renderer.Width = width
		}
		long := c.Long
		c.Long = renderer.Render(long)
		defaultHelp(c, args)
		c.Long = long
	})
}
