package markup

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// NoFormatTag marks content shown only without colour
const NoFormatTag = "no-format"

// StyleMap maps tag names to styles
type StyleMap map[string]lipgloss.Style

var defaultRenderer = lipgloss.DefaultRenderer()

// SetDefaultRenderer sets the renderer whose colour profile decides between
// styled and plain output
func SetDefaultRenderer(r *lipgloss.Renderer) {
	defaultRenderer = r
}

// Render executes text as a Go template with data, then expands its tags
func Render(text string, data interface{}, styles StyleMap) (string, error) {
	tmpl, err := template.New("markup").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return ExpandTags(buf.String(), styles)
}

// ExpandTags replaces style tags with styled text
func ExpandTags(text string, styles StyleMap) (string, error) {
	root, ok := parse(text)
	if !ok {
		return text, nil
	}

	plain := defaultRenderer.ColorProfile() == termenv.Ascii
	var sb strings.Builder
	expand(&sb, root, styles, plain)
	return sb.String(), nil
}

// StripTags returns the text content with every tag removed
func StripTags(text string) string {
	root, ok := parse(text)
	if !ok {
		return text
	}

	var sb strings.Builder
	expand(&sb, root, nil, true)
	return sb.String()
}

func parse(text string) (*etree.Element, bool) {
	if text == "" || !strings.Contains(text, "<") {
		return nil, false
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString("<markup>" + text + "</markup>"); err != nil {
		return nil, false
	}
	root := doc.Root()
	if root == nil {
		return nil, false
	}
	return root, true
}

func expand(sb *strings.Builder, el *etree.Element, styles StyleMap, plain bool) {
	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			if t.Tag == NoFormatTag {
				if plain {
					expand(sb, t, styles, plain)
				}
				continue
			}

			var inner strings.Builder
			expand(&inner, t, styles, plain)

			style, ok := styles[t.Tag]
			if plain || !ok {
				sb.WriteString(inner.String())
				continue
			}
			sb.WriteString(style.Render(inner.String()))
		}
	}
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape protects literal text, such as file names, placed inside markup
func Escape(text string) string {
	return escaper.Replace(text)
}
