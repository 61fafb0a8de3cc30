package client

import (
	"regexp"
	"strings"

	"github.com/1broseidon/textviz/models"
)

var (
	urlPattern   = regexp.MustCompile(`^(http|https)://[^ "]+$`)
	fencePattern = regexp.MustCompile("```mermaid\\n?|```")
)

// Leading tokens of Mermaid documents that decide the auto category.
const (
	mindmapMarker = "mindmap"
	pieMarker     = "pie"
)

// IsURL reports whether the trimmed input is a single http(s) URL with no
// embedded spaces or quotes.
func IsURL(input string) bool {
	return urlPattern.MatchString(strings.TrimSpace(input))
}

// StripCodeFence removes markdown code-fence markers the model may wrap
// around the markup, then trims surrounding whitespace.
func StripCodeFence(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}

// ResolveCategory turns a requested category into a concrete one. Concrete
// requests pass through; auto is decided by the markup's leading token.
func ResolveCategory(requested models.Category, markup string) models.Category {
	if requested.Concrete() {
		return requested
	}
	switch {
	case strings.HasPrefix(markup, mindmapMarker):
		return models.CategoryMindmap
	case strings.HasPrefix(markup, pieMarker):
		return models.CategoryChart
	default:
		return models.CategoryFlowchart
	}
}
