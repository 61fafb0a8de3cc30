package client

import (
	"fmt"
	"strings"

	"github.com/1broseidon/textviz/models"
)

// imageTextLimit caps how much of the summary is asked to appear inside an image.
const imageTextLimit = 100

func buildSummaryPrompt(input string, category models.Category, urlMode bool, language string) string {
	var sb strings.Builder
	if urlMode {
		sb.WriteString(fmt.Sprintf("Analyze and summarize the content of this URL: %s.\n", strings.TrimSpace(input)))
		sb.WriteString("Search the web to retrieve the page before summarizing.\n")
		sb.WriteString("Extract the core logic, key stages, or main relationships.\n")
		sb.WriteString(fmt.Sprintf("Format the result as a concise structured outline optimized for a %s visualization.\n", category))
		sb.WriteString(fmt.Sprintf("Use natural %s.\n", language))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Summarize the following text into its essential logical components for a %s visualization.\n", category))
	sb.WriteString("Focus on key points, hierarchies, and processes.\n")
	sb.WriteString(fmt.Sprintf("Input text: \"%s\"\n", input))
	return sb.String()
}

func diagramInstruction(category models.Category) string {
	switch category {
	case models.CategoryFlowchart:
		return "Generate a valid Mermaid.js flowchart (graph TD or graph LR)."
	case models.CategoryMindmap:
		return "Generate a valid Mermaid.js mindmap."
	case models.CategoryChart:
		return "Generate a valid Mermaid.js pie chart or bar chart."
	case models.CategoryAuto:
		return "Choose the most appropriate Mermaid.js diagram type (flowchart, sequence, mindmap, timeline, or pie chart)."
	default:
		return "Generate a Mermaid flowchart."
	}
}

func buildDiagramPrompt(summary string, category models.Category, language string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Task: Convert the provided summary into a %s\n\n", diagramInstruction(category)))
	sb.WriteString("Style: Professional hand-drawn whiteboard sketch.\n")
	sb.WriteString(fmt.Sprintf("Labels: Concise %s text.\n\n", language))
	sb.WriteString(fmt.Sprintf("Summary to visualize:\n\"%s\"\n\n", summary))
	sb.WriteString("Rules:\n")
	sb.WriteString("1. Output ONLY raw Mermaid code.\n")
	sb.WriteString("2. No markdown fences.\n")
	sb.WriteString("3. Ensure syntax is 100% valid.\n")
	return sb.String()
}

func buildImagePrompt(summary string, language string) string {
	var sb strings.Builder
	sb.WriteString("A professional corporate infographic illustration with a symmetrical layout.\n")
	sb.WriteString("In the center, a large glowing conceptual icon (a shield or a crystalline core) is the focal point, with circuit patterns and soft 3D shading.\n")
	sb.WriteString("On the left and right, mini-scenes and 2.5D icons are organized neatly, each representing a different analytical perspective.\n")
	sb.WriteString("Clean vector art with soft gradients and a pastel professional palette (teal, amber, light grey).\n\n")
	sb.WriteString("TYPOGRAPHY REQUIREMENT:\n")
	sb.WriteString(fmt.Sprintf("The image must contain clear, legible %s characters based on this text: \"%s\".\n", language, truncateRunes(summary, imageTextLimit)))
	sb.WriteString("- Use a clean bold sans-serif font style for the text.\n")
	sb.WriteString("- Characters must have thick, well-defined strokes without blurring or artifacts.\n")
	sb.WriteString("- Each icon carries a 2-4 word label.\n")
	sb.WriteString("- No hallucinated or jumbled strokes; the text must be accurate and readable.\n")
	sb.WriteString("- High contrast between text and background (dark grey text on white or pastel).\n\n")
	sb.WriteString("Technical elements such as magnifying glasses, gears, progress bars and floating data symbols complete the composition.\n")
	sb.WriteString("Clean minimalist white background, crisp lines, flat design with depth, 4k resolution.\n")
	return sb.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
