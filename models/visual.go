package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Category is the requested or resolved kind of visual.
type Category string

const (
	CategoryAuto         Category = "auto"
	CategoryFlowchart    Category = "flowchart"
	CategoryMindmap      Category = "mindmap"
	CategoryChart        Category = "chart"
	CategoryIllustration Category = "illustration"
)

// ErrUnknownCategory is returned by ParseCategory for names outside the known set.
var ErrUnknownCategory = errors.New("unknown visual category")

// Categories lists every accepted category, auto first.
var Categories = []Category{
	CategoryAuto,
	CategoryFlowchart,
	CategoryMindmap,
	CategoryChart,
	CategoryIllustration,
}

// ParseCategory maps a case-insensitive name to a Category.
// An empty name means auto.
func ParseCategory(name string) (Category, error) {
	n := Category(strings.ToLower(strings.TrimSpace(name)))
	if n == "" {
		return CategoryAuto, nil
	}
	for _, c := range Categories {
		if c == n {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// Concrete reports whether the category names an actual visual kind.
func (c Category) Concrete() bool {
	return c != CategoryAuto && c != ""
}

// IsDiagram reports whether results of this category are diagram markup.
func (c Category) IsDiagram() bool {
	return c != CategoryIllustration
}

func (c Category) String() string {
	return string(c)
}

// GenerationRequest is one submitted attempt. It is not modified after creation.
type GenerationRequest struct {
	Input    string
	Category Category
}

// Phase tracks which remote call is outstanding.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSummarizing
	PhaseDrawing
)

func (p Phase) String() string {
	switch p {
	case PhaseSummarizing:
		return "summarizing"
	case PhaseDrawing:
		return "drawing"
	default:
		return "idle"
	}
}

// MarshalText lets phases travel as their names in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*p = PhaseIdle
	case "summarizing":
		*p = PhaseSummarizing
	case "drawing":
		*p = PhaseDrawing
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Result is the outcome of one successful generation. The concrete type is
// either *DiagramResult or *ImageResult.
type Result interface {
	// Category is always concrete, never CategoryAuto.
	Category() Category
	// Content is the diagram markup or the image data URI.
	Content() string
	Desc() string
}

// DiagramResult carries diagram-description-language markup.
type DiagramResult struct {
	Kind        Category
	Markup      string
	Description string
}

func (r *DiagramResult) Category() Category { return r.Kind }
func (r *DiagramResult) Content() string    { return r.Markup }
func (r *DiagramResult) Desc() string       { return r.Description }

// ImageResult carries one generated image.
type ImageResult struct {
	MIMEType    string
	Data        []byte
	Description string
}

func (r *ImageResult) Category() Category { return CategoryIllustration }
func (r *ImageResult) Content() string    { return r.DataURI() }
func (r *ImageResult) Desc() string       { return r.Description }

// DataURI encodes the image as data:<mime>;base64,<payload>.
func (r *ImageResult) DataURI() string {
	return "data:" + r.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(r.Data)
}

// ErrMalformedDataURI is returned by ParseDataURI for anything that is not a base64 data URI.
var ErrMalformedDataURI = errors.New("malformed data URI")

// ParseDataURI decodes a base64 data URI into its MIME type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrMalformedDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrMalformedDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrMalformedDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
	}
	return mimeType, data, nil
}
