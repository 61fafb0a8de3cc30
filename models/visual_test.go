package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Category
		wantErr bool
	}{
		{name: "empty means auto", in: "", want: CategoryAuto},
		{name: "upper case", in: "AUTO", want: CategoryAuto},
		{name: "mixed case", in: "MindMap", want: CategoryMindmap},
		{name: "padded", in: "  illustration ", want: CategoryIllustration},
		{name: "unknown", in: "sequence", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	assert.False(t, CategoryAuto.Concrete())
	assert.True(t, CategoryChart.Concrete())
	assert.True(t, CategoryFlowchart.IsDiagram())
	assert.False(t, CategoryIllustration.IsDiagram())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "summarizing", PhaseSummarizing.String())
	assert.Equal(t, "drawing", PhaseDrawing.String())

	text, err := PhaseDrawing.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "drawing", string(text))

	var p Phase
	require.NoError(t, p.UnmarshalText([]byte("summarizing")))
	assert.Equal(t, PhaseSummarizing, p)
	assert.Error(t, p.UnmarshalText([]byte("waiting")))
}

func TestImageResultDataURI(t *testing.T) {
	img := &ImageResult{MIMEType: "image/png", Data: []byte("png-bytes")}

	assert.Equal(t, CategoryIllustration, img.Category())
	assert.Equal(t, "data:image/png;base64,cG5nLWJ5dGVz", img.Content())

	mimeType, data, err := ParseDataURI(img.DataURI())
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestParseDataURIRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,plain",
		"data:image/png;base64,@@@",
	} {
		_, _, err := ParseDataURI(in)
		assert.ErrorIs(t, err, ErrMalformedDataURI, in)
	}
}
