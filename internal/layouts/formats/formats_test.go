package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pachinko/internal/board"
)

const boundaryYAML = "boundary: [{fx: 0, fy: 0}, {fx: 0, fy: 1}, {fx: 1, fy: 0}]\n"

func TestPartialRestitutionKeepsDefaults(t *testing.T) {
	l, err := ParseYAML([]byte("name: soft\nrestitution:\n  pin: 0.5\n" + boundaryYAML))
	require.NoError(t, err)

	assert.Equal(t, 0.5, l.Restitution.Pin)
	assert.Equal(t, board.DefaultFenceRestitution, l.Restitution.Fence)
	assert.Equal(t, board.DefaultWallRestitution, l.Restitution.Wall)
}

func TestExplicitZeroRestitution(t *testing.T) {
	l, err := ParseTOML([]byte(`name = "dead"
[restitution]
wall = 0.0
[[boundary]]
fx = 0.0
[[boundary]]
fx = 1.0
`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, l.Restitution.Wall)
	assert.Equal(t, board.DefaultPinRestitution, l.Restitution.Pin)
}

func TestLayoutValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", boundaryYAML},
		{"short boundary", "name: x\nboundary: [{fx: 0}]\n"},
		{"pin restitution above one", "name: x\nrestitution: {pin: 5}\n" + boundaryYAML},
		{"negative fence restitution", "name: x\nrestitution: {fence: -0.2}\n" + boundaryYAML},
		{"negative spacing", "name: x\npins: {spacing: -10, radius: 5}\n" + boundaryYAML},
		{"overlapping pins", "name: x\npins: {spacing: 1, radius: 5}\n" + boundaryYAML},
		{"fences without gaps", "name: x\nfences: {spacing: 5, width: 5, height: 75}\n" + boundaryYAML},
		{"one-point bottom", "name: x\nbottom: [{fx: 0}]\n" + boundaryYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestBottomLine(t *testing.T) {
	l, err := ParseYAML([]byte("name: tilted\n" + boundaryYAML + "bottom: [{fx: 0, dy: 200}, {fx: 1, dy: 50}]\n"))
	require.NoError(t, err)
	assert.Equal(t, [2]board.Anchor{{DY: 200}, {FX: 1, DY: 50}}, l.Bottom)

	l, err = ParseYAML([]byte("name: flat\n" + boundaryYAML))
	require.NoError(t, err)
	assert.Equal(t, [2]board.Anchor{}, l.Bottom)
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse([]byte("name: x"), ".json")
	assert.Error(t, err)
}
