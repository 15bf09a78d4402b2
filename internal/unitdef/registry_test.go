// Host-side packages (audit, config, document, editor, unitdef) assert with
// testify; internal/unit and cmd use the testing package alone.
package unitdef

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eykd/unitree-go/internal/unit"
)

func TestDefault_BuiltInTypes(t *testing.T) {
	r := Default()
	assert.Equal(t,
		[]string{"text", "headline", "image", "table", "group", "media", "columns"},
		r.Types())

	media, ok := r.Lookup("media")
	require.True(t, ok)
	assert.False(t, media.Multiple.Resolve(nil, nil), "media is single-instance")
	assert.True(t, media.Nested.Resolve(nil, nil))

	cols, ok := r.Lookup("columns")
	require.True(t, ok)
	assert.False(t, cols.Nested.Resolve(nil, nil), "columns are root-only")

	_, ok = r.Lookup("video")
	assert.False(t, ok)
}

func TestParse_OmittedCapabilitiesAreTrue(t *testing.T) {
	r, err := Parse(strings.NewReader(`
units:
  - type: note
  - type: banner
    duplicate: false
    moveHierarchy: false
`))
	require.NoError(t, err)

	note, ok := r.Lookup("note")
	require.True(t, ok)
	for _, c := range []unit.Capability{note.Nested, note.Multiple, note.Duplicate, note.MoveHierarchy} {
		assert.True(t, c.Resolve(nil, nil))
	}

	banner, _ := r.Lookup("banner")
	assert.True(t, banner.Nested.Resolve(nil, nil))
	assert.False(t, banner.Duplicate.Resolve(nil, nil))
	assert.False(t, banner.MoveHierarchy.Resolve(nil, nil))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown key",
			input:   "units:\n  - type: text\n    nestable: false\n",
			wantMsg: "nestable",
		},
		{
			name:    "empty type",
			input:   "units:\n  - nested: false\n",
			wantErr: ErrEmptyType,
		},
		{
			name:    "repeated type",
			input:   "units:\n  - type: text\n  - type: text\n",
			wantErr: ErrDuplicateType,
		},
		{
			name:    "not yaml",
			input:   "units: [",
			wantMsg: "parse unit definitions",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	r, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, r.Types())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units:\n  - type: quote\n"), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"quote"}, r.Types())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read unit definitions")
}

func TestRegister_ReplacesAndKeepsOrder(t *testing.T) {
	r := Default()
	locked := unit.Dynamic(func(n *unit.Node, _ unit.Host) bool {
		return n.Attributes["locked"] != true
	})
	require.NoError(t, r.Register(unit.Policy{Type: "text", MoveHierarchy: locked}))
	require.NoError(t, r.Register(unit.Policy{Type: "quote"}))

	text, ok := r.Lookup("text")
	require.True(t, ok)
	assert.True(t, text.MoveHierarchy.IsDynamic())
	assert.False(t, text.MoveHierarchy.Resolve(&unit.Node{Attributes: map[string]any{"locked": true}}, nil))

	types := r.Types()
	assert.Equal(t, "text", types[0])
	assert.Equal(t, "quote", types[len(types)-1])

	assert.ErrorIs(t, r.Register(unit.Policy{}), ErrEmptyType)
}
