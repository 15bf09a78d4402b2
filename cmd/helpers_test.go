package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/eykd/unitree-go/internal/document"
	"github.com/eykd/unitree-go/internal/unit"
)

// mockDocumentIO is an in-memory DocumentIO.
type mockDocumentIO struct {
	docs     map[string][]byte
	writes   int
	readErr  error
	writeErr error
}

func newMockIO(path, content string) *mockDocumentIO {
	return &mockDocumentIO{docs: map[string][]byte{path: []byte(content)}}
}

func (m *mockDocumentIO) ReadDocument(_ context.Context, path string) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	data, ok := m.docs[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

func (m *mockDocumentIO) WriteDocumentAtomic(_ context.Context, path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.docs[path] = data
	return nil
}

// state decodes the stored document at path.
func (m *mockDocumentIO) state(t *testing.T, path string) unit.State {
	t.Helper()
	st, err := document.Decode(m.docs[path], document.FormatAuto.Resolve(path))
	if err != nil {
		t.Fatalf("decoding stored document: %v", err)
	}
	return st
}

// sampleDoc has a root-level text unit A, a group G holding B and C, and a
// media unit M; B is selected.
const sampleDoc = `{
  "units": [
    {"id": "A", "type": "text"},
    {"id": "G", "type": "group", "children": [
      {"id": "B", "type": "text"},
      {"id": "C", "type": "text"}
    ]},
    {"id": "M", "type": "media"}
  ],
  "selectedUnitIds": ["B"]
}`

// runCmd executes the root command with args against io and returns
// stdout, stderr and the error.
func runCmd(t *testing.T, io DocumentIO, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmdWithIO(io)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// decodeResult parses an OpResult from stdout.
func decodeResult(t *testing.T, out string) OpResult {
	t.Helper()
	var res OpResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decoding OpResult from %q: %v", out, err)
	}
	return res
}

// outline renders the ids of st as "A,G(B,C)".
func outline(st unit.State) string {
	var render func([]*unit.Node) string
	render = func(list []*unit.Node) string {
		parts := make([]string, 0, len(list))
		for _, n := range list {
			s := n.ID
			if len(n.Children) > 0 {
				s += "(" + render(n.Children) + ")"
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ",")
	}
	return render(st.Units)
}

func diagCodes(res OpResult) []string {
	codes := make([]string, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}
