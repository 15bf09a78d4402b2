package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/eykd/unitree-go/internal/unit"
)

func TestInsertCmd_Placement(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"append at root by default", []string{"--type", "headline", "--id", "N"}, "A,G(B,C),M,N"},
		{"into parent at index", []string{"--type", "text", "--id", "N", "--root", "G", "--at", "1"}, "A,G(B,N,C),M"},
		{"append to parent", []string{"--type", "text", "--id", "N", "--root", "G"}, "A,G(B,C,N),M"},
		{"root level at index", []string{"--type", "text", "--id", "N", "--at", "0"}, "N,A,G(B,C),M"},
		{"after sibling", []string{"--type", "text", "--id", "N", "--after", "B"}, "A,G(B,N,C),M"},
		{"before sibling", []string{"--type", "text", "--id", "N", "--before", "A"}, "N,A,G(B,C),M"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mio := newMockIO("doc.json", sampleDoc)
			args := append([]string{"insert", "doc.json"}, tt.args...)
			out, _, err := runCmd(t, mio, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			st := mio.state(t, "doc.json")
			if got := outline(st); got != tt.want {
				t.Errorf("outline = %q, want %q", got, tt.want)
			}
			if !slices.Equal(st.SelectedUnitIDs, []string{"N"}) {
				t.Errorf("selection = %v, want [N]", st.SelectedUnitIDs)
			}
			if out != "Inserted N in doc.json\n" {
				t.Errorf("stdout = %q", out)
			}
		})
	}
}

func TestInsertCmd_GeneratesID(t *testing.T) {
	mio := newMockIO("doc.json", sampleDoc)
	if _, _, err := runCmd(t, mio, "insert", "doc.json", "--type", "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := mio.state(t, "doc.json")
	if len(st.Units) != 4 {
		t.Fatalf("root units = %d, want 4", len(st.Units))
	}
	id := st.Units[3].ID
	if id == "" || strings.Contains("AGBCM", id) {
		t.Errorf("generated id = %q, want a fresh id", id)
	}
}

func TestInsertCmd_Attributes(t *testing.T) {
	mio := newMockIO("doc.json", sampleDoc)
	_, _, err := runCmd(t, mio, "insert", "doc.json", "--type", "headline", "--id", "H",
		"--attr", "title=Hello world", "--attr", "level=2", "--attr", "tags=[a, b]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := unit.FindUnitByID(mio.state(t, "doc.json"), "H")
	if !ok {
		t.Fatal("inserted unit not found")
	}
	if n.Attributes["title"] != "Hello world" {
		t.Errorf("title = %v", n.Attributes["title"])
	}
	if got := fmt.Sprint(n.Attributes["level"]); got != "2" {
		t.Errorf("level = %s, want 2", got)
	}
	if got := fmt.Sprint(n.Attributes["tags"]); got != "[a b]" {
		t.Errorf("tags = %s, want [a b]", got)
	}
	if n.Status != unit.StatusOpen {
		t.Errorf("status = %q, want open", n.Status)
	}
}

func TestInsertCmd_Failures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"second single-instance unit", []string{"--type", "media", "--id", "M2"}, unit.CodeUnitInsertFailed},
		{"type that may not nest", []string{"--type", "columns", "--id", "K", "--root", "G"}, unit.CodeUnitInsertFailed},
		{"unknown type", []string{"--type", "carousel", "--id", "K"}, unit.CodeUnitInsertFailed},
		{"missing anchor", []string{"--type", "text", "--id", "K", "--after", "Z"}, CodeUnitNotFound},
		{"missing parent", []string{"--type", "text", "--id", "K", "--root", "Z"}, CodeUnitNotFound},
		{"index out of range", []string{"--type", "text", "--id", "K", "--root", "G", "--at", "9"}, CodeIndexOutOfRange},
		{"id already used", []string{"--type", "text", "--id", "C"}, CodeDuplicateUnitID},
		{"malformed attribute", []string{"--type", "text", "--id", "K", "--attr", "novalue"}, CodeInvalidArguments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mio := newMockIO("doc.json", sampleDoc)
			args := append([]string{"insert", "doc.json", "--json"}, tt.args...)
			out, _, err := runCmd(t, mio, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			res := decodeResult(t, out)
			if res.Changed {
				t.Error("Changed = true, want false")
			}
			if codes := diagCodes(res); !slices.Equal(codes, []string{tt.wantCode}) {
				t.Errorf("codes = %v, want [%s]", codes, tt.wantCode)
			}
			if mio.writes != 0 {
				t.Errorf("document written %d times, want 0", mio.writes)
			}
		})
	}
}

func TestInsertCmd_HumanDenialGoesToStderr(t *testing.T) {
	mio := newMockIO("doc.json", sampleDoc)
	out, errOut, err := runCmd(t, mio, "insert", "doc.json", "--type", "media", "--id", "M2")
	if err == nil {
		t.Fatal("expected error")
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(errOut, "error: ") || !strings.Contains(errOut, "("+unit.CodeUnitInsertFailed+")") {
		t.Errorf("stderr = %q, want a unitInsertFailed diagnostic", errOut)
	}
}

func TestInsertCmd_ConflictingFlags(t *testing.T) {
	mio := newMockIO("doc.json", sampleDoc)
	_, _, err := runCmd(t, mio, "insert", "doc.json", "--type", "text", "--after", "A", "--root", "G")
	if err == nil {
		t.Fatal("expected error for --after with --root")
	}
	if _, _, err := runCmd(t, mio, "insert", "doc.json"); err == nil {
		t.Fatal("expected error for missing --type")
	}
	if mio.writes != 0 {
		t.Errorf("document written %d times, want 0", mio.writes)
	}
}

func TestInsertCmd_ReadFailure(t *testing.T) {
	mio := newMockIO("doc.json", sampleDoc)
	mio.readErr = errors.New("permission denied")
	out, _, err := runCmd(t, mio, "insert", "doc.json", "--type", "text", "--json")
	if err == nil {
		t.Fatal("expected error")
	}
	res := decodeResult(t, out)
	if codes := diagCodes(res); !slices.Equal(codes, []string{CodeIOOrParseFailure}) {
		t.Errorf("codes = %v, want [OPE009]", codes)
	}
}

func TestInsertCmd_MalformedDocument(t *testing.T) {
	mio := newMockIO("doc.json", `{"units": [`)
	_, errOut, err := runCmd(t, mio, "insert", "doc.json", "--type", "text")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "(OPE009)") {
		t.Errorf("stderr = %q, want OPE009", errOut)
	}
}

func TestInsertCmd_WriteFailure(t *testing.T) {
	mio := newMockIO("doc.json", sampleDoc)
	mio.writeErr = errors.New("disk full")
	_, _, err := runCmd(t, mio, "insert", "doc.json", "--type", "text", "--id", "N")
	if err == nil || !strings.Contains(err.Error(), "writing document") {
		t.Errorf("err = %v, want writing document error", err)
	}
}

func TestInsertCmd_EmptyDocument(t *testing.T) {
	mio := newMockIO("doc.json", "")
	if _, _, err := runCmd(t, mio, "insert", "doc.json", "--type", "text", "--id", "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := outline(mio.state(t, "doc.json")); got != "first" {
		t.Errorf("outline = %q, want first", got)
	}
}

func TestInsertCmd_YAMLDocument(t *testing.T) {
	doc := "units:\n  - id: A\n    type: text\nselectedUnitIds: []\n"
	mio := newMockIO("doc.yaml", doc)
	if _, _, err := runCmd(t, mio, "insert", "doc.yaml", "--type", "text", "--id", "B"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	written := string(mio.docs["doc.yaml"])
	if !strings.HasPrefix(written, "units:") {
		t.Errorf("written document is not YAML:\n%s", written)
	}
	if got := outline(mio.state(t, "doc.yaml")); got != "A,B" {
		t.Errorf("outline = %q, want A,B", got)
	}
}

func TestInsertCmd_CustomDefinitions(t *testing.T) {
	dir := t.TempDir()
	defs := filepath.Join(dir, "units.yaml")
	if err := os.WriteFile(defs, []byte("units:\n  - type: note\n    multiple: false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "utk.yaml")
	if err := os.WriteFile(cfgPath, []byte("definitions: "+defs+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	mio := newMockIO("doc.json", "")
	if _, _, err := runCmd(t, mio, "--config", cfgPath, "insert", "doc.json", "--type", "note", "--id", "n1"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	out, _, err := runCmd(t, mio, "--config", cfgPath, "insert", "doc.json", "--type", "note", "--id", "n2", "--json")
	if err == nil {
		t.Fatal("expected second note to be denied")
	}
	if codes := diagCodes(decodeResult(t, out)); !slices.Equal(codes, []string{unit.CodeUnitInsertFailed}) {
		t.Errorf("codes = %v", codes)
	}
	if _, _, err := runCmd(t, mio, "--config", cfgPath, "insert", "doc.json", "--type", "text"); err == nil {
		t.Error("expected text to be unknown under custom definitions")
	}
}

func TestInsertCmd_MissingConfigFile(t *testing.T) {
	mio := newMockIO("doc.json", sampleDoc)
	_, errOut, err := runCmd(t, mio, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "insert", "doc.json", "--type", "text")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "(OPE009)") {
		t.Errorf("stderr = %q, want OPE009", errOut)
	}
}
