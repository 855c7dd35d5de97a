package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/matzehuels/seqview/pkg/errors"
	"github.com/matzehuels/seqview/pkg/feature"
	"github.com/matzehuels/seqview/pkg/record"
)

const plasmidJSON = `{
  "sequence_length": 50,
  "circular": true,
  "features": [
    {"start": 10, "end": 20, "strand": 1, "label": "a"},
    {"start": 40, "end": 55, "strand": -1, "label": "b", "color": "#ffcccc"},
    {"start": 45, "end": 5, "strand": null, "label": "ori", "data": {"note": "wraps"}}
  ]
}`

const plasmidTOML = `
sequence_length = 50
circular = true

[[features]]
start = 10
end = 20
strand = "+1"
label = "a"

[[features]]
start = 40
end = 55
strand = -1
label = "b"
color = "#ffcccc"

[[features]]
start = 45
end = 5
label = "ori"
data = { note = "wraps" }
`

func checkPlasmid(t *testing.T, rec *record.Record) {
	t.Helper()
	if rec.SequenceLength != 50 || !rec.Circular {
		t.Fatalf("got length %d circular %v, want 50 true", rec.SequenceLength, rec.Circular)
	}
	if len(rec.Features) != 3 {
		t.Fatalf("got %d features, want 3", len(rec.Features))
	}
	a, b, ori := rec.Features[0], rec.Features[1], rec.Features[2]
	if a.Strand != feature.StrandForward || b.Strand != feature.StrandReverse || ori.Strand != feature.StrandNone {
		t.Errorf("strands = %v %v %v", a.Strand, b.Strand, ori.Strand)
	}
	if b.Style.Color != "#ffcccc" {
		t.Errorf("b color = %q, want #ffcccc", b.Style.Color)
	}
	if b.Style.FontSize != feature.DefaultStyle().FontSize {
		t.Errorf("b font size = %v, want default", b.Style.FontSize)
	}
	if a.Style.Color != feature.DefaultStyle().Color {
		t.Errorf("a color = %q, want default", a.Style.Color)
	}
	if !ori.SpansOrigin() || ori.Data["note"] != "wraps" {
		t.Errorf("ori = %s data %v", ori, ori.Data)
	}
}

func TestReadJSON(t *testing.T) {
	rec, err := ReadJSON(strings.NewReader(plasmidJSON))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	checkPlasmid(t, rec)
}

func TestReadTOML(t *testing.T) {
	rec, err := ReadTOML(strings.NewReader(plasmidTOML))
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	checkPlasmid(t, rec)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code // empty: any error
	}{
		{"malformed json", FormatJSON, `{"sequence_length":`, errors.ErrCodeInvalidFormat},
		{"malformed toml", FormatTOML, `sequence_length = `, errors.ErrCodeInvalidFormat},
		{"bad strand", FormatJSON, `{"sequence_length": 10, "features": [{"start": 1, "end": 2, "strand": 2}]}`, errors.ErrCodeInvalidStrand},
		{"bad strand string", FormatTOML, "sequence_length = 10\n[[features]]\nstart = 1\nend = 2\nstrand = \"x\"\n", ""},
		{"missing length", FormatJSON, `{"features": []}`, errors.ErrCodeInvalidInput},
		{"bad indexing", FormatJSON, `{"sequence_length": 10, "indexing": "ucsc"}`, errors.ErrCodeInvalidInput},
		{"unknown format", Format("yaml"), `{}`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("error %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	orig, err := ReadJSON(strings.NewReader(plasmidJSON))
	if err != nil {
		t.Fatal(err)
	}
	orig.Features[0].OpenLeft = true

	for _, format := range []Format{FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, orig, format); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("Read() error: %v\n%s", err, buf.String())
			}
			checkPlasmid(t, got)
			if !got.Features[0].OpenLeft {
				t.Error("open_left lost")
			}
			if got.LabelsSpacing != orig.LabelsSpacing || got.Indexing != orig.Indexing {
				t.Errorf("settings = %v %q, want %v %q", got.LabelsSpacing, got.Indexing, orig.LabelsSpacing, orig.Indexing)
			}
		})
	}
}

func TestImportExportFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plasmid.toml")
	if err := os.WriteFile(src, []byte(plasmidTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, err := ImportFile(src)
	if err != nil {
		t.Fatalf("ImportFile() error: %v", err)
	}
	dst := filepath.Join(dir, "plasmid.json")
	if err := ExportFile(rec, dst); err != nil {
		t.Fatalf("ExportFile() error: %v", err)
	}
	again, err := ImportFile(dst)
	if err != nil {
		t.Fatalf("ImportFile() error: %v", err)
	}
	checkPlasmid(t, again)

	if _, err := ImportFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ImportFile(filepath.Join(dir, "plasmid.gb")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown extension: got %v, want INVALID_FORMAT", err)
	}
}

func TestImportFS(t *testing.T) {
	fsys := fstest.MapFS{"records/plasmid.json": {Data: []byte(plasmidJSON)}}
	rec, err := ImportFS(fsys, "records/plasmid.json")
	if err != nil {
		t.Fatalf("ImportFS() error: %v", err)
	}
	checkPlasmid(t, rec)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.json", FormatJSON, true},
		{"dir/B.TOML", FormatTOML, true},
		{"c.tml", FormatTOML, true},
		{"d.gff", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}
