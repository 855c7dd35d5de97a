package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	seqio "github.com/matzehuels/seqview/pkg/io"
	"github.com/matzehuels/seqview/pkg/observability"
)

const genesTOML = `
sequence_length = 1000

[[features]]
start = 5
end = 20
strand = "+1"
label = "Small feature"

[[features]]
start = 20
end = 500
strand = "+1"
label = "Gene 1"

[[features]]
start = 400
end = 700
strand = "-1"
label = "Gene 2"

[[features]]
start = 600
end = 900
strand = "+1"
label = "Gene 3"
`

const wrapTOML = `
sequence_length = 100
circular = true

[[features]]
start = -10
end = 5
label = "ori"

[[features]]
start = 40
end = 60
label = "mid"
`

// writeFile writes content to name in a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI runs the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envRedisURL, "")
	t.Cleanup(observability.Reset)

	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := &CLI{config: Config{Cache: CacheConfig{Dir: "/srv/seqview-cache"}}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/srv/seqview-cache" {
		t.Errorf("cacheDir() = %q, want config dir", dir)
	}
}

func TestRedisAddrPrecedence(t *testing.T) {
	t.Setenv(envRedisURL, "redis://env:6379/0")
	c := &CLI{config: Config{Cache: CacheConfig{Redis: "redis://config:6379/0"}}}
	if got := c.redisAddr(); got != "redis://env:6379/0" {
		t.Errorf("env should beat config, got %q", got)
	}
	c.redisURL = "redis://flag:6379/0"
	if got := c.redisAddr(); got != "redis://flag:6379/0" {
		t.Errorf("flag should beat env, got %q", got)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"json, dot", []string{"json", "dot"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		input      string
		start, end int
		none       bool
		wantErr    bool
	}{
		{input: "", none: true},
		{input: "425:650", start: 425, end: 650},
		{input: " 1 : 2 ", start: 1, end: 2},
		{input: "-5:10", start: -5, end: 10},
		{input: "425-650", wantErr: true},
		{input: "a:10", wantErr: true},
		{input: "10:", wantErr: true},
	}

	for _, tt := range tests {
		w, err := parseWindow(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseWindow(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if tt.none {
			if w != nil {
				t.Errorf("parseWindow(%q) = %+v, want nil", tt.input, w)
			}
			continue
		}
		if w == nil || w.Start != tt.start || w.End != tt.end {
			t.Errorf("parseWindow(%q) = %+v, want %d:%d", tt.input, w, tt.start, tt.end)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/plasmid.toml", "data/plasmid"},
		{"out/track.svg", "plasmid.toml", "out/track"},
		{"out/track", "plasmid.toml", "out/track"},
		{"out/track.v2", "plasmid.toml", "out/track.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	one := map[string][]byte{"svg": nil}
	if got := outputPaths("figure.svg", "rec.toml", one); got["svg"] != "figure.svg" {
		t.Errorf("single format path = %q", got["svg"])
	}

	many := map[string][]byte{"svg": nil, "json": nil, "overlaps": nil}
	got := outputPaths("", "dir/rec.toml", many)
	want := map[string]string{"svg": "dir/rec.svg", "json": "dir/rec.json", "overlaps": "dir/rec.overlaps.svg"}
	for f, p := range want {
		if got[f] != p {
			t.Errorf("path for %s = %q, want %q", f, got[f], p)
		}
	}
}

// =============================================================================
// Commands
// =============================================================================

func TestCropCommand(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)

	if _, err := runCLI(t, "crop", input, "--window", "425:650"); err != nil {
		t.Fatalf("crop error: %v", err)
	}

	rec, err := seqio.ImportFile(strings.TrimSuffix(input, ".toml") + ".crop.toml")
	if err != nil {
		t.Fatalf("read cropped record: %v", err)
	}
	if len(rec.Features) != 3 {
		t.Errorf("cropped features = %d, want 3", len(rec.Features))
	}
	if rec.FirstIndex != 425 || rec.SequenceLength != 225 {
		t.Errorf("cropped span = %d+%d, want 425+225", rec.FirstIndex, rec.SequenceLength)
	}
}

func TestCropCommandErrors(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)

	if _, err := runCLI(t, "crop", input); err == nil {
		t.Error("crop without --window should fail")
	}
	if _, err := runCLI(t, "crop", input, "--window", "0:1000"); err == nil {
		t.Error("out-of-bounds window should fail")
	}
}

func TestSplitCommand(t *testing.T) {
	input := writeFile(t, "wrap.toml", wrapTOML)
	output := filepath.Join(t.TempDir(), "wrap.json")

	if _, err := runCLI(t, "split", input, "-o", output); err != nil {
		t.Fatalf("split error: %v", err)
	}

	rec, err := seqio.ImportFile(output)
	if err != nil {
		t.Fatalf("read split record: %v", err)
	}
	if len(rec.Features) != 3 {
		t.Fatalf("split features = %d, want 3", len(rec.Features))
	}
	for _, f := range rec.Features {
		if f.Start < 0 || f.End >= rec.SequenceLength {
			t.Errorf("fragment %v outside [0, %d)", f, rec.SequenceLength)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)

	if _, err := runCLI(t, "layout", input); err != nil {
		t.Fatalf("layout error: %v", err)
	}

	data, err := os.ReadFile(strings.TrimSuffix(input, ".toml") + ".layout.json")
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	var out struct {
		MaxLevel int `json:"max_level"`
		Features []struct {
			Level int `json:"level"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("layout json: %v", err)
	}
	if out.MaxLevel != 1 || len(out.Features) != 4 {
		t.Errorf("layout = max level %d, %d features", out.MaxLevel, len(out.Features))
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)
	base := filepath.Join(t.TempDir(), "track")

	if _, err := runCLI(t, "--no-cache", "render", input, "-f", "svg,json", "-o", base, "--ruler", "--title", "Genes"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Genes")) {
		t.Error("svg output missing root element or title")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

// captureStdout redirects os.Stdout while fn runs and returns what was
// written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	done := make(chan string)
	go func() {
		b, _ := io.ReadAll(r)
		done <- string(b)
	}()
	fn()
	w.Close()
	return <-done
}

func TestRenderCommandToStdout(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)

	var out string
	var err error
	status := captureStdout(t, func() {
		out, err = runCLI(t, "--no-cache", "render", input, "-f", "svg", "-o", "-")
	})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Errorf("stdout should hold only the SVG document, got:\n%s", out)
	}
	if status != "" {
		t.Errorf("status lines leaked into stdout: %q", status)
	}
}

func TestRenderCommandStatus(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)
	output := filepath.Join(t.TempDir(), "genes.svg")

	status := captureStdout(t, func() {
		if _, err := runCLI(t, "--no-cache", "render", input, "-o", output); err != nil {
			t.Errorf("render error: %v", err)
		}
	})
	for _, want := range []string{"Rendered 4 feature(s)", output, "4 features"} {
		if !strings.Contains(status, want) {
			t.Errorf("status missing %q:\n%s", want, status)
		}
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)
	if _, err := runCLI(t, "render", input, "-f", "gif"); err == nil {
		t.Error("render -f gif should fail")
	}
}

func TestOverlapsCommand(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)
	output := filepath.Join(t.TempDir(), "genes.dot")

	if _, err := runCLI(t, "overlaps", input, "-o", output); err != nil {
		t.Fatalf("overlaps error: %v", err)
	}
	dot, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), "graph overlaps") || !strings.Contains(string(dot), "f1 -- f2") {
		t.Errorf("unexpected dot output:\n%s", dot)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "layouts")
	cfg := writeFile(t, "seqview.toml", "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	out, err := runCLI(t, "--config", cfg, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	input := writeFile(t, "genes.toml", genesTOML)
	dir := filepath.Join(t.TempDir(), "cache")
	cfg := writeFile(t, "seqview.toml", "[cache]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	if _, err := runCLI(t, "--config", cfg, "layout", input); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("layout did not populate the cache")
	}

	if _, err := runCLI(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	var files int
	_ = filepath.WalkDir(dir, func(_ string, d os.DirEntry, _ error) error {
		if d != nil && !d.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Errorf("%d files left after clear", files)
	}
}
