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

	"github.com/matzehuels/opcpack/pkg/buildinfo"
	"github.com/matzehuels/opcpack/pkg/errors"
	pkgio "github.com/matzehuels/opcpack/pkg/io"
	"github.com/matzehuels/opcpack/pkg/opc"
	"github.com/matzehuels/opcpack/pkg/parttype"
	"github.com/matzehuels/opcpack/pkg/schema"
)

// TestMain points the config and cache directories at a scratch directory
// so tests never read or write the user's files.
func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "opcpack-cli-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

// newDeck writes a fresh package to a temp file and returns its path.
func newDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	mustRun(t, "new", path)
	return path
}

func TestNewCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	out := mustRun(t, "new", path)

	if !strings.Contains(out, "Created package") {
		t.Errorf("output %q lacks success line", out)
	}
	pkg, err := opc.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := len(pkg.Parts()), len(parttype.Required()); got != want {
		t.Errorf("new package has %d parts, want %d", got, want)
	}
}

func TestInspectCommand(t *testing.T) {
	path := newDeck(t)
	out := mustRun(t, "inspect", path)

	for _, want := range []string{
		"/ppt/presentation.xml",
		"/docProps/core.xml",
		"Package relationships",
		"officeDocument",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output lacks %q\n%s", want, out)
		}
	}
}

func TestInspectJSON(t *testing.T) {
	path := newDeck(t)
	out := mustRun(t, "inspect", "--json", path)

	var l pkgio.Listing
	if err := json.Unmarshal([]byte(out), &l); err != nil {
		t.Fatalf("inspect --json output is not JSON: %v", err)
	}
	if len(l.Parts) != len(parttype.Required()) {
		t.Errorf("listing has %d parts, want %d", len(l.Parts), len(parttype.Required()))
	}
	if err := l.Validate(); err != nil {
		t.Errorf("listing does not validate: %v", err)
	}
}

func TestTypesCommand(t *testing.T) {
	path := newDeck(t)
	out := mustRun(t, "types", path)

	for _, want := range []string{"Loaded", "Composed", "Default", "Override", schema.CTPresentationMain} {
		if !strings.Contains(out, want) {
			t.Errorf("types output lacks %q\n%s", want, out)
		}
	}
}

func TestRelsCommand(t *testing.T) {
	path := newDeck(t)

	root := mustRun(t, "rels", path)
	if !strings.Contains(root, "officeDocument") || !strings.Contains(root, "/ppt/presentation.xml") {
		t.Errorf("root rels output:\n%s", root)
	}

	// The leading slash is optional.
	part := mustRun(t, "rels", path, "ppt/presentation.xml")
	if !strings.Contains(part, "/ppt/slideMasters/slideMaster1.xml") {
		t.Errorf("presentation rels output:\n%s", part)
	}

	_, err := run(t, "rels", path, "/ppt/slides/slide99.xml")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("rels on a missing part: error = %v, want NOT_FOUND", err)
	}
}

func TestCatCommand(t *testing.T) {
	path := newDeck(t)
	out := mustRun(t, "cat", path, "/ppt/presentation.xml")

	pkg, err := opc.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	part, err := pkg.PartByName("/ppt/presentation.xml")
	if err != nil {
		t.Fatal(err)
	}
	if out != string(part.Blob()) {
		t.Error("cat output differs from the part blob")
	}
}

func TestRepackToDirectory(t *testing.T) {
	src := newDeck(t)
	dst := filepath.Join(t.TempDir(), "expanded")

	out := mustRun(t, "repack", "--format", "dir", src, dst)
	if !strings.Contains(out, "Repacked") {
		t.Errorf("repack output %q lacks success line", out)
	}
	if _, err := os.Stat(filepath.Join(dst, "[Content_Types].xml")); err != nil {
		t.Errorf("expanded directory lacks the manifest: %v", err)
	}

	back := filepath.Join(t.TempDir(), "back.pptx")
	mustRun(t, "repack", dst, back)
	pkg, err := opc.Open(back)
	if err != nil {
		t.Fatalf("Open repacked zip: %v", err)
	}
	if len(pkg.Parts()) != len(parttype.Required()) {
		t.Errorf("repacked package has %d parts", len(pkg.Parts()))
	}
}

func TestGraphCommand(t *testing.T) {
	path := newDeck(t)

	dot := mustRun(t, "graph", path)
	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("graph output is not DOT:\n%s", dot)
	}
	if strings.Contains(dot, "bytes") {
		t.Error("plain graph should not carry detailed labels")
	}

	detailed := mustRun(t, "graph", "--detailed", path)
	if !strings.Contains(detailed, "bytes") {
		t.Error("detailed graph lacks size labels")
	}

	_, err := run(t, "graph", "--format", "png", path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown format: error = %v, want INVALID_INPUT", err)
	}
}

func TestGraphSVGIsCached(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := newDeck(t)

	first := mustRun(t, "graph", "--format", "svg", path)
	if !strings.Contains(first, "<svg") {
		t.Fatalf("graph --format svg output is not SVG:\n%s", first)
	}

	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("rendering was not cached in %s: %v", dir, err)
	}

	if second := mustRun(t, "graph", "--format", "svg", path); second != first {
		t.Error("cached rendering differs from the first rendering")
	}
	if uncached := mustRun(t, "graph", "--format", "svg", "--no-cache", path); !strings.Contains(uncached, "<svg") {
		t.Error("--no-cache output is not SVG")
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	if out := mustRun(t, "cache", "path"); strings.TrimSpace(out) != filepath.Join(xdg, appName) {
		t.Errorf("cache path = %q", out)
	}
	if out := mustRun(t, "cache", "clear"); !strings.Contains(out, "Cache is empty") {
		t.Errorf("clearing a missing cache: %q", out)
	}

	mustRun(t, "graph", "--format", "svg", newDeck(t))
	if out := mustRun(t, "cache", "clear"); !strings.Contains(out, "Cleared 1 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}
}

func TestGraphToFile(t *testing.T) {
	path := newDeck(t)
	output := filepath.Join(t.TempDir(), "deck.dot")

	mustRun(t, "graph", "-o", output, path)
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("digraph G {")) {
		t.Errorf("graph file is not DOT:\n%s", data)
	}
}

func TestGraphFromListing(t *testing.T) {
	path := newDeck(t)
	listing := filepath.Join(t.TempDir(), "deck.json")
	if err := os.WriteFile(listing, []byte(mustRun(t, "inspect", "--json", path)), 0o644); err != nil {
		t.Fatal(err)
	}

	if got, want := mustRun(t, "graph", listing), mustRun(t, "graph", path); got != want {
		t.Errorf("graph from listing differs from graph from package\n%s\n%s", got, want)
	}
}

func TestGraphUsesConfig(t *testing.T) {
	path := newDeck(t)
	cfg := writeConfig(t, "[graph]\ndetailed = true\n")

	if out := mustRun(t, "--config", cfg, "graph", path); !strings.Contains(out, "bytes") {
		t.Error("graph.detailed from config was not applied")
	}
	if out := mustRun(t, "--config", cfg, "graph", "--detailed=false", path); strings.Contains(out, "bytes") {
		t.Error("--detailed=false should override the config file")
	}
}

func TestMissingConfigFlag(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "new", filepath.Join(t.TempDir(), "x.pptx"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestOpenMissingPackage(t *testing.T) {
	_, err := run(t, "inspect", filepath.Join(t.TempDir(), "missing.pptx"))
	if !errors.Is(err, errors.ErrCodePackageNotFound) {
		t.Errorf("error = %v, want PACKAGE_NOT_FOUND", err)
	}
}

func TestVersionFlag(t *testing.T) {
	out := mustRun(t, "--version")
	if !strings.Contains(out, appName+" "+buildinfo.Version) {
		t.Errorf("--version output = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out := mustRun(t, "completion", "bash")
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the command")
	}
}

func TestSaveTarget(t *testing.T) {
	existing := t.TempDir()
	sep := string(os.PathSeparator)

	tests := []struct {
		name    string
		dst     string
		format  string
		want    string
		wantErr errors.Code
	}{
		{"infer", "deck.pptx", "", "deck.pptx", ""},
		{"dir adds separator", "deck", formatDir, "deck" + sep, ""},
		{"dir keeps separator", "deck/", formatDir, "deck/", ""},
		{"zip", "deck.pptx", formatZip, "deck.pptx", ""},
		{"zip with separator", "deck/", formatZip, "", errors.ErrCodeInvalidPath},
		{"zip onto directory", existing, formatZip, "", errors.ErrCodeInvalidPath},
		{"unknown format", "deck", "tar", "", errors.ErrCodeInvalidInput},
		{"empty path", "", "", "", errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := saveTarget(tt.dst, tt.format)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("saveTarget(%q, %q) error = %v, want %s", tt.dst, tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("saveTarget(%q, %q) error: %v", tt.dst, tt.format, err)
			}
			if got != tt.want {
				t.Errorf("saveTarget(%q, %q) = %q, want %q", tt.dst, tt.format, got, tt.want)
			}
		})
	}
}
