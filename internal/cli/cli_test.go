package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/caugraph/caugraph/pkg/graph"
	"github.com/caugraph/caugraph/pkg/graphio"
)

func newTestCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func writeChainGraph(t *testing.T) string {
	t.Helper()
	g := graph.NewDAG()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	path := filepath.Join(t.TempDir(), "chain.json")
	if err := graphio.WriteDAGFile(g, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()

	want := []string{
		"dsep", "trails", "separator", "orient", "extend",
		"closure", "identify", "render", "graphs", "serve",
		"cache", "completion",
	}
	have := make(map[string]bool)
	for _, sub := range root.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestDSepCommand(t *testing.T) {
	path := writeChainGraph(t)

	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"dsep", path, "A", "C", "--observed", "B", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("dsep failed: %v", err)
	}
}

func TestDSepCommandUnknownNode(t *testing.T) {
	path := writeChainGraph(t)

	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"dsep", path, "A", "Z", "--no-cache"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown node")
	}
}

func TestOrientCommandWritesFile(t *testing.T) {
	p := graph.NewPDAG()
	if err := p.AddEdge("A", "B", true); err != nil {
		t.Fatal(err)
	}
	if err := p.AddEdge("B", "C", false); err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(t.TempDir(), "in.json")
	if err := graphio.WritePDAGFile(p, in); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.json")

	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"orient", in, "-o", out, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("orient failed: %v", err)
	}

	oriented, err := graphio.ReadPDAGFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !oriented.HasDirectedEdge("B", "C") {
		t.Error("expected B -> C after orientation")
	}
}

func TestRenderCommandDOT(t *testing.T) {
	path := writeChainGraph(t)
	base := filepath.Join(t.TempDir(), "graph")

	root := newTestCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", path, "-o", base, "--formats", "dot", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"A" -> "B"`)) {
		t.Errorf("dot output missing edge: %s", data)
	}
}

func TestParseAssertion(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"A;B", false},
		{"A;B,C", false},
		{"A;B;C", false},
		{"A,B;C,D;E", false},
		{"A", true},
		{"A;B;C;D", true},
		{";B", true},
	}
	for _, tt := range tests {
		_, err := parseAssertion(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAssertion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestParseVars(t *testing.T) {
	got := parseVars(" A, B ,,C ")
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("parseVars returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseVars[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if parseVars("") != nil {
		t.Error("parseVars(\"\") should be nil")
	}
}

func TestParseFormats(t *testing.T) {
	got := parseFormats("svg,png")
	if len(got) != 2 || got[0] != "svg" || got[1] != "png" {
		t.Errorf("parseFormats returned %v", got)
	}
	got = parseFormats("")
	if len(got) != 1 || got[0] != "svg" {
		t.Errorf("default formats = %v, want [svg]", got)
	}
}

func TestCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg-test", appName) {
		t.Errorf("cacheDir = %q", dir)
	}
}
