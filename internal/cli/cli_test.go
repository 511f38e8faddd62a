package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testFeed serves a two-package closure (app -> lib) plus the archives.
func testFeed(t *testing.T) *httptest.Server {
	t.Helper()

	type depRecord struct {
		ID    string `json:"id"`
		Range string `json:"range"`
	}
	type group struct {
		TargetFramework string      `json:"targetFramework"`
		Dependencies    []depRecord `json:"dependencies"`
	}
	type record struct {
		ID               string  `json:"id"`
		Version          string  `json:"version"`
		IsLatestVersion  bool    `json:"isLatestVersion"`
		DownloadURL      string  `json:"downloadUrl"`
		DependencyGroups []group `json:"dependencyGroups"`
	}

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/packages/app/index.json":
			json.NewEncoder(w).Encode(map[string][]record{"versions": {{
				ID: "app", Version: "1.0.0", IsLatestVersion: true,
				DownloadURL: server.URL + "/archives/app.1.0.0.nupkg",
				DependencyGroups: []group{{Dependencies: []depRecord{
					{ID: "lib", Range: "[2.0, 3.0)"},
				}}},
			}}})
		case "/packages/lib/index.json":
			json.NewEncoder(w).Encode(map[string][]record{"versions": {{
				ID: "lib", Version: "2.5.0", IsLatestVersion: true,
				DownloadURL: server.URL + "/archives/lib.2.5.0.nupkg",
			}}})
		default:
			if filepath.Dir(r.URL.Path) == "/archives" {
				fmt.Fprint(w, "bytes")
				return
			}
			http.NotFound(w, r)
		}
	}))
	return server
}

func TestFetchCommand_DownloadsClosure(t *testing.T) {
	server := testFeed(t)
	defer server.Close()

	dir := t.TempDir()
	cmd := newFetchCmd()
	cmd.SetArgs([]string{"app", "--source", server.URL, "--dir", dir, "--no-cache"})
	cmd.SetOut(io.Discard)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}

	for _, name := range []string{"app.1.0.0.nupkg", "lib.2.5.0.nupkg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing archive %s: %v", name, err)
		}
	}
}

func TestFetchCommand_DryRunDownloadsNothing(t *testing.T) {
	server := testFeed(t)
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "download")
	cmd := newFetchCmd()
	cmd.SetArgs([]string{"app", "--source", server.URL, "--dir", dir, "--no-cache", "--dry-run"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("fetch --dry-run: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("dry run must not create the download directory")
	}
}

func TestFetchCommand_RequiresSource(t *testing.T) {
	cmd := newFetchCmd()
	cmd.SetArgs([]string{"app", "--config", filepath.Join(t.TempDir(), "none.toml"), "--no-cache"})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected an error when no feed source is configured")
	}
}

func TestGraphCommand_EmitsDOT(t *testing.T) {
	server := testFeed(t)
	defer server.Close()

	out := filepath.Join(t.TempDir(), "closure.dot")
	cmd := newGraphCmd()
	cmd.SetArgs([]string{"app", "--source", server.URL, "--no-cache", "-o", out, "--format", "dot"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("graph: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"digraph packages", `"app 1.0.0" -> "lib 2.5.0";`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("DOT output missing %q:\n%s", want, data)
		}
	}
}

func TestCommandRegistration(t *testing.T) {
	// Execute with --help exercises root wiring without running anything.
	if err := Execute(contextWithArgs(t, "--help")); err != nil {
		t.Fatalf("help: %v", err)
	}
}

func contextWithArgs(t *testing.T, args ...string) context.Context {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"nupull"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
	return context.Background()
}

