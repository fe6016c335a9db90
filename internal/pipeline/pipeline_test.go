package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/markdown"
	"github.com/goliatone/go-awesome-mac/internal/storage"
	"github.com/goliatone/go-awesome-mac/pkg/testsupport"
)

const orphanReadme = "### Orphan\n\n* [Atom](https://atom.io)\n"

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sourceFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func newPipeline(fsys fstest.MapFS, opts ...Option) *Pipeline {
	loader := markdown.NewLoader(fsys, markdown.LoaderConfig{})
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(loader, testsupport.SampleTokenizer(), opts...)
}

func TestRunBuildsEveryLocale(t *testing.T) {
	readme := string(testsupport.SampleReadme())
	repo := storage.NewMemoryRepository()
	dataDir := filepath.Join(t.TempDir(), "data")

	p := newPipeline(sourceFS(map[string]string{"README.md": readme, "README-zh.md": readme}),
		WithRepository(repo), WithDataDir(dataDir, false))

	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Builds) != 2 || report.Builds[0].Locale != "en" || report.Builds[1].Locale != "zh" {
		t.Fatalf("unexpected builds %+v", report.Builds)
	}

	zh, ok := report.Locale("zh")
	if !ok || zh.Source != SourceParsed || !zh.Persisted || len(zh.Result.Apps) != 8 {
		t.Fatalf("unexpected zh build %+v", zh)
	}
	if zh.DataFile != filepath.Join(dataDir, "zh.json") {
		t.Fatalf("unexpected data file %s", zh.DataFile)
	}
	if _, err := os.Stat(zh.DataFile); err != nil {
		t.Fatalf("expected data file: %v", err)
	}

	snapshot, err := repo.Latest(context.Background(), "en")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if snapshot.Apps != 8 || !snapshot.GeneratedAt.Equal(fixedNow) {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestBuildSkipsUnchangedSnapshot(t *testing.T) {
	fsys := sourceFS(map[string]string{"README.md": string(testsupport.SampleReadme())})
	p := newPipeline(fsys, WithRepository(storage.NewMemoryRepository()))

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if report.Builds[0].Persisted {
		t.Fatal("expected unchanged document not to be persisted again")
	}
}

func TestBuildFallsBackToCache(t *testing.T) {
	repo := storage.NewMemoryRepository()
	good := newPipeline(sourceFS(map[string]string{"README.md": string(testsupport.SampleReadme())}), WithRepository(repo))
	if _, err := good.Run(context.Background()); err != nil {
		t.Fatalf("seed Run: %v", err)
	}

	broken := sourceFS(map[string]string{"README.md": orphanReadme})

	strict := newPipeline(broken, WithRepository(repo))
	if _, err := strict.Run(context.Background()); !errors.Is(err, catalog.ErrOrphanSubcategory) {
		t.Fatalf("expected ErrOrphanSubcategory, got %v", err)
	}

	lenient := newPipeline(broken, WithRepository(repo), WithCacheFallback(true))
	report, err := lenient.Run(context.Background())
	if err != nil {
		t.Fatalf("Run with fallback: %v", err)
	}
	build := report.Builds[0]
	if build.Source != SourceCache || !errors.Is(build.Err, catalog.ErrOrphanSubcategory) {
		t.Fatalf("expected cache fallback, got %+v", build)
	}
	if _, ok := build.Result.App("atom"); !ok || len(build.Result.Apps) != 8 {
		t.Fatalf("expected cached catalog, got %d apps", len(build.Result.Apps))
	}
}

func TestBuildFallbackWithoutSnapshotFails(t *testing.T) {
	p := newPipeline(sourceFS(map[string]string{"README.md": orphanReadme}),
		WithRepository(storage.NewMemoryRepository()), WithCacheFallback(true))
	if _, err := p.Run(context.Background()); !errors.Is(err, catalog.ErrOrphanItem) {
		t.Fatalf("expected orphan error, got %v", err)
	}
}

func TestBuildReportsDiff(t *testing.T) {
	repo := storage.NewMemoryRepository()
	readme := string(testsupport.SampleReadme())
	if _, err := newPipeline(sourceFS(map[string]string{"README.md": readme}), WithRepository(repo)).Run(context.Background()); err != nil {
		t.Fatalf("seed Run: %v", err)
	}

	updated := strings.Replace(readme, "* [Fork](https://git-fork.com) - A fast and friendly git client.\n", "", 1)
	updated = strings.Replace(updated, "## Design and Product\n", "## Design and Product\n\n* [Zeplin](https://zeplin.io) - Handoff.\n", 1)

	report, err := newPipeline(sourceFS(map[string]string{"README.md": updated}), WithRepository(repo), WithDiff(true)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	d := report.Builds[0].Diff
	if d == nil {
		t.Fatal("expected diff")
	}
	if strings.Join(d.Added, ",") != "zeplin" || strings.Join(d.Removed, ",") != "fork" {
		t.Fatalf("unexpected diff %+v", d)
	}
	if !strings.Contains(d.Unified, "--- en@2024-05-01T12:00:00Z") {
		t.Fatalf("unexpected unified header:\n%s", d.Unified)
	}
}

func TestRunWithoutDocuments(t *testing.T) {
	if _, err := newPipeline(fstest.MapFS{}).Run(context.Background()); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestBuildRecordsDiagnostics(t *testing.T) {
	readme := "## Tools\n\n* [](https://example.com/)\n* Plain text item\n"
	report, err := newPipeline(sourceFS(map[string]string{"README.md": readme})).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	build := report.Builds[0]
	if len(build.Diagnostics) != 1 || build.Diagnostics[0].Code != catalog.CodeMissingURL {
		t.Fatalf("unexpected diagnostics %+v", build.Diagnostics)
	}
	if len(build.Result.Apps) != 1 || build.Result.Apps[0].Name != "example.com" {
		t.Fatalf("expected a single host named app, got %#v", build.Result.Apps)
	}
}
