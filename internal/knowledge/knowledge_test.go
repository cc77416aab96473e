package knowledge

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"
	"unicode/utf8"

	"github.com/yungbote/liftplan-backend/internal/domain/plan"
	"github.com/yungbote/liftplan-backend/internal/domain/plan/plantest"
)

const docA = `
source: Test Source
blocks:
  - id: knee
    title: Knee
    keywords: [knee, injury]
    text: Knee text.
  - id: sleep
    title: Sleep
    keywords: [sleep, recovery]
    text: Sleep text.
  - id: stub
    keywords: [knee]
    placeholder: true
    text: ""
`

func testBase(t *testing.T) *Base {
	t.Helper()
	b, err := LoadFS(fstest.MapFS{"kb/a.yaml": {Data: []byte(docA)}, "kb/readme.md": {Data: []byte("ignored")}}, "kb")
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	return b
}

func TestDefaultBaseLoads(t *testing.T) {
	b, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if b.Len() < 10 {
		t.Fatalf("default base has %d blocks", b.Len())
	}
}

func TestSelectRanksByOverlap(t *testing.T) {
	b := testBase(t)
	q := plantest.Questionnaire()
	q.Injuries.Current = []plan.Injury{{Area: "left knee", Severity: plan.SeverityMedium}}
	got := Select(b, &q, 1000)
	if !strings.HasPrefix(got, "### Knee (Test Source)\nKnee text.") {
		t.Fatalf("knee block should rank first: %q", got)
	}
	if strings.Contains(got, "Sleep text") {
		t.Fatalf("sleep block has no overlap for a well-rested user: %q", got)
	}
}

func TestSelectBudgetTruncates(t *testing.T) {
	b := testBase(t)
	got := Select(b, nil, 30)
	if utf8.RuneCountInString(got) != 30 {
		t.Fatalf("len=%d %q", utf8.RuneCountInString(got), got)
	}
	full := Select(b, nil, 10000)
	if !strings.Contains(full, "Knee text.") || !strings.Contains(full, "Sleep text.") {
		t.Fatalf("nil questionnaire should include everything: %q", full)
	}
}

func TestSelectAllPlaceholders(t *testing.T) {
	b := NewBase([]Block{{ID: "a", Keywords: []string{"knee"}, Placeholder: true, Text: "x"}, {ID: "b", Keywords: []string{"sleep"}}})
	q := plantest.Questionnaire()
	if got := Select(b, &q, 100); got != "" {
		t.Fatalf("placeholders should yield nothing: %q", got)
	}
	if got := Select(b, nil, 100); got != "" {
		t.Fatalf("placeholders should yield nothing without questionnaire: %q", got)
	}
}

func TestTagAndChunk(t *testing.T) {
	got := Tag("Progressive overload for muscle growth; watch your knee and sleep.")
	want := []string{"progression", "hypertrophy", "sleep", "knee"}
	for _, w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
			}
		}
		if !found {
			t.Fatalf("Tag missing %q: %v", w, got)
		}
	}

	text := strings.Repeat("word ", 50) + "\n\nshort para\n\n" + strings.Repeat("x", 30)
	chunks := Chunk(text, 60)
	for _, c := range chunks {
		if utf8.RuneCountInString(c) > 60 {
			t.Fatalf("chunk over limit: %d", utf8.RuneCountInString(c))
		}
	}
	if len(chunks) < 4 {
		t.Fatalf("chunks=%q", chunks)
	}
}

func TestBlocksFromTextRoundTripsThroughYAML(t *testing.T) {
	blocks := BlocksFromText("Manual", "manual", "Deload every fourth week.\n\nLorem ipsum dolor.", 40)
	if len(blocks) != 2 || blocks[0].Placeholder || !blocks[1].Placeholder {
		t.Fatalf("blocks=%+v", blocks)
	}
	data, err := MarshalDocument("Manual", blocks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := ParseDocument(data, "manual")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(back[0].Keywords, blocks[0].Keywords) || back[0].ID != "manual-001" {
		t.Fatalf("back=%+v", back[0])
	}
}

type memObjects map[string]string

func (m memObjects) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m memObjects) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m[key])), nil
}

func TestLoadObjects(t *testing.T) {
	src := memObjects{"kb/a.yaml": docA, "kb/notes.txt": "skip", "other/b.yaml": "blocks: [{id: z, text: z}]"}
	b, err := LoadObjects(context.Background(), src, "kb/")
	if err != nil {
		t.Fatalf("LoadObjects: %v", err)
	}
	if b.Len() != 3 {
		t.Fatalf("blocks=%d", b.Len())
	}
}

func TestWatchReloadsStore(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(docA), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(NewBase(nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, dir, store, nil, 20*time.Millisecond) }()

	deadline := time.Now().Add(5 * time.Second)
	for store.Get().Len() != 3 && time.Now().Before(deadline) {
		_ = os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(docA), 0o644)
		time.Sleep(100 * time.Millisecond)
	}
	if store.Get().Len() != 3 {
		t.Fatalf("store not reloaded: %d blocks", store.Get().Len())
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}
