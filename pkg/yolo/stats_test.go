package yolo

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cvtool/yolo-tiler/pkg/types"
)

func TestCollect(t *testing.T) {
	anns := []types.Annotation{
		{Class: 0, X: 0.5, Y: 0.5, W: 0.2, H: 0.4},
		{Class: 0, X: 0.5, Y: 0.5, W: 0.4, H: 0.2},
		{Class: 2, X: 0.5, Y: 0.5, W: 0.3, H: 0.3},
	}

	s := Collect(anns)
	if s.Annotations != 3 {
		t.Errorf("expected 3 annotations, got %d", s.Annotations)
	}
	if s.PerClass[0] != 2 || s.PerClass[2] != 1 {
		t.Errorf("unexpected per-class counts: %v", s.PerClass)
	}
	if math.Abs(s.MeanW-0.3) > 1e-12 {
		t.Errorf("expected mean width 0.3, got %g", s.MeanW)
	}
	if math.Abs(s.MeanH-0.3) > 1e-12 {
		t.Errorf("expected mean height 0.3, got %g", s.MeanH)
	}
	if s.StdW <= 0 {
		t.Errorf("expected positive width stddev, got %g", s.StdW)
	}
}

func TestCollectEmpty(t *testing.T) {
	s := Collect(nil)
	if s.Annotations != 0 || s.MeanW != 0 || s.StdW != 0 {
		t.Errorf("unexpected stats for empty input: %+v", s)
	}
}

func TestCollectDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.txt": "0 0.5 0.5 0.2 0.2\n1 0.2 0.2 0.1 0.1\n",
		"b.txt": "0 0.7 0.7 0.3 0.3\n",
		"c.txt": "", // image with no objects
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Non-label files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := CollectDir(dir)
	if err != nil {
		t.Fatalf("CollectDir failed: %v", err)
	}
	if s.Files != 3 {
		t.Errorf("expected 3 label files, got %d", s.Files)
	}
	if s.Annotations != 3 {
		t.Errorf("expected 3 annotations, got %d", s.Annotations)
	}
	if s.PerClass[0] != 2 || s.PerClass[1] != 1 {
		t.Errorf("unexpected per-class counts: %v", s.PerClass)
	}
}

func TestStatsString(t *testing.T) {
	s := Collect([]types.Annotation{{Class: 5, X: 0.5, Y: 0.5, W: 0.1, H: 0.1}})
	out := s.String()
	if !strings.Contains(out, "class 5: 1") {
		t.Errorf("expected per-class line in %q", out)
	}
	if !strings.Contains(out, "width:") {
		t.Errorf("expected width summary in %q", out)
	}
}
