package yolo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/cvtool/yolo-tiler/pkg/types"
)

// Stats summarizes the annotation distribution of a label set.
type Stats struct {
	Files       int
	Annotations int
	PerClass    map[int]int

	MeanW float64
	StdW  float64
	MeanH float64
	StdH  float64

	// MeanArea and StdArea are over normalized box areas (w*h).
	MeanArea float64
	StdArea  float64

	// accumulators, released by finish
	widths  []float64
	heights []float64
	areas   []float64
}

// Collect computes Stats over every annotation in the given slice.
func Collect(anns []types.Annotation) Stats {
	s := Stats{PerClass: make(map[int]int)}
	s.add(anns)
	s.finish()
	return s
}

// CollectDir computes Stats over every .txt label file in labelsDir.
// Malformed lines are skipped the same way ReadLabels skips them.
func CollectDir(labelsDir string) (Stats, error) {
	entries, err := os.ReadDir(labelsDir)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read labels directory: %w", err)
	}

	s := Stats{PerClass: make(map[int]int)}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		anns, _, err := ReadLabels(filepath.Join(labelsDir, e.Name()))
		if err != nil {
			return Stats{}, err
		}
		s.Files++
		s.add(anns)
	}
	s.finish()

	return s, nil
}

func (s *Stats) add(anns []types.Annotation) {
	for _, a := range anns {
		s.Annotations++
		s.PerClass[a.Class]++
		s.widths = append(s.widths, a.W)
		s.heights = append(s.heights, a.H)
		s.areas = append(s.areas, a.W*a.H)
	}
}

func (s *Stats) finish() {
	if len(s.widths) == 0 {
		return
	}
	s.MeanW, s.StdW = meanStd(s.widths)
	s.MeanH, s.StdH = meanStd(s.heights)
	s.MeanArea, s.StdArea = meanStd(s.areas)
	s.widths, s.heights, s.areas = nil, nil, nil
}

func meanStd(xs []float64) (mean, std float64) {
	mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		std = stat.StdDev(xs, nil)
	}
	return mean, std
}

// String renders the summary for the operator.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "label files: %d, annotations: %d\n", s.Files, s.Annotations)

	classes := make([]int, 0, len(s.PerClass))
	for c := range s.PerClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)
	for _, c := range classes {
		fmt.Fprintf(&b, "  class %d: %d\n", c, s.PerClass[c])
	}

	if s.Annotations > 0 {
		fmt.Fprintf(&b, "  width:  mean %.4f, std %.4f\n", s.MeanW, s.StdW)
		fmt.Fprintf(&b, "  height: mean %.4f, std %.4f\n", s.MeanH, s.StdH)
		fmt.Fprintf(&b, "  area:   mean %.4f, std %.4f", s.MeanArea, s.StdArea)
	}
	return strings.TrimRight(b.String(), "\n")
}
