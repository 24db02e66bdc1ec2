// Package yolo reads and writes YOLO-format label files: one annotation per
// line as "class x_center y_center width height", the class id a
// non-negative integer and the four geometric fields normalized to [0,1].
package yolo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cvtool/yolo-tiler/pkg/types"
)

// ParseLine parses a single label line. Lines may carry more than five
// fields (some exporters append extra columns); only the first five are
// used. Blank lines are reported as an error so callers can skip them.
func ParseLine(line string) (types.Annotation, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return types.Annotation{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	class, err := strconv.Atoi(fields[0])
	if err != nil {
		return types.Annotation{}, fmt.Errorf("bad class id %q: %w", fields[0], err)
	}
	if class < 0 {
		return types.Annotation{}, fmt.Errorf("negative class id %d", class)
	}

	vals := make([]float64, 4)
	for i, f := range fields[1:5] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return types.Annotation{}, fmt.Errorf("bad coordinate %q: %w", f, err)
		}
		vals[i] = v
	}

	return types.Annotation{Class: class, X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

// ReadLabels reads a label file. Malformed lines are skipped individually
// rather than failing the whole file; the number of skipped lines is
// returned so the caller can surface a warning. A missing file is not an
// error: an image without a label file simply has no annotations.
func ReadLabels(path string) (anns []types.Annotation, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to open label file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		a, err := ParseLine(line)
		if err != nil {
			skipped++
			continue
		}
		anns = append(anns, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("failed to read label file: %w", err)
	}

	return anns, skipped, nil
}

// WriteLabels writes annotations in file order, one per line with fixed
// 6-decimal formatting. Writing an empty list produces an empty file,
// which is how YOLO represents an image with no objects.
func WriteLabels(w io.Writer, anns []types.Annotation) error {
	for _, a := range anns {
		if _, err := fmt.Fprintln(w, a.String()); err != nil {
			return err
		}
	}
	return nil
}

// SaveLabels writes annotations to a label file at path.
func SaveLabels(path string, anns []types.Annotation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create label file: %w", err)
	}
	if err := WriteLabels(f, anns); err != nil {
		f.Close()
		return fmt.Errorf("failed to write label file: %w", err)
	}
	return f.Close()
}
