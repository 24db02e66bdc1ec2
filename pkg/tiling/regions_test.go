package tiling

import "testing"

func TestRegionsQuadrants(t *testing.T) {
	// 100x100 with 10% overlap: overlap band is 10px, splits at 50±5.
	regions := Regions(100, 100, 0.1, false)

	expected := []Region{
		{TopLeft, 0, 0, 55, 55},
		{TopRight, 45, 0, 100, 55},
		{BottomLeft, 0, 45, 55, 100},
		{BottomRight, 45, 45, 100, 100},
	}

	if len(regions) != len(expected) {
		t.Fatalf("expected %d regions, got %d", len(expected), len(regions))
	}
	for i, want := range expected {
		if regions[i] != want {
			t.Errorf("region %d: expected %+v, got %+v", i, want, regions[i])
		}
	}
}

func TestRegionsZeroOverlapCoverage(t *testing.T) {
	// With no overlap the quadrants must exactly tile the image.
	regions := Regions(100, 80, 0, false)

	covered := make([][]bool, 80)
	for y := range covered {
		covered[y] = make([]bool, 100)
	}
	for _, r := range regions {
		for y := r.Y1; y < r.Y2; y++ {
			for x := r.X1; x < r.X2; x++ {
				covered[y][x] = true
			}
		}
	}
	for y := range covered {
		for x := range covered[y] {
			if !covered[y][x] {
				t.Fatalf("pixel (%d,%d) not covered by any region", x, y)
			}
		}
	}
}

func TestRegionsOverlapCoverage(t *testing.T) {
	for _, overlap := range []float64{0.1, 0.25, 0.5} {
		regions := Regions(101, 77, overlap, false)

		covered := make([][]bool, 77)
		for y := range covered {
			covered[y] = make([]bool, 101)
		}
		for _, r := range regions {
			for y := r.Y1; y < r.Y2; y++ {
				for x := r.X1; x < r.X2; x++ {
					covered[y][x] = true
				}
			}
		}
		for y := range covered {
			for x := range covered[y] {
				if !covered[y][x] {
					t.Fatalf("overlap %g: pixel (%d,%d) not covered", overlap, x, y)
				}
			}
		}
	}
}

func TestRegionsCenter(t *testing.T) {
	regions := Regions(100, 100, 0.1, true)

	if len(regions) != 5 {
		t.Fatalf("expected 5 regions with center enabled, got %d", len(regions))
	}
	center := regions[4]
	if center.Name != Center {
		t.Fatalf("expected last region to be %q, got %q", Center, center.Name)
	}

	// Center tile has the same size as top_left (55x55), centered at
	// (50,50): x1 = 50 - 27 = 23.
	want := Region{Center, 23, 23, 78, 78}
	if center != want {
		t.Errorf("expected center %+v, got %+v", want, center)
	}
}

func TestRegionsCenterClipped(t *testing.T) {
	// Maximum overlap makes the center tile as large as the image; it
	// must stay within the bounds.
	regions := Regions(100, 100, 0.5, true)
	center := regions[4]

	if center.X1 < 0 || center.Y1 < 0 || center.X2 > 100 || center.Y2 > 100 {
		t.Errorf("center region out of bounds: %+v", center)
	}
}

func TestRegionsOrderDeterministic(t *testing.T) {
	a := Regions(640, 480, 0.2, true)
	b := Regions(640, 480, 0.2, true)

	names := []string{TopLeft, TopRight, BottomLeft, BottomRight, Center}
	for i, want := range names {
		if a[i].Name != want {
			t.Errorf("region %d: expected name %q, got %q", i, want, a[i].Name)
		}
		if a[i] != b[i] {
			t.Errorf("region %d differs between calls: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRegionsDegenerateImage(t *testing.T) {
	// A 1x1 image produces zero-area quadrants; callers skip them via
	// Empty.
	regions := Regions(1, 1, 0, false)

	if !regions[0].Empty() {
		t.Errorf("expected top_left of 1x1 image to be empty, got %+v", regions[0])
	}
	for _, r := range regions {
		if r.Width() < 0 || r.Height() < 0 {
			t.Errorf("region %q has negative extent: %+v", r.Name, r)
		}
	}
}

func BenchmarkRegions(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Regions(1920, 1080, 0.1, true)
	}
}
