package isoline

import (
	"bytes"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridOf builds a SliceGrid from rows of samples.
func gridOf(rows ...[]float64) *SliceGrid {
	h := len(rows)
	w := len(rows[0])
	values := make([]float64, 0, w*h)
	for _, row := range rows {
		values = append(values, row...)
	}
	return NewSliceGrid(w, h, values)
}

func peakGrid(n int, peak, radius float64) *SliceGrid {
	values := make([]float64, n*n)
	c := float64(n-1) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c)
			values[y*n+x] = math.Max(0, peak-peak*d/radius)
		}
	}
	return NewSliceGrid(n, n, values)
}

func TestGenerateNonPositiveInterval(t *testing.T) {
	grid := peakGrid(9, 10, 4)
	for _, interval := range []float64{0, -5, math.NaN()} {
		iso := Generate(interval, grid, DefaultExtent, DefaultBuffer)
		require.NotNil(t, iso)
		assert.Empty(t, iso, "interval %v", interval)
	}
}

func TestGenerateUniformSides(t *testing.T) {
	above := gridOf(
		[]float64{6, 7, 8},
		[]float64{9, 6, 7},
		[]float64{8, 9, 6},
	)
	below := gridOf(
		[]float64{1, 2, 3},
		[]float64{4, 1, 2},
		[]float64{3, 4, 1},
	)
	flat := gridOf(
		[]float64{5, 5},
		[]float64{5, 5},
	)
	for name, grid := range map[string]Grid{"above": above, "below": below, "flat": flat} {
		iso := Generate(5, grid, 4, 0)
		assert.Empty(t, iso[5], name)
	}
}

func TestGenerateAllNaN(t *testing.T) {
	nan := math.NaN()
	grid := gridOf(
		[]float64{nan, nan, nan},
		[]float64{nan, nan, nan},
		[]float64{nan, nan, nan},
	)
	assert.Empty(t, GenerateDefault(1, grid))
	assert.Empty(t, Generate(0.5, grid, 2, 0))
}

func TestGenerateSkipsNonFinite(t *testing.T) {
	grid := gridOf(
		[]float64{0, math.Inf(1), 0},
		[]float64{0, 10, 0},
		[]float64{0, 0, math.Inf(-1)},
	)
	iso := Generate(5, grid, 2, 0)
	for _, paths := range iso {
		for _, path := range paths {
			assert.False(t, path.Closed())
		}
	}
}

func TestGenerateSingleVertexRing(t *testing.T) {
	grid := gridOf(
		[]float64{0, 0, 0},
		[]float64{0, 10, 0},
		[]float64{0, 0, 0},
	)
	iso := Generate(5, grid, 2, 0)
	require.Len(t, iso[5], 1)
	ring := iso[5][0]
	assert.GreaterOrEqual(t, len(ring), 4)
	assert.LessOrEqual(t, len(ring), 8)
	assert.True(t, ring.Closed())
	want := Path{{2, 1}, {1, 1}, {1, 1}, {1, 2}, {2, 1}}
	if diff := cmp.Diff(want, ring); diff != "" {
		t.Errorf("ring mismatch (-want +got):\n%s", diff)
	}
	assert.Positive(t, ring.SignedArea())

	// the default buffer reads NaN outside the grid and changes nothing
	assert.Equal(t, iso[5], Generate(5, grid, 2, DefaultBuffer)[5])
}

func TestGeneratePeakRing(t *testing.T) {
	grid := peakGrid(9, 10, 4)
	iso := Generate(5, grid, 512, 0)
	require.Len(t, iso[5], 1)
	ring := iso[5][0]
	assert.True(t, ring.Closed())
	assert.Greater(t, len(ring), 4)
	assert.Positive(t, ring.SignedArea())
	assert.Empty(t, iso[10])
}

func TestGenerateDisjointPlateaus(t *testing.T) {
	grid := gridOf(
		[]float64{0, 0, 0, 0, 0, 0, 0, 0, 0},
		[]float64{0, 10, 10, 0, 0, 0, 10, 10, 0},
		[]float64{0, 10, 10, 0, 0, 0, 10, 10, 0},
		[]float64{0, 10, 10, 0, 0, 0, 10, 10, 0},
		[]float64{0, 0, 0, 0, 0, 0, 0, 0, 0},
	)
	iso := Generate(5, grid, 8, 0)
	require.Len(t, iso[5], 2)
	var boxes []Bounds
	for _, ring := range iso[5] {
		assert.True(t, ring.Closed())
		assert.Positive(t, ring.SignedArea())
		b, ok := Isolines{5: {ring}}.Bounds()
		require.True(t, ok)
		boxes = append(boxes, b)
	}
	if boxes[0].Min.X > boxes[1].Min.X {
		boxes[0], boxes[1] = boxes[1], boxes[0]
	}
	assert.Less(t, boxes[0].Max.X, boxes[1].Min.X)
}

func TestGenerateStitchesAdjacentCells(t *testing.T) {
	grid := gridOf(
		[]float64{0, 0, 0},
		[]float64{10, 10, 10},
	)
	iso := Generate(5, grid, 4, 0)
	want := []Path{{{4, 1}, {2, 1}, {0, 1}}}
	if diff := cmp.Diff(want, iso[5]); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, iso[5][0].Closed())
}

func TestGenerateMergesFragments(t *testing.T) {
	grid := gridOf(
		[]float64{10, 0, 10},
		[]float64{10, 0, 10},
		[]float64{10, 10, 10},
	)
	iso := Generate(5, grid, 4, 0)
	want := []Path{{{3, 0}, {3, 2}, {2, 3}, {1, 2}, {1, 0}}}
	if diff := cmp.Diff(want, iso[5]); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSaddleFixedPairing(t *testing.T) {
	grid := gridOf(
		[]float64{10, 0},
		[]float64{0, 10},
	)
	iso := Generate(5, grid, 2, 0)
	want := []Path{
		{{0, 1}, {1, 0}},
		{{2, 1}, {1, 2}},
	}
	if diff := cmp.Diff(want, iso[5]); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateManyLevels(t *testing.T) {
	grid := peakGrid(17, 100, 8)
	iso := Generate(10, grid, DefaultExtent, 0)
	levels := iso.Levels()
	require.NotEmpty(t, levels)
	for _, level := range levels {
		assert.Zero(t, math.Mod(level, 10), "level %v", level)
		assert.Less(t, level, 100.0)
	}
	for _, level := range []float64{10, 50, 90} {
		require.Len(t, iso[level], 1, "level %v", level)
		assert.True(t, iso[level][0].Closed())
	}
}

func TestGenerateFractionalInterval(t *testing.T) {
	grid := peakGrid(9, 1, 4)
	iso := Generate(0.1, grid, DefaultExtent, 0)
	for k := 1; k < 10; k++ {
		level := float64(k) * 0.1
		assert.NotEmpty(t, iso[level], "level %v", level)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	grids := []Grid{peakGrid(9, 10, 4), peakGrid(33, 50, 12), peakGrid(17, 20, 6)}
	want := make([]Isolines, len(grids))
	for i, g := range grids {
		want[i] = Generate(2, g, DefaultExtent, DefaultBuffer)
	}
	var wg sync.WaitGroup
	got := make([]Isolines, len(grids))
	for i, g := range grids {
		wg.Add(1)
		go func(i int, g Grid) {
			defer wg.Done()
			got[i] = Generate(2, g, DefaultExtent, DefaultBuffer)
		}(i, g)
	}
	wg.Wait()
	for i := range grids {
		assert.Equal(t, want[i], got[i])
	}
}

func TestGenerateLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	Generate(5, peakGrid(9, 10, 4), 0, -1)
	out := buf.String()
	assert.Contains(t, out, "msg=isolines")
	assert.Contains(t, out, "extent=4096")
	assert.Contains(t, out, "buffer=0")
	assert.Contains(t, out, "rings=")
}

func BenchmarkGenerate(b *testing.B) {
	const n = TileSize
	values := make([]float64, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			values[y*n+x] = 1000 * (math.Sin(float64(x)/17) + math.Cos(float64(y)/23))
		}
	}
	grid := NewSliceGrid(n, n, values)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GenerateDefault(50, grid)
	}
}
