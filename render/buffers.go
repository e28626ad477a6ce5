// Package render packs translated particle positions and visual attributes
// into flat float32 buffers sized for the maximum particle count, applies
// per-frame culling and gesture glow modulation, and draws the result.
package render

// Buffers holds the GPU-ready attribute arrays. Layout is contiguous
// per-attribute: Positions and Colors hold 3 floats per particle, the rest
// hold 1. Entries past Count() are stale and must not be drawn.
type Buffers struct {
	capacity int
	count    int

	Positions []float32 // x, y, z interleaved
	Sizes     []float32
	Colors    []float32 // r, g, b interleaved, normalized
	Alphas    []float32
	Glows     []float32
	Depths    []float32 // [0,1] for shader-side blur
	Styles    []float32 // 1 = cell-shaded, 0 = solid

	// disposer releases the GPU-side allocation backing these arrays.
	// Called before reallocation on resize; nil when nothing is bound.
	disposer func()
}

// NewBuffers allocates attribute arrays for capacity particles.
func NewBuffers(capacity int) *Buffers {
	if capacity < 1 {
		capacity = 1
	}
	b := &Buffers{}
	b.alloc(capacity)
	return b
}

func (b *Buffers) alloc(capacity int) {
	b.capacity = capacity
	b.Positions = make([]float32, capacity*3)
	b.Colors = make([]float32, capacity*3)
	b.Sizes = make([]float32, capacity)
	b.Alphas = make([]float32, capacity)
	b.Glows = make([]float32, capacity)
	b.Depths = make([]float32, capacity)
	b.Styles = make([]float32, capacity)
	b.count = 0
}

// Capacity returns the allocated particle slots.
func (b *Buffers) Capacity() int {
	return b.capacity
}

// Count returns the draw range: the number of particles packed this frame.
func (b *Buffers) Count() int {
	return b.count
}

// SetDisposer registers the hook that releases the GPU-side allocation.
func (b *Buffers) SetDisposer(fn func()) {
	b.disposer = fn
}

// Resize grows or shrinks the buffers. Resizing to the current capacity is
// a no-op; otherwise the old GPU allocation is disposed before the arrays
// are reallocated.
func (b *Buffers) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == b.capacity {
		return
	}
	if b.disposer != nil {
		b.disposer()
	}
	b.alloc(capacity)
}

// Reset rewinds the draw range for a new frame without touching capacity.
func (b *Buffers) Reset() {
	b.count = 0
}

// push appends one particle's attributes. Returns false when full.
func (b *Buffers) push(x, y, z, size, r, g, bl, alpha, glow, depth, style float32) bool {
	i := b.count
	if i >= b.capacity {
		return false
	}
	b.Positions[i*3] = x
	b.Positions[i*3+1] = y
	b.Positions[i*3+2] = z
	b.Colors[i*3] = r
	b.Colors[i*3+1] = g
	b.Colors[i*3+2] = bl
	b.Sizes[i] = size
	b.Alphas[i] = alpha
	b.Glows[i] = glow
	b.Depths[i] = depth
	b.Styles[i] = style
	b.count++
	return true
}
