package monitor

// PricePoint is one observed market price keyed by its tick counter.
type PricePoint struct {
	Tick  int64
	Price float64
}

// PriceBuffer is a bounded FIFO of recent price points. Appending beyond
// capacity evicts the oldest point. It is not safe for concurrent use;
// callers go through the Store, which serializes access.
type PriceBuffer struct {
	points   []PricePoint
	capacity int
}

// NewPriceBuffer creates an empty buffer holding at most capacity points.
// Capacity values below one are raised to one.
func NewPriceBuffer(capacity int) *PriceBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &PriceBuffer{
		points:   make([]PricePoint, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a point, evicting the oldest one when the buffer is full.
func (b *PriceBuffer) Append(p PricePoint) {
	if len(b.points) == b.capacity {
		copy(b.points, b.points[1:])
		b.points[len(b.points)-1] = p
		return
	}
	b.points = append(b.points, p)
}

// Len returns the number of stored points.
func (b *PriceBuffer) Len() int {
	return len(b.points)
}

// Capacity returns the maximum number of points the buffer holds.
func (b *PriceBuffer) Capacity() int {
	return b.capacity
}

// Points returns a copy of the stored points, oldest first.
func (b *PriceBuffer) Points() []PricePoint {
	out := make([]PricePoint, len(b.points))
	copy(out, b.points)
	return out
}

// Prices returns just the price values, oldest first.
func (b *PriceBuffer) Prices() []float64 {
	out := make([]float64, len(b.points))
	for i, p := range b.points {
		out[i] = p.Price
	}
	return out
}

// Last returns the most recent point, or false when the buffer is empty.
func (b *PriceBuffer) Last() (PricePoint, bool) {
	if len(b.points) == 0 {
		return PricePoint{}, false
	}
	return b.points[len(b.points)-1], true
}

// Clone returns an independent copy with the same capacity and contents.
func (b *PriceBuffer) Clone() *PriceBuffer {
	c := NewPriceBuffer(b.capacity)
	c.points = append(c.points, b.points...)
	return c
}
