package economy

// DefaultHistoryCap keeps one simulated year of daily samples.
const DefaultHistoryCap = 365

// History is a bounded ring buffer of daily samples. The oldest sample is
// evicted once the buffer is full.
type History struct {
	buf   []float64
	start int
	size  int
}

// NewHistory creates a ring buffer holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &History{buf: make([]float64, capacity)}
}

// Push appends v, evicting the oldest sample if full.
func (h *History) Push(v float64) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = v
		h.size++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of stored samples.
func (h *History) Len() int {
	return h.size
}

// Cap returns the maximum number of samples.
func (h *History) Cap() int {
	return len(h.buf)
}

// Last returns the newest sample, or 0 when empty.
func (h *History) Last() float64 {
	if h.size == 0 {
		return 0
	}
	return h.buf[(h.start+h.size-1)%len(h.buf)]
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}
