package scroll

// Sample is one recorded pointer position.
type Sample struct {
	T   float64 `json:"t" yaml:"t"`
	Pos float64 `json:"pos" yaml:"pos"`
}

// History is a fixed-capacity FIFO of samples. The oldest sample is evicted
// once capacity is reached.
type History struct {
	data  []Sample
	start int
	n     int
}

// NewHistory creates a History holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{data: make([]Sample, capacity)}
}

func (h *History) Len() int { return h.n }
func (h *History) Cap() int { return len(h.data) }

// Push appends s, evicting the oldest sample when full.
func (h *History) Push(s Sample) {
	if h.n < len(h.data) {
		h.data[(h.start+h.n)%len(h.data)] = s
		h.n++
		return
	}
	h.data[h.start] = s
	h.start = (h.start + 1) % len(h.data)
}

// At returns the i-th sample, oldest first.
func (h *History) At(i int) Sample {
	if i < 0 || i >= h.n {
		panic("scroll: history index out of range")
	}
	return h.data[(h.start+i)%len(h.data)]
}

// Last returns the newest sample.
func (h *History) Last() (Sample, bool) {
	if h.n == 0 {
		return Sample{}, false
	}
	return h.At(h.n - 1), true
}

// Reset drops every sample and records samples in order.
func (h *History) Reset(samples ...Sample) {
	h.start, h.n = 0, 0
	for _, s := range samples {
		h.Push(s)
	}
}

// Samples returns a copy of the contents in insertion order.
func (h *History) Samples() []Sample {
	out := make([]Sample, h.n)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}

// Resize changes the capacity, keeping the most recent samples.
func (h *History) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(h.data) {
		return
	}
	keep := h.Samples()
	if len(keep) > capacity {
		keep = keep[len(keep)-capacity:]
	}
	h.data = make([]Sample, capacity)
	h.Reset(keep...)
}
