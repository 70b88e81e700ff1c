package indicator

// Window keeps the most recent closes up to a fixed capacity. It backs the
// bar-at-a-time band computation in the streaming evaluator.
type Window struct {
	max int
	buf []float64
}

func NewWindow(max int) *Window {
	if max <= 0 {
		max = DefaultBandPeriod
	}
	return &Window{max: max, buf: make([]float64, 0, max)}
}

func (w *Window) Add(v float64) {
	if len(w.buf) == w.max {
		copy(w.buf, w.buf[1:])
		w.buf = w.buf[:w.max-1]
	}
	w.buf = append(w.buf, v)
}

func (w *Window) Len() int   { return len(w.buf) }
func (w *Window) Full() bool { return len(w.buf) == w.max }

func (w *Window) Values() []float64 {
	out := make([]float64, len(w.buf))
	copy(out, w.buf)
	return out
}

// Mean of the current contents; 0 when empty.
func (w *Window) Mean() float64 {
	m, _ := meanStdDev(w.buf)
	return m
}

// StdDev is the population standard deviation of the current contents.
func (w *Window) StdDev() float64 {
	_, sd := meanStdDev(w.buf)
	return sd
}

// Bands returns the envelope for the current window, absent until full.
func (w *Window) Bands(devUp, devDown float64) (upper, middle, lower Value) {
	if !w.Full() {
		return None(), None(), None()
	}
	m, sd := w.Mean(), w.StdDev()
	return Some(m + devUp*sd), Some(m), Some(m - devDown*sd)
}
