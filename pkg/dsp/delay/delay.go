// Package delay provides the ring-buffer substrate shared by every
// reverb filter primitive (delay line, allpass, comb). A single Line
// type backs all three so cursor arithmetic and tap semantics stay
// identical across algorithms.
package delay

// Damping holds the state of an optional one-pole lowpass embedded in a
// delay line. Invariant: A1 == 1 - B0 whenever SetCoeff is used, which
// keeps the filter at unity DC gain.
type Damping struct {
	Buffer float32
	B0     float32
	A1     float32
}

// SetCoeff sets b0 and derives a1 = 1 - b0.
func (d *Damping) SetCoeff(b0 float32) {
	d.B0 = b0
	d.A1 = 1 - b0
}

// Process runs the one-pole lowpass: buffer = b0*input + a1*buffer.
func (d *Damping) Process(input float32) float32 {
	d.Buffer = d.B0*input + d.A1*d.Buffer
	return d.Buffer
}

// Reset zeros the filter history; coefficients are left untouched.
func (d *Damping) Reset() {
	d.Buffer = 0
}

// Line is a fixed-capacity ring buffer of float32 samples with a
// read/write cursor, an optional embedded Damping filter, and a
// multi-tap read capability.
type Line struct {
	line       []float32
	lineIn     int
	lineOut    int
	lastOutput float32

	// Damping is the optional one-pole lowpass embedded in the line.
	// Process does not apply it, and no filter in this module uses it:
	// Dattorro and Lexverb keep standalone Damping values instead.
	Damping Damping

	// Coefficient is the cross-feed gain used by Lexverb's cross-delays.
	Coefficient float32
}

// SetBuffer allocates storage of length n (clamped to at least 1),
// resets both cursors to zero, and clears the cached last output. Only
// called during construction or SamplerateChange, never from the
// steady-state process path.
func (l *Line) SetBuffer(n int) {
	if n < 1 {
		n = 1
	}
	l.line = make([]float32, n)
	l.lineIn = 0
	l.lineOut = 0
	l.lastOutput = 0
}

// Len returns the ring buffer's capacity.
func (l *Line) Len() int {
	return len(l.line)
}

// Fill writes v into every cell without moving either cursor.
func (l *Line) Fill(v float32) {
	for i := range l.line {
		l.line[i] = v
	}
}

// SetPositions stores both cursors directly. Callers must keep them
// within [0, Len()).
func (l *Line) SetPositions(in, out int) {
	l.lineIn = in
	l.lineOut = out
}

// SetSingleTapPosition sets both cursors to i, the configuration used
// by every single-tap delay/allpass/comb filter.
func (l *Line) SetSingleTapPosition(i int) {
	l.lineIn = i
	l.lineOut = i
}

// ReadTap returns the sample at (lineOut + k) mod N without mutating
// the cursor, handling negative k via Euclidean modulo. Used by
// Dattorro's multi-tap readouts.
func (l *Line) ReadTap(k int) float32 {
	n := len(l.line)
	if n == 0 {
		return 0
	}
	idx := (l.lineOut + k) % n
	if idx < 0 {
		idx += n
	}
	return l.line[idx]
}

// LastOutput returns the most recently produced sample, as cached by
// Process.
func (l *Line) LastOutput() float32 {
	return l.lastOutput
}

// Process reads the sample at lineOut, writes x at that position,
// advances lineOut by one modulo N, keeps lineIn equal to lineOut, and
// returns the sample that was read.
func (l *Line) Process(x float32) float32 {
	output := l.line[l.lineOut]
	l.line[l.lineOut] = x

	l.lineOut++
	if l.lineOut >= len(l.line) {
		l.lineOut = 0
	}
	l.lineIn = l.lineOut

	l.lastOutput = output
	return output
}
