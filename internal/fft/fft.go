// Package fft implements an in-place iterative radix-2 FFT over complex128
// sequences whose length is a power of two.
//
// Transform uses the twiddle factor e^(+2πi/m), so for a sequence x it
// computes y[k] = Σ x[j]·e^(+2πi·jk/n) without scaling. This is the sum a
// Fourier synthesis (spectrum to signal) needs. Inverse undoes it exactly:
// conjugate twiddles and a 1/n scale.
package fft

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
)

// Plan caches the bit-reversal table, the twiddle factors and a column
// scratch buffer for one transform length. A Plan is not safe for
// concurrent use because Transform2D writes into its scratch buffer.
type Plan struct {
	n       int
	logN    int
	rev     []int
	twiddle []complex128 // twiddle[j] = e^(+2πi·j/n), j < n/2
	column  []complex128
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NewPlan prepares a plan for sequences of length n.
func NewPlan(n int) (*Plan, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: length %d is not a power of two", ErrInvalidInput, n)
	}

	logN := bits.TrailingZeros(uint(n))
	p := &Plan{
		n:       n,
		logN:    logN,
		rev:     make([]int, n),
		twiddle: make([]complex128, n/2),
	}

	for i := 0; i < n; i++ {
		p.rev[i] = reverseBits(i, logN)
	}

	// Every stage of size m uses e^(2πi·j/m) = e^(2πi·j·(n/m)/n), so one
	// table of the n-th roots of unity serves all stages.
	for j := range p.twiddle {
		angle := 2 * math.Pi * float64(j) / float64(n)
		p.twiddle[j] = complex(math.Cos(angle), math.Sin(angle))
	}

	return p, nil
}

// Len returns the sequence length the plan was built for.
func (p *Plan) Len() int {
	return p.n
}

// Transform computes the unscaled transform of x in place.
func (p *Plan) Transform(x []complex128) error {
	if len(x) != p.n {
		return fmt.Errorf("%w: got %d values, plan expects %d", ErrInvalidInput, len(x), p.n)
	}
	p.transform(x, false)
	return nil
}

// Inverse undoes Transform in place, including the 1/n scale.
func (p *Plan) Inverse(x []complex128) error {
	if len(x) != p.n {
		return fmt.Errorf("%w: got %d values, plan expects %d", ErrInvalidInput, len(x), p.n)
	}
	p.transform(x, true)

	scale := complex(1/float64(p.n), 0)
	for i := range x {
		x[i] *= scale
	}
	return nil
}

// Transform2D transforms buf, an n×n row-major matrix, along every row and
// then along every column.
func (p *Plan) Transform2D(buf []complex128) error {
	n := p.n
	if len(buf) != n*n {
		return fmt.Errorf("%w: got %d values, plan expects %dx%d", ErrInvalidInput, len(buf), n, n)
	}
	p.transform2D(buf)
	return nil
}

// MustTransform2D is Transform2D for buffers whose size the caller has
// already checked. It panics if len(buf) is not n×n.
func (p *Plan) MustTransform2D(buf []complex128) {
	if len(buf) != p.n*p.n {
		panic(fmt.Sprintf("fft: MustTransform2D got %d values, plan expects %dx%d", len(buf), p.n, p.n))
	}
	p.transform2D(buf)
}

func (p *Plan) transform2D(buf []complex128) {
	n := p.n
	for row := 0; row < n; row++ {
		p.transform(buf[row*n:(row+1)*n], false)
	}

	if p.column == nil {
		p.column = make([]complex128, n)
	}
	col := p.column
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			col[r] = buf[r*n+c]
		}
		p.transform(col, false)
		for r := 0; r < n; r++ {
			buf[r*n+c] = col[r]
		}
	}
}

func (p *Plan) transform(x []complex128, inverse bool) {
	n := p.n

	for i, j := range p.rev {
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	for s := 1; s <= p.logN; s++ {
		m := 1 << s
		half := m >> 1
		stride := n / m
		for k := 0; k < n; k += m {
			for j := 0; j < half; j++ {
				w := p.twiddle[j*stride]
				if inverse {
					w = cmplx.Conj(w)
				}
				t := w * x[k+j+half]
				u := x[k+j]
				x[k+j] = u + t
				x[k+j+half] = u - t
			}
		}
	}
}

// Transform computes the unscaled transform of x in place with a one-shot
// plan. Callers transforming many sequences of the same length should keep
// a Plan instead.
func Transform(x []complex128) error {
	p, err := NewPlan(len(x))
	if err != nil {
		return err
	}
	return p.Transform(x)
}

// Inverse undoes Transform in place with a one-shot plan.
func Inverse(x []complex128) error {
	p, err := NewPlan(len(x))
	if err != nil {
		return err
	}
	return p.Inverse(x)
}

// BitReverse permutes x in place into bit-reversed index order.
func BitReverse(x []complex128) error {
	n := len(x)
	if !IsPowerOfTwo(n) {
		return fmt.Errorf("%w: length %d is not a power of two", ErrInvalidInput, n)
	}
	logN := bits.TrailingZeros(uint(n))
	for i := 0; i < n; i++ {
		j := reverseBits(i, logN)
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
	return nil
}

// reverseBits mirrors the low width bits of v.
func reverseBits(v, width int) int {
	if width == 0 {
		return 0
	}
	return int(bits.Reverse(uint(v)) >> (bits.UintSize - width))
}
