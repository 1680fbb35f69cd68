package linalg

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/eddndev/achronyme/internal/tensor"
)

// FFT returns a ComplexTensor of the same length as x (spec 4.2). Lengths
// are arbitrary; gonum's CmplxFFT is the fast path for every length
// (power-of-two included), so there is no separate slow path to maintain.
func FFT(x *tensor.Complex) (*tensor.Complex, error) {
	if x.Rank() != 1 {
		return nil, &ShapeError{Msg: "fft: expects a rank-1 tensor"}
	}
	n := len(x.Data())
	if n == 0 {
		return nil, &ShapeError{Msg: "fft: empty input"}
	}
	plan := fourier.NewCmplxFFT(n)
	out := plan.Coefficients(nil, x.Data())
	return tensor.NewComplex(out, []int{n})
}

// FFTReal is a convenience wrapper for real-valued input (promotes to
// Complex first, per spec 4.4.2's promotion rule).
func FFTReal(x *tensor.Real) (*tensor.Complex, error) {
	return FFT(tensor.Promote(x))
}

// IFFT computes the inverse DFT via the conjugate identity
// ifft(X) = conj(fft(conj(X))) / N, which holds regardless of any
// particular FFT library's own inverse-transform scaling convention — it
// only depends on forward Coefficients(), so it is robust to exactly how
// gonum's own Sequence() normalizes. Per spec 4.2, the result downgrades to
// a RealTensor when every imaginary part is below 1e-10; otherwise it
// stays a ComplexTensor.
func IFFT(x *tensor.Complex) (interface{}, error) {
	n := len(x.Data())
	if n == 0 {
		return nil, &ShapeError{Msg: "ifft: empty input"}
	}
	conjIn := make([]complex128, n)
	for i, v := range x.Data() {
		conjIn[i] = complex(real(v), -imag(v))
	}
	conjInT, err := tensor.NewComplex(conjIn, []int{n})
	if err != nil {
		return nil, err
	}
	fwd, err := FFT(conjInT)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, n)
	for i, v := range fwd.Data() {
		out[i] = complex(real(v)/float64(n), -imag(v)/float64(n))
	}
	result, err := tensor.NewComplex(out, []int{n})
	if err != nil {
		return nil, err
	}
	if result.AllNearReal(1e-10) {
		return result.ToReal(), nil
	}
	return result, nil
}

// FFTMagnitude returns abs(fft(x)) as a RealTensor (spec 4.2/8:
// fft_mag(x) == abs(fft(x)) element-wise).
func FFTMagnitude(x *tensor.Complex) (*tensor.Real, error) {
	c, err := FFT(x)
	if err != nil {
		return nil, err
	}
	return magnitude(c), nil
}

func magnitude(c *tensor.Complex) *tensor.Real {
	data := make([]float64, len(c.Data()))
	for i, v := range c.Data() {
		data[i] = math.Hypot(real(v), imag(v))
	}
	out, _ := tensor.New(data, c.Shape())
	return out
}

// FFTPhase returns the phase angle (atan2(im, re)) of fft(x) as a
// RealTensor.
func FFTPhase(x *tensor.Complex) (*tensor.Real, error) {
	c, err := FFT(x)
	if err != nil {
		return nil, err
	}
	data := make([]float64, len(c.Data()))
	for i, v := range c.Data() {
		data[i] = math.Atan2(imag(v), real(v))
	}
	out, _ := tensor.New(data, c.Shape())
	return out, nil
}

// Window is one of the standard DSP window functions of spec 4.2.
type Window int

const (
	Hanning Window = iota
	Hamming
	Blackman
	Rectangular
)

// WindowFunc evaluates the named window for a positive integer length n
// using the standard coefficient formulas.
func WindowFunc(kind Window, n int) (*tensor.Real, error) {
	if n <= 0 {
		return nil, &ShapeError{Msg: "window: n must be positive"}
	}
	data := make([]float64, n)
	switch kind {
	case Hanning:
		for i := 0; i < n; i++ {
			data[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		}
	case Hamming:
		for i := 0; i < n; i++ {
			data[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		}
	case Blackman:
		for i := 0; i < n; i++ {
			x := 2 * math.Pi * float64(i) / float64(n-1)
			data[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
		}
	case Rectangular:
		for i := range data {
			data[i] = 1
		}
	}
	if n == 1 {
		// Avoid the n-1==0 division above; a single-sample window is 1.
		data[0] = 1
	}
	out, _ := tensor.New(data, []int{n})
	return out, nil
}

// Conv computes the direct (time-domain) linear convolution of x and h,
// producing a RealTensor of length len(x)+len(h)-1 (spec 4.2).
func Conv(x, h *tensor.Real) (*tensor.Real, error) {
	nx, nh := len(x.Data()), len(h.Data())
	if nx == 0 || nh == 0 {
		return nil, &ShapeError{Msg: "conv: empty input"}
	}
	out := make([]float64, nx+nh-1)
	for i := 0; i < nx; i++ {
		xv := x.Data()[i]
		if xv == 0 {
			continue
		}
		for j := 0; j < nh; j++ {
			out[i+j] += xv * h.Data()[j]
		}
	}
	result, _ := tensor.New(out, []int{len(out)})
	return result, nil
}

// ConvFFT computes the same linear convolution via zero-padded FFT
// multiplication; it must agree with Conv within 1e-9 per element (spec
// 4.2/8).
func ConvFFT(x, h *tensor.Real) (*tensor.Real, error) {
	nx, nh := len(x.Data()), len(h.Data())
	if nx == 0 || nh == 0 {
		return nil, &ShapeError{Msg: "conv_fft: empty input"}
	}
	outLen := nx + nh - 1
	n := nextPowerOfTwo(outLen)

	xp := padComplex(x.Data(), n)
	hp := padComplex(h.Data(), n)

	xt, _ := tensor.NewComplex(xp, []int{n})
	ht, _ := tensor.NewComplex(hp, []int{n})

	xf, err := FFT(xt)
	if err != nil {
		return nil, err
	}
	hf, err := FFT(ht)
	if err != nil {
		return nil, err
	}

	prod := make([]complex128, n)
	for i := range prod {
		prod[i] = xf.Data()[i] * hf.Data()[i]
	}
	prodT, _ := tensor.NewComplex(prod, []int{n})

	inv, err := IFFT(prodT)
	if err != nil {
		return nil, err
	}

	var full []float64
	switch v := inv.(type) {
	case *tensor.Real:
		full = v.Data()
	case *tensor.Complex:
		full = make([]float64, len(v.Data()))
		for i, c := range v.Data() {
			full[i] = real(c)
		}
	}
	out, _ := tensor.New(full[:outLen], []int{outLen})
	return out, nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func padComplex(x []float64, n int) []complex128 {
	out := make([]complex128, n)
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}
