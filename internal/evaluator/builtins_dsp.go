package evaluator

import (
	"github.com/eddndev/achronyme/internal/linalg"
	"github.com/eddndev/achronyme/internal/tensor"
	"github.com/eddndev/achronyme/internal/value"
)

// registerDSPBuiltins wires spec section 6's FFT/window/convolution
// catalog over internal/linalg's gonum-backed fourier kernels.
func registerDSPBuiltins(env *value.Environment) {
	def(env, builtin("fft", 1, false, func(args []value.Value) (value.Value, error) {
		c, err := asComplexTensor("fft", args[0])
		if err != nil {
			return nil, err
		}
		out, err := linalg.FFT(c)
		if err != nil {
			return nil, linalgErr(err)
		}
		return value.NewComplexTensor(out), nil
	}))

	def(env, builtin("ifft", 1, false, func(args []value.Value) (value.Value, error) {
		c, err := asComplexTensor("ifft", args[0])
		if err != nil {
			return nil, err
		}
		out, err := linalg.IFFT(c)
		if err != nil {
			return nil, linalgErr(err)
		}
		switch v := out.(type) {
		case *tensor.Real:
			return value.NewRealTensor(v), nil
		case *tensor.Complex:
			return value.NewComplexTensor(v), nil
		default:
			return nil, valueErrorf("ifft: unexpected result type")
		}
	}))

	def(env, builtin("fft_mag", 1, false, func(args []value.Value) (value.Value, error) {
		c, err := asComplexTensor("fft_mag", args[0])
		if err != nil {
			return nil, err
		}
		return realTensorToValue(linalg.FFTMagnitude(c))
	}))

	def(env, builtin("fft_phase", 1, false, func(args []value.Value) (value.Value, error) {
		c, err := asComplexTensor("fft_phase", args[0])
		if err != nil {
			return nil, err
		}
		return realTensorToValue(linalg.FFTPhase(c))
	}))

	def(env, builtin("hanning", 1, false, windowBuiltin("hanning", linalg.Hanning)))
	def(env, builtin("hamming", 1, false, windowBuiltin("hamming", linalg.Hamming)))
	def(env, builtin("blackman", 1, false, windowBuiltin("blackman", linalg.Blackman)))
	def(env, builtin("rectangular", 1, false, windowBuiltin("rectangular", linalg.Rectangular)))

	def(env, builtin("conv", 2, false, func(args []value.Value) (value.Value, error) {
		x, err := asRealTensor("conv", args[0])
		if err != nil {
			return nil, err
		}
		h, err := asRealTensor("conv", args[1])
		if err != nil {
			return nil, err
		}
		return realTensorToValue(linalg.Conv(x, h))
	}))

	def(env, builtin("conv_fft", 2, false, func(args []value.Value) (value.Value, error) {
		x, err := asRealTensor("conv_fft", args[0])
		if err != nil {
			return nil, err
		}
		h, err := asRealTensor("conv_fft", args[1])
		if err != nil {
			return nil, err
		}
		return realTensorToValue(linalg.ConvFFT(x, h))
	}))
}

func windowBuiltin(name string, kind linalg.Window) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		n, err := asNumber(name, args[0])
		if err != nil {
			return nil, err
		}
		return realTensorToValue(linalg.WindowFunc(kind, int(n)))
	}
}
