package tensor

import (
	"fmt"
	"math"
	"strings"
)

// Complex is the complex-valued counterpart of Real (spec 3.1:
// ComplexTensor). It never carries a purely-real component without
// explicit promotion — callers constructing one from a Real always go
// through Promote.
type Complex struct {
	data  []complex128
	shape []int
}

func NewComplex(data []complex128, shape []int) (*Complex, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	if Size(shape) != len(data) {
		return nil, &ShapeError{Msg: fmt.Sprintf("tensor: data length %d does not match shape %v", len(data), shape)}
	}
	cp := make([]complex128, len(data))
	copy(cp, data)
	return &Complex{data: cp, shape: append([]int(nil), shape...)}, nil
}

func (t *Complex) Data() []complex128 { return t.data }
func (t *Complex) Shape() []int       { return t.shape }
func (t *Complex) Rank() int          { return len(t.shape) }

func (t *Complex) Clone() *Complex {
	d := make([]complex128, len(t.data))
	copy(d, t.data)
	s := make([]int, len(t.shape))
	copy(s, t.shape)
	return &Complex{data: d, shape: s}
}

func (t *Complex) Equal(o *Complex) bool {
	if len(t.shape) != len(o.shape) {
		return false
	}
	for i := range t.shape {
		if t.shape[i] != o.shape[i] {
			return false
		}
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Promote lifts a Real tensor into a Complex tensor with zero imaginary
// parts (spec 4.4.2: "Operators between Number and Complex promote to
// Complex").
func Promote(t *Real) *Complex {
	data := make([]complex128, len(t.data))
	for i, v := range t.data {
		data[i] = complex(v, 0)
	}
	return &Complex{data: data, shape: append([]int(nil), t.shape...)}
}

// AllNearReal reports whether every imaginary part's magnitude is below
// tol, used by ifft to decide whether to downgrade to a Real tensor.
func (t *Complex) AllNearReal(tol float64) bool {
	for _, v := range t.data {
		if math.Abs(imag(v)) >= tol {
			return false
		}
	}
	return true
}

// ToReal drops the (assumed-negligible) imaginary component.
func (t *Complex) ToReal() *Real {
	data := make([]float64, len(t.data))
	for i, v := range t.data {
		data[i] = real(v)
	}
	return &Real{data: data, shape: append([]int(nil), t.shape...)}
}

func (t *Complex) String() string {
	var b strings.Builder
	printComplex(&b, t.data, t.shape)
	return b.String()
}

func printComplex(b *strings.Builder, data []complex128, shape []int) {
	if len(shape) == 1 {
		b.WriteByte('[')
		for i, v := range data {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatComplex(v))
		}
		b.WriteByte(']')
		return
	}
	b.WriteByte('[')
	chunk := Size(shape[1:])
	for i := 0; i < shape[0]; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		printComplex(b, data[i*chunk:(i+1)*chunk], shape[1:])
	}
	b.WriteByte(']')
}

// FormatComplex implements spec 4.1's canonical complex printing: "a+bi" /
// "a-bi", with the smaller imaginary form for |im|=1 omitting the
// coefficient (e.g. "3+i", "3-i").
func FormatComplex(c complex128) string {
	re, im := real(c), imag(c)
	sign := "+"
	mag := im
	if im < 0 {
		sign = "-"
		mag = -im
	}
	var imStr string
	if mag == 1 {
		imStr = "i"
	} else {
		imStr = formatFloat(mag) + "i"
	}
	return fmt.Sprintf("%s%s%s", formatFloat(re), sign, imStr)
}
