// Package linalg implements spec section 4.2's linear-algebra kernels and
// FFT/DSP family (component C), backed by gonum's dense linear-algebra
// library (gonum.org/v1/gonum/mat, gonum.org/v1/gonum/dsp/fourier) — the
// "production dense-linear-algebra library" spec.md names directly.
// Grounded on the gonum BLAS interface documentation retrieved as
// other_examples/ca58d2ee_gonum-gonum__blas.go.go: gonum's mat package is
// the natural home for the LU/QR/Cholesky/SVD/eigen solvers it documents.
package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/eddndev/achronyme/internal/tensor"
)

type ShapeError struct{ Msg string }

func (e *ShapeError) Error() string { return e.Msg }

type SingularError struct{ Msg string }

func (e *SingularError) Error() string { return e.Msg }

type NumericError struct{ Msg string }

func (e *NumericError) Error() string { return e.Msg }

// toDense converts a rank-2 Real tensor into a gonum Dense matrix.
func toDense(t *tensor.Real) (*mat.Dense, error) {
	if t.Rank() != 2 {
		return nil, &ShapeError{Msg: "linalg: expected a rank-2 tensor"}
	}
	rows, cols := t.Shape()[0], t.Shape()[1]
	return mat.NewDense(rows, cols, append([]float64(nil), t.Data()...)), nil
}

func fromDense(d *mat.Dense) *tensor.Real {
	r, c := d.Dims()
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = d.At(i, j)
		}
	}
	out, _ := tensor.New(data, []int{r, c})
	return out
}

// Det computes the determinant via LU decomposition with partial pivoting
// (spec 4.2). det(eye(n)) == 1 for all n (spec section 8).
func Det(a *tensor.Real) (float64, error) {
	d, err := toDense(a)
	if err != nil {
		return 0, err
	}
	r, c := d.Dims()
	if r != c {
		return 0, &ShapeError{Msg: "det: matrix must be square"}
	}
	return mat.Det(d), nil
}

// Inverse computes A^-1 via LU solve against the identity (spec 4.2).
func Inverse(a *tensor.Real) (*tensor.Real, error) {
	d, err := toDense(a)
	if err != nil {
		return nil, err
	}
	r, c := d.Dims()
	if r != c {
		return nil, &ShapeError{Msg: "inverse: matrix must be square"}
	}
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return nil, &SingularError{Msg: fmt.Sprintf("inverse: singular matrix: %v", err)}
	}
	return fromDense(&inv), nil
}

// Solve solves Ax = b via LU decomposition (spec 4.2).
func Solve(a, b *tensor.Real) (*tensor.Real, error) {
	da, err := toDense(a)
	if err != nil {
		return nil, err
	}
	var db *mat.Dense
	if b.Rank() == 1 {
		db = mat.NewDense(len(b.Data()), 1, append([]float64(nil), b.Data()...))
	} else {
		db, err = toDense(b)
		if err != nil {
			return nil, err
		}
	}
	var x mat.Dense
	if err := x.Solve(da, db); err != nil {
		return nil, &SingularError{Msg: fmt.Sprintf("solve: singular matrix: %v", err)}
	}
	res := fromDense(&x)
	if b.Rank() == 1 {
		return res.Reshape([]int{res.Shape()[0]})
	}
	return res, nil
}

// QR performs a Householder QR factorization, returning (Q, R).
func QR(a *tensor.Real) (q, r *tensor.Real, err error) {
	d, err := toDense(a)
	if err != nil {
		return nil, nil, err
	}
	var qr mat.QR
	qr.Factorize(d)
	rows, cols := d.Dims()
	var qm mat.Dense
	qr.QTo(&qm)
	var rm mat.Dense
	qr.RTo(&rm)
	_ = rows
	_ = cols
	return fromDense(&qm), fromDense(&rm), nil
}

// Cholesky factors A = L L^T. It rejects non-positive-definite inputs with
// NumericError (spec 4.2).
func Cholesky(a *tensor.Real) (*tensor.Real, error) {
	d, err := toDense(a)
	if err != nil {
		return nil, err
	}
	r, c := d.Dims()
	if r != c {
		return nil, &ShapeError{Msg: "cholesky: matrix must be square"}
	}
	sym := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			sym.SetSym(i, j, d.At(i, j))
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, &NumericError{Msg: "cholesky: matrix is not positive-definite"}
	}
	var l mat.TriDense
	chol.LTo(&l)
	dense := mat.DenseCopyOf(&l)
	return fromDense(dense), nil
}

// SVDResult holds the factors of A = U Σ Vᵀ.
type SVDResult struct {
	U, Sigma, Vt *tensor.Real
}

// SVD computes the singular value decomposition of any (m, n) matrix; Σ is
// returned as a rank-1 tensor of non-negative singular values sorted
// descending (spec 4.2), and U/Vt are the corresponding orthogonal factors.
func SVD(a *tensor.Real) (*SVDResult, error) {
	d, err := toDense(a)
	if err != nil {
		return nil, err
	}
	var svd mat.SVD
	if ok := svd.Factorize(d, mat.SVDFull); !ok {
		return nil, &NumericError{Msg: "svd: factorization failed to converge"}
	}
	values := svd.Values(nil)
	sigma, _ := tensor.New(values, []int{len(values)})

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	vt := new(mat.Dense)
	vt.CloneFrom(v.T())

	return &SVDResult{U: fromDense(&u), Sigma: sigma, Vt: fromDense(vt)}, nil
}

// Eigenvalues returns the (possibly complex) eigenvalues of a general
// square matrix as a rank-1 ComplexTensor (spec 4.2).
func Eigenvalues(a *tensor.Real) (*tensor.Complex, error) {
	d, err := toDense(a)
	if err != nil {
		return nil, err
	}
	var eig mat.Eigen
	if ok := eig.Factorize(d, mat.EigenNone); !ok {
		return nil, &NumericError{Msg: "eigenvalues: factorization failed to converge"}
	}
	values := eig.Values(nil)
	return tensor.NewComplex(values, []int{len(values)})
}

// EigenDecomposition additionally returns the eigenvectors, with V's
// columns aligned to Values (spec 4.2).
type EigenDecomposition struct {
	Values *tensor.Complex
	V      *tensor.Complex
}

func Eigen(a *tensor.Real) (*EigenDecomposition, error) {
	d, err := toDense(a)
	if err != nil {
		return nil, err
	}
	var eig mat.Eigen
	if ok := eig.Factorize(d, mat.EigenRight); !ok {
		return nil, &NumericError{Msg: "eigen: factorization failed to converge"}
	}
	values := eig.Values(nil)
	valuesT, err := tensor.NewComplex(values, []int{len(values)})
	if err != nil {
		return nil, err
	}
	var vecs mat.CDense
	eig.VectorsTo(&vecs)
	r, c := vecs.Dims()
	data := make([]complex128, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = vecs.At(i, j)
		}
	}
	vT, err := tensor.NewComplex(data, []int{r, c})
	if err != nil {
		return nil, err
	}
	return &EigenDecomposition{Values: valuesT, V: vT}, nil
}

// PowerIteration computes the dominant eigenvalue/eigenvector of a square
// matrix by repeated multiplication, converging when the normalized
// residual falls below tol or maxIter is reached (spec 4.2).
func PowerIteration(a *tensor.Real, maxIter int, tol float64) (eigenvalue float64, eigenvector *tensor.Real, iterations int, err error) {
	if a.Rank() != 2 || a.Shape()[0] != a.Shape()[1] {
		return 0, nil, 0, &ShapeError{Msg: "power_iteration: matrix must be square"}
	}
	n := a.Shape()[0]
	v := make([]float64, n)
	for i := range v {
		v[i] = 1.0 / math.Sqrt(float64(n))
	}
	vt, _ := tensor.New(v, []int{n})

	var lambda float64
	for iter := 0; iter < maxIter; iter++ {
		av, mmErr := tensor.MatMul(a, vt)
		if mmErr != nil {
			return 0, nil, iter, mmErr
		}
		norm := 0.0
		for _, x := range av.Data() {
			norm += x * x
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			return 0, nil, iter, &NumericError{Msg: "power_iteration: zero vector encountered"}
		}
		next := make([]float64, n)
		for i, x := range av.Data() {
			next[i] = x / norm
		}

		residual := 0.0
		for i := range next {
			d := next[i] - vt.Data()[i]
			residual += d * d
		}
		vt, _ = tensor.New(next, []int{n})
		lambda = norm
		iterations = iter + 1
		if math.Sqrt(residual) < tol {
			break
		}
	}
	return lambda, vt, iterations, nil
}
