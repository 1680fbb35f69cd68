package tensor

import "testing"

func TestZerosOnesEye(t *testing.T) {
	z, err := Zeros([]int{2, 3})
	if err != nil {
		t.Fatalf("Zeros: %v", err)
	}
	if len(z.Data()) != 6 {
		t.Fatalf("expected 6 elements, got %d", len(z.Data()))
	}
	for _, v := range z.Data() {
		if v != 0 {
			t.Fatalf("expected all zeros, got %v", z.Data())
		}
	}

	o, _ := Ones([]int{2, 2})
	for _, v := range o.Data() {
		if v != 1 {
			t.Fatalf("expected all ones, got %v", o.Data())
		}
	}

	for n := 1; n <= 4; n++ {
		eye, err := Eye(n)
		if err != nil {
			t.Fatalf("Eye(%d): %v", n, err)
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, _ := eye.At([]int{i, j})
				want := 0.0
				if i == j {
					want = 1
				}
				if v != want {
					t.Fatalf("eye(%d)[%d][%d] = %v, want %v", n, i, j, v, want)
				}
			}
		}
	}
}

func TestLinspace(t *testing.T) {
	l, err := Linspace(0, 10, 5)
	if err != nil {
		t.Fatalf("Linspace: %v", err)
	}
	want := []float64{0, 2.5, 5, 7.5, 10}
	for i, v := range want {
		got := l.Data()[i]
		if got != v {
			t.Errorf("linspace[%d] = %v, want %v", i, got, v)
		}
	}

	if _, err := Linspace(0, 1, 1); err == nil {
		t.Error("expected error for n < 2")
	}
}

func TestBroadcastShape(t *testing.T) {
	cases := []struct {
		a, b, want []int
		wantErr    bool
	}{
		{[]int{3, 1}, []int{1, 4}, []int{3, 4}, false},
		{[]int{5}, []int{3, 5}, []int{3, 5}, false},
		{[]int{2, 3}, []int{2, 3}, []int{2, 3}, false},
		{[]int{2, 3}, []int{4, 3}, nil, true},
	}
	for _, c := range cases {
		got, err := BroadcastShape(c.a, c.b)
		if c.wantErr {
			if err == nil {
				t.Errorf("BroadcastShape(%v, %v) expected error", c.a, c.b)
			}
			continue
		}
		if err != nil {
			t.Fatalf("BroadcastShape(%v, %v): %v", c.a, c.b, err)
		}
		if len(got) != len(c.want) {
			t.Fatalf("shape mismatch: got %v want %v", got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("shape mismatch: got %v want %v", got, c.want)
			}
		}
	}
}

func TestElementwiseCommutative(t *testing.T) {
	a := FromFlat1D([]float64{1, 2, 3})
	b := FromFlat1D([]float64{10, 20, 30})
	ab, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := Add(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if !ab.Equal(ba) {
		t.Errorf("a+b != b+a: %v vs %v", ab, ba)
	}
}

func TestTransposeInvolution(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	tr, err := m.Transpose()
	if err != nil {
		t.Fatal(err)
	}
	back, err := tr.Transpose()
	if err != nil {
		t.Fatal(err)
	}
	if !m.Equal(back) {
		t.Errorf("transpose(transpose(A)) != A")
	}
}

func TestMatMul(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := FromRows([][]float64{{5, 6}, {7, 8}})
	c, err := MatMul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{19, 22, 43, 50}
	for i, v := range want {
		if c.Data()[i] != v {
			t.Errorf("matmul[%d] = %v, want %v", i, c.Data()[i], v)
		}
	}
}

func TestIndexRangeSlicing(t *testing.T) {
	v := FromFlat1D([]float64{0, 1, 2, 3, 4})
	sub, err := v.Index([]Idx{RangeIdx(1, 3, true, true)})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2}
	for i, x := range want {
		if sub.Data()[i] != x {
			t.Errorf("slice[%d] = %v, want %v", i, sub.Data()[i], x)
		}
	}

	empty, err := v.Index([]Idx{RangeIdx(3, 1, true, true)})
	if err != nil {
		t.Fatal(err)
	}
	if len(empty.Data()) != 0 {
		t.Errorf("start > end should yield empty, got %v", empty.Data())
	}
}

func TestNegativeIndex(t *testing.T) {
	v := FromFlat1D([]float64{10, 20, 30})
	got, err := v.At([]int{-1})
	if err != nil {
		t.Fatal(err)
	}
	if got != 30 {
		t.Errorf("v[-1] = %v, want 30", got)
	}
}
