package archive

import (
	"fmt"

	"github.com/eddndev/achronyme/internal/tensor"
	"github.com/eddndev/achronyme/internal/value"
)

// SerializedValue is the flattened, MessagePack-friendly shape every
// value.Value is converted to/from. Only the fields relevant to Kind are
// populated; this mirrors spec.md §6's "serializable value types cover
// everything in §3.1 except UserDefined functions and Generators" list,
// with Builtins stored as their name alone.
type SerializedValue struct {
	Kind string `msgpack:"kind"`

	Number  float64 `msgpack:"number,omitempty"`
	Bool    bool    `msgpack:"bool,omitempty"`
	Str     string  `msgpack:"str,omitempty"`
	CplxRe  float64 `msgpack:"cplx_re,omitempty"`
	CplxIm  float64 `msgpack:"cplx_im,omitempty"`

	// Tensor / ComplexTensor.
	Shape    []int     `msgpack:"shape,omitempty"`
	RealData []float64 `msgpack:"real_data,omitempty"`
	ImagData []float64 `msgpack:"imag_data,omitempty"`

	// Vector.
	Items []SerializedValue `msgpack:"items,omitempty"`

	// Record.
	FieldOrder []string                   `msgpack:"field_order,omitempty"`
	FieldMut   map[string]bool            `msgpack:"field_mut,omitempty"`
	Fields     map[string]SerializedValue `msgpack:"fields,omitempty"`

	// Edge.
	EdgeFrom       *SerializedValue `msgpack:"edge_from,omitempty"`
	EdgeTo         *SerializedValue `msgpack:"edge_to,omitempty"`
	EdgeDirected   bool             `msgpack:"edge_directed,omitempty"`
	EdgeProperties *SerializedValue `msgpack:"edge_properties,omitempty"`

	// Error.
	ErrorKind    string `msgpack:"error_kind,omitempty"`
	ErrorMessage string `msgpack:"error_message,omitempty"`

	// Builtin, stored as its registered name only (spec.md §6).
	BuiltinName string `msgpack:"builtin_name,omitempty"`
}

// kind tags, matching value.Value.Type() where that string is already a
// stable identifier and introducing a parallel vocabulary otherwise.
const (
	kindNumber        = "Number"
	kindBool          = "Boolean"
	kindStr           = "String"
	kindNull          = "Null"
	kindComplex       = "Complex"
	kindTensor        = "Tensor"
	kindComplexTensor = "ComplexTensor"
	kindVector        = "Vector"
	kindRecord        = "Record"
	kindEdge          = "Edge"
	kindError         = "Error"
	kindBuiltin       = "Builtin"
)

// Serialize converts a runtime value into its archive representation.
// UserDefined functions and Generators have no serializable form (spec.md
// §6) and produce an error; MutableRef is transparently dereferenced
// since mutability is recorded at the Binding level, not the value level.
func Serialize(v value.Value) (SerializedValue, error) {
	if ref, ok := v.(*value.MutableRef); ok {
		return Serialize(ref.Get())
	}

	switch x := v.(type) {
	case value.Number:
		return SerializedValue{Kind: kindNumber, Number: x.Val}, nil
	case value.Bool:
		return SerializedValue{Kind: kindBool, Bool: x.Val}, nil
	case value.Str:
		return SerializedValue{Kind: kindStr, Str: x.Val}, nil
	case value.Null:
		return SerializedValue{Kind: kindNull}, nil
	case value.Complex:
		return SerializedValue{Kind: kindComplex, CplxRe: real(x.Val), CplxIm: imag(x.Val)}, nil
	case *value.RealTensor:
		return SerializedValue{Kind: kindTensor, Shape: x.Shape(), RealData: x.Data()}, nil
	case *value.ComplexTensor:
		re, im := splitComplex(x.Data())
		return SerializedValue{Kind: kindComplexTensor, Shape: x.Shape(), RealData: re, ImagData: im}, nil
	case *value.Vector:
		items := make([]SerializedValue, len(x.Items))
		for i, item := range x.Items {
			sv, err := Serialize(item)
			if err != nil {
				return SerializedValue{}, err
			}
			items[i] = sv
		}
		return SerializedValue{Kind: kindVector, Items: items}, nil
	case *value.Record:
		fields := make(map[string]SerializedValue, len(x.Names))
		mut := make(map[string]bool, len(x.Names))
		for _, name := range x.Names {
			f := x.Fields[name]
			sv, err := Serialize(f.Value)
			if err != nil {
				return SerializedValue{}, fmt.Errorf("field %q: %w", name, err)
			}
			fields[name] = sv
			mut[name] = f.IsMut
		}
		return SerializedValue{
			Kind:       kindRecord,
			FieldOrder: append([]string(nil), x.Names...),
			FieldMut:   mut,
			Fields:     fields,
		}, nil
	case *value.Edge:
		from, err := Serialize(x.From)
		if err != nil {
			return SerializedValue{}, err
		}
		to, err := Serialize(x.To)
		if err != nil {
			return SerializedValue{}, err
		}
		sv := SerializedValue{Kind: kindEdge, EdgeFrom: &from, EdgeTo: &to, EdgeDirected: x.Directed}
		if x.Properties != nil {
			props, err := Serialize(x.Properties)
			if err != nil {
				return SerializedValue{}, err
			}
			sv.EdgeProperties = &props
		}
		return sv, nil
	case *value.Error:
		return SerializedValue{Kind: kindError, ErrorKind: string(x.Kind), ErrorMessage: x.Message}, nil
	case *value.Builtin:
		return SerializedValue{Kind: kindBuiltin, BuiltinName: x.Name}, nil
	case *value.UserDefined:
		return SerializedValue{}, fmt.Errorf("archive: user-defined function %q is not serializable", x.Name)
	case *value.Generator:
		return SerializedValue{}, fmt.Errorf("archive: generators are not serializable")
	default:
		return SerializedValue{}, fmt.Errorf("archive: unsupported value type %T", v)
	}
}

// Deserialize rebuilds a runtime value from its archive representation.
// Builtins are resolved by name against lookup, the environment that
// already has the full builtin catalog registered (normally a freshly
// built global environment), since the archive stores only their name.
func Deserialize(sv SerializedValue, lookup *value.Environment) (value.Value, error) {
	switch sv.Kind {
	case kindNumber:
		return value.Number{Val: sv.Number}, nil
	case kindBool:
		return value.Bool{Val: sv.Bool}, nil
	case kindStr:
		return value.Str{Val: sv.Str}, nil
	case kindNull:
		return value.Null{}, nil
	case kindComplex:
		return value.Complex{Val: complex(sv.CplxRe, sv.CplxIm)}, nil
	case kindTensor:
		t, err := tensor.New(sv.RealData, sv.Shape)
		if err != nil {
			return nil, fmt.Errorf("archive: rebuilding tensor: %w", err)
		}
		return value.NewRealTensor(t), nil
	case kindComplexTensor:
		data := joinComplex(sv.RealData, sv.ImagData)
		t, err := tensor.NewComplex(data, sv.Shape)
		if err != nil {
			return nil, fmt.Errorf("archive: rebuilding complex tensor: %w", err)
		}
		return value.NewComplexTensor(t), nil
	case kindVector:
		items := make([]value.Value, len(sv.Items))
		for i, item := range sv.Items {
			v, err := Deserialize(item, lookup)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return &value.Vector{Items: items}, nil
	case kindRecord:
		r := value.NewRecord()
		for _, name := range sv.FieldOrder {
			v, err := Deserialize(sv.Fields[name], lookup)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			r.Set(name, v, sv.FieldMut[name])
		}
		return r, nil
	case kindEdge:
		from, err := Deserialize(*sv.EdgeFrom, lookup)
		if err != nil {
			return nil, err
		}
		to, err := Deserialize(*sv.EdgeTo, lookup)
		if err != nil {
			return nil, err
		}
		edge := &value.Edge{From: from, To: to, Directed: sv.EdgeDirected}
		if sv.EdgeProperties != nil {
			props, err := Deserialize(*sv.EdgeProperties, lookup)
			if err != nil {
				return nil, err
			}
			rec, ok := props.(*value.Record)
			if !ok {
				return nil, fmt.Errorf("archive: edge properties did not decode to a Record")
			}
			edge.Properties = rec
		}
		return edge, nil
	case kindError:
		return value.NewError(value.Kind(sv.ErrorKind), sv.ErrorMessage), nil
	case kindBuiltin:
		fn, ok := lookup.Get(sv.BuiltinName)
		if !ok {
			return nil, fmt.Errorf("archive: builtin %q no longer exists in this build", sv.BuiltinName)
		}
		return fn, nil
	default:
		return nil, fmt.Errorf("archive: unknown serialized kind %q", sv.Kind)
	}
}

func splitComplex(data []complex128) (re, im []float64) {
	re = make([]float64, len(data))
	im = make([]float64, len(data))
	for i, c := range data {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

func joinComplex(re, im []float64) []complex128 {
	out := make([]complex128, len(re))
	for i := range re {
		var part float64
		if i < len(im) {
			part = im[i]
		}
		out[i] = complex(re[i], part)
	}
	return out
}
