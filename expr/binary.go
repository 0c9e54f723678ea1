package expr

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode writes shortest-form floats and integers. Record and union maps
// are written by sortedMap so that key order is by label, not by encoded
// length.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("expr: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("expr: CBOR decoder initialization failed: " + err.Error())
	}
}

// Tags of the binary encoding.
const (
	tagApp        = 0
	tagLambda     = 1
	tagPi         = 2
	tagOp         = 3
	tagList       = 4
	tagSome       = 5
	tagRecordType = 7
	tagRecord     = 8
	tagField      = 9
	tagUnionType  = 11
	tagIf         = 14
	tagNatural    = 15
	tagInteger    = 16
	tagText       = 18
	tagLet        = 25
	tagAnnot      = 26
	tagToMap      = 27
)

var ErrBinary = errors.New("invalid binary expression")

// EncodeBinary writes e in the language's standard CBOR encoding.
func EncodeBinary(e *Expr) ([]byte, error) {
	v, err := toCBOR(e)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(v)
}

func toCBOR(e *Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil expression", ErrBinary)
	}
	switch e.Kind {
	case ConstKind, BuiltinKind:
		return e.Name, nil
	case VarKind:
		if e.Name == "_" {
			return uint64(e.Index), nil
		}
		return []any{e.Name, uint64(e.Index)}, nil
	case LambdaKind, PiKind:
		tag := tagLambda
		if e.Kind == PiKind {
			tag = tagPi
		}
		a, err := toCBOR(e.Annot)
		if err != nil {
			return nil, err
		}
		b, err := toCBOR(e.Body)
		if err != nil {
			return nil, err
		}
		if e.Name == "_" {
			return []any{tag, a, b}, nil
		}
		return []any{tag, e.Name, a, b}, nil
	case AppKind:
		head, args := Spine(e)
		res := []any{tagApp}
		for _, x := range append([]*Expr{head}, args...) {
			v, err := toCBOR(x)
			if err != nil {
				return nil, err
			}
			res = append(res, v)
		}
		return res, nil
	case LetKind:
		var annot any
		if e.Annot != nil {
			a, err := toCBOR(e.Annot)
			if err != nil {
				return nil, err
			}
			annot = a
		}
		v, err := toCBOR(e.Values[0])
		if err != nil {
			return nil, err
		}
		b, err := toCBOR(e.Body)
		if err != nil {
			return nil, err
		}
		return []any{tagLet, e.Name, annot, v, b}, nil
	case AnnotKind:
		return taggedOf(tagAnnot, e.Values[0], e.Annot)
	case BoolKind:
		return e.Bool, nil
	case NaturalKind:
		return []any{tagNatural, e.Natural}, nil
	case IntegerKind:
		return []any{tagInteger, e.Integer}, nil
	case DoubleKind:
		return e.Double, nil
	case TextKind:
		res := []any{tagText}
		for _, c := range e.Chunks {
			v, err := toCBOR(c.Expr)
			if err != nil {
				return nil, err
			}
			res = append(res, c.Prefix, v)
		}
		return append(res, e.Text), nil
	case ListKind:
		if len(e.Values) == 0 {
			return taggedOf(tagList, e.Annot)
		}
		res := []any{tagList, nil}
		for _, x := range e.Values {
			v, err := toCBOR(x)
			if err != nil {
				return nil, err
			}
			res = append(res, v)
		}
		return res, nil
	case SomeKind:
		b, err := toCBOR(e.Body)
		if err != nil {
			return nil, err
		}
		return []any{tagSome, nil, b}, nil
	case RecordTypeKind, RecordKind, UnionTypeKind:
		tag := map[Kind]int{RecordTypeKind: tagRecordType, RecordKind: tagRecord, UnionTypeKind: tagUnionType}[e.Kind]
		m := sortedMap{keys: e.Fields, vals: make([]any, len(e.Values))}
		for i, x := range e.Values {
			if x == nil && e.Kind == UnionTypeKind {
				continue
			}
			v, err := toCBOR(x)
			if err != nil {
				return nil, err
			}
			m.vals[i] = v
		}
		return []any{tag, m}, nil
	case FieldKind:
		b, err := toCBOR(e.Body)
		if err != nil {
			return nil, err
		}
		return []any{tagField, b, e.Name}, nil
	case ToMapKind:
		if e.Annot == nil {
			return taggedOf(tagToMap, e.Body)
		}
		return taggedOf(tagToMap, e.Body, e.Annot)
	case OpKind:
		l, err := toCBOR(e.Values[0])
		if err != nil {
			return nil, err
		}
		r, err := toCBOR(e.Values[1])
		if err != nil {
			return nil, err
		}
		return []any{tagOp, int(e.Op), l, r}, nil
	case IfKind:
		return taggedOf(tagIf, e.Values...)
	}
	return nil, fmt.Errorf("%w: unsupported kind %s", ErrBinary, e.Kind)
}

func taggedOf(tag int, xs ...*Expr) (any, error) {
	res := []any{tag}
	for _, x := range xs {
		v, err := toCBOR(x)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// sortedMap is a CBOR map whose keys are written in the given order.
type sortedMap struct {
	keys []string
	vals []any
}

func (m sortedMap) MarshalCBOR() ([]byte, error) {
	buf := cborHead(5, uint64(len(m.keys)))
	for i, k := range m.keys {
		kb, err := encMode.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := encMode.Marshal(m.vals[i])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, vb...)
	}
	return buf, nil
}

func cborHead(major byte, n uint64) []byte {
	m := major << 5
	switch {
	case n < 24:
		return []byte{m | byte(n)}
	case n <= math.MaxUint8:
		return []byte{m | 24, byte(n)}
	case n <= math.MaxUint16:
		return []byte{m | 25, byte(n >> 8), byte(n)}
	case n <= math.MaxUint32:
		return []byte{m | 26, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	}
	return []byte{m | 27, byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
		byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
}

// DecodeBinary reads an expression written by EncodeBinary.
func DecodeBinary(data []byte) (*Expr, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBinary, err)
	}
	return fromCBOR(v)
}

func fromCBOR(v any) (*Expr, error) {
	switch x := v.(type) {
	case bool:
		return FromBool(x), nil
	case float64:
		return FromDouble(x), nil
	case float32:
		return FromDouble(float64(x)), nil
	case uint64:
		return Var("_", int(x)), nil
	case string:
		switch x {
		case TypeConst, KindConst, SortConst:
			return Const(x), nil
		}
		return Builtin(x), nil
	case []any:
		return fromArray(x)
	}
	return nil, fmt.Errorf("%w: unexpected %T", ErrBinary, v)
}

func fromArray(xs []any) (*Expr, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrBinary)
	}
	if name, ok := xs[0].(string); ok {
		if len(xs) != 2 {
			return nil, fmt.Errorf("%w: malformed variable %q", ErrBinary, name)
		}
		n, ok := xs[1].(uint64)
		if !ok {
			return nil, fmt.Errorf("%w: malformed variable %q", ErrBinary, name)
		}
		return Var(name, int(n)), nil
	}
	tag, ok := xs[0].(uint64)
	if !ok {
		return nil, fmt.Errorf("%w: bad tag %v", ErrBinary, xs[0])
	}
	d := &arrayDecoder{xs: xs}
	switch tag {
	case tagApp:
		f := d.expr(1)
		args := make([]*Expr, 0, len(xs)-2)
		for i := 2; i < len(xs); i++ {
			args = append(args, d.expr(i))
		}
		return d.done(App(f, args...))
	case tagLambda, tagPi:
		var res *Expr
		switch len(xs) {
		case 3:
			res = &Expr{Name: "_", Annot: d.expr(1), Body: d.expr(2)}
		case 4:
			res = &Expr{Name: d.str(1), Annot: d.expr(2), Body: d.expr(3)}
		default:
			return nil, fmt.Errorf("%w: malformed binder", ErrBinary)
		}
		res.Kind = LambdaKind
		if tag == tagPi {
			res.Kind = PiKind
		}
		return d.done(res)
	case tagOp:
		op, ok := xs[1].(uint64)
		if !ok || op > uint64(ListAppend) {
			return nil, fmt.Errorf("%w: unknown operator %v", ErrBinary, xs[1])
		}
		return d.done(Operator(Op(op), d.expr(2), d.expr(3)))
	case tagList:
		if len(xs) == 2 {
			return d.done(FromList(d.expr(1)))
		}
		items := make([]*Expr, 0, len(xs)-2)
		for i := 2; i < len(xs); i++ {
			items = append(items, d.expr(i))
		}
		return d.done(FromList(nil, items...))
	case tagSome:
		return d.done(FromSome(d.expr(2)))
	case tagRecordType, tagRecord, tagUnionType:
		m, ok := xs[1].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected map, got %T", ErrBinary, xs[1])
		}
		fields := make(map[string]*Expr, len(m))
		for k, v := range m {
			if v == nil && tag == tagUnionType {
				fields[k] = nil
				continue
			}
			e, err := fromCBOR(v)
			if err != nil {
				return nil, err
			}
			fields[k] = e
		}
		switch tag {
		case tagRecordType:
			return RecordType(fields), nil
		case tagRecord:
			return FromRecord(fields), nil
		}
		return UnionType(fields), nil
	case tagField:
		return d.done(Select(d.expr(1), d.str(2)))
	case tagIf:
		return d.done(IfThenElse(d.expr(1), d.expr(2), d.expr(3)))
	case tagNatural:
		n, ok := xs[1].(uint64)
		if !ok {
			return nil, fmt.Errorf("%w: bad natural %v", ErrBinary, xs[1])
		}
		return FromNatural(n), nil
	case tagInteger:
		switch n := xs[1].(type) {
		case uint64:
			if n > math.MaxInt64 {
				return nil, fmt.Errorf("%w: integer %d out of range", ErrBinary, n)
			}
			return FromInteger(int64(n)), nil
		case int64:
			return FromInteger(n), nil
		}
		return nil, fmt.Errorf("%w: bad integer %v", ErrBinary, xs[1])
	case tagText:
		if len(xs)%2 != 0 {
			return nil, fmt.Errorf("%w: malformed text", ErrBinary)
		}
		var chunks []Chunk
		for i := 1; i+1 < len(xs); i += 2 {
			chunks = append(chunks, Chunk{Prefix: d.str(i), Expr: d.expr(i + 1)})
		}
		return d.done(FromChunks(chunks, d.str(len(xs)-1)))
	case tagLet:
		if len(xs) != 5 {
			return nil, fmt.Errorf("%w: malformed let", ErrBinary)
		}
		var annot *Expr
		if xs[2] != nil {
			annot = d.expr(2)
		}
		return d.done(Let(d.str(1), annot, d.expr(3), d.expr(4)))
	case tagAnnot:
		return d.done(Annotate(d.expr(1), d.expr(2)))
	case tagToMap:
		var annot *Expr
		if len(xs) == 3 {
			annot = d.expr(2)
		}
		return d.done(ToMapOf(d.expr(1), annot))
	}
	return nil, fmt.Errorf("%w: unsupported tag %d", ErrBinary, tag)
}

// arrayDecoder reads positional elements of a tagged array, keeping the
// first error.
type arrayDecoder struct {
	xs  []any
	err error
}

func (d *arrayDecoder) expr(i int) *Expr {
	if d.err != nil {
		return nil
	}
	if i >= len(d.xs) {
		d.err = fmt.Errorf("%w: missing element %d", ErrBinary, i)
		return nil
	}
	e, err := fromCBOR(d.xs[i])
	if err != nil {
		d.err = err
	}
	return e
}

func (d *arrayDecoder) str(i int) string {
	if d.err != nil {
		return ""
	}
	if i >= len(d.xs) {
		d.err = fmt.Errorf("%w: missing element %d", ErrBinary, i)
		return ""
	}
	s, ok := d.xs[i].(string)
	if !ok {
		d.err = fmt.Errorf("%w: expected text at %d, got %T", ErrBinary, i, d.xs[i])
	}
	return s
}

func (d *arrayDecoder) done(e *Expr) (*Expr, error) {
	if d.err != nil {
		return nil, d.err
	}
	return e, nil
}
