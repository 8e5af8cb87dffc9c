package serhex

import (
	"io"
	"reflect"
)

// Hex binds a fixed-size container to a format policy. A may be any byte
// array type of length 1 or more, or one of the unsigned integer kinds
// uint8, uint16, uint32, uint64 (viewed as big-endian bytes). One generic
// definition serves every length; nothing is instantiated per size.
//
// Hex implements encoding.TextMarshaler and encoding.TextUnmarshaler, so
// encoding/json and other TextMarshaler-aware frameworks serialize the
// bound value as hex text without further glue:
//
//	type Block struct {
//	    Digest serhex.Hex[[32]byte, serhex.StrictPfx] `json:"digest"`
//	    Nonce  serhex.Hex[uint64, serhex.CompactPfx]  `json:"nonce"`
//	}
//
// The zero value is usable and encodes the all-zero container.
type Hex[A any, F Format] struct {
	Raw A
}

// New wraps raw in a Hex bound to format F. The container type is inferred
// from the argument:
//
//	digest := serhex.New[serhex.StrictPfx]([32]byte{...})
func New[F Format, A any](raw A) Hex[A, F] {
	return Hex[A, F]{Raw: raw}
}

// layout returns the byte width of a container type, rejecting anything the
// codec cannot bind. Zero-length arrays are refused: their compact
// representation would be ambiguous.
func layout(rt reflect.Type) (int, error) {
	switch rt.Kind() {
	case reflect.Array:
		if rt.Elem().Kind() != reflect.Uint8 || rt.Len() == 0 {
			return 0, &TypeError{Type: rt.String()}
		}
		return rt.Len(), nil
	case reflect.Uint8:
		return 1, nil
	case reflect.Uint16:
		return 2, nil
	case reflect.Uint32:
		return 4, nil
	case reflect.Uint64:
		return 8, nil
	default:
		return 0, &TypeError{Type: rt.String()}
	}
}

// Size returns the container's width in bytes.
func (h Hex[A, F]) Size() (int, error) {
	return layout(reflect.TypeFor[A]())
}

// bytes returns a byte view of the container. For arrays the view aliases
// rv's backing storage; for integers it is a fresh big-endian copy.
func byteView(rv reflect.Value, n int) []byte {
	if rv.Kind() == reflect.Array {
		return rv.Slice(0, n).Bytes()
	}
	buf := make([]byte, n)
	v := rv.Uint()
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(v)
		v >>= 8
	}
	return buf
}

// MarshalText implements encoding.TextMarshaler, encoding the container
// under format F.
func (h Hex[A, F]) MarshalText() ([]byte, error) {
	rv := reflect.ValueOf(&h.Raw).Elem()
	n, err := layout(rv.Type())
	if err != nil {
		return nil, err
	}
	var f F
	return AppendEncode(make([]byte, 0, n*2+2), byteView(rv, n), f.HexPolicy())
}

// UnmarshalText implements encoding.TextUnmarshaler, decoding hex text
// under format F. On error the container must be treated as invalid.
func (h *Hex[A, F]) UnmarshalText(text []byte) error {
	rv := reflect.ValueOf(&h.Raw).Elem()
	n, err := layout(rv.Type())
	if err != nil {
		return err
	}
	var f F
	p := f.HexPolicy()
	if rv.Kind() == reflect.Array {
		return Decode(rv.Slice(0, n).Bytes(), text, p)
	}
	buf := make([]byte, n)
	if err := Decode(buf, text, p); err != nil {
		return err
	}
	var v uint64
	for _, b := range buf {
		v = v<<8 | uint64(b)
	}
	rv.SetUint(v)
	return nil
}

// EncodeTo writes the container's hex representation to w without
// materializing a string.
func (h Hex[A, F]) EncodeTo(w io.Writer) error {
	rv := reflect.ValueOf(&h.Raw).Elem()
	n, err := layout(rv.Type())
	if err != nil {
		return err
	}
	var f F
	return EncodeTo(w, byteView(rv, n), f.HexPolicy())
}

// String returns the hex representation, or the empty string if the
// container type cannot be bound.
func (h Hex[A, F]) String() string {
	out, err := h.MarshalText()
	if err != nil {
		return ""
	}
	return string(out)
}
