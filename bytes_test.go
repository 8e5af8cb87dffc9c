package serhex

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestHex_MarshalText(t *testing.T) {
	h := New[StrictPfx]([4]byte{0x00, 0x01, 0x02, 0x03})
	text, err := h.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}
	if string(text) != "0x00010203" {
		t.Errorf("MarshalText = %q, want 0x00010203", text)
	}
}

func TestHex_UnmarshalText(t *testing.T) {
	var h Hex[[4]byte, Strict]
	if err := h.UnmarshalText([]byte("DeadBeef")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if h.Raw != [4]byte{0xde, 0xad, 0xbe, 0xef} {
		t.Errorf("Raw = %x", h.Raw)
	}
}

func TestHex_RoundTrip_NamedArray(t *testing.T) {
	type digest [20]byte

	h := New[CompactCapPfx](digest{19: 0x2a})
	text, err := h.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}
	if string(text) != "0x2A" {
		t.Errorf("MarshalText = %q, want 0x2A", text)
	}

	var back Hex[digest, CompactCapPfx]
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if back.Raw != h.Raw {
		t.Errorf("round trip mismatch: %x != %x", back.Raw, h.Raw)
	}
}

func TestHex_Uint64Compact(t *testing.T) {
	h := New[CompactPfx](uint64(0xff))
	text, err := h.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}
	if string(text) != "0xff" {
		t.Errorf("MarshalText = %q, want 0xff", text)
	}

	var back Hex[uint64, CompactPfx]
	if err := back.UnmarshalText([]byte("0x1234")); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if back.Raw != 0x1234 {
		t.Errorf("Raw = %#x, want 0x1234", back.Raw)
	}
}

func TestHex_UintWidths(t *testing.T) {
	tests := []struct {
		name string
		text string
		get  func(t *testing.T) string
	}{
		{"uint8", "0x07", func(t *testing.T) string {
			t.Helper()
			return New[StrictPfx](uint8(7)).String()
		}},
		{"uint16", "0x0007", func(t *testing.T) string {
			t.Helper()
			return New[StrictPfx](uint16(7)).String()
		}},
		{"uint32", "0x00000007", func(t *testing.T) string {
			t.Helper()
			return New[StrictPfx](uint32(7)).String()
		}},
		{"uint64", "0x0000000000000007", func(t *testing.T) string {
			t.Helper()
			return New[StrictPfx](uint64(7)).String()
		}},
	}
	for _, tt := range tests {
		if got := tt.get(t); got != tt.text {
			t.Errorf("%s String() = %q, want %q", tt.name, got, tt.text)
		}
	}
}

func TestHex_Size(t *testing.T) {
	h := Hex[[32]byte, Strict]{}
	n, err := h.Size()
	if err != nil {
		t.Fatalf("Size error: %v", err)
	}
	if n != 32 {
		t.Errorf("Size = %d, want 32", n)
	}
}

func TestHex_UnsupportedTypes(t *testing.T) {
	var zero Hex[[0]byte, Compact]
	if _, err := zero.MarshalText(); !errors.Is(err, ErrBadType) {
		t.Errorf("[0]byte MarshalText error = %v, want ErrBadType", err)
	}

	var ints Hex[[4]int, Strict]
	if _, err := ints.MarshalText(); !errors.Is(err, ErrBadType) {
		t.Errorf("[4]int MarshalText error = %v, want ErrBadType", err)
	}

	var str Hex[string, Strict]
	if err := str.UnmarshalText([]byte("ff")); !errors.Is(err, ErrBadType) {
		t.Errorf("string UnmarshalText error = %v, want ErrBadType", err)
	}
}

func TestHex_DecodeErrors(t *testing.T) {
	var h Hex[[4]byte, Strict]
	if err := h.UnmarshalText([]byte("0xfaaffaa")); !errors.Is(err, ErrBadSize) {
		t.Errorf("7-char strict error = %v, want ErrBadSize", err)
	}

	var c Hex[[4]byte, Compact]
	if err := c.UnmarshalText([]byte("0x")); !errors.Is(err, ErrBadSize) {
		t.Errorf("empty compact error = %v, want ErrBadSize", err)
	}
	if err := c.UnmarshalText([]byte("zz")); !errors.Is(err, ErrBadChar) {
		t.Errorf("bad char error = %v, want ErrBadChar", err)
	}
}

func TestHex_EncodeTo(t *testing.T) {
	var buf bytes.Buffer
	h := New[StrictCapPfx]([2]byte{0xab, 0xcd})
	if err := h.EncodeTo(&buf); err != nil {
		t.Fatalf("EncodeTo error: %v", err)
	}
	if buf.String() != "0xABCD" {
		t.Errorf("EncodeTo = %q, want 0xABCD", buf.String())
	}
}

// block mirrors a structure serialized with one strict and one compact
// field, the shape the codec is typically embedded in.
type block struct {
	Bar Hex[[32]byte, StrictPfx] `json:"bar"`
	Bin Hex[uint64, CompactPfx]  `json:"bin"`
}

func TestHex_JSONSerialize(t *testing.T) {
	b := block{Bin: New[CompactPfx](uint64(0xff))}
	data, err := json.Marshal(&b)
	if err != nil {
		t.Fatalf("json.Marshal error: %v", err)
	}
	want := `{"bar":"0x` + strings.Repeat("0", 64) + `","bin":"0xff"}`
	if string(data) != want {
		t.Errorf("json.Marshal = %s, want %s", data, want)
	}
}

func TestHex_JSONDeserialize(t *testing.T) {
	in := `{"bar":"0x` + strings.Repeat("aa", 32) + `","bin":"0x1234"}`
	var b block
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatalf("json.Unmarshal error: %v", err)
	}
	var want [32]byte
	for i := range want {
		want[i] = 0xaa
	}
	if b.Bar.Raw != want {
		t.Errorf("Bar.Raw = %x", b.Bar.Raw)
	}
	if b.Bin.Raw != 0x1234 {
		t.Errorf("Bin.Raw = %#x, want 0x1234", b.Bin.Raw)
	}
}

func TestHex_JSONRoundTrip_MixedCaseInput(t *testing.T) {
	// Deserialization accepts mixed case and bare bodies regardless of
	// the field policy.
	in := `{"bar":"` + strings.Repeat("AB", 32) + `","bin":"FF"}`
	var b block
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatalf("json.Unmarshal error: %v", err)
	}
	if b.Bin.Raw != 0xff {
		t.Errorf("Bin.Raw = %#x, want 0xff", b.Bin.Raw)
	}
	if b.Bar.Raw[0] != 0xab {
		t.Errorf("Bar.Raw[0] = %#x, want 0xab", b.Bar.Raw[0])
	}
}

func TestHex_String(t *testing.T) {
	h := New[Compact]([3]byte{0x00, 0x01, 0x23})
	if h.String() != "123" {
		t.Errorf("String = %q, want 123", h.String())
	}

	var bad Hex[[0]byte, Strict]
	if bad.String() != "" {
		t.Errorf("unbindable String = %q, want empty", bad.String())
	}
}
