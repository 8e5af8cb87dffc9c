// Package serhex converts fixed-size byte containers to and from textual
// hexadecimal, with configurable formatting, and integrates the result with
// Go's marshaling interfaces and tag-driven field processing.
//
// # Representations
//
// Two representations are supported, each with optional "0x" prefixing and
// optional uppercase digits:
//
//   - strict: fixed width, exactly two characters per byte
//   - compact: variable width, leading zero bytes suppressed; an all-zero
//     value encodes as the single digit "0"
//
// Encoding honors the policy exactly. Decoding is deliberately lenient about
// the prefix (an optional "0x" is stripped whether or not the policy asks
// for one) and about case (both A-F and a-f are accepted regardless of the
// Upper flag). Downstream consumers rely on that asymmetry.
//
// # Contract
//
// The eight Format marker types (Strict through CompactCapPfx) parameterize
// the generic entry points:
//
//	s, err := serhex.EncodeString[serhex.CompactPfx]([]byte{0x00, 0xff})
//	// s == "0xff"
//
//	var buf [4]byte
//	err = serhex.DecodeString[serhex.Strict](buf[:], "00010203")
//
// The Hex container binds an array or unsigned integer to a policy so that
// encoding/json and friends pick the representation up automatically:
//
//	type Block struct {
//	    Digest serhex.Hex[[32]byte, serhex.StrictPfx] `json:"digest"`
//	    Nonce  serhex.Hex[uint64, serhex.CompactPfx]  `json:"nonce"`
//	}
//
// # Processor
//
// For string-typed fields that carry hex text, a Processor canonicalizes
// annotated fields at marshal boundaries:
//
//	type Receipt struct {
//	    TxID string `json:"tx_id" hex:"strictpfx" hex.size:"32"`
//	}
//
//	func (r Receipt) Clone() Receipt { return r }
//
//	proc, _ := serhex.NewProcessor[Receipt](json.New())
//	rcpt, _ := proc.Receive(ctx, body) // mixed case / bare input accepted
//	out, _ := proc.Send(ctx, rcpt)     // canonical "0x..." on the wire
package serhex

import "io"

// hexPrefix is the optional two-character marker on hex text.
var hexPrefix = []byte("0x")

// stripPrefix removes a leading "0x" if present. Decoding tolerates the
// prefix regardless of policy; only encoding is strict about it.
func stripPrefix(src []byte) []byte {
	if len(src) >= 2 && src[0] == hexPrefix[0] && src[1] == hexPrefix[1] {
		return src[2:]
	}
	return src
}

// AppendEncode appends the hex representation of src under p to dst and
// returns the extended slice. Output length is deterministic: strict yields
// 2*len(src) characters, compact yields between 1 and 2*len(src), plus two
// for the prefix when configured.
func AppendEncode(dst, src []byte, p Policy) ([]byte, error) {
	if p.Prefix {
		dst = append(dst, hexPrefix...)
	}
	if !p.Compact {
		return appendBytes(dst, src, p.Upper)
	}

	// Find the first significant byte.
	idx := 0
	for idx < len(src) && src[idx] == 0 {
		idx++
	}
	if idx == len(src) {
		// All zero: a single '0' digit, never the empty string.
		return append(dst, '0'), nil
	}
	if v := src[idx]; v < 0x10 {
		// High nibble of the first significant byte is zero; emit only
		// its low nibble.
		d, err := FormatNibble(v, p.Upper)
		if err != nil {
			return dst, err
		}
		dst = append(dst, d)
		idx++
	}
	return appendBytes(dst, src[idx:], p.Upper)
}

// appendBytes appends the two-character hex pair of every byte in src.
func appendBytes(dst, src []byte, upper bool) ([]byte, error) {
	for _, b := range src {
		hi, lo, err := FormatByte(b, upper)
		if err != nil {
			return dst, err
		}
		dst = append(dst, hi, lo)
	}
	return dst, nil
}

// Decode parses hex text in src into dst under p.
//
// Strict requires the body (after an optional prefix) to be exactly
// 2*len(dst) characters. Compact accepts 1 to 2*len(dst) characters and
// zero-fills the leading bytes; a body of odd length decodes its first
// character as the low nibble of the affected byte, the implicit high
// nibble being zero.
//
// On error dst may be partially written and must be discarded; there is no
// rollback.
func Decode(dst, src []byte, p Policy) error {
	hex := stripPrefix(src)
	if !p.Compact {
		return DecodeBuffer(dst, hex)
	}

	if len(hex) == 0 || len(hex) > len(dst)*2 {
		return newSizeError(len(hex))
	}
	body := len(dst) - len(hex)/2
	head := len(hex) % 2
	for i := range dst[:body] {
		dst[i] = 0
	}
	if err := DecodeBuffer(dst[body:], hex[head:]); err != nil {
		return err
	}
	if head > 0 {
		v, err := ParsePair('0', hex[0])
		if err != nil {
			return err
		}
		dst[body-head] = v
	}
	return nil
}

// EncodeTo writes the hex representation of src under p to w. No
// intermediate string is materialized beyond a stack buffer; values up to
// 64 bytes encode without heap allocation. Sink failures surface as
// IOError.
func EncodeTo(w io.Writer, src []byte, p Policy) error {
	var stack [130]byte
	out, err := AppendEncode(stack[:0], src, p)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return newIOError(err)
	}
	return nil
}

// EncodeRaw is EncodeTo dispatched on a Format marker.
func EncodeRaw[F Format](w io.Writer, src []byte) error {
	var f F
	return EncodeTo(w, src, f.HexPolicy())
}

// EncodeString returns the hex representation of src under F.
func EncodeString[F Format](src []byte) (string, error) {
	var f F
	p := f.HexPolicy()
	out, err := AppendEncode(make([]byte, 0, len(src)*2+2), src, p)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeRaw is Decode dispatched on a Format marker.
func DecodeRaw[F Format](dst, src []byte) error {
	var f F
	return Decode(dst, src, f.HexPolicy())
}

// DecodeString parses hex text into dst under F.
func DecodeString[F Format](dst []byte, src string) error {
	return DecodeRaw[F](dst, []byte(src))
}
