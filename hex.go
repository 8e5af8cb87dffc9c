package serhex

import "io"

// EncodeBuffer converts src into hex characters, writing into dst. dst must
// be exactly twice the length of src or a SizeError is returned.
func EncodeBuffer(dst, src []byte, upper bool) error {
	if len(dst) != len(src)*2 {
		return newSizeError(len(dst))
	}
	for i, b := range src {
		hi, lo, err := FormatByte(b, upper)
		if err != nil {
			return err
		}
		dst[i*2] = hi
		dst[i*2+1] = lo
	}
	return nil
}

// DecodeBuffer parses src as hex characters, writing the decoded bytes into
// dst. src must be exactly twice the length of dst or a SizeError is
// returned. The first bad character aborts, leaving dst partially written;
// callers must discard dst on error.
func DecodeBuffer(dst, src []byte) error {
	if len(src) != len(dst)*2 {
		return newSizeError(len(src))
	}
	for i := range dst {
		b, err := ParsePair(src[i*2], src[i*2+1])
		if err != nil {
			return err
		}
		dst[i] = b
	}
	return nil
}

// WriteHex converts src into hex characters and writes them incrementally to
// w. Sink failures are wrapped in an IOError.
func WriteHex(w io.Writer, src []byte, upper bool) error {
	var pair [2]byte
	for _, b := range src {
		hi, lo, err := FormatByte(b, upper)
		if err != nil {
			return err
		}
		pair[0], pair[1] = hi, lo
		if _, err := w.Write(pair[:]); err != nil {
			return newIOError(err)
		}
	}
	return nil
}
