package serhex

// ParseNibble converts a single hex digit character to its 4-bit value.
// Both cases are accepted. Any other character yields a CharError.
func ParseNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, newCharError(c)
	}
}

// FormatNibble converts a 4-bit value to its hex digit character, uppercase
// if upper is set. Values above 15 yield a ByteError; with correct callers
// that path is unreachable.
func FormatNibble(v byte, upper bool) (byte, error) {
	switch {
	case v <= 9:
		return v + '0', nil
	case v <= 15:
		if upper {
			return v - 10 + 'A', nil
		}
		return v - 10 + 'a', nil
	default:
		return 0, newByteError(v)
	}
}

// ParsePair converts a pair of hex digit characters to the byte they
// represent, high nibble first. The first bad character aborts.
func ParsePair(hi, lo byte) (byte, error) {
	h, err := ParseNibble(hi)
	if err != nil {
		return 0, err
	}
	l, err := ParseNibble(lo)
	if err != nil {
		return 0, err
	}
	return h<<4 | l, nil
}

// FormatByte converts a byte to its two hex digit characters, high nibble
// first.
func FormatByte(b byte, upper bool) (hi, lo byte, err error) {
	hi, err = FormatNibble(b>>4, upper)
	if err != nil {
		return 0, 0, err
	}
	lo, err = FormatNibble(b&0x0f, upper)
	if err != nil {
		return 0, 0, err
	}
	return hi, lo, nil
}
