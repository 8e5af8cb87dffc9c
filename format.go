package serhex

// Policy selects a hex representation. The three axes are independent and
// immutable for the duration of an encode or decode call.
//
// Compact suppresses leading zero bytes (and the leading zero nibble of the
// first significant byte); the fixed-width alternative always emits two
// characters per byte. Prefix controls whether "0x" is emitted on encode;
// decoding strips an optional "0x" regardless of the flag. Upper selects
// A-F over a-f on encode; decoding accepts both cases either way.
type Policy struct {
	Compact bool
	Prefix  bool
	Upper   bool
}

// Format is the compile-time face of Policy. The eight marker types below
// implement it, letting the contract dispatch on a type parameter instead
// of a runtime value. Markers carry no state.
type Format interface {
	HexPolicy() Policy
}

// Strict is fixed-width, lowercase, no prefix.
type Strict struct{}

// HexPolicy implements Format.
func (Strict) HexPolicy() Policy { return Policy{} }

// StrictPfx is fixed-width, lowercase, "0x"-prefixed.
type StrictPfx struct{}

// HexPolicy implements Format.
func (StrictPfx) HexPolicy() Policy { return Policy{Prefix: true} }

// StrictCap is fixed-width, uppercase, no prefix.
type StrictCap struct{}

// HexPolicy implements Format.
func (StrictCap) HexPolicy() Policy { return Policy{Upper: true} }

// StrictCapPfx is fixed-width, uppercase, "0x"-prefixed.
type StrictCapPfx struct{}

// HexPolicy implements Format.
func (StrictCapPfx) HexPolicy() Policy { return Policy{Prefix: true, Upper: true} }

// Compact is variable-width, lowercase, no prefix.
type Compact struct{}

// HexPolicy implements Format.
func (Compact) HexPolicy() Policy { return Policy{Compact: true} }

// CompactPfx is variable-width, lowercase, "0x"-prefixed.
type CompactPfx struct{}

// HexPolicy implements Format.
func (CompactPfx) HexPolicy() Policy { return Policy{Compact: true, Prefix: true} }

// CompactCap is variable-width, uppercase, no prefix.
type CompactCap struct{}

// HexPolicy implements Format.
func (CompactCap) HexPolicy() Policy { return Policy{Compact: true, Upper: true} }

// CompactCapPfx is variable-width, uppercase, "0x"-prefixed.
type CompactCapPfx struct{}

// HexPolicy implements Format.
func (CompactCapPfx) HexPolicy() Policy {
	return Policy{Compact: true, Prefix: true, Upper: true}
}

// PolicyName identifies a policy in struct tags: `hex:"strictpfx"`.
type PolicyName string

const (
	// PolicyStrict is fixed-width lowercase.
	PolicyStrict PolicyName = "strict"

	// PolicyStrictPfx is fixed-width lowercase with "0x".
	PolicyStrictPfx PolicyName = "strictpfx"

	// PolicyStrictCap is fixed-width uppercase.
	PolicyStrictCap PolicyName = "strictcap"

	// PolicyStrictCapPfx is fixed-width uppercase with "0x".
	PolicyStrictCapPfx PolicyName = "strictcappfx"

	// PolicyCompact is variable-width lowercase.
	PolicyCompact PolicyName = "compact"

	// PolicyCompactPfx is variable-width lowercase with "0x".
	PolicyCompactPfx PolicyName = "compactpfx"

	// PolicyCompactCap is variable-width uppercase.
	PolicyCompactCap PolicyName = "compactcap"

	// PolicyCompactCapPfx is variable-width uppercase with "0x".
	PolicyCompactCapPfx PolicyName = "compactcappfx"
)

// namedPolicies maps tag values to policies for plan validation.
var namedPolicies = map[PolicyName]Policy{
	PolicyStrict:        {},
	PolicyStrictPfx:     {Prefix: true},
	PolicyStrictCap:     {Upper: true},
	PolicyStrictCapPfx:  {Prefix: true, Upper: true},
	PolicyCompact:       {Compact: true},
	PolicyCompactPfx:    {Compact: true, Prefix: true},
	PolicyCompactCap:    {Compact: true, Upper: true},
	PolicyCompactCapPfx: {Compact: true, Prefix: true, Upper: true},
}

// IsValidPolicy reports whether name is a recognized policy name.
func IsValidPolicy(name PolicyName) bool {
	_, ok := namedPolicies[name]
	return ok
}

// ParsePolicy resolves a tag value to its Policy.
func ParsePolicy(name PolicyName) (Policy, bool) {
	p, ok := namedPolicies[name]
	return p, ok
}
