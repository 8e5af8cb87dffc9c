package serhex

// Codec provides content-type aware marshaling. Implementations for JSON,
// YAML, MessagePack, BSON, and XML live in the identically named
// subpackages.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Cloner allows types to provide deep copy logic.
// Implementing this interface is required for use with Processor.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. For types containing pointers, slices,
// or maps, ensure these are also copied to achieve true isolation.
//
// For simple value types with no pointers, slices, or maps, Clone can simply
// return the receiver value:
//
//	func (r Receipt) Clone() Receipt { return r }
//
// For types with reference fields, ensure deep copying:
//
//	func (b Batch) Clone() Batch {
//	    ids := make([]string, len(b.IDs))
//	    copy(ids, b.IDs)
//	    return Batch{Name: b.Name, IDs: ids}
//	}
type Cloner[T any] interface {
	Clone() T
}
