package serhex

// Normalizable bypasses reflection-based hex canonicalization. When a type
// implements it, the Processor calls NormalizeHex instead of walking the
// field plans.
//
// This provides two benefits:
// 1. Performance: Avoid reflection overhead for hot paths
// 2. Custom logic: Implement canonicalization that can't be expressed via tags
//
// The interface is designed for codegen: a code generator can implement the
// method from the same struct tags, providing compile-time safety and
// optimal performance.
type Normalizable interface {
	// NormalizeHex rewrites the receiver's hex-carrying fields into their
	// canonical representation. On ingress it is called on freshly
	// unmarshaled data; on egress the receiver is a clone, so mutations
	// are safe.
	NormalizeHex() error
}
