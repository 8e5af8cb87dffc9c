// Package testing provides test utilities for serhex.
package testing

import (
	"strings"
)

// Receipt is a test type with hex tags on scalar string fields.
type Receipt struct {
	ID    string `json:"id"`
	TxID  string `json:"tx_id" hex:"strictpfx" hex.size:"32"`
	Nonce string `json:"nonce" hex:"compactpfx" hex.size:"8"`
}

// Clone implements Cloner[Receipt].
func (r Receipt) Clone() Receipt { return r }

// Batch is a test type with hex tags on slice and map fields.
type Batch struct {
	Name    string            `json:"name"`
	Digests []string          `json:"digests" hex:"strict" hex.size:"4"`
	Index   map[string]string `json:"index" hex:"compact" hex.size:"4"`
}

// Clone implements Cloner[Batch].
func (b Batch) Clone() Batch {
	clone := Batch{Name: b.Name}
	if b.Digests != nil {
		clone.Digests = make([]string, len(b.Digests))
		copy(clone.Digests, b.Digests)
	}
	if b.Index != nil {
		clone.Index = make(map[string]string, len(b.Index))
		for k, v := range b.Index {
			clone.Index[k] = v
		}
	}
	return clone
}

// CanonicalTxID returns a canonical 32-byte strictpfx value.
func CanonicalTxID() string {
	return "0x" + strings.Repeat("ab", 32)
}

// MessyTxID returns the same value with mixed case and no prefix.
func MessyTxID() string {
	return strings.Repeat("Ab", 32)
}
