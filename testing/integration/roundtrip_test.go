package integration

import (
	"context"
	"testing"

	"github.com/zoobzio/serhex"
	"github.com/zoobzio/serhex/bson"
	"github.com/zoobzio/serhex/json"
	"github.com/zoobzio/serhex/msgpack"
	codectest "github.com/zoobzio/serhex/testing"
	"github.com/zoobzio/serhex/xml"
	"github.com/zoobzio/serhex/yaml"
)

func TestProcessor_RoundTrip_JSON(t *testing.T) {
	testRoundTrip(t, json.New())
}

func TestProcessor_RoundTrip_YAML(t *testing.T) {
	testRoundTrip(t, yaml.New())
}

func TestProcessor_RoundTrip_MessagePack(t *testing.T) {
	testRoundTrip(t, msgpack.New())
}

func TestProcessor_RoundTrip_BSON(t *testing.T) {
	testRoundTrip(t, bson.New())
}

// XMLReceipt for XML-specific tests
type XMLReceipt struct {
	ID    string `xml:"id"`
	TxID  string `xml:"tx_id" hex:"strictpfx" hex.size:"32"`
	Nonce string `xml:"nonce" hex:"compactpfx" hex.size:"8"`
}

func (r XMLReceipt) Clone() XMLReceipt { return r }

// XML requires different struct tags, test separately
func TestProcessor_RoundTrip_XML(t *testing.T) {
	xmlCodec := xml.New()
	proc, err := serhex.NewProcessor[XMLReceipt](xmlCodec)
	if err != nil {
		t.Fatalf("NewProcessor error: %v", err)
	}

	original := &XMLReceipt{
		ID:    "123",
		TxID:  codectest.MessyTxID(),
		Nonce: "0x00FF",
	}

	data, err := proc.Send(context.Background(), original)
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	restored, err := proc.Receive(context.Background(), data)
	if err != nil {
		t.Fatalf("Receive error: %v", err)
	}

	if restored.TxID != codectest.CanonicalTxID() {
		t.Errorf("TxID = %q, want %q", restored.TxID, codectest.CanonicalTxID())
	}
	if restored.Nonce != "0xff" {
		t.Errorf("Nonce = %q, want 0xff", restored.Nonce)
	}
}

func testRoundTrip(t *testing.T, c serhex.Codec) {
	t.Helper()

	proc, err := serhex.NewProcessor[codectest.Receipt](c)
	if err != nil {
		t.Fatalf("NewProcessor error: %v", err)
	}

	original := &codectest.Receipt{
		ID:    "123",
		TxID:  codectest.MessyTxID(),
		Nonce: "0x00FF",
	}

	// Send canonicalizes the tagged fields on the wire
	data, err := proc.Send(context.Background(), original)
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	// Receive canonicalizes again on the way in
	restored, err := proc.Receive(context.Background(), data)
	if err != nil {
		t.Fatalf("Receive error: %v", err)
	}

	if restored.TxID != codectest.CanonicalTxID() {
		t.Errorf("TxID = %q, want %q", restored.TxID, codectest.CanonicalTxID())
	}
	if restored.Nonce != "0xff" {
		t.Errorf("Nonce = %q, want 0xff", restored.Nonce)
	}

	// The original must be untouched
	if original.TxID != codectest.MessyTxID() {
		t.Error("Send mutated the original")
	}
}

func TestProcessor_CollectionFields_JSON(t *testing.T) {
	jsonCodec := json.New()
	proc, err := serhex.NewProcessor[codectest.Batch](jsonCodec)
	if err != nil {
		t.Fatalf("NewProcessor error: %v", err)
	}

	original := &codectest.Batch{
		Name:    "batch",
		Digests: []string{"0xAABBCCDD", "00010203"},
		Index:   map[string]string{"a": "0x00FF0000", "b": "0"},
	}

	data, err := proc.Send(context.Background(), original)
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}

	restored, err := proc.Receive(context.Background(), data)
	if err != nil {
		t.Fatalf("Receive error: %v", err)
	}

	if restored.Digests[0] != "aabbccdd" || restored.Digests[1] != "00010203" {
		t.Errorf("Digests = %v", restored.Digests)
	}
	if restored.Index["a"] != "ff0000" || restored.Index["b"] != "0" {
		t.Errorf("Index = %v", restored.Index)
	}
}

func TestRegistry_AcrossCodecs(t *testing.T) {
	serhex.Reset()
	t.Cleanup(serhex.Reset)

	a, err := serhex.Use[codectest.Receipt](json.New())
	if err != nil {
		t.Fatalf("Use error: %v", err)
	}
	b, err := serhex.Use[codectest.Receipt](json.New())
	if err != nil {
		t.Fatalf("Use error: %v", err)
	}
	if a != b {
		t.Error("Use should cache per type and content type")
	}

	c, err := serhex.Use[codectest.Receipt](yaml.New())
	if err != nil {
		t.Fatalf("Use error: %v", err)
	}
	if a == c {
		t.Error("different codecs should build distinct processors")
	}
}
