package id_test

import (
	"encoding/json"
	"testing"

	"github.com/foc-fun/foc-engine-go/id"
)

func TestNew_GeneratesPrefixedID(t *testing.T) {
	batchID := id.NewBatchID()
	if batchID.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if batchID.Prefix() != id.PrefixBatch {
		t.Fatalf("expected prefix %q, got %q", id.PrefixBatch, batchID.Prefix())
	}
	if batchID.String() == "" {
		t.Fatal("expected non-empty string form")
	}
}

func TestNew_Unique(t *testing.T) {
	a := id.NewNotificationID()
	b := id.NewNotificationID()
	if a.String() == b.String() {
		t.Fatalf("expected unique IDs, got %q twice", a)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	orig := id.NewSubscriptionID()

	parsed, err := id.ParseSubscriptionID(orig.String())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Fatalf("round trip mismatch: %q != %q", parsed, orig)
	}
}

func TestParse_RejectsEmpty(t *testing.T) {
	if _, err := id.Parse(""); err == nil {
		t.Fatal("expected error for empty string")
	}
}

func TestParseWithPrefix_RejectsWrongPrefix(t *testing.T) {
	batchID := id.NewBatchID()
	if _, err := id.ParseNotificationID(batchID.String()); err == nil {
		t.Fatal("expected prefix mismatch error")
	}
}

func TestID_JSONRoundTrip(t *testing.T) {
	orig := id.NewBatchID()

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded id.ID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.String() != orig.String() {
		t.Fatalf("round trip mismatch: %q != %q", decoded, orig)
	}
}

func TestID_NilMarshalsEmpty(t *testing.T) {
	data, err := json.Marshal(id.Nil)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `""` {
		t.Fatalf("expected empty string JSON, got %s", data)
	}

	var decoded id.ID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.IsNil() {
		t.Fatal("expected Nil after decoding empty string")
	}
}
