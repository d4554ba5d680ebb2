package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRegistrationMarshalsFlat(t *testing.T) {
	reg := Registration{
		ID:               1,
		RegistrationDate: "2026-08-29T10:00:00Z",
		Fields:           map[string]string{"username": "alice", "team": "red"},
	}

	data, err := json.Marshal(reg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if flat["id"] != float64(1) {
		t.Fatalf("expected flat id, got %v", flat["id"])
	}
	if flat["username"] != "alice" || flat["team"] != "red" {
		t.Fatalf("expected fields as siblings of id, got %v", flat)
	}
	if flat["registrationDate"] != "2026-08-29T10:00:00Z" {
		t.Fatalf("expected flat registrationDate, got %v", flat["registrationDate"])
	}
	if _, nested := flat["fields"]; nested {
		t.Fatalf("fields must not be nested: %v", flat)
	}
}

func TestRegistrationRoundTrip(t *testing.T) {
	orig := Registration{
		ID:               7,
		RegistrationDate: "2026-08-29T10:00:00Z",
		Fields:           map[string]string{"username": "bob", "email": "b@x.com"},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got Registration
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(orig, got) {
		t.Fatalf("round trip mismatch: %+v vs %+v", orig, got)
	}
}

func TestCollectionFieldKeysUnion(t *testing.T) {
	c := Collection{
		{ID: 1, Fields: map[string]string{"username": "alice"}},
		{ID: 2, Fields: map[string]string{"username": "bob", "shirt": "XL"}},
	}

	got := c.FieldKeys()
	want := []string{"shirt", "username"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("field keys: got %v want %v", got, want)
	}
}

func TestFieldMissingKey(t *testing.T) {
	reg := Registration{Fields: map[string]string{"username": "alice"}}
	if reg.Field("email") != "" {
		t.Fatalf("expected empty string for missing key")
	}
}
