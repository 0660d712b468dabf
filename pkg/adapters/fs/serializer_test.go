package fs_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/corkboard/pkg/adapters/fs"
	"github.com/aretw0/corkboard/pkg/core"
)

func TestJSONLayout(t *testing.T) {
	s := &fs.JSONSerializer{}
	data, err := s.Encode([]core.Note{{
		ID: "n1", X: 1, Y: 2, Content: "hi", Color: core.ColorBlue, Stack: 3, W: 220, H: 220,
	}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("expected an array payload: %v", err)
	}
	if len(raw) != 1 {
		t.Fatalf("expected one record, got %d", len(raw))
	}

	// The on-disk field names are the stable external contract.
	for _, key := range []string{"id", "x", "y", "content", "color", "stackOrder", "width", "height"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("missing field %q in persisted record", key)
		}
	}
	if len(raw[0]) != 8 {
		t.Errorf("expected exactly 8 fields, got %d", len(raw[0]))
	}
}

func TestEncodeNilSnapshot(t *testing.T) {
	for name, s := range map[string]fs.Serializer{"json": &fs.JSONSerializer{}, "yaml": &fs.YAMLSerializer{}} {
		t.Run(name, func(t *testing.T) {
			data, err := s.Encode(nil)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			notes, err := s.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if len(notes) != 0 {
				t.Errorf("expected empty snapshot, got %d notes", len(notes))
			}
		})
	}
}

func TestYAMLDecodeRejectsScalar(t *testing.T) {
	s := &fs.YAMLSerializer{}
	if _, err := s.Decode([]byte("just a string")); err == nil {
		t.Error("expected an error for a non-sequence payload")
	}
}
