package fs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/corkboard/pkg/core"
)

// Serializer defines how a board snapshot is encoded on disk.
type Serializer interface {
	// Encode converts the snapshot to bytes.
	Encode(notes []core.Note) ([]byte, error)
	// Decode reads a snapshot back. A payload that is not a note array must
	// fail decoding; callers treat that as an absent record, never as fatal.
	Decode(data []byte) ([]core.Note, error)
}

// DefaultSerializers returns the standard set of serializers, keyed by file
// extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": &JSONSerializer{},
		".yaml": &YAMLSerializer{},
		".yml":  &YAMLSerializer{},
	}
}

// --- JSON Serializer ---

// JSONSerializer stores the snapshot as a JSON array of note records:
// id, x, y, content, color, stackOrder, width, height. No version field.
type JSONSerializer struct{}

func (s *JSONSerializer) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (s *JSONSerializer) Decode(data []byte) ([]core.Note, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("invalid json snapshot: payload is not an array")
	}
	var notes []core.Note
	if err := json.Unmarshal(trimmed, &notes); err != nil {
		return nil, fmt.Errorf("invalid json snapshot: %w", err)
	}
	return notes, nil
}

// --- YAML Serializer ---

// YAMLSerializer stores the snapshot as a YAML sequence of note records.
type YAMLSerializer struct{}

func (s *YAMLSerializer) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	return yaml.Marshal(notes)
}

func (s *YAMLSerializer) Decode(data []byte) ([]core.Note, error) {
	// Decode through a node first: unmarshalling a null or empty document
	// straight into a slice silently yields nil, which would make an absent
	// record look present.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid yaml snapshot: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("invalid yaml snapshot: payload is not a sequence")
	}
	var notes []core.Note
	if err := doc.Content[0].Decode(&notes); err != nil {
		return nil, fmt.Errorf("invalid yaml snapshot: %w", err)
	}
	return notes, nil
}
