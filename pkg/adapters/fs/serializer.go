package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/stock/pkg/core"
)

// Serializer defines how to read and write a specific file format.
// Implementations must keep the inventory's item order in both directions.
type Serializer interface {
	// Decode reads a whole inventory from r.
	Decode(r io.Reader) (*core.Inventory, error)
	// Encode converts the inventory to bytes.
	Encode(inv *core.Inventory) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor picks the serializer for path by extension, falling back to JSON.
func SerializerFor(path string) Serializer {
	if s, ok := DefaultSerializers()[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return NewJSONSerializer()
}

// --- JSON Serializer ---

// JSONSerializer handles JSON objects mapping item names to numbers.
type JSONSerializer struct {
	// Indent is the per-level indentation used when encoding.
	Indent string
}

// NewJSONSerializer creates a JSON serializer indenting with four spaces.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{Indent: "    "}
}

// Decode streams the object token by token so that key order survives.
func (s *JSONSerializer) Decode(r io.Reader) (*core.Inventory, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("invalid json: expected an object, got %v", tok)
	}

	inv := core.NewInventory()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		name := tok.(string) // object keys are always strings

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		qty, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64)
		if err != nil {
			return nil, fmt.Errorf("quantity of %q is not a number: %s", name, raw)
		}
		inv.Set(name, qty)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid json: trailing data after object")
	}
	return inv, nil
}

func (s *JSONSerializer) Encode(inv *core.Inventory) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for name, qty := range inv.All() {
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(qty)
		if err != nil {
			return nil, fmt.Errorf("quantity of %q: %w", name, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		buf.WriteString(s.Indent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		i++
	}
	if i > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles a YAML mapping of item names to numbers.
type YAMLSerializer struct {
	Indent int
}

func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{Indent: 4}
}

// Decode walks the node tree instead of unmarshalling into a map, which would lose order.
func (s *YAMLSerializer) Decode(r io.Reader) (*core.Inventory, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return core.NewInventory(), nil
		}
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("invalid yaml: expected a mapping at line %d", doc.Line)
	}

	inv := core.NewInventory()
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("invalid yaml: non-scalar key at line %d", key.Line)
		}
		if value.Kind != yaml.ScalarNode || (value.ShortTag() != "!!int" && value.ShortTag() != "!!float") {
			return nil, fmt.Errorf("quantity of %q is not a number (line %d)", key.Value, value.Line)
		}
		var qty float64
		if err := value.Decode(&qty); err != nil {
			return nil, fmt.Errorf("quantity of %q: %w", key.Value, err)
		}
		inv.Set(key.Value, qty)
	}
	return inv, nil
}

func (s *YAMLSerializer) Encode(inv *core.Inventory) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for name, qty := range inv.All() {
		tag, value := yamlNumber(qty)
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
		)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(s.Indent)
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// yamlNumber tags whole numbers that fit in an int64 as !!int; everything else,
// including whole numbers beyond int64, is written as !!float.
func yamlNumber(qty float64) (tag, value string) {
	if qty == math.Trunc(qty) && math.Abs(qty) < 1<<63 {
		return "!!int", core.FormatQuantity(qty)
	}
	return "!!float", strconv.FormatFloat(qty, 'g', -1, 64)
}
