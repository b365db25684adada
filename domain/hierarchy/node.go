package hierarchy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one level of grouping: a mapping from distinct cell values to child nodes.
// Children keep the order in which their keys were first seen. A node without
// children is a leaf.
type Node struct {
	keys     []string
	children map[string]*Node
}

// New creates an empty node
func New() *Node {
	return &Node{children: make(map[string]*Node)}
}

// GetOrCreate returns the child stored under key, inserting an empty child first
// when the key is not present. An existing child is never replaced.
func (n *Node) GetOrCreate(key string) *Node {
	if child, ok := n.children[key]; ok {
		return child
	}
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	child := New()
	n.children[key] = child
	n.keys = append(n.keys, key)
	return child
}

// Child looks up the child stored under key
func (n *Node) Child(key string) (*Node, bool) {
	child, ok := n.children[key]
	return child, ok
}

// Keys returns the child keys in discovery order
func (n *Node) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Len returns the number of direct children
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.keys) == 0
}

// Equal reports whether two hierarchies hold the same key sets at every level.
// Key order is not compared. A nil node equals an empty one.
func (n *Node) Equal(other *Node) bool {
	if n.Len() != other.Len() {
		return false
	}
	if n.Len() == 0 {
		return true
	}
	for key, child := range n.children {
		otherChild, ok := other.children[key]
		if !ok || !child.Equal(otherChild) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the node as a JSON object with children in discovery order.
// Leaves encode as {}.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) encode(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, key := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("failed to encode key %q: %w", key, err)
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		if err := n.children[key].encode(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON decodes a JSON object of nested objects, preserving key order.
// Any non-object value makes the document invalid.
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	decoded, err := decodeNode(dec)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

func decodeNode(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("hierarchy node must be a JSON object, got %v", tok)
	}

	node := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		if _, exists := node.children[key]; !exists {
			node.keys = append(node.keys, key)
		}
		node.children[key] = child
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}
