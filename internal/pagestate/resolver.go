// Package pagestate extracts and resolves the serialized state block the
// analytics site embeds in its HTML pages. The block is a JSON object whose
// "objs" member is a flat node array; strings inside nodes may be base-36
// indices referencing other nodes in the same array.
package pagestate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

const (
	scriptMarker = `<script type="qwik/json">`
	scriptEnd    = `</script>`

	// maxDepth bounds reference resolution so self-referential or mutually
	// referential node graphs terminate. Past the bound the raw node is
	// returned unresolved.
	maxDepth = 6
)

// ErrNoState is returned when a page carries no usable state block. It is a
// soft failure: the caller falls back to another channel.
var ErrNoState = errors.New("no embedded state block")

// Document is a parsed node array
type Document struct {
	nodes []any
}

// Parse locates the embedded state block in an HTML body and parses its node
// array.
func Parse(body []byte) (*Document, error) {
	idx := bytes.Index(body, []byte(scriptMarker))
	if idx < 0 {
		return nil, ErrNoState
	}

	rest := body[idx+len(scriptMarker):]
	end := bytes.Index(rest, []byte(scriptEnd))
	if end < 0 {
		return nil, ErrNoState
	}

	var blob struct {
		Objs []any `json:"objs"`
	}
	if err := json.Unmarshal(rest[:end], &blob); err != nil {
		return nil, fmt.Errorf("malformed state block: %w", err)
	}
	if len(blob.Objs) == 0 {
		return nil, ErrNoState
	}

	return &Document{nodes: blob.Objs}, nil
}

// NewDocument builds a document directly from a node array
func NewDocument(nodes []any) *Document {
	return &Document{nodes: nodes}
}

// Len returns the number of nodes
func (d *Document) Len() int {
	return len(d.nodes)
}

// Resolve dereferences a node into plain data, recursion bounded at maxDepth
func (d *Document) Resolve(node any) any {
	return d.resolve(node, 0)
}

func (d *Document) resolve(node any, depth int) any {
	if depth > maxDepth {
		return node
	}

	switch v := node.(type) {
	case string:
		ref, ok := d.deref(v)
		if !ok {
			return v
		}
		// A string that dereferences to itself stays a plain string
		if s, isStr := ref.(string); isStr && s == v {
			return v
		}
		return d.resolve(ref, depth+1)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = d.resolve(e, depth+1)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = d.resolve(e, depth+1)
		}
		return out
	default:
		return node
	}
}

// deref interprets s as a base-36 node index. Strings that don't decode to an
// in-range index are plain strings, not references.
func (d *Document) deref(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	idx, err := strconv.ParseInt(s, 36, 64)
	if err != nil || idx < 0 || idx >= int64(len(d.nodes)) {
		return nil, false
	}
	return d.nodes[idx], true
}

// FindRoot scans the node array for the first object whose key set covers the
// given signature and returns it fully resolved. ok is false when no node
// matches, which the caller treats as "no data".
func (d *Document) FindRoot(signature ...string) (map[string]any, bool) {
	for _, node := range d.nodes {
		obj, isObj := node.(map[string]any)
		if !isObj {
			continue
		}

		matches := true
		for _, key := range signature {
			if _, present := obj[key]; !present {
				matches = false
				break
			}
		}
		if !matches {
			continue
		}

		resolved, isMap := d.Resolve(obj).(map[string]any)
		if !isMap {
			continue
		}
		return resolved, true
	}
	return nil, false
}
