package stats

import (
	"encoding/json"
	"fmt"

	"go-champ-stats/internal/pagestate"
)

// Root signatures for the embedded state block, per data domain. The state
// object carries far more keys than these; a superset match is enough.
var (
	countersSignature = []string{"counters"}
	buildSignature    = []string{"itemSets"}
	runesSignature    = []string{"summary", "skillorder"}
)

// decodePageState extracts the embedded state block from an HTML page,
// locates the domain root by signature and decodes it into the same struct
// the primary channel uses. All failure modes read as "no data".
func decodePageState[T any](body []byte, signature []string) (*T, error) {
	doc, err := pagestate.Parse(body)
	if err != nil {
		return nil, err
	}

	root, ok := doc.FindRoot(signature...)
	if !ok {
		return nil, pagestate.ErrNoState
	}

	// Roundtrip through JSON so the resolved generic nodes land in the
	// typed response shape with the usual strictness.
	raw, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode page state: %w", err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode page state: %w", err)
	}
	return &out, nil
}
