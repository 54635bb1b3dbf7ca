package severance

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// RESULT CODEC - Tagged JSON for persisted results
// =============================================================================

type taggedResult struct {
	Kind   Kind            `json:"kind"`
	Result json.RawMessage `json:"result"`
}

// MarshalResult encodes r as {"kind": ..., "result": {...}}.
func MarshalResult(r Result) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("marshal result: nil result")
	}
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal %s result: %w", r.Kind(), err)
	}
	return json.Marshal(taggedResult{Kind: r.Kind(), Result: body})
}

// UnmarshalResult decodes the output of MarshalResult into the concrete type
// named by its kind.
func UnmarshalResult(data []byte) (Result, error) {
	var tagged taggedResult
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}

	var r Result
	switch tagged.Kind {
	case KindSeverance:
		r = &SeveranceResult{}
	case KindLiquidation:
		r = &LiquidationResult{}
	default:
		return nil, fmt.Errorf("unmarshal result: unknown kind %q", tagged.Kind)
	}
	if err := json.Unmarshal(tagged.Result, r); err != nil {
		return nil, fmt.Errorf("unmarshal %s result: %w", tagged.Kind, err)
	}
	return r, nil
}
