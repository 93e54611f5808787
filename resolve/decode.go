package resolve

import (
	"encoding/json"

	"github.com/BaSui01/structcast/repair"
	"github.com/BaSui01/structcast/types"
)

// Decode parses raw text as JSON, repairing it once on a strict-parse
// failure. Valid input passes through untouched. When the repaired text
// still does not parse, the returned parsing_error preserves both the
// original and the repaired text for postmortem diagnosis. Repair is tried
// exactly once.
func Decode(raw string) (any, error) {
	v, _, err := decode(raw)
	return v, err
}

// decode additionally reports whether the repair path was taken, so the
// resolver can count repair invocations.
func decode(raw string) (any, bool, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v, false, nil
	}

	repaired := repair.Repair(raw)
	var rv any
	err := json.Unmarshal([]byte(repaired), &rv)
	if err == nil {
		return rv, true, nil
	}
	return nil, true, types.NewError(types.KindParsing, "output could not be parsed as JSON after repair").
		WithRaw(raw).
		WithRepaired(repaired).
		WithCause(err)
}
