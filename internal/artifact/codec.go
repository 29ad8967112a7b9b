package artifact

import (
	"fmt"
	"math"
	"strconv"
)

// LabelCodec maps class ids to display names and back.
type LabelCodec struct {
	idToName map[int]string
	nameToID map[string]int
}

// BuildLabelCodec normalizes a raw label mapping of unknown orientation.
// Integer-convertible keys are read as id->name entries; any other key is
// read as name->id, in which case the value must be integer-convertible.
// A mapping that mixes both orientations merges without correction, even if
// the result is inconsistent. Returns nil for a nil mapping.
func BuildLabelCodec(raw map[string]any) (*LabelCodec, error) {
	if raw == nil {
		return nil, nil
	}
	codec := &LabelCodec{
		idToName: make(map[int]string, len(raw)),
		nameToID: make(map[string]int, len(raw)),
	}
	for key, value := range raw {
		if id, err := strconv.Atoi(key); err == nil {
			name := stringifyLabel(value)
			codec.idToName[id] = name
			codec.nameToID[name] = id
			continue
		}
		id, ok := asClassID(value)
		if !ok {
			return nil, fmt.Errorf("label mapping entry %q=%v has no integer class id", key, value)
		}
		codec.nameToID[key] = id
		codec.idToName[id] = key
	}
	return codec, nil
}

// Decode turns a raw prediction into a display name. Integer predictions
// (and all-digit strings) are looked up in the id->name mapping, falling
// back to the stringified id. Other strings are assumed to already be
// display names. A nil codec applies the same rules with every lookup
// missing.
func (c *LabelCodec) Decode(prediction any) string {
	if id, ok := asClassID(prediction); ok {
		if c != nil {
			if name, ok := c.idToName[id]; ok {
				return name
			}
		}
		return strconv.Itoa(id)
	}
	if name, ok := prediction.(string); ok {
		return name
	}
	return fmt.Sprint(prediction)
}

// ID returns the class id registered for a display name.
func (c *LabelCodec) ID(name string) (int, bool) {
	if c == nil {
		return 0, false
	}
	id, ok := c.nameToID[name]
	return id, ok
}

// asClassID interprets a value as an integer class id: ints pass through,
// integral floats are truncated, strings qualify only when composed entirely
// of digits.
func asClassID(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
		return 0, false
	case string:
		if len(v) == 0 {
			return 0, false
		}
		for _, r := range v {
			if r < '0' || r > '9' {
				return 0, false
			}
		}
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

func stringifyLabel(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if id, ok := asClassID(value); ok {
		return strconv.Itoa(id)
	}
	return fmt.Sprint(value)
}
