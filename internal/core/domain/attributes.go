package domain

import "encoding/json"

// marshalWithExtra encodes base and adds every key of extra that base does
// not already set. Typed fields win over extra attributes of the same name.
func marshalWithExtra(base any, extra map[string]any) ([]byte, error) {
	out, err := json.Marshal(base)
	if err != nil || len(extra) == 0 {
		return out, err
	}

	merged := make(map[string]any)
	if err := json.Unmarshal(out, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, taken := merged[k]; !taken {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// extraAttributes returns the keys of the JSON object in data that are not
// in owned, or nil when there are none.
func extraAttributes(data []byte, owned []string) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range owned {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}
