package clothing

import "encoding/json"

// Patch distinguishes the three states an optional update field can be in:
// absent (leave unchanged), null (clear), and present (set). Plain pointers
// cannot tell absent from null once decoded.
type Patch[T any] struct {
	Set   bool
	Value *T
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.Set = true
	if string(data) == "null" {
		p.Value = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	p.Value = &value
	return nil
}

func (p Patch[T]) MarshalJSON() ([]byte, error) {
	if !p.Set || p.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}
