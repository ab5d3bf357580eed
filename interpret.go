package diaclass

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
)

// Interpret extracts the JSON object embedded in raw provider output and
// validates it as a Classification. The object is taken from the first "{"
// to the last "}", so conversational text around it is tolerated; the span
// must hold exactly one JSON value. Anything
// that does not decode into a well-formed classification becomes a parse
// failure carrying the raw text.
func Interpret(raw string) *Result {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ParseFailure(raw, "no JSON object found")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw[start : end+1])))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return ParseFailure(raw, fmt.Sprintf("invalid JSON: %v", err))
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return ParseFailure(raw, "invalid JSON: unexpected data after object")
	}

	c, err := classificationFromFields(fields)
	if err != nil {
		return ParseFailure(raw, err.Error())
	}
	return Success(c)
}

func classificationFromFields(fields map[string]any) (*Classification, error) {
	v, ok := fields["dominant"]
	if !ok {
		return nil, fmt.Errorf("missing key %q", "dominant")
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("key %q is not a string", "dominant")
	}
	dominant := Quadrant(s)
	if !dominant.IsValid() {
		return nil, fmt.Errorf("unexpected dominant quadrant %q", s)
	}

	c := &Classification{Dominant: dominant}
	targets := map[Quadrant]*int{
		QuadrantExplanation: &c.Explanation,
		QuadrantTutorial:    &c.Tutorial,
		QuadrantHowTo:       &c.HowTo,
		QuadrantReference:   &c.Reference,
	}
	for _, q := range Quadrants() {
		n, err := percentage(fields, string(q))
		if err != nil {
			return nil, err
		}
		*targets[q] = n
	}
	return c, nil
}

// percentage reads an integer in [0, 100] from fields[key]. Whole-valued
// floats such as 70.0 are accepted.
func percentage(fields map[string]any, key string) (int, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("missing key %q", key)
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("key %q is not a number", key)
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("key %q is not an integer: %s", key, num)
	}
	if f < 0 || f > 100 {
		return 0, fmt.Errorf("key %q out of range: %s", key, num)
	}
	return int(f), nil
}
