package diaclass

import (
	"bytes"
	"encoding/json"
)

// Report maps document references to their results in navigation order.
// The zero value is ready to use.
type Report struct {
	refs    []string
	results map[string]*Result
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{}
}

// Set records the result for ref. Setting an existing ref replaces its
// result without changing its position.
func (r *Report) Set(ref string, result *Result) {
	if r.results == nil {
		r.results = make(map[string]*Result)
	}
	if _, ok := r.results[ref]; !ok {
		r.refs = append(r.refs, ref)
	}
	r.results[ref] = result
}

// Get returns the result recorded for ref.
func (r *Report) Get(ref string) (*Result, bool) {
	result, ok := r.results[ref]
	return result, ok
}

// Refs returns the recorded references in insertion order.
func (r *Report) Refs() []string {
	return append([]string(nil), r.refs...)
}

// Len returns the number of recorded references.
func (r *Report) Len() int {
	return len(r.refs)
}

// Summary counts results by status.
func (r *Report) Summary() map[Status]int {
	m := make(map[Status]int)
	for _, ref := range r.refs {
		if result := r.results[ref]; result != nil {
			m[result.Status]++
		}
	}
	return m
}

// MarshalJSON encodes the report as a JSON object whose keys appear in
// insertion order.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ref := range r.refs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ref)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.results[ref])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
