package emoji

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

var noResultsBody = []byte(`{"error":"No results found"}`)

// Result is a decoded emoji api response. Payload is the compacted upstream
// body. Error holds the upstream "error" field when it is truthy.
type Result struct {
	Payload json.RawMessage
	Error   json.RawMessage
}

// Emoji is a single entry of a successful lookup.
type Emoji struct {
	Slug        string    `json:"slug"`
	Character   string    `json:"character"`
	UnicodeName string    `json:"unicodeName"`
	CodePoint   string    `json:"codePoint"`
	Group       string    `json:"group"`
	SubGroup    string    `json:"subGroup"`
	Variants    []Variant `json:"variants,omitempty"`
}

// Variant is an alternative rendering of an Emoji, e.g. a skin tone.
type Variant struct {
	Slug      string `json:"slug"`
	Character string `json:"character"`
}

// ParseResult decodes an upstream body. An empty body is a Result with no
// payload. A body that is not json returns an error caused by
// ErrMalformedResponse.
func ParseResult(body []byte) (*Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &Result{}, nil
	}

	// invalid utf-8 becomes U+FFFD so the relayed body is always valid text
	body = bytes.ToValidUTF8(body, []byte("\uFFFD"))

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return nil, errors.Wrap(ErrMalformedResponse, err.Error())
	}

	result := &Result{Payload: compact.Bytes()}

	if result.Payload[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(result.Payload, &fields); err != nil {
			return nil, errors.Wrap(ErrMalformedResponse, err.Error())
		}

		if e, ok := fields["error"]; ok && truthy(e) {
			result.Error = e
		}
	}

	return result, nil
}

// Found reports whether the lookup produced a relayable payload: the payload
// is truthy and carries no truthy error field.
func (r *Result) Found() bool {
	return r.Error == nil && truthy(r.Payload)
}

// ErrorBody returns {"error": <upstream error>} or, when the upstream gave no
// error, {"error":"No results found"}.
func (r *Result) ErrorBody() []byte {
	if r.Error == nil {
		return noResultsBody
	}

	body := make([]byte, 0, len(r.Error)+10)
	body = append(body, `{"error":`...)
	body = append(body, r.Error...)
	body = append(body, '}')

	return body
}

// Emojis decodes a found payload into typed entries.
func (r *Result) Emojis() ([]Emoji, error) {
	if !r.Found() {
		return nil, nil
	}

	var emojis []Emoji
	if err := json.Unmarshal(r.Payload, &emojis); err != nil {
		return nil, errors.Wrap(err, "emoji api payload is not a list of emojis")
	}

	return emojis, nil
}

// truthy follows javascript truthiness for a json value: null, false, 0 and ""
// are falsy, everything else is truthy.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	switch raw[0] {
	case 'n', 'f':
		return false
	case '"':
		return len(raw) > 2
	case 't', '{', '[':
		return true
	}

	// overflowing numbers come back as ±Inf with ErrRange, still truthy
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return false
	}

	return f != 0
}
