package film

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload mirrors the success body returned by the film-details endpoint.
// Every field is optional.
type Payload struct {
	MovieDetails *RawMovieDetails `json:"movie_details"`
	Summary      Text             `json:"summary"`
	Aspects      []Aspect         `json:"aspects"`
}

// RawMovieDetails is the loosely-shaped film record produced by the backend.
type RawMovieDetails struct {
	MovieName        Text `json:"movie_name"`
	Director         Text `json:"director"`
	Year             Text `json:"year"`
	Genres           Text `json:"genres"` // comma-joined
	BackdropImageURL Text `json:"backdrop_image_url"`
	Synopsis         Text `json:"synopsis"`
}

// Text is a string field that also accepts JSON numbers and null.
// The backend is not consistent about quoting years, so numbers keep their
// literal spelling. An absent or null value decodes to "".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}
	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		*t = Text(trimmed)
		return nil
	default:
		return fmt.Errorf("text field: unsupported JSON value %.32s", trimmed)
	}
}

// String returns the plain string value.
func (t Text) String() string {
	return string(t)
}

// Aspect is one reviewed facet of the film, kept as the raw JSON element the
// backend sent. The usual shape is ["Acting", 70, 30] (label, score, weight)
// but any JSON value is accepted and re-encoded unchanged.
type Aspect struct {
	raw json.RawMessage
}

// NewAspect builds an aspect in the [label, score, weight] form.
func NewAspect(label string, score, weight float64) Aspect {
	raw, _ := json.Marshal([]any{label, score, weight})
	return Aspect{raw: raw}
}

// Raw returns a copy of the JSON element. A zero Aspect is null.
func (a Aspect) Raw() json.RawMessage {
	if len(a.raw) == 0 {
		return json.RawMessage("null")
	}
	return bytes.Clone(a.raw)
}

// Triple decodes the aspect as [label, score, weight]. ok is false for any
// other shape.
func (a Aspect) Triple() (label string, score, weight float64, ok bool) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(a.raw, &tuple); err != nil || len(tuple) != 3 {
		return "", 0, 0, false
	}
	if json.Unmarshal(tuple[0], &label) != nil ||
		json.Unmarshal(tuple[1], &score) != nil ||
		json.Unmarshal(tuple[2], &weight) != nil {
		return "", 0, 0, false
	}
	return label, score, weight, true
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Aspect) UnmarshalJSON(data []byte) error {
	a.raw = bytes.Clone(data)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Aspect) MarshalJSON() ([]byte, error) {
	return a.Raw(), nil
}

// MarshalYAML emits the same value structure as the JSON element.
func (a Aspect) MarshalYAML() (any, error) {
	var v any
	if err := json.Unmarshal(a.Raw(), &v); err != nil {
		return nil, fmt.Errorf("aspect: %w", err)
	}
	return v, nil
}

// ViewModel is the fully-specified, UI-ready film record.
//
// Name, Director, Year, BackgroundImage and Synopsis are copied as-is and are
// empty when the backend omitted them. Genres and Aspects are never nil.
type ViewModel struct {
	Name            string   `json:"name" yaml:"name"`
	Director        string   `json:"director" yaml:"director"`
	Year            string   `json:"year" yaml:"year"`
	Genres          []string `json:"genres" yaml:"genres"`
	BackgroundImage string   `json:"backgroundImage" yaml:"background_image"`
	Synopsis        string   `json:"synopsis" yaml:"synopsis"`
	Review          string   `json:"review" yaml:"review"`
	Aspects         []Aspect `json:"aspects" yaml:"aspects"`
}
