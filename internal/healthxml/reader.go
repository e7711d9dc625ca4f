package healthxml

import (
	"encoding/xml"
	"fmt"
	"io"
)

// EventKind distinguishes element starts from ends.
type EventKind int

const (
	// StartElement is an opening tag; Attrs and Offset are set.
	StartElement EventKind = iota
	// EndElement is a closing tag; only Name is set.
	EndElement
)

// Event is one element boundary in the export document.
type Event struct {
	Kind   EventKind
	Name   string
	Attrs  map[string]string
	Offset int64 // byte offset just past the token
}

// ParseError reports unparseable XML with the byte offset where decoding
// stopped.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed xml at byte %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Reader streams element events from an export document. It is forward-only
// and never materializes the document; exports run to hundreds of megabytes.
type Reader struct {
	dec *xml.Decoder
}

// NewReader wraps r in a streaming event reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: xml.NewDecoder(r)}
}

// Next returns the next element event. It returns io.EOF at the end of the
// document and *ParseError on malformed input. Character data, comments, and
// the export's DOCTYPE directive are skipped.
func (r *Reader) Next() (Event, error) {
	for {
		tok, err := r.dec.Token()
		if err == io.EOF {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, &ParseError{Offset: r.dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make(map[string]string, len(t.Attr))
			for _, a := range t.Attr {
				attrs[a.Name.Local] = a.Value
			}
			return Event{
				Kind:   StartElement,
				Name:   t.Name.Local,
				Attrs:  attrs,
				Offset: r.dec.InputOffset(),
			}, nil
		case xml.EndElement:
			return Event{Kind: EndElement, Name: t.Name.Local}, nil
		}
	}
}
