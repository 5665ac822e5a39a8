// Package securexml parses XML descriptors into a small element tree while
// refusing document type declarations and entity definitions.
package securexml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrParse is matched by every error returned from Parse and Decode.
var ErrParse = errors.New("xml parse error")

// ParseError describes why a document was rejected.
type ParseError struct {
	Line   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := "xml parse error"
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// Parse reads a complete document and returns its element tree.
func Parse(r io.Reader) (*Document, error) {
	dec := newDecoder(r)

	doc := &Document{}
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapSyntax(err)
		}

		switch t := tok.(type) {
		case xml.Directive:
			return nil, rejectDirective(t, dec)
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, attr := range t.Attr {
				el.Attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, &ParseError{Reason: "multiple root elements"}
				}
				doc.Root = el
			} else {
				stack[len(stack)-1].appendChild(el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].appendText(t)
			}
		}
	}

	if doc.Root == nil {
		return nil, &ParseError{Reason: "document has no root element"}
	}
	return doc, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// Decode unmarshals data into v after the same checks Parse applies.
func Decode(data []byte, v any) error {
	// xml.Decoder.Decode skips directives, so the token pass has to run
	// first to reject DOCTYPE and ENTITY declarations.
	if _, err := ParseBytes(data); err != nil {
		return err
	}

	dec := newDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return wrapSyntax(err)
	}
	return nil
}

func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = nil
	dec.CharsetReader = charset.NewReaderLabel
	return dec
}

func rejectDirective(d xml.Directive, dec *xml.Decoder) error {
	line, _ := dec.InputPos()
	word := strings.Fields(string(d))
	kind := "directive"
	if len(word) > 0 {
		kind = strings.ToUpper(word[0])
	}
	return &ParseError{Line: line, Reason: kind + " declarations are not allowed"}
}

func wrapSyntax(err error) error {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		return &ParseError{Line: syntax.Line, Reason: syntax.Msg}
	}
	return &ParseError{Err: err}
}
