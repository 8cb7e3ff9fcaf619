package transport

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/yndnr/partage-bss-go/internal/core/domain"
)

// Decoder turns a response body into a normalized Response.
type Decoder interface {
	Decode(body []byte) (*domain.Response, error)
}

// Format names a response decoder.
type Format string

const (
	FormatAuto Format = "auto"
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// NewDecoder returns the decoder for format. Unknown formats sniff.
func NewDecoder(format Format) Decoder {
	switch format {
	case FormatXML:
		return XMLDecoder{}
	case FormatJSON:
		return JSONDecoder{}
	default:
		return AutoDecoder{}
	}
}

// XMLDecoder reads the text of the root element's direct children.
//
//	<Response><status>0</status><message>ok</message><token>…</token></Response>
type XMLDecoder struct{}

// Decode implements Decoder.
func (XMLDecoder) Decode(body []byte) (*domain.Response, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	// The API historically declares ISO-8859-1.
	dec.CharsetReader = charset.NewReaderLabel

	fields := make(map[string]string)
	depth := 0
	var current string
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed("xml", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				current = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 2 {
				fields[current] = strings.TrimSpace(text.String())
			}
			depth--
		}
	}

	if len(fields) == 0 {
		return nil, malformed("xml", errors.New("no fields"))
	}
	return normalize(fields)
}

// JSONDecoder reads the top-level properties of a JSON object. Scalars are
// kept in their textual form; nested values are kept as raw JSON.
type JSONDecoder struct{}

// Decode implements Decoder.
func (JSONDecoder) Decode(body []byte) (*domain.Response, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, malformed("json", err)
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			fields[k] = s
			continue
		}
		if string(v) == "null" {
			continue
		}
		fields[k] = string(v)
	}
	return normalize(fields)
}

// AutoDecoder picks XML or JSON from the first non-blank byte.
type AutoDecoder struct{}

// Decode implements Decoder.
func (AutoDecoder) Decode(body []byte) (*domain.Response, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return nil, malformed("body", errors.New("empty"))
	}
	switch trimmed[0] {
	case '<':
		return XMLDecoder{}.Decode(trimmed)
	case '{':
		return JSONDecoder{}.Decode(trimmed)
	default:
		return nil, malformed("body", fmt.Errorf("unrecognized format starting with %q", trimmed[0]))
	}
}

// normalize checks the fields every response must carry.
func normalize(fields map[string]string) (*domain.Response, error) {
	rawStatus, ok := fields[domain.FieldStatus]
	if !ok {
		return nil, domain.ErrTransport.WithDetails("response missing status")
	}
	status, err := strconv.Atoi(strings.TrimSpace(rawStatus))
	if err != nil {
		return nil, domain.ErrTransport.WithDetails(fmt.Sprintf("non-integer status %q", rawStatus))
	}
	message, ok := fields[domain.FieldMessage]
	if !ok {
		return nil, domain.ErrTransport.WithDetails("response missing message")
	}

	return &domain.Response{
		Status:  status,
		Message: message,
		Fields:  fields,
	}, nil
}

func malformed(kind string, err error) error {
	return domain.ErrTransport.WithDetails("malformed " + kind + " response").WithCause(err)
}
