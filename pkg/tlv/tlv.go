// Package tlv encodes and decodes the EMV-style Tag-Length-Value fields used by
// BR Code payloads. Ids and lengths are two decimal digits; lengths count bytes.
package tlv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxValueLen is the largest value a two-digit length prefix can frame.
const MaxValueLen = 99

var ErrMalformedPayload = errors.New("tlv: malformed payload")

// Field is either a simple id/value pair or a group whose value is the
// concatenation of its nested Fields.
type Field struct {
	ID     string
	Value  string
	Fields []Field
}

func Simple(id, value string) Field {
	return Field{ID: id, Value: value}
}

func Group(id string, fields ...Field) Field {
	return Field{ID: id, Fields: fields}
}

func (f Field) IsGroup() bool {
	return f.Fields != nil
}

// Encode returns id + length + value. It panics on an id that is not two
// digits, on a value longer than MaxValueLen bytes, and on groups nested more
// than one level deep.
func (f Field) Encode() string {
	return f.encode(0)
}

func (f Field) encode(depth int) string {
	if !validID(f.ID) {
		panic(fmt.Sprintf("tlv: invalid field id %q", f.ID))
	}

	value := f.Value
	if f.IsGroup() {
		if depth > 0 {
			panic(fmt.Sprintf("tlv: group %s nested inside another group", f.ID))
		}
		var b strings.Builder
		for _, nested := range f.Fields {
			b.WriteString(nested.encode(depth + 1))
		}
		value = b.String()
	}

	if len(value) > MaxValueLen {
		panic(fmt.Sprintf("tlv: field %s value is %d bytes, max %d", f.ID, len(value), MaxValueLen))
	}
	return fmt.Sprintf("%s%02d%s", f.ID, len(value), value)
}

// Encode concatenates the encoding of each field in order.
func Encode(fields ...Field) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.Encode())
	}
	return b.String()
}

// Decode parses payload into its top-level fields, in order. Values are not
// interpreted; use DecodeGroup on fields known to be groups.
func Decode(payload string) ([]Field, error) {
	var fields []Field
	for pos := 0; pos < len(payload); {
		if len(payload)-pos < 4 {
			return nil, fmt.Errorf("%w: truncated header at offset %d", ErrMalformedPayload, pos)
		}

		id := payload[pos : pos+2]
		if !validID(id) {
			return nil, fmt.Errorf("%w: non-numeric id %q at offset %d", ErrMalformedPayload, id, pos)
		}

		rawLen := payload[pos+2 : pos+4]
		if !validID(rawLen) {
			return nil, fmt.Errorf("%w: non-numeric length %q for field %s", ErrMalformedPayload, rawLen, id)
		}
		n, _ := strconv.Atoi(rawLen)

		pos += 4
		if n > len(payload)-pos {
			return nil, fmt.Errorf("%w: field %s declares %d bytes, %d remain", ErrMalformedPayload, id, n, len(payload)-pos)
		}

		fields = append(fields, Simple(id, payload[pos:pos+n]))
		pos += n
	}
	return fields, nil
}

// DecodeGroup parses the value of f as nested fields.
func DecodeGroup(f Field) (Field, error) {
	nested, err := Decode(f.Value)
	if err != nil {
		return Field{}, fmt.Errorf("group %s: %w", f.ID, err)
	}
	if nested == nil {
		nested = []Field{}
	}
	return Field{ID: f.ID, Value: f.Value, Fields: nested}, nil
}

// Find returns the first field with id.
func Find(fields []Field, id string) (Field, bool) {
	for _, f := range fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

func validID(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}
