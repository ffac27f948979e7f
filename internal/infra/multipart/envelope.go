package multipart

import "strconv"

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

// Value is a scalar form field value. Exactly one variant (string, integer
// or boolean) is set, and it serializes to a single deterministic wire
// string.
type Value struct {
	kind valueKind
	s    string
	i    int64
	b    bool
}

func StringValue(s string) Value { return Value{kind: kindString, s: s} }
func IntValue(i int64) Value     { return Value{kind: kindInt, i: i} }
func BoolValue(b bool) Value     { return Value{kind: kindBool, b: b} }

// WireString returns the value as it appears in the encoded body.
// Booleans serialize as "true"/"false".
func (v Value) WireString() string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindBool:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

type field struct {
	name  string
	value Value
}

// Envelope is the ordered set of non-attachment form fields accompanying a
// send operation. Insertion order is preserved in the encoded body; setting
// an existing field again overwrites its value in place.
type Envelope struct {
	fields []field
}

func NewEnvelope() *Envelope {
	return &Envelope{}
}

// Set stores a string field.
func (e *Envelope) Set(name, value string) {
	e.put(name, StringValue(value))
}

// SetInt stores an integer field.
func (e *Envelope) SetInt(name string, value int64) {
	e.put(name, IntValue(value))
}

// SetBool stores a boolean field, serialized as "true"/"false".
func (e *Envelope) SetBool(name string, value bool) {
	e.put(name, BoolValue(value))
}

func (e *Envelope) put(name string, v Value) {
	for i := range e.fields {
		if e.fields[i].name == name {
			e.fields[i].value = v
			return
		}
	}
	e.fields = append(e.fields, field{name: name, value: v})
}

// Len reports the number of fields in the envelope.
func (e *Envelope) Len() int {
	return len(e.fields)
}

// Attachment is a named binary file part. Filename drives the declared
// content type via extension lookup; Data is copied verbatim into the body.
type Attachment struct {
	Field    string
	Filename string
	Data     []byte
}
