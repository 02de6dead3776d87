package fileservice

import (
	"math"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every request and response type of the service.
// Encoding follows proto3 rules: zero-valued scalars are omitted, unknown
// fields are skipped on decode.
type Message interface {
	appendWire(b []byte) []byte
	consumeWire(b []byte) error
}

// Marshal encodes m in protobuf wire format.
func Marshal(m Message) []byte {
	return m.appendWire(nil)
}

// Unmarshal decodes b into m, overwriting fields present in b.
func Unmarshal(b []byte, m Message) error {
	return m.consumeWire(b)
}

// ============================================================================
// Encoding helpers
// ============================================================================

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	return appendVarint(b, num, uint64(v))
}

// int32 fields are sign-extended to 64 bits on the wire.
func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendVarint(b, num, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendRepeatedString(b []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

// appendStringMap encodes a map<string, string> with keys in sorted order so
// the output is deterministic.
func appendStringMap(b []byte, num protowire.Number, m map[string]string) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var entry []byte
		entry = appendString(entry, 1, k)
		entry = appendString(entry, 2, m[k])
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, entry)
	}
	return b
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.appendWire(nil))
}

// ============================================================================
// Decoding helpers
// ============================================================================

// field is one decoded tag plus the undecoded remainder of the input.
// Each read method consumes the field value and records its length in n.
type field struct {
	num protowire.Number
	typ protowire.Type
	buf []byte
	n   int
}

// consumeFields walks every field of b and hands it to fn. fn must consume
// the value through one of the field's read methods or skip it.
func consumeFields(b []byte, fn func(f *field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := &field{num: num, typ: typ, buf: b, n: -1}
		if err := fn(f); err != nil {
			return err
		}
		if f.n < 0 {
			if err := f.skip(); err != nil {
				return err
			}
		}
		b = b[f.n:]
	}
	return nil
}

func (f *field) skip() error {
	n := protowire.ConsumeFieldValue(f.num, f.typ, f.buf)
	if n < 0 {
		return protowire.ParseError(n)
	}
	f.n = n
	return nil
}

func (f *field) readString(dst *string) error {
	if f.typ != protowire.BytesType {
		return f.skip()
	}
	v, n := protowire.ConsumeString(f.buf)
	if n < 0 {
		return protowire.ParseError(n)
	}
	*dst = v
	f.n = n
	return nil
}

func (f *field) readBytes(dst *[]byte) error {
	if f.typ != protowire.BytesType {
		return f.skip()
	}
	v, n := protowire.ConsumeBytes(f.buf)
	if n < 0 {
		return protowire.ParseError(n)
	}
	*dst = append([]byte(nil), v...)
	f.n = n
	return nil
}

func (f *field) readVarint() (uint64, bool, error) {
	if f.typ != protowire.VarintType {
		return 0, false, f.skip()
	}
	v, n := protowire.ConsumeVarint(f.buf)
	if n < 0 {
		return 0, false, protowire.ParseError(n)
	}
	f.n = n
	return v, true, nil
}

func (f *field) readBool(dst *bool) error {
	v, ok, err := f.readVarint()
	if ok {
		*dst = protowire.DecodeBool(v)
	}
	return err
}

func (f *field) readInt64(dst *int64) error {
	v, ok, err := f.readVarint()
	if ok {
		*dst = int64(v)
	}
	return err
}

func (f *field) readInt32(dst *int32) error {
	v, ok, err := f.readVarint()
	if ok {
		*dst = int32(v)
	}
	return err
}

func (f *field) readDouble(dst *float64) error {
	if f.typ != protowire.Fixed64Type {
		return f.skip()
	}
	v, n := protowire.ConsumeFixed64(f.buf)
	if n < 0 {
		return protowire.ParseError(n)
	}
	*dst = math.Float64frombits(v)
	f.n = n
	return nil
}

func (f *field) appendString(dst *[]string) error {
	var s string
	if err := f.readString(&s); err != nil {
		return err
	}
	if f.typ == protowire.BytesType {
		*dst = append(*dst, s)
	}
	return nil
}

func (f *field) readMessage(m Message) error {
	if f.typ != protowire.BytesType {
		return f.skip()
	}
	v, n := protowire.ConsumeBytes(f.buf)
	if n < 0 {
		return protowire.ParseError(n)
	}
	if err := m.consumeWire(v); err != nil {
		return err
	}
	f.n = n
	return nil
}

func (f *field) readStringMapEntry(dst *map[string]string) error {
	entry := &mapEntry{}
	if err := f.readMessage(entry); err != nil {
		return err
	}
	if f.typ != protowire.BytesType {
		return nil
	}
	if *dst == nil {
		*dst = make(map[string]string)
	}
	(*dst)[entry.key] = entry.value
	return nil
}

// mapEntry is the implicit message of a map<string, string> field.
type mapEntry struct {
	key   string
	value string
}

func (e *mapEntry) appendWire(b []byte) []byte {
	b = appendString(b, 1, e.key)
	return appendString(b, 2, e.value)
}

func (e *mapEntry) consumeWire(b []byte) error {
	return consumeFields(b, func(f *field) error {
		switch f.num {
		case 1:
			return f.readString(&e.key)
		case 2:
			return f.readString(&e.value)
		}
		return nil
	})
}
