package avro

// constantReader never touches the decoder; it always returns the same
// value, used for fields present in the expected schema but absent from
// the writer schema (defaulted fields, spec §3.1).
type constantReader struct {
	value any
}

// ConstantReader returns a ValueReader that ignores the decoder entirely
// and always yields value. Skip is a no-op since nothing was ever written
// for this position.
func ConstantReader(value any) ValueReader { return constantReader{value: value} }

func (r constantReader) Read(_ Decoder, _ any) (any, error) { return r.value, nil }

func (r constantReader) Skip(_ Decoder) error { return nil }

// replaceWithConstantReader decodes (and discards) whatever the writer
// wrote at this position via wrapped, then substitutes value. Used when a
// writer field must still be consumed off the wire — to keep the stream
// aligned — but the expected schema's value for it is fixed regardless of
// what was written (e.g. a renamed-and-reused field id).
type replaceWithConstantReader struct {
	wrapped ValueReader
	value   any
}

// ReplaceWithConstantReader returns a ValueReader that reads (and
// discards the result of) wrapped, then always yields value.
func ReplaceWithConstantReader(wrapped ValueReader, value any) ValueReader {
	return replaceWithConstantReader{wrapped: wrapped, value: value}
}

func (r replaceWithConstantReader) Read(dec Decoder, reuse any) (any, error) {
	if _, err := r.wrapped.Read(dec, reuse); err != nil {
		return nil, err
	}
	return r.value, nil
}

func (r replaceWithConstantReader) Skip(dec Decoder) error { return r.wrapped.Skip(dec) }
