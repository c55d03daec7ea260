package avro

import "github.com/google/uuid"

// uuidReader decodes 16 raw fixed bytes, big-endian, into a uuid.UUID. The
// scratch buffer is a struct field, not a thread-local (Design Notes §9).
type uuidReader struct {
	scratch [16]byte
}

// UUIDReader returns a ValueReader for the Avro logical UUID type, encoded
// as a fixed(16) of big-endian bytes.
func UUIDReader() ValueReader { return &uuidReader{} }

func (r *uuidReader) Read(dec Decoder, _ any) (any, error) {
	if err := dec.ReadFixed(r.scratch[:]); err != nil {
		return uuid.UUID{}, err
	}
	var out uuid.UUID
	copy(out[:], r.scratch[:])
	return out, nil
}

func (r *uuidReader) Skip(dec Decoder) error { return dec.SkipFixed(16) }
