package avro

// Decoder is the byte-oriented cursor consumed by every ValueReader in this
// package. It is an external collaborator: this package does not parse
// Avro container framing, only decodes the primitive wire values a Decoder
// exposes. See binarydecoder.go for a concrete implementation over a plain
// Avro binary byte stream.
//
// A non-zero return from SkipArray/SkipMap means "skip this many elements
// individually, then call it again"; a zero return terminates the skip.
type Decoder interface {
	ReadBoolean() (bool, error)
	ReadInt() (int32, error)
	ReadLong() (int64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)
	ReadString(reuse []byte) (string, error)
	ReadBytes(reuse []byte) ([]byte, error)
	ReadFixed(dst []byte) error
	ReadEnum() (int, error)
	ReadIndex() (int, error)
	ReadNull() error

	ReadArrayStart() (int64, error)
	ArrayNext() (int64, error)
	ReadMapStart() (int64, error)
	MapNext() (int64, error)

	SkipString() error
	SkipBytes() error
	SkipFixed(n int) error
	SkipArray() (int64, error)
	SkipMap() (int64, error)
}

// WriterField describes one field of a writer record schema as seen by a
// ResolvingDecoder: its physical position within the record.
type WriterField struct {
	FieldID int
	Pos     int
}

// ResolvingDecoder additionally understands both a writer and a reader
// schema and can reorder or coerce fields on the fly. StructReader (the
// unplanned struct reader, §4.6) uses it when present.
type ResolvingDecoder interface {
	Decoder
	ReadFieldOrder() ([]WriterField, error)
}
