package avro

// bytesReader always allocates a fresh byte slice: reusing one would
// require length agreement not discoverable until after the length prefix
// is read, and the usual case needs an allocation anyway (spec §5).
type bytesReader struct{}

// BytesReader returns a ValueReader for the Avro bytes type.
func BytesReader() ValueReader { return bytesReader{} }

func (bytesReader) Read(dec Decoder, _ any) (any, error) { return dec.ReadBytes(nil) }
func (bytesReader) Skip(dec Decoder) error                 { return dec.SkipBytes() }

// byteBufferReader is the reuse-aware bytes variant: it passes a []byte
// reuse hint straight through to the decoder, mirroring the Java
// ByteBufferReader which can reuse a backing ByteBuffer when supplied one.
// A hint larger than maxScratchBuffer is discarded rather than reused, so
// one abnormally large value doesn't keep an oversized buffer alive across
// every later record that reuses the same struct position.
type byteBufferReader struct {
	maxScratchBuffer int64
}

// ByteBufferReader returns a ValueReader for the Avro bytes type that
// forwards a []byte reuse hint to the decoder instead of always allocating,
// bounded by DefaultConfig's MaxScratchBuffer.
func ByteBufferReader() ValueReader { return newByteBufferReader(DefaultConfig()) }

// ByteBufferReaderWithConfig is ByteBufferReader with an explicit Config,
// for callers whose MaxScratchBuffer differs from the default.
func ByteBufferReaderWithConfig(cfg Config) ValueReader { return newByteBufferReader(cfg) }

func newByteBufferReader(cfg Config) byteBufferReader {
	return byteBufferReader{maxScratchBuffer: int64(cfg.MaxScratchBuffer)}
}

func (r byteBufferReader) Read(dec Decoder, reuse any) (any, error) {
	if b, ok := reuse.([]byte); ok && int64(cap(b)) <= r.maxScratchBuffer {
		return dec.ReadBytes(b)
	}
	return dec.ReadBytes(nil)
}

func (byteBufferReader) Skip(dec Decoder) error { return dec.SkipBytes() }

// fixedReader decodes a fixed-width Avro fixed value, reusing a
// caller-supplied byte buffer iff its length matches.
type fixedReader struct {
	length int
}

// FixedReader returns a ValueReader for an Avro fixed type of the given
// byte length.
func FixedReader(length int) ValueReader { return fixedReader{length: length} }

func (r fixedReader) Read(dec Decoder, reuse any) (any, error) {
	if b, ok := reuse.([]byte); ok && len(b) == r.length {
		if err := dec.ReadFixed(b); err != nil {
			return nil, err
		}
		return b, nil
	}
	b := make([]byte, r.length)
	if err := dec.ReadFixed(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r fixedReader) Skip(dec Decoder) error { return dec.SkipFixed(r.length) }

// namedFixedValue pairs raw fixed bytes with the Avro named-fixed type that
// produced them, mirroring ValueReaders.fixed(Schema) from the original
// Java implementation.
type namedFixedValue struct {
	TypeName string
	Bytes    []byte
}

type genericFixedReader struct {
	typeName string
	length   int
}

// GenericFixedReader returns a ValueReader for a named Avro fixed type,
// producing a namedFixedValue instead of a bare []byte so the type name
// travels with the bytes.
func GenericFixedReader(typeName string, length int) ValueReader {
	return genericFixedReader{typeName: typeName, length: length}
}

func (r genericFixedReader) Read(dec Decoder, reuse any) (any, error) {
	if v, ok := reuse.(*namedFixedValue); ok && len(v.Bytes) == r.length {
		if err := dec.ReadFixed(v.Bytes); err != nil {
			return nil, err
		}
		v.TypeName = r.typeName
		return v, nil
	}
	b := make([]byte, r.length)
	if err := dec.ReadFixed(b); err != nil {
		return nil, err
	}
	return &namedFixedValue{TypeName: r.typeName, Bytes: b}, nil
}

func (r genericFixedReader) Skip(dec Decoder) error { return dec.SkipFixed(r.length) }
