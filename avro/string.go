package avro

// stringReader decodes the Avro string type via the decoder's
// readString(reuse) entry point, so a resolving decoder can coerce a bytes
// physical type into a string logical type. Decoder.ReadString returns a
// Go string, not the backing []byte it decoded into, so there is nothing
// for this reader to hold onto and pass back in as a reuse hint on the
// next call — unlike Utf8BytesReader, which accepts a []byte reuse hint
// (bounded by Config.MaxScratchBuffer) and hands it to the decoder as its
// decode buffer.
type stringReader struct{}

// StringReader returns a ValueReader for the Avro string type, materializing
// a fresh Go string on every Read.
func StringReader() ValueReader { return stringReader{} }

func (stringReader) Read(dec Decoder, _ any) (any, error) {
	s, err := dec.ReadString(nil)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (stringReader) Skip(dec Decoder) error { return dec.SkipString() }

// utf8Reader is the Utf8Bytes-preserving variant supplemented from the
// original Java ValueReaders (utf8s()): it returns the decoded string as a
// []byte rather than a Go string. The decoder's ReadString still builds a
// Go string, which is then copied into a newly allocated []byte, so every
// Read allocates and the returned slice is never the reuse buffer. The
// reuse argument, if a []byte, is passed through to the decoder as its
// decode buffer (its contents are overwritten), unless its capacity
// exceeds maxScratchBuffer, in which case it's discarded in favor of a
// fresh allocation (Config.MaxScratchBuffer).
type utf8Reader struct {
	maxScratchBuffer int64
}

// Utf8BytesReader returns a ValueReader that decodes an Avro string as raw
// UTF-8 bytes instead of a Go string, bounded by DefaultConfig's
// MaxScratchBuffer.
func Utf8BytesReader() ValueReader { return newUtf8Reader(DefaultConfig()) }

// Utf8BytesReaderWithConfig is Utf8BytesReader with an explicit Config, for
// callers whose MaxScratchBuffer differs from the default.
func Utf8BytesReaderWithConfig(cfg Config) ValueReader { return newUtf8Reader(cfg) }

func newUtf8Reader(cfg Config) utf8Reader {
	return utf8Reader{maxScratchBuffer: int64(cfg.MaxScratchBuffer)}
}

func (r utf8Reader) Read(dec Decoder, reuse any) (any, error) {
	var scratch []byte
	if b, ok := reuse.([]byte); ok && int64(cap(b)) <= r.maxScratchBuffer {
		scratch = b
	}
	s, err := dec.ReadString(scratch)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (utf8Reader) Skip(dec Decoder) error { return dec.SkipString() }
