package avro

// Variant is a decoded Avro variant logical type: a self-describing value
// carrying its own metadata and value buffers. Both are opaque length-
// prefixed byte buffers at the Avro level; the Iceberg variant encoding
// within them is little-endian, which is the caller's concern, not this
// reader's (spec §9 "Variant").
type Variant struct {
	Metadata []byte
	Value    []byte
}

type variantReader struct {
	metadataReader ValueReader
	valueReader    ValueReader
}

// VariantReader returns a ValueReader for the Avro variant logical type:
// two consecutive byte buffers (metadata, then value), both little-endian.
func VariantReader() ValueReader {
	return variantReader{metadataReader: ByteBufferReader(), valueReader: ByteBufferReader()}
}

func (r variantReader) Read(dec Decoder, _ any) (any, error) {
	metadata, err := r.metadataReader.Read(dec, nil)
	if err != nil {
		return nil, err
	}
	value, err := r.valueReader.Read(dec, nil)
	if err != nil {
		return nil, err
	}
	return Variant{Metadata: metadata.([]byte), Value: value.([]byte)}, nil
}

func (r variantReader) Skip(dec Decoder) error {
	if err := r.metadataReader.Skip(dec); err != nil {
		return err
	}
	return r.valueReader.Skip(dec)
}
