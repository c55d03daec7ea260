package avro

// enumReader decodes an Avro enum as the string symbol at the decoded
// index.
type enumReader struct {
	symbols []string
}

// EnumReader returns a ValueReader for an Avro enum with the given symbol
// table, ordered by index.
func EnumReader(symbols []string) ValueReader {
	cp := make([]string, len(symbols))
	copy(cp, symbols)
	return enumReader{symbols: cp}
}

func (r enumReader) Read(dec Decoder, _ any) (any, error) {
	idx, err := dec.ReadEnum()
	if err != nil {
		return nil, err
	}
	return r.symbols[idx], nil
}

func (r enumReader) Skip(dec Decoder) error { _, err := dec.ReadEnum(); return err }
