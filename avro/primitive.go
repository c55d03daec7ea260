package avro

// nullReader decodes the null type: no bytes on the wire, but the decoder
// still advances any internal resolution state.
type nullReader struct{}

// NullReader returns a ValueReader for the Avro null type.
func NullReader() ValueReader { return nullReader{} }

func (nullReader) Read(dec Decoder, _ any) (any, error) {
	if err := dec.ReadNull(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (nullReader) Skip(dec Decoder) error { return dec.ReadNull() }

type boolReader struct{}

// BoolReader returns a ValueReader for the Avro boolean type.
func BoolReader() ValueReader { return boolReader{} }

func (boolReader) Read(dec Decoder, _ any) (any, error) { return dec.ReadBoolean() }
func (boolReader) Skip(dec Decoder) error                { _, err := dec.ReadBoolean(); return err }

type intReader struct{}

// IntReader returns a ValueReader for the Avro int type.
func IntReader() ValueReader { return intReader{} }

func (intReader) Read(dec Decoder, _ any) (any, error) { return dec.ReadInt() }
func (intReader) Skip(dec Decoder) error                { _, err := dec.ReadInt(); return err }

type intAsLongReader struct{}

// IntAsLongReader promotes a physical int to a logical long, per Avro
// resolution rules (spec §4.1).
func IntAsLongReader() ValueReader { return intAsLongReader{} }

func (intAsLongReader) Read(dec Decoder, _ any) (any, error) {
	v, err := dec.ReadInt()
	if err != nil {
		return nil, err
	}
	return int64(v), nil
}

func (intAsLongReader) Skip(dec Decoder) error { _, err := dec.ReadInt(); return err }

type longReader struct{}

// LongReader returns a ValueReader for the Avro long type.
func LongReader() ValueReader { return longReader{} }

func (longReader) Read(dec Decoder, _ any) (any, error) { return dec.ReadLong() }
func (longReader) Skip(dec Decoder) error                { _, err := dec.ReadLong(); return err }

type floatReader struct{}

// FloatReader returns a ValueReader for the Avro float type.
func FloatReader() ValueReader { return floatReader{} }

func (floatReader) Read(dec Decoder, _ any) (any, error) { return dec.ReadFloat() }
func (floatReader) Skip(dec Decoder) error                { return dec.SkipFixed(4) }

type floatAsDoubleReader struct{}

// FloatAsDoubleReader promotes a physical float to a logical double, per
// Avro resolution rules (spec §4.1).
func FloatAsDoubleReader() ValueReader { return floatAsDoubleReader{} }

func (floatAsDoubleReader) Read(dec Decoder, _ any) (any, error) {
	v, err := dec.ReadFloat()
	if err != nil {
		return nil, err
	}
	return float64(v), nil
}

func (floatAsDoubleReader) Skip(dec Decoder) error { return dec.SkipFixed(4) }

type doubleReader struct{}

// DoubleReader returns a ValueReader for the Avro double type.
func DoubleReader() ValueReader { return doubleReader{} }

func (doubleReader) Read(dec Decoder, _ any) (any, error) { return dec.ReadDouble() }
func (doubleReader) Skip(dec Decoder) error                { return dec.SkipFixed(8) }
