package avro

import "math/big"

// decimalReader reads a variable-length unscaled big-integer (two's
// complement, big-endian) via an inner bytes-shaped reader, plus a scale
// fixed at construction. No precision validation happens at decode time;
// overflow is the caller's concern (spec §4.1). The materialized value
// (*big.Int) is immutable, so reuse is never attempted.
type decimalReader struct {
	unscaled ValueReader
	scale    int
}

// Decimal is a decoded Avro decimal: an unscaled two's-complement integer
// and the scale it was decoded with.
type Decimal struct {
	Unscaled *big.Int
	Scale    int
}

// DecimalReader returns a ValueReader for an Avro decimal logical type,
// reading its unscaled value through unscaled (typically a FixedReader or
// BytesReader) and pairing it with scale.
func DecimalReader(unscaled ValueReader, scale int) ValueReader {
	return decimalReader{unscaled: unscaled, scale: scale}
}

func (r decimalReader) Read(dec Decoder, _ any) (any, error) {
	v, err := r.unscaled.Read(dec, nil)
	if err != nil {
		return nil, err
	}
	var b []byte
	switch t := v.(type) {
	case []byte:
		b = t
	case *namedFixedValue:
		b = t.Bytes
	}
	return Decimal{Unscaled: decodeTwosComplement(b), Scale: r.scale}, nil
}

func (r decimalReader) Skip(dec Decoder) error { return r.unscaled.Skip(dec) }

// NewDecimalBytesReader dispatches to a fixed- or bytes-backed unscaled
// reader according to the writer's physical Avro type, mirroring
// ValueReaders.decimalBytesReader exactly. physicalType must be "fixed" or
// "bytes"; fixedLength is only consulted when physicalType is "fixed".
func NewDecimalBytesReader(physicalType string, fixedLength int) (ValueReader, error) {
	switch physicalType {
	case "fixed":
		return FixedReader(fixedLength), nil
	case "bytes":
		return BytesReader(), nil
	default:
		return nil, &InvalidDecimalEncodingError{SchemaType: physicalType}
	}
}

// decodeTwosComplement decodes a big-endian two's-complement byte sequence
// into a *big.Int, since big.Int.SetBytes always treats its input as
// unsigned magnitude.
func decodeTwosComplement(b []byte) *big.Int {
	out := new(big.Int)
	if len(b) == 0 {
		return out
	}
	if b[0]&0x80 == 0 {
		return out.SetBytes(b)
	}
	magnitude := make([]byte, len(b))
	carry := true
	for i := len(b) - 1; i >= 0; i-- {
		v := ^b[i]
		if carry {
			v++
			carry = v == 0
		}
		magnitude[i] = v
	}
	out.SetBytes(magnitude)
	return out.Neg(out)
}
