package avro

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// BinaryDecoder implements Decoder directly over a plain Avro binary byte
// stream: no container framing (no header, no per-block codec), and no
// schema resolution — it reads exactly the primitive values the writer
// schema says are next. PlannedStructReader is built for exactly this: the
// read plan already carries all the schema-resolution knowledge, so a
// BinaryDecoder only ever needs to read what's actually on the wire.
//
// It does not implement ResolvingDecoder, a decoder that understands both
// schemas at once, which is a heavier piece of machinery this package
// treats as an external collaborator rather than reimplementing. Given a
// BinaryDecoder, StructReader (the unplanned struct reader) reads every
// field in expected-schema order.
type BinaryDecoder struct {
	r *bufio.Reader
}

// NewBinaryDecoder returns a BinaryDecoder reading from r.
func NewBinaryDecoder(r io.Reader) *BinaryDecoder {
	return &BinaryDecoder{r: bufio.NewReader(r)}
}

func (d *BinaryDecoder) readVarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
		if shift > 63 {
			return 0, fmt.Errorf("avro: varint exceeds 64 bits")
		}
	}
	return result, nil
}

func zigzagDecode(n uint64) int64 {
	return int64(n>>1) ^ -(int64(n & 1))
}

func (d *BinaryDecoder) ReadLong() (int64, error) {
	v, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	return zigzagDecode(v), nil
}

func (d *BinaryDecoder) ReadInt() (int32, error) {
	v, err := d.ReadLong()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (d *BinaryDecoder) ReadBoolean() (bool, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadFloat and ReadDouble are little-endian per the Avro binary spec,
// unlike the rest of this decoder, which has no inherent byte order since
// everything else is either a single byte, a varint, or a raw run of
// caller-length-known bytes.
func (d *BinaryDecoder) ReadFloat() (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

func (d *BinaryDecoder) ReadDouble() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

func (d *BinaryDecoder) readLengthPrefixed(reuse []byte) ([]byte, error) {
	n, err := d.ReadLong()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("avro: negative byte length %d", n)
	}
	var buf []byte
	if int64(cap(reuse)) >= n {
		buf = reuse[:n]
	} else {
		buf = make([]byte, n)
	}
	if n > 0 {
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (d *BinaryDecoder) ReadBytes(reuse []byte) ([]byte, error) {
	return d.readLengthPrefixed(reuse)
}

func (d *BinaryDecoder) ReadString(reuse []byte) (string, error) {
	b, err := d.readLengthPrefixed(reuse)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *BinaryDecoder) ReadFixed(dst []byte) error {
	_, err := io.ReadFull(d.r, dst)
	return err
}

func (d *BinaryDecoder) ReadEnum() (int, error) {
	v, err := d.ReadLong()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func (d *BinaryDecoder) ReadIndex() (int, error) {
	v, err := d.ReadLong()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func (d *BinaryDecoder) ReadNull() error { return nil }

// readBlockCount reads one array/map block header: a zigzag long giving
// the block's item count, or, when negative, a count followed by the
// block's byte size (a writer hint this decoder doesn't need but must
// still consume).
func (d *BinaryDecoder) readBlockCount() (int64, error) {
	n, err := d.ReadLong()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		if _, err := d.ReadLong(); err != nil {
			return 0, err
		}
		return -n, nil
	}
	return n, nil
}

func (d *BinaryDecoder) ReadArrayStart() (int64, error) { return d.readBlockCount() }
func (d *BinaryDecoder) ArrayNext() (int64, error)       { return d.readBlockCount() }
func (d *BinaryDecoder) ReadMapStart() (int64, error)    { return d.readBlockCount() }
func (d *BinaryDecoder) MapNext() (int64, error)         { return d.readBlockCount() }
func (d *BinaryDecoder) SkipArray() (int64, error)       { return d.readBlockCount() }
func (d *BinaryDecoder) SkipMap() (int64, error)         { return d.readBlockCount() }

func (d *BinaryDecoder) skipBytes(n int64) error {
	if n < 0 {
		return fmt.Errorf("avro: negative byte length %d", n)
	}
	_, err := io.CopyN(io.Discard, d.r, n)
	return err
}

func (d *BinaryDecoder) SkipString() error {
	n, err := d.ReadLong()
	if err != nil {
		return err
	}
	return d.skipBytes(n)
}

func (d *BinaryDecoder) SkipBytes() error {
	n, err := d.ReadLong()
	if err != nil {
		return err
	}
	return d.skipBytes(n)
}

func (d *BinaryDecoder) SkipFixed(n int) error { return d.skipBytes(int64(n)) }
