package avro

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRoundtripPlannedStructWithNestedContainers decodes a record shaped
// like a typical Iceberg data-file row: a plain field, a projected-away
// writer field, a constant partition value, a list, and a map.
func TestRoundtripPlannedStructWithNestedContainers(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{
		{FieldID: 1, Name: "id"},
		{FieldID: 2, Name: "deprecated_note"},
		{FieldID: 3, Name: "tags"},
		{FieldID: 4, Name: "attrs"},
	}}
	expected := StructType{Fields: []NestedField{
		{ID: 1, Name: "id", Type: intType()},
		{ID: 3, Name: "tags", Type: stubType("list")},
		{ID: 4, Name: "attrs", Type: stubType("map")},
		{ID: 10, Name: "partition", Type: intType()},
	}}

	build := func(wf AvroField, matched bool, ef NestedField, pos int) (ValueReader, error) {
		if !matched {
			return StringReader(), nil
		}
		switch wf.FieldID {
		case 1:
			return LongReader(), nil
		case 3:
			return ArrayReader(StringReader()), nil
		case 4:
			return MapReader(LongReader()), nil
		}
		return LongReader(), nil
	}
	plan, err := BuildReadPlan(writer, expected, build, ConstantMap{10: int64(99)}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.Write(encodeLong(7))                     // id
	buf.Write(encodeBytesValue([]byte("unused"))) // deprecated_note, consumed not projected
	buf.Write(encodeLong(1))                      // tags: one chunk of 1
	buf.Write(encodeBytesValue([]byte("alpha")))
	buf.Write(encodeLong(0)) // tags terminator
	buf.Write(encodeLong(1)) // attrs: one chunk of 1
	buf.Write(encodeBytesValue([]byte("k")))
	buf.Write(encodeLong(3))
	buf.Write(encodeLong(0)) // attrs terminator
	dec := NewBinaryDecoder(&buf)

	reader := NewPlannedStructReader(plan.Steps, plan.Defaults, nil, nil)
	v, err := reader.Read(dec, nil)
	require.NoError(t, err)
	s := v.(Struct)

	require.Equal(t, int64(7), s.Get(0))
	require.Equal(t, []any{"alpha"}, s.Get(1))
	m := s.Get(2).(*OrderedMap)
	require.Equal(t, []any{"k"}, m.Keys)
	require.Equal(t, []any{int64(3)}, m.Values)
	require.Equal(t, int64(99), s.Get(3))
}

// TestRoundtripReservedFieldsWithPosition exercises PositionReader, RowIdReader
// and LastUpdatedSeqReader wired together into a single plan, the shape a
// position-delete or row-lineage-aware data file projection takes.
func TestRoundtripReservedFieldsWithPosition(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "id"}}}
	posReader := PositionReader()
	rowIDReader := RowIdReader(ConstantReader(nil), 1000)
	seqReader := LastUpdatedSeqReader(ConstantReader(nil), 42)

	expected := StructType{Fields: []NestedField{
		{ID: 1, Name: "id", Type: intType()},
		{ID: RowPositionFieldID, Name: "_pos", Type: intType(), Optional: true},
		{ID: RowIDFieldID, Name: "_row_id", Type: intType(), Optional: true},
		{ID: LastUpdatedSequenceNumberField, Name: "_last_updated_sequence_number", Type: intType(), Optional: true},
	}}

	build := func(wf AvroField, matched bool, ef NestedField, pos int) (ValueReader, error) {
		return LongReader(), nil
	}
	plan, err := BuildReadPlan(writer, expected, build, nil, nil)
	require.NoError(t, err)
	// Splice in the test's own reserved-field readers for the three
	// unmatched defaults, in place of the ones the builder produced for them
	// (a fresh PositionReader for _pos, ConstantReader(nil) for the two
	// optional fields that have no constants here), the way a
	// schema-resolution layer above this package would.
	for i := range plan.Defaults {
		switch expected.Fields[*plan.Defaults[i].Pos].ID {
		case RowPositionFieldID:
			plan.Defaults[i].Reader = posReader
		case RowIDFieldID:
			plan.Defaults[i].Reader = rowIDReader
		case LastUpdatedSequenceNumberField:
			plan.Defaults[i].Reader = seqReader
		}
	}

	reader := NewPlannedStructReader(plan.Steps, plan.Defaults, nil, nil)
	reader.SetRowPositionSupplier(func() int64 { return 6 })

	var buf bytes.Buffer
	buf.Write(encodeLong(55))
	buf.Write(encodeLong(56))
	dec := NewBinaryDecoder(&buf)

	v, err := reader.Read(dec, nil)
	require.NoError(t, err)
	s := v.(Struct)
	require.Equal(t, int64(55), s.Get(0))
	require.Equal(t, int64(6), s.Get(1))
	require.Equal(t, int64(1006), s.Get(2))
	require.Equal(t, int64(42), s.Get(3))

	// A second row in the same batch must advance _pos/_row_id on its own;
	// the supplier was only consulted once, to seed the batch's start.
	v, err = reader.Read(dec, nil)
	require.NoError(t, err)
	s = v.(Struct)
	require.Equal(t, int64(56), s.Get(0))
	require.Equal(t, int64(7), s.Get(1))
	require.Equal(t, int64(1007), s.Get(2))
	require.Equal(t, int64(42), s.Get(3))
}

func TestRoundtripPlanCache(t *testing.T) {
	cache, err := NewPlanCache(4, nil, nil)
	require.NoError(t, err)

	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "id"}}}
	expected := StructType{Fields: []NestedField{{ID: 1, Name: "id", Type: intType()}}}
	build := func(wf AvroField, matched bool, ef NestedField, pos int) (ValueReader, error) {
		return LongReader(), nil
	}

	builds := 0
	buildFn := func() (*Plan, error) {
		builds++
		return BuildReadPlan(writer, expected, build, nil, nil)
	}

	p1, err := cache.GetOrBuild("k", buildFn)
	require.NoError(t, err)
	p2, err := cache.GetOrBuild("k", buildFn)
	require.NoError(t, err)
	require.Same(t, p1, p2)
	require.Equal(t, 1, builds)
}
