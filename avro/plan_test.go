package avro

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func intType() LogicalType { return stubType("int") }
func strType() LogicalType { return stubType("string") }

type stubType string

func (s stubType) String() string { return string(s) }

func buildPlan(t *testing.T, writer WriterRecordSchema, expected StructType, constants ConstantMap) *Plan {
	t.Helper()
	build := func(wf AvroField, matched bool, ef NestedField, pos int) (ValueReader, error) {
		if !matched {
			return LongReader(), nil
		}
		switch ef.Type.String() {
		case "string":
			return StringReader(), nil
		default:
			return LongReader(), nil
		}
	}
	plan, err := BuildReadPlan(writer, expected, build, constants, nil)
	require.NoError(t, err)
	return plan
}

func TestBuildReadPlanProjectsMatchedFields(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "id"}, {FieldID: 2, Name: "name"}}}
	expected := StructType{Fields: []NestedField{
		{ID: 2, Name: "name", Type: strType()},
		{ID: 1, Name: "id", Type: intType()},
	}}
	plan := buildPlan(t, writer, expected, nil)
	require.Len(t, plan.Steps, 2)
	require.NotNil(t, plan.Steps[0].Pos)
	require.Equal(t, 1, *plan.Steps[0].Pos) // writer field "id" (FieldID 1) projects to expected pos 1
	require.NotNil(t, plan.Steps[1].Pos)
	require.Equal(t, 0, *plan.Steps[1].Pos)
	require.Empty(t, plan.Defaults)
}

func TestBuildReadPlanDropsWriterOnlyField(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "id"}, {FieldID: 99, Name: "legacy"}}}
	expected := StructType{Fields: []NestedField{{ID: 1, Name: "id", Type: intType()}}}
	plan := buildPlan(t, writer, expected, nil)
	require.Len(t, plan.Steps, 2)
	require.Nil(t, plan.Steps[1].Pos)
}

func TestBuildReadPlanFillsConstant(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "id"}}}
	expected := StructType{Fields: []NestedField{
		{ID: 1, Name: "id", Type: intType()},
		{ID: 5, Name: "partition", Type: intType()},
	}}
	plan := buildPlan(t, writer, expected, ConstantMap{5: int64(7)})
	require.Len(t, plan.Defaults, 1)
	require.Equal(t, 1, *plan.Defaults[0].Pos)
	v, err := plan.Defaults[0].Reader.Read(nil, nil)
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func TestBuildReadPlanFillsInitialDefault(t *testing.T) {
	writer := WriterRecordSchema{}
	expected := StructType{Fields: []NestedField{
		{ID: 5, Name: "flag", Type: intType(), HasInitialValue: true, InitialDefault: int64(1)},
	}}
	plan := buildPlan(t, writer, expected, nil)
	require.Len(t, plan.Defaults, 1)
	v, err := plan.Defaults[0].Reader.Read(nil, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), v)
}

func TestBuildReadPlanOptionalFieldDefaultsToNil(t *testing.T) {
	writer := WriterRecordSchema{}
	expected := StructType{Fields: []NestedField{{ID: 5, Name: "maybe", Type: strType(), Optional: true}}}
	plan := buildPlan(t, writer, expected, nil)
	v, err := plan.Defaults[0].Reader.Read(nil, nil)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestBuildReadPlanMissingRequiredFieldErrors(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "idd"}}}
	expected := StructType{Fields: []NestedField{{ID: 5, Name: "id", Type: intType()}}}
	_, err := buildPlanExpectError(writer, expected)
	require.Error(t, err)
	var missing *MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "idd", missing.Suggestion)
}

func buildPlanExpectError(writer WriterRecordSchema, expected StructType) (*Plan, error) {
	build := func(wf AvroField, matched bool, ef NestedField, pos int) (ValueReader, error) {
		return LongReader(), nil
	}
	return BuildReadPlan(writer, expected, build, nil, nil)
}

func TestPlanProjectedBitmap(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "id"}}}
	expected := StructType{Fields: []NestedField{
		{ID: 1, Name: "id", Type: intType()},
		{ID: 5, Name: "partition", Type: intType()},
	}}
	plan := buildPlan(t, writer, expected, ConstantMap{5: int64(1)})
	bm := plan.Projected()
	require.True(t, bm.Contains(0))
	require.True(t, bm.Contains(1))
	require.EqualValues(t, 2, bm.GetCardinality())
}

// TestBuildReadPlanOverridesMatchedFieldWithConstant covers a field the
// writer DID write but whose value the expected schema still wants replaced
// outright (a renamed-and-reused field id, or a partition value the file's
// own column can't be trusted to carry correctly): the matched-field branch
// must consult constants too, not only the unmatched-defaults branch.
func TestBuildReadPlanOverridesMatchedFieldWithConstant(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "a"}, {FieldID: 99, Name: "p"}}}
	expected := StructType{Fields: []NestedField{
		{ID: 1, Name: "a", Type: intType()},
		{ID: 99, Name: "p", Type: intType()},
	}}
	plan := buildPlan(t, writer, expected, ConstantMap{99: int64(42)})
	require.Empty(t, plan.Defaults)

	var buf bytes.Buffer
	buf.Write(encodeLong(7))
	buf.Write(encodeLong(1234)) // whatever the writer put here must be overridden
	dec := NewBinaryDecoder(&buf)

	reader := NewPlannedStructReader(plan.Steps, plan.Defaults, nil, nil)
	v, err := reader.Read(dec, nil)
	require.NoError(t, err)
	s := v.(Struct)
	require.Equal(t, int64(7), s.Get(0))
	require.Equal(t, int64(42), s.Get(1))
}

// TestBuildReadPlanGatesMatchedRowID covers the case where the writer DOES
// carry an explicit per-row _row_id column (e.g. a row updated after the
// file's base row id was assigned): the matched branch must wrap it in
// RowIdReader, with the file's base row id supplied via constants under
// the same reserved field id, rather than treating the base row id as a
// flat override of the whole column.
func TestBuildReadPlanGatesMatchedRowID(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: RowIDFieldID, Name: "_row_id"}}}
	expected := StructType{Fields: []NestedField{
		{ID: RowIDFieldID, Name: "_row_id", Type: intType()},
	}}
	build := func(wf AvroField, matched bool, ef NestedField, pos int) (ValueReader, error) {
		return UnionReader([]ValueReader{NullReader(), LongReader()}), nil
	}
	plan, err := BuildReadPlan(writer, expected, build, ConstantMap{RowIDFieldID: int64(1000)}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.Write(encodeLong(0)) // null branch: no explicit override, derive from base+position
	dec := NewBinaryDecoder(&buf)

	reader := NewPlannedStructReader(plan.Steps, plan.Defaults, nil, nil)
	reader.SetRowPositionSupplier(func() int64 { return 4 })
	v, err := reader.Read(dec, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1004), v.(Struct).Get(0))
}

func TestPlannedStructReaderEndToEnd(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "id"}, {FieldID: 2, Name: "name"}}}
	expected := StructType{Fields: []NestedField{
		{ID: 1, Name: "id", Type: intType()},
		{ID: 2, Name: "name", Type: strType()},
		{ID: 5, Name: "partition", Type: intType()},
	}}
	plan := buildPlan(t, writer, expected, ConstantMap{5: int64(3)})

	var buf bytes.Buffer
	buf.Write(encodeLong(42))
	buf.Write(encodeBytesValue([]byte("bob")))
	dec := NewBinaryDecoder(&buf)

	reader := NewPlannedStructReader(plan.Steps, plan.Defaults, nil, nil)
	v, err := reader.Read(dec, nil)
	require.NoError(t, err)
	s := v.(Struct)
	require.Equal(t, int64(42), s.Get(0))
	require.Equal(t, "bob", s.Get(1))
	require.Equal(t, int64(3), s.Get(2))
}

func TestPlannedStructReaderSkipsUnprojectedWriterField(t *testing.T) {
	writer := WriterRecordSchema{Fields: []AvroField{{FieldID: 1, Name: "id"}, {FieldID: 99, Name: "legacy"}}}
	expected := StructType{Fields: []NestedField{{ID: 1, Name: "id", Type: intType()}}}
	plan := buildPlan(t, writer, expected, nil)

	var buf bytes.Buffer
	buf.Write(encodeLong(1))
	buf.Write(encodeLong(12345))
	dec := NewBinaryDecoder(&buf)

	reader := NewPlannedStructReader(plan.Steps, plan.Defaults, nil, nil)
	v, err := reader.Read(dec, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), v.(Struct).Get(0))
}

func TestSkipStructReader(t *testing.T) {
	steps := []PlanStep{{Reader: LongReader()}, {Reader: StringReader()}}
	var buf bytes.Buffer
	buf.Write(encodeLong(1))
	buf.Write(encodeBytesValue([]byte("x")))
	buf.Write(encodeLong(99))
	dec := NewBinaryDecoder(&buf)

	reader := NewSkipStructReader(steps)
	_, err := reader.Read(dec, nil)
	require.NoError(t, err)
	v, err := dec.ReadLong()
	require.NoError(t, err)
	require.Equal(t, int64(99), v)
}
