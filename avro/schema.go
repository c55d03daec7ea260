package avro

// Reserved metadata field ids, matching the real Iceberg reserved id space.
// RowIDFieldID and LastUpdatedSequenceNumberField match apache/iceberg-go's
// MetadataColumns (RowIDFieldID = 2147483540, LastUpdatedSequenceNumberFieldID
// = 2147483539); that file doesn't define row-position or is-deleted
// constants, so RowPositionFieldID and IsDeletedFieldID here instead follow
// the wider Iceberg spec's reserved-id convention of counting down from
// Integer.MAX_VALUE. These ids are never assigned to user columns.
const (
	RowPositionFieldID             = 2147483545
	RowIDFieldID                   = 2147483540
	LastUpdatedSequenceNumberField = 2147483539
	IsDeletedFieldID               = 2147483546
)

// LogicalType is the minimal surface this package needs from an expected
// field's logical type: enough to drive default-value conversion. Callers
// typically have a richer schema type (e.g. an Iceberg Type) and can adapt
// it to this interface with a one-line wrapper.
type LogicalType interface {
	String() string
}

// NestedField is one field of an expected StructType: a stable field id,
// a logical type, nullability, and an optional initial default.
type NestedField struct {
	ID              int
	Name            string
	Type            LogicalType
	Optional        bool
	InitialDefault  any
	HasInitialValue bool
}

// StructType is the expected, ordered projection a caller wants
// materialized. It may differ from the writer schema in field presence,
// order, and type.
type StructType struct {
	Fields []NestedField
}

// PosByID returns the positional index of the field with the given id, or
// (-1, false) if it is not present in the expected schema.
func (s StructType) PosByID(id int) (int, bool) {
	for i, f := range s.Fields {
		if f.ID == id {
			return i, true
		}
	}
	return -1, false
}

// FieldByID returns the field with the given id, or a zero NestedField and
// false if not present.
func (s StructType) FieldByID(id int) (NestedField, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return NestedField{}, false
}

// AvroField describes one field of a writer record schema: its field id
// (read from the Avro "field-id" property), its name (used for "did you
// mean" suggestions in MissingRequiredFieldError), and an opaque WriterType
// handle a caller can stash its own writer-side type representation in —
// this package never inspects it, only threads it back through plan
// building so callers can construct the right skip/field reader for it.
type AvroField struct {
	FieldID    int
	Name       string
	WriterType any
}

// WriterRecordSchema is the ordered list of fields a writer schema records,
// each carrying the field id assigned to it via Avro field metadata.
type WriterRecordSchema struct {
	Fields []AvroField
}

// ConstantMap supplies externally provided values for fields identified by
// field id — partition columns, metadata columns, identity transforms —
// taking precedence over whatever is physically present in the file.
type ConstantMap map[int]any

// DefaultConverter materializes an expected field's raw initial_default
// value into the value model used by the rest of the reader tree (e.g.
// converting a raw default number into a boxed int64). The zero value
// (nil) behaves as the identity conversion.
type DefaultConverter func(t LogicalType, raw any) any

func identityConvert(_ LogicalType, raw any) any { return raw }
