package avro

import "go.uber.org/zap"

// Struct is the output row abstraction a StructReader or PlannedStructReader
// writes into. Implementations decide their own storage; the reader only
// ever calls Get (to recover a prior value as a reuse hint) and Set (to
// place a freshly decoded value).
type Struct interface {
	Get(pos int) any
	Set(pos int, v any)
}

// StructFactory builds a fresh Struct with numFields positions, used when a
// reuse hint is absent or the wrong type/shape to reuse directly.
type StructFactory func(numFields int) Struct

// GenericStruct is a slice-backed Struct, adequate for callers with no
// richer row representation of their own.
type GenericStruct struct {
	values []any
}

// NewGenericStruct returns a GenericStruct with numFields positions, all
// initially nil.
func NewGenericStruct(numFields int) Struct {
	return &GenericStruct{values: make([]any, numFields)}
}

func (s *GenericStruct) Get(pos int) any   { return s.values[pos] }
func (s *GenericStruct) Set(pos int, v any) { s.values[pos] = v }

// Values returns the underlying backing slice, indexed by expected-schema
// position.
func (s *GenericStruct) Values() []any { return s.values }

// StructReader decodes a record without a precomputed read plan. When dec
// is a ResolvingDecoder, it reports field by field which expected-schema
// position the writer's next field corresponds to (skipping writer-only
// fields internally); expected positions the writer never visits — because
// the writer schema lacks that field entirely — are filled by invoking
// their reader directly, which is how constant/default readers (spec §4.4)
// get their value without ever touching the wire. Without a ResolvingDecoder,
// StructReader falls back to reading every field directly in expected-schema
// order, on the assumption that the writer and expected schemas walk the
// wire identically (spec §4.6's mandatory physical-order path) — it's not
// an error case, just the cheaper path taken when no schema reconciliation
// is needed.
type StructReader struct {
	readers        []ValueReader // indexed by expected-schema position
	fieldIDs       []int         // same indexing; 0 where the position has no known field id
	constants      ConstantMap
	factory        StructFactory
	logger         *zap.Logger
	rowPositionPos int // expected-schema position of the reserved ROW_POSITION field, or -1
}

// NewStructReader returns a StructReader. readers and fieldIDs must be
// indexed by expected-schema position and the same length; fieldIDs may be
// nil if the caller has no constant overrides or reserved fields to track.
// constants, if non-nil, overwrites the decoded value at any position whose
// field id it contains, after the wire walk completes — mirroring the
// ReplaceWithConstantReader wrap BuildReadPlan applies to a planned reader,
// but as a single post-read pass since this reader has no per-field wrap
// point. factory builds a fresh Struct when no usable reuse hint is
// supplied; logger may be nil, in which case the reuse-fallback path logs
// nothing (zap.NewNop()).
func NewStructReader(readers []ValueReader, fieldIDs []int, constants ConstantMap, factory StructFactory, logger *zap.Logger) *StructReader {
	cp := make([]ValueReader, len(readers))
	copy(cp, readers)
	ids := make([]int, len(readers))
	copy(ids, fieldIDs)
	if factory == nil {
		factory = NewGenericStruct
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &StructReader{readers: cp, fieldIDs: ids, constants: constants, factory: factory, logger: logger, rowPositionPos: -1}
	for pos, id := range ids {
		if id == RowPositionFieldID {
			r.rowPositionPos = pos
		}
	}
	return r
}

func (r *StructReader) Read(dec Decoder, reuse any) (any, error) {
	result := r.reuseOrCreate(reuse)
	seen := make([]bool, len(r.readers))
	if rd, ok := dec.(ResolvingDecoder); ok {
		order, err := rd.ReadFieldOrder()
		if err != nil {
			return nil, err
		}
		for _, wf := range order {
			if wf.Pos < 0 || wf.Pos >= len(r.readers) {
				continue
			}
			v, err := r.readers[wf.Pos].Read(dec, result.Get(wf.Pos))
			if err != nil {
				return nil, err
			}
			result.Set(wf.Pos, v)
			seen[wf.Pos] = true
		}
	} else {
		for pos, fieldReader := range r.readers {
			v, err := fieldReader.Read(dec, result.Get(pos))
			if err != nil {
				return nil, err
			}
			result.Set(pos, v)
			seen[pos] = true
		}
	}
	for pos, fieldReader := range r.readers {
		if seen[pos] {
			continue
		}
		v, err := fieldReader.Read(dec, result.Get(pos))
		if err != nil {
			return nil, err
		}
		result.Set(pos, v)
	}
	r.applyConstants(result)
	return result, nil
}

func (r *StructReader) Skip(dec Decoder) error {
	if rd, ok := dec.(ResolvingDecoder); ok {
		order, err := rd.ReadFieldOrder()
		if err != nil {
			return err
		}
		for _, wf := range order {
			if wf.Pos < 0 || wf.Pos >= len(r.readers) {
				continue
			}
			if err := r.readers[wf.Pos].Skip(dec); err != nil {
				return err
			}
		}
		return nil
	}
	for _, fieldReader := range r.readers {
		if err := fieldReader.Skip(dec); err != nil {
			return err
		}
	}
	return nil
}

// applyConstants overwrites every position whose field id has a constant
// registered, and synthesizes IS_DELETED=false for a reserved field left
// nil by the wire walk (no writer column, no constant) — the unplanned
// reader's equivalent of the default the planned builder's Defaults step
// would otherwise have supplied.
func (r *StructReader) applyConstants(result Struct) {
	for pos, id := range r.fieldIDs {
		if v, ok := r.constants[id]; ok {
			result.Set(pos, v)
		} else if id == IsDeletedFieldID && result.Get(pos) == nil {
			result.Set(pos, false)
		}
	}
}

// SetRowPositionSupplier propagates the supplier to every field reader that
// supports it. If the reserved ROW_POSITION position was tracked at
// construction and its reader isn't already position-aware — the common
// case, since an unplanned caller usually has no reason to have built a
// real PositionReader for it up front — a PositionReader is hot-swapped in
// first, mirroring the Java original's two-constructor handling of this
// field (ValueReaders.java:1114-1217).
func (r *StructReader) SetRowPositionSupplier(s PositionSupplier) {
	if r.rowPositionPos >= 0 {
		if _, ok := r.readers[r.rowPositionPos].(SupportsRowPosition); !ok {
			r.readers[r.rowPositionPos] = PositionReader()
		}
	}
	for _, fieldReader := range r.readers {
		if rp, ok := fieldReader.(SupportsRowPosition); ok {
			rp.SetRowPositionSupplier(s)
		}
	}
}

func (r *StructReader) reuseOrCreate(reuse any) Struct {
	if s, ok := reuse.(Struct); ok {
		return s
	}
	r.logger.Debug("avro: reuse hint unusable, allocating fresh struct", zap.Int("fields", len(r.readers)))
	return r.factory(len(r.readers))
}
