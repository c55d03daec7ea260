package avro

import "go.uber.org/zap"

// PlannedStructReader decodes a record using a precomputed, writer-order
// list of steps produced by BuildReadPlan (spec §5). Because schema
// resolution already happened when the plan was built, it needs only a
// plain Decoder — no ResolvingDecoder field-order lookup at read time.
//
// Steps with a nil Pos are consumed (their bytes read off the wire) but
// never projected into the result; this is how writer fields dropped by
// the expected schema get skipped without a second, schema-unaware pass.
// Defaults are steps whose reader never touches the wire (constants), run
// once per record in addition to the writer-order steps.
type PlannedStructReader struct {
	steps    []PlanStep
	defaults []PlanStep
	factory  StructFactory
	logger   *zap.Logger
}

// NewPlannedStructReader returns a PlannedStructReader. steps must be in
// writer field order; defaults are applied unconditionally, in the order
// given, and are expected to carry readers that ignore the decoder
// (ConstantReader, PositionReader, and similar). logger may be nil, in
// which case the reuse-fallback path logs nothing (zap.NewNop()).
func NewPlannedStructReader(steps, defaults []PlanStep, factory StructFactory, logger *zap.Logger) *PlannedStructReader {
	s := make([]PlanStep, len(steps))
	copy(s, steps)
	d := make([]PlanStep, len(defaults))
	copy(d, defaults)
	if factory == nil {
		factory = NewGenericStruct
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannedStructReader{steps: s, defaults: d, factory: factory, logger: logger}
}

func (r *PlannedStructReader) Read(dec Decoder, reuse any) (any, error) {
	result := r.reuseOrCreate(reuse)
	for _, step := range r.steps {
		if step.Pos == nil {
			if err := step.Reader.Skip(dec); err != nil {
				return nil, err
			}
			continue
		}
		v, err := step.Reader.Read(dec, result.Get(*step.Pos))
		if err != nil {
			return nil, err
		}
		result.Set(*step.Pos, v)
	}
	for _, step := range r.defaults {
		v, err := step.Reader.Read(dec, nil)
		if err != nil {
			return nil, err
		}
		result.Set(*step.Pos, v)
	}
	return result, nil
}

func (r *PlannedStructReader) Skip(dec Decoder) error {
	for _, step := range r.steps {
		if err := step.Reader.Skip(dec); err != nil {
			return err
		}
	}
	return nil
}

// SetRowPositionSupplier propagates the supplier to every step (projected
// or not) and every default that supports it.
func (r *PlannedStructReader) SetRowPositionSupplier(s PositionSupplier) {
	for _, step := range r.steps {
		if rp, ok := step.Reader.(SupportsRowPosition); ok {
			rp.SetRowPositionSupplier(s)
		}
	}
	for _, step := range r.defaults {
		if rp, ok := step.Reader.(SupportsRowPosition); ok {
			rp.SetRowPositionSupplier(s)
		}
	}
}

func (r *PlannedStructReader) reuseOrCreate(reuse any) Struct {
	if s, ok := reuse.(Struct); ok {
		return s
	}
	numFields := len(r.defaults)
	for _, step := range r.steps {
		if step.Pos != nil {
			numFields++
		}
	}
	r.logger.Debug("avro: reuse hint unusable, allocating fresh struct", zap.Int("fields", numFields))
	return r.factory(numFields)
}

// SkipStructReader decodes a nested struct that the plan determined is
// entirely unprojected: every field must still be consumed off the wire in
// writer order, but no result is ever materialized.
type SkipStructReader struct {
	steps []PlanStep
}

// NewSkipStructReader returns a SkipStructReader over steps in writer
// field order.
func NewSkipStructReader(steps []PlanStep) *SkipStructReader {
	s := make([]PlanStep, len(steps))
	copy(s, steps)
	return &SkipStructReader{steps: s}
}

func (r *SkipStructReader) Read(dec Decoder, _ any) (any, error) {
	if err := r.Skip(dec); err != nil {
		return nil, err
	}
	return nil, nil
}

func (r *SkipStructReader) Skip(dec Decoder) error {
	for _, step := range r.steps {
		if err := step.Reader.Skip(dec); err != nil {
			return err
		}
	}
	return nil
}
