package avro

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/kr/pretty"
)

// PlanStep is one entry of a Plan: a reader to run, and the expected-schema
// position to project its result into. A nil Pos means "consume this
// writer field off the wire, but don't project it anywhere" — the shape
// every writer-only field takes once it's been matched against the
// expected schema.
type PlanStep struct {
	Pos    *int
	Reader ValueReader
}

// Plan is a fully resolved, reusable read plan for one record schema: the
// writer-order steps needed to walk the wire, plus the defaults that never
// touch the wire at all. Building a Plan is the expensive part of schema
// resolution; PlannedStructReader replays it on every record without
// revisiting field-id matching.
type Plan struct {
	Steps     []PlanStep
	Defaults  []PlanStep
	NumFields int
}

// ReaderForWriterField builds the ValueReader for one writer field,
// already resolved against the expected schema. When matched is false the
// field has no counterpart in the expected schema (expectedField is the
// zero value and pos is -1) and the returned reader only needs to support
// Skip.
type ReaderForWriterField func(writerField AvroField, matched bool, expectedField NestedField, pos int) (ValueReader, error)

// wrapReservedField special-cases the two reserved fields whose value isn't
// simply the writer's own column: ROW_ID and LAST_UPDATED_SEQUENCE_NUMBER
// gate an explicit per-row value (the reader the writer field's own Avro
// type produces) against a file-level constant, rather than letting that
// constant override the column outright (spec §4.7 step 2). The file-level
// base row id / sequence number travels in through constants, keyed by the
// same reserved field id, exactly like any other constant column — it's
// just consumed differently here than a plain override would be.
// LAST_UPDATED_SEQUENCE_NUMBER additionally needs the ROW_ID base row id in
// constants; without it the column is still consumed but reads as nil. ok
// is false for every other field id, telling the caller to fall back to
// plain constant-replace handling.
func wrapReservedField(fieldID int, explicit ValueReader, constants ConstantMap) (reader ValueReader, ok bool) {
	v, present := constants[fieldID]
	if !present {
		return nil, false
	}
	switch fieldID {
	case RowIDFieldID:
		if base, ok := v.(int64); ok {
			return RowIdReader(explicit, base), true
		}
	case LastUpdatedSequenceNumberField:
		if seq, ok := v.(int64); ok {
			if _, hasBase := constants[RowIDFieldID].(int64); !hasBase {
				return ReplaceWithConstantReader(explicit, nil), true
			}
			return LastUpdatedSeqReader(explicit, seq), true
		}
	}
	return nil, false
}

// BuildReadPlan walks writer in file order, matches each field against
// expected by field id, and asks build for the reader to run at each
// position. A matched field is then checked against constants: ROW_ID and
// LAST_UPDATED_SEQUENCE_NUMBER get gated through wrapReservedField, every
// other field id present in constants gets its decoded value overridden via
// ReplaceWithConstantReader. Expected fields the writer never wrote are
// filled from constants, then from the field's own initial default (run
// through convert, or used as-is if convert is nil); failing both, the
// reserved IS_DELETED field reads false and the reserved ROW_POSITION field
// gets a PositionReader; any other field becomes nil if Optional and a
// MissingRequiredFieldError otherwise.
func BuildReadPlan(writer WriterRecordSchema, expected StructType, build ReaderForWriterField, constants ConstantMap, convert DefaultConverter) (*Plan, error) {
	if convert == nil {
		convert = identityConvert
	}
	matched := make(map[int]bool, len(expected.Fields))
	steps := make([]PlanStep, 0, len(writer.Fields))
	for _, wf := range writer.Fields {
		pos, ok := expected.PosByID(wf.FieldID)
		if !ok {
			reader, err := build(wf, false, NestedField{}, -1)
			if err != nil {
				return nil, fmt.Errorf("avro: building skip reader for writer field %q: %w", wf.Name, err)
			}
			steps = append(steps, PlanStep{Reader: reader})
			continue
		}
		ef, _ := expected.FieldByID(wf.FieldID)
		reader, err := build(wf, true, ef, pos)
		if err != nil {
			return nil, fmt.Errorf("avro: building reader for field %q (id %d): %w", ef.Name, ef.ID, err)
		}
		if wrapped, ok := wrapReservedField(wf.FieldID, reader, constants); ok {
			reader = wrapped
		} else if v, ok := constants[ef.ID]; ok {
			reader = ReplaceWithConstantReader(reader, v)
		}
		p := pos
		steps = append(steps, PlanStep{Pos: &p, Reader: reader})
		matched[wf.FieldID] = true
	}

	var defaults []PlanStep
	for pos, ef := range expected.Fields {
		if matched[ef.ID] {
			continue
		}
		var value any
		if v, ok := constants[ef.ID]; ok {
			value = v
		} else if ef.HasInitialValue {
			value = convert(ef.Type, ef.InitialDefault)
		} else if ef.ID == IsDeletedFieldID {
			value = false
		} else if ef.ID == RowPositionFieldID {
			p := pos
			defaults = append(defaults, PlanStep{Pos: &p, Reader: PositionReader()})
			continue
		} else if ef.Optional {
			value = nil
		} else {
			return nil, newMissingRequiredFieldError(ef.ID, ef.Name, writer.Fields)
		}
		p := pos
		defaults = append(defaults, PlanStep{Pos: &p, Reader: ConstantReader(value)})
	}

	return &Plan{Steps: steps, Defaults: defaults, NumFields: len(expected.Fields)}, nil
}

// Projected returns the set of expected-schema positions this plan
// actually materializes, as a compact bitmap — useful for callers deciding
// whether a downstream column can be skipped entirely without running the
// plan at all.
func (p *Plan) Projected() *roaring.Bitmap {
	bm := roaring.New()
	for _, step := range p.Steps {
		if step.Pos != nil {
			bm.Add(uint32(*step.Pos))
		}
	}
	for _, step := range p.Defaults {
		if step.Pos != nil {
			bm.Add(uint32(*step.Pos))
		}
	}
	return bm
}

// GoString renders the plan with one line per step, for use in debug logs
// and test failure output; it deliberately doesn't implement String so
// that %v on a Plan stays terse while %#v (and direct GoString() calls)
// get the detail.
func (p *Plan) GoString() string {
	lines := make([]string, 0, len(p.Steps)+len(p.Defaults)+1)
	lines = append(lines, fmt.Sprintf("Plan{NumFields: %d}", p.NumFields))
	for i, step := range p.Steps {
		pos := "skip"
		if step.Pos != nil {
			pos = fmt.Sprintf("%d", *step.Pos)
		}
		lines = append(lines, fmt.Sprintf("  step[%d] -> %s: %s", i, pos, pretty.Sprint(step.Reader)))
	}
	for i, step := range p.Defaults {
		pos := "skip"
		if step.Pos != nil {
			pos = fmt.Sprintf("%d", *step.Pos)
		}
		lines = append(lines, fmt.Sprintf("  default[%d] -> %s: %s", i, pos, pretty.Sprint(step.Reader)))
	}
	out := lines[0]
	for _, l := range lines[1:] {
		out += "\n" + l
	}
	return out
}
