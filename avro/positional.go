package avro

// positionReader synthesizes a row's ordinal position from an internal
// counter; it never consumes a byte from the wire. The counter is
// maintained here, not recomputed from the supplier on every Read: a
// supplier set once per batch (the documented usage pattern) gives the
// batch's starting offset, and each Read must advance past it on its own
// (spec §4.5). SetRowPositionSupplier consults the supplier exactly once,
// seeding counter := s()-1 so the very next Read returns exactly s().
type positionReader struct {
	currentPosition int64
}

// PositionReader returns a ValueReader for the reserved ROW_POSITION field.
// Absent any SetRowPositionSupplier call, it starts at 0.
func PositionReader() ValueReader { return &positionReader{currentPosition: -1} }

func (r *positionReader) Read(_ Decoder, _ any) (any, error) {
	r.currentPosition++
	return r.currentPosition, nil
}

func (r *positionReader) Skip(_ Decoder) error { return nil }

func (r *positionReader) SetRowPositionSupplier(s PositionSupplier) {
	r.currentPosition = s() - 1
}

// rowIdReader synthesizes the reserved ROW_ID field. An explicit per-row
// value written by the writer (e.g. a row that was updated after the file's
// base row id was assigned) always wins; otherwise the id is derived from
// the file's base row id plus the row's position offset. Like
// positionReader, the position offset comes from an internal counter
// seeded once by SetRowPositionSupplier and advanced on every Read, not
// recomputed from the supplier each call.
type rowIdReader struct {
	explicit        ValueReader
	baseRowID       int64
	currentPosition int64
}

// RowIdReader returns a ValueReader for the reserved ROW_ID field. explicit
// reads whatever optional column the writer used to carry a per-row
// override (typically a union of null and long); baseRowID is the data
// file's assigned starting row id.
func RowIdReader(explicit ValueReader, baseRowID int64) ValueReader {
	return &rowIdReader{explicit: explicit, baseRowID: baseRowID, currentPosition: -1}
}

func (r *rowIdReader) Read(dec Decoder, reuse any) (any, error) {
	v, err := r.explicit.Read(dec, reuse)
	if err != nil {
		return nil, err
	}
	r.currentPosition++
	if v != nil {
		return v, nil
	}
	return r.baseRowID + r.currentPosition, nil
}

func (r *rowIdReader) Skip(dec Decoder) error { return r.explicit.Skip(dec) }

func (r *rowIdReader) SetRowPositionSupplier(s PositionSupplier) {
	r.currentPosition = s() - 1
	if rp, ok := r.explicit.(SupportsRowPosition); ok {
		rp.SetRowPositionSupplier(s)
	}
}

// lastUpdatedSeqReader synthesizes the reserved LAST_UPDATED_SEQUENCE_NUMBER
// field. This is gating-only, mirroring the original LastUpdatedSeqNumberReader
// exactly: it stores nothing but the data file's own sequence number. An
// explicit per-row value gates the result to indicate the row changed after
// the file was committed; otherwise the file's sequence number stands,
// meaning the row is unchanged since the file was written.
type lastUpdatedSeqReader struct {
	explicit      ValueReader
	fileSeqNumber int64
}

// LastUpdatedSeqReader returns a ValueReader for the reserved
// LAST_UPDATED_SEQUENCE_NUMBER field.
func LastUpdatedSeqReader(explicit ValueReader, fileSeqNumber int64) ValueReader {
	return lastUpdatedSeqReader{explicit: explicit, fileSeqNumber: fileSeqNumber}
}

func (r lastUpdatedSeqReader) Read(dec Decoder, reuse any) (any, error) {
	v, err := r.explicit.Read(dec, reuse)
	if err != nil {
		return nil, err
	}
	if v != nil {
		return v, nil
	}
	return r.fileSeqNumber, nil
}

func (r lastUpdatedSeqReader) Skip(dec Decoder) error { return r.explicit.Skip(dec) }

// isDeletedReader synthesizes the reserved IS_DELETED field. Absent an
// explicit per-row marker, a row is assumed live.
type isDeletedReader struct {
	explicit ValueReader
}

// IsDeletedReader returns a ValueReader for the reserved IS_DELETED field.
func IsDeletedReader(explicit ValueReader) ValueReader {
	return isDeletedReader{explicit: explicit}
}

func (r isDeletedReader) Read(dec Decoder, reuse any) (any, error) {
	v, err := r.explicit.Read(dec, reuse)
	if err != nil {
		return nil, err
	}
	if v != nil {
		return v, nil
	}
	return false, nil
}

func (r isDeletedReader) Skip(dec Decoder) error { return r.explicit.Skip(dec) }
