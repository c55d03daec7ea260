package avro

// unionReader reads an integer branch index and dispatches to the reader
// at that index. Skip must also read the index before skipping the chosen
// branch, since an Avro union does not encode its own length.
type unionReader struct {
	branches []ValueReader
}

// UnionReader returns a ValueReader for an Avro union over branches, in
// declared branch order.
func UnionReader(branches []ValueReader) ValueReader {
	cp := make([]ValueReader, len(branches))
	copy(cp, branches)
	return unionReader{branches: cp}
}

func (r unionReader) Read(dec Decoder, reuse any) (any, error) {
	idx, err := dec.ReadIndex()
	if err != nil {
		return nil, err
	}
	return r.branches[idx].Read(dec, reuse)
}

func (r unionReader) Skip(dec Decoder) error {
	idx, err := dec.ReadIndex()
	if err != nil {
		return err
	}
	return r.branches[idx].Skip(dec)
}

// SetRowPositionSupplier propagates the supplier to any branch that
// supports row position (a union branch may itself be a struct containing
// _pos).
func (r unionReader) SetRowPositionSupplier(s PositionSupplier) {
	for _, b := range r.branches {
		if rp, ok := b.(SupportsRowPosition); ok {
			rp.SetRowPositionSupplier(s)
		}
	}
}
