package avro

// arrayReader decodes an Avro array: a sequence of chunks terminated by a
// zero-length chunk. A caller-supplied []any reuse container is cleared
// (its backing array reused for the new contents) and its prior contents,
// captured before clearing, are handed to the element reader positionally
// as its own reuse hint (spec §4.3).
type arrayReader struct {
	elem ValueReader
}

// ArrayReader returns a ValueReader for an Avro array of elem.
func ArrayReader(elem ValueReader) ValueReader { return arrayReader{elem: elem} }

func (r arrayReader) Read(dec Decoder, reuse any) (any, error) {
	var prior []any
	if s, ok := reuse.([]any); ok {
		prior = s
	}
	var result []any
	if prior != nil {
		result = prior[:0]
	} else {
		result = []any{}
	}

	chunkLength, err := dec.ReadArrayStart()
	if err != nil {
		return nil, err
	}
	priorIdx := 0
	for chunkLength > 0 {
		for i := int64(0); i < chunkLength; i++ {
			var priorElem any
			if priorIdx < len(prior) {
				priorElem = prior[priorIdx]
				priorIdx++
			}
			v, err := r.elem.Read(dec, priorElem)
			if err != nil {
				return nil, err
			}
			result = append(result, v)
		}
		chunkLength, err = dec.ArrayNext()
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r arrayReader) Skip(dec Decoder) error {
	itemsToSkip, err := dec.SkipArray()
	if err != nil {
		return err
	}
	for itemsToSkip != 0 {
		for i := int64(0); i < itemsToSkip; i++ {
			if err := r.elem.Skip(dec); err != nil {
				return err
			}
		}
		itemsToSkip, err = dec.SkipArray()
		if err != nil {
			return err
		}
	}
	return nil
}

func (r arrayReader) SetRowPositionSupplier(s PositionSupplier) {
	if rp, ok := r.elem.(SupportsRowPosition); ok {
		rp.SetRowPositionSupplier(s)
	}
}
