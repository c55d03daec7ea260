package avro

// OrderedMap is the reuse container and result type for MapReader and
// ArrayMapReader. It preserves insertion order the way the original
// LinkedHashMap-backed implementation does, which matters because map
// values are handed to the value reader positionally as reuse hints —
// order has to be deterministic for that hinting to mean anything.
type OrderedMap struct {
	Keys   []any
	Values []any
}

func (m *OrderedMap) put(k, v any) {
	m.Keys = append(m.Keys, k)
	m.Values = append(m.Values, v)
}

// mapReader decodes a true Avro map: chunks of (key string, value) pairs
// terminated by a zero-length chunk. Keys are always plain strings.
type mapReader struct {
	value ValueReader
}

// MapReader returns a ValueReader for an Avro map with string keys and
// values decoded by value.
func MapReader(value ValueReader) ValueReader { return mapReader{value: value} }

func (r mapReader) Read(dec Decoder, reuse any) (any, error) {
	var prior *OrderedMap
	if m, ok := reuse.(*OrderedMap); ok {
		prior = m
	}
	result := &OrderedMap{}
	if prior != nil {
		result.Keys = prior.Keys[:0]
		result.Values = prior.Values[:0]
	}

	chunkLength, err := dec.ReadMapStart()
	if err != nil {
		return nil, err
	}
	priorIdx := 0
	for chunkLength > 0 {
		for i := int64(0); i < chunkLength; i++ {
			key, err := dec.ReadString(nil)
			if err != nil {
				return nil, err
			}
			var priorValue any
			if prior != nil && priorIdx < len(prior.Values) {
				priorValue = prior.Values[priorIdx]
				priorIdx++
			}
			val, err := r.value.Read(dec, priorValue)
			if err != nil {
				return nil, err
			}
			result.put(key, val)
		}
		chunkLength, err = dec.MapNext()
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r mapReader) Skip(dec Decoder) error {
	entriesToSkip, err := dec.SkipMap()
	if err != nil {
		return err
	}
	for entriesToSkip != 0 {
		for i := int64(0); i < entriesToSkip; i++ {
			if err := dec.SkipString(); err != nil {
				return err
			}
			if err := r.value.Skip(dec); err != nil {
				return err
			}
		}
		entriesToSkip, err = dec.SkipMap()
		if err != nil {
			return err
		}
	}
	return nil
}

func (r mapReader) SetRowPositionSupplier(s PositionSupplier) {
	if rp, ok := r.value.(SupportsRowPosition); ok {
		rp.SetRowPositionSupplier(s)
	}
}

// arrayMapReader decodes a map that is physically written as an Avro array
// of two-field key/value records, a writer-schema shape Iceberg permits for
// maps whose logical key type isn't a plain string (spec §4.3). Each
// element is read through an inner struct-shaped key/value reader pair.
type arrayMapReader struct {
	key   ValueReader
	value ValueReader
}

// ArrayMapReader returns a ValueReader for a map physically encoded as an
// array of {key, value} records.
func ArrayMapReader(key, value ValueReader) ValueReader {
	return arrayMapReader{key: key, value: value}
}

func (r arrayMapReader) Read(dec Decoder, reuse any) (any, error) {
	var prior *OrderedMap
	if m, ok := reuse.(*OrderedMap); ok {
		prior = m
	}
	result := &OrderedMap{}
	if prior != nil {
		result.Keys = prior.Keys[:0]
		result.Values = prior.Values[:0]
	}

	chunkLength, err := dec.ReadArrayStart()
	if err != nil {
		return nil, err
	}
	priorIdx := 0
	for chunkLength > 0 {
		for i := int64(0); i < chunkLength; i++ {
			var priorKey, priorValue any
			if prior != nil && priorIdx < len(prior.Keys) {
				priorKey = prior.Keys[priorIdx]
				priorValue = prior.Values[priorIdx]
				priorIdx++
			}
			key, err := r.key.Read(dec, priorKey)
			if err != nil {
				return nil, err
			}
			val, err := r.value.Read(dec, priorValue)
			if err != nil {
				return nil, err
			}
			result.put(key, val)
		}
		chunkLength, err = dec.ArrayNext()
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r arrayMapReader) Skip(dec Decoder) error {
	itemsToSkip, err := dec.SkipArray()
	if err != nil {
		return err
	}
	for itemsToSkip != 0 {
		for i := int64(0); i < itemsToSkip; i++ {
			if err := r.key.Skip(dec); err != nil {
				return err
			}
			if err := r.value.Skip(dec); err != nil {
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

func (r arrayMapReader) SetRowPositionSupplier(s PositionSupplier) {
	if rp, ok := r.key.(SupportsRowPosition); ok {
		rp.SetRowPositionSupplier(s)
	}
	if rp, ok := r.value.(SupportsRowPosition); ok {
		rp.SetRowPositionSupplier(s)
	}
}
