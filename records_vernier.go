package sonartel

// VernierProcessingData is the sub-sample interpolation refinement
// applied to a beam's range estimate; the raw and filtered variants share
// this wire shape (spec §3.3/§3.4).
type VernierProcessingData struct {
	BeamCount      uint32
	RangeOffset    []float32
	QualityFactor  []float32
}

func DecodeVernierProcessingDataPayload(payload []byte, arr *VarArray) (VernierProcessingData, error) {
	var v VernierProcessingData
	c := NewCursor(payload)
	n, err := c.GetU32()
	if err != nil {
		return v, err
	}
	v.BeamCount = n
	if err := arr.EnsureCapacity(int(n)); err != nil {
		return v, err
	}
	v.RangeOffset = make([]float32, n)
	for i := range v.RangeOffset {
		if v.RangeOffset[i], err = c.GetF32(); err != nil {
			return v, err
		}
	}
	v.QualityFactor = make([]float32, n)
	for i := range v.QualityFactor {
		if v.QualityFactor[i], err = c.GetF32(); err != nil {
			return v, err
		}
	}
	return v, nil
}

func EncodeVernierProcessingDataPayload(v VernierProcessingData) ([]byte, error) {
	c := NewCursorSize(4 + 4*len(v.RangeOffset) + 4*len(v.QualityFactor))
	if err := c.PutU32(v.BeamCount); err != nil {
		return nil, err
	}
	for _, x := range v.RangeOffset {
		if err := c.PutF32(x); err != nil {
			return nil, err
		}
	}
	for _, x := range v.QualityFactor {
		if err := c.PutF32(x); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}
