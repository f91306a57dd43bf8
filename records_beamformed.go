package sonartel

// Beamformed carries per-beam, per-sample complex (magnitude/phase)
// beamformed time series. CalibratedBeam shares the exact same wire
// shape after a calibration pass; only the record type differs (spec
// §3.3/§3.4), matching SideScan/CalibratedSideScan above.
type Beamformed struct {
	BeamCount   uint32
	SampleCount uint32
	Magnitude   []float32
	Phase       []float32
}

func DecodeBeamformedPayload(payload []byte, arr *VarArray) (Beamformed, error) {
	var b Beamformed
	c := NewCursor(payload)
	var err error
	if b.BeamCount, err = c.GetU32(); err != nil {
		return b, err
	}
	if b.SampleCount, err = c.GetU32(); err != nil {
		return b, err
	}
	n := int(b.BeamCount) * int(b.SampleCount)
	if err := arr.EnsureCapacity(n); err != nil {
		return b, err
	}
	b.Magnitude = make([]float32, n)
	for i := range b.Magnitude {
		if b.Magnitude[i], err = c.GetF32(); err != nil {
			return b, err
		}
	}
	b.Phase = make([]float32, n)
	for i := range b.Phase {
		if b.Phase[i], err = c.GetF32(); err != nil {
			return b, err
		}
	}
	return b, nil
}

func EncodeBeamformedPayload(b Beamformed) ([]byte, error) {
	n := int(b.BeamCount) * int(b.SampleCount)
	c := NewCursorSize(4 + 4 + 4*n + 4*n)
	if err := c.PutU32(b.BeamCount); err != nil {
		return nil, err
	}
	if err := c.PutU32(b.SampleCount); err != nil {
		return nil, err
	}
	for _, v := range b.Magnitude {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	for _, v := range b.Phase {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// CalibratedBeam is the Beamformed shape after calibration; decode/encode
// are identical, the record type alone marks the distinction.
type CalibratedBeam = Beamformed

func DecodeCalibratedBeamPayload(payload []byte, arr *VarArray) (CalibratedBeam, error) {
	return DecodeBeamformedPayload(payload, arr)
}

func EncodeCalibratedBeamPayload(b CalibratedBeam) ([]byte, error) {
	return EncodeBeamformedPayload(b)
}
