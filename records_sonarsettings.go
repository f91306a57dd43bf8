package sonartel

// SonarSettings captures the transmit/receive configuration in force for
// the ping it accompanies (spec §3.4 ping-associated records).
//
// Grounded on the teacher's ping.go SonarSettings record, trimmed to the
// fields every multibeam sonar reports regardless of vendor.
type SonarSettings struct {
	Frequency        float32
	SampleRate       float32
	ReceiverBandwidth float32
	TxPulseWidth     float32
	TxPulseTypeID    uint32
	TxPower          float32
	SoundVelocity    float32
	Spreading        float32
	Absorption       float32
	MaxPortWidth     float32
	MaxStarboardWidth float32
}

func DecodeSonarSettingsPayload(payload []byte) (SonarSettings, error) {
	var s SonarSettings
	c := NewCursor(payload)
	fields := []*float32{
		&s.Frequency, &s.SampleRate, &s.ReceiverBandwidth, &s.TxPulseWidth,
	}
	for _, f := range fields {
		v, err := c.GetF32()
		if err != nil {
			return s, err
		}
		*f = v
	}
	txType, err := c.GetU32()
	if err != nil {
		return s, err
	}
	s.TxPulseTypeID = txType
	rest := []*float32{
		&s.TxPower, &s.SoundVelocity, &s.Spreading, &s.Absorption,
		&s.MaxPortWidth, &s.MaxStarboardWidth,
	}
	for _, f := range rest {
		v, err := c.GetF32()
		if err != nil {
			return s, err
		}
		*f = v
	}
	return s, nil
}

func EncodeSonarSettingsPayload(s SonarSettings) ([]byte, error) {
	c := NewCursorSize(4*4 + 4 + 4*6)
	for _, v := range []float32{s.Frequency, s.SampleRate, s.ReceiverBandwidth, s.TxPulseWidth} {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	if err := c.PutU32(s.TxPulseTypeID); err != nil {
		return nil, err
	}
	for _, v := range []float32{s.TxPower, s.SoundVelocity, s.Spreading, s.Absorption, s.MaxPortWidth, s.MaxStarboardWidth} {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// MatchFilter describes the receive matched-filter bandwidth applied
// before beamforming.
type MatchFilter struct {
	ApplyFilter bool
	FilterFreq  float32
	FilterBW    float32
}

func DecodeMatchFilterPayload(payload []byte) (MatchFilter, error) {
	var m MatchFilter
	c := NewCursor(payload)
	applied, err := c.GetU8()
	if err != nil {
		return m, err
	}
	m.ApplyFilter = applied != 0
	if m.FilterFreq, err = c.GetF32(); err != nil {
		return m, err
	}
	if m.FilterBW, err = c.GetF32(); err != nil {
		return m, err
	}
	return m, nil
}

func EncodeMatchFilterPayload(m MatchFilter) ([]byte, error) {
	c := NewCursorSize(1 + 4 + 4)
	applied := uint8(0)
	if m.ApplyFilter {
		applied = 1
	}
	if err := c.PutU8(applied); err != nil {
		return nil, err
	}
	if err := c.PutF32(m.FilterFreq); err != nil {
		return nil, err
	}
	if err := c.PutF32(m.FilterBW); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// BeamGeometry carries the per-beam pointing angles for a ping: one
// variable-length array sized by BeamCount (spec §3.4/§4.3 variable-
// length array convention).
type BeamGeometry struct {
	BeamCount    uint32
	AlongAngles  []float32
	AcrossAngles []float32
}

func DecodeBeamGeometryPayload(payload []byte, arr *VarArray) (BeamGeometry, error) {
	var g BeamGeometry
	c := NewCursor(payload)
	n, err := c.GetU32()
	if err != nil {
		return g, err
	}
	g.BeamCount = n
	if err := arr.EnsureCapacity(int(n)); err != nil {
		return g, err
	}
	g.AlongAngles = make([]float32, n)
	for i := range g.AlongAngles {
		if g.AlongAngles[i], err = c.GetF32(); err != nil {
			return g, err
		}
	}
	g.AcrossAngles = make([]float32, n)
	for i := range g.AcrossAngles {
		if g.AcrossAngles[i], err = c.GetF32(); err != nil {
			return g, err
		}
	}
	return g, nil
}

func EncodeBeamGeometryPayload(g BeamGeometry) ([]byte, error) {
	c := NewCursorSize(4 + 4*len(g.AlongAngles) + 4*len(g.AcrossAngles))
	if err := c.PutU32(g.BeamCount); err != nil {
		return nil, err
	}
	for _, v := range g.AlongAngles {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	for _, v := range g.AcrossAngles {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// DetectionDataSetup describes detector configuration in force for the
// beams of a ping (thresholding, gate widths).
type DetectionDataSetup struct {
	DetectionAlgorithm uint32
	MinGateDepth       float32
	MaxGateDepth       float32
	MinGateRange       float32
	MaxGateRange       float32
}

func DecodeDetectionDataSetupPayload(payload []byte) (DetectionDataSetup, error) {
	var d DetectionDataSetup
	c := NewCursor(payload)
	alg, err := c.GetU32()
	if err != nil {
		return d, err
	}
	d.DetectionAlgorithm = alg
	for _, f := range []*float32{&d.MinGateDepth, &d.MaxGateDepth, &d.MinGateRange, &d.MaxGateRange} {
		v, err := c.GetF32()
		if err != nil {
			return d, err
		}
		*f = v
	}
	return d, nil
}

func EncodeDetectionDataSetupPayload(d DetectionDataSetup) ([]byte, error) {
	c := NewCursorSize(4 + 4*4)
	if err := c.PutU32(d.DetectionAlgorithm); err != nil {
		return nil, err
	}
	for _, v := range []float32{d.MinGateDepth, d.MaxGateDepth, d.MinGateRange, d.MaxGateRange} {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// AdaptiveGate carries the per-beam adaptive bottom-tracking gate window
// computed for a ping.
type AdaptiveGate struct {
	BeamCount int
	GateStart []float32
	GateEnd   []float32
}

func DecodeAdaptiveGatePayload(payload []byte, arr *VarArray) (AdaptiveGate, error) {
	var g AdaptiveGate
	c := NewCursor(payload)
	n, err := c.GetU32()
	if err != nil {
		return g, err
	}
	g.BeamCount = int(n)
	if err := arr.EnsureCapacity(int(n)); err != nil {
		return g, err
	}
	g.GateStart = make([]float32, n)
	for i := range g.GateStart {
		if g.GateStart[i], err = c.GetF32(); err != nil {
			return g, err
		}
	}
	g.GateEnd = make([]float32, n)
	for i := range g.GateEnd {
		if g.GateEnd[i], err = c.GetF32(); err != nil {
			return g, err
		}
	}
	return g, nil
}

func EncodeAdaptiveGatePayload(g AdaptiveGate) ([]byte, error) {
	c := NewCursorSize(4 + 4*len(g.GateStart) + 4*len(g.GateEnd))
	if err := c.PutU32(uint32(g.BeamCount)); err != nil {
		return nil, err
	}
	for _, v := range g.GateStart {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	for _, v := range g.GateEnd {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}
