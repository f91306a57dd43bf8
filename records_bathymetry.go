package sonartel

// Bathymetry is the per-beam depth solution for a ping: along/across
// track offsets and depth, one triple per beam (spec §3.4 ping-associated
// records, §4.3 variable-length array convention).
//
// Grounded on the teacher's ping.go Bathymetry record (the analogous
// along/across/depth triple GSF calls "beam array" data), generalized to
// this format's explicit beam-count-prefixed array framing instead of
// GSF's scale-factor-subrecord indirection.
type Bathymetry struct {
	BeamCount   uint32
	AlongTrack  []float32
	AcrossTrack []float32
	Depth       []float32
	Quality     []uint8

	// Record version 5 extended the layout with the acoustic frequency
	// and a per-beam vertical uncertainty estimate; older records leave
	// these zero (spec §4.3 version-gated fields).
	Frequency   float32
	Uncertainty []float32
}

func DecodeBathymetryPayload(payload []byte, version uint16, arr *VarArray) (Bathymetry, error) {
	var b Bathymetry
	c := NewCursor(payload)
	n, err := c.GetU32()
	if err != nil {
		return b, err
	}
	b.BeamCount = n
	if err := arr.EnsureCapacity(int(n)); err != nil {
		return b, err
	}
	for _, dst := range []*[]float32{&b.AlongTrack, &b.AcrossTrack, &b.Depth} {
		vals := make([]float32, n)
		for i := range vals {
			if vals[i], err = c.GetF32(); err != nil {
				return b, err
			}
		}
		*dst = vals
	}
	b.Quality = make([]uint8, n)
	for i := range b.Quality {
		if b.Quality[i], err = c.GetU8(); err != nil {
			return b, err
		}
	}
	if version >= 5 {
		if b.Frequency, err = c.GetF32(); err != nil {
			return b, err
		}
		b.Uncertainty = make([]float32, n)
		for i := range b.Uncertainty {
			if b.Uncertainty[i], err = c.GetF32(); err != nil {
				return b, err
			}
		}
	} else {
		b.Frequency = 0
		b.Uncertainty = nil
	}
	return b, nil
}

func EncodeBathymetryPayload(b Bathymetry, version uint16) ([]byte, error) {
	size := 4 + 4*3*len(b.AlongTrack) + len(b.Quality)
	if version >= 5 {
		size += 4 + 4*len(b.AlongTrack)
	}
	c := NewCursorSize(size)
	if err := c.PutU32(b.BeamCount); err != nil {
		return nil, err
	}
	for _, arr := range [][]float32{b.AlongTrack, b.AcrossTrack, b.Depth} {
		for _, v := range arr {
			if err := c.PutF32(v); err != nil {
				return nil, err
			}
		}
	}
	for _, q := range b.Quality {
		if err := c.PutU8(q); err != nil {
			return nil, err
		}
	}
	if version >= 5 {
		if err := c.PutF32(b.Frequency); err != nil {
			return nil, err
		}
		u := b.Uncertainty
		if u == nil {
			u = make([]float32, len(b.AlongTrack))
		}
		for _, v := range u {
			if err := c.PutF32(v); err != nil {
				return nil, err
			}
		}
	}
	return c.Bytes(), nil
}

// VerticalDepth is the single nadir depth estimate computed for a ping,
// independent of the full beam set.
type VerticalDepth struct {
	Latitude  float64
	Longitude float64
	Depth     float32
}

func DecodeVerticalDepthPayload(payload []byte) (VerticalDepth, error) {
	var v VerticalDepth
	c := NewCursor(payload)
	var err error
	if v.Latitude, err = c.GetF64(); err != nil {
		return v, err
	}
	if v.Longitude, err = c.GetF64(); err != nil {
		return v, err
	}
	if v.Depth, err = c.GetF32(); err != nil {
		return v, err
	}
	return v, nil
}

func EncodeVerticalDepthPayload(v VerticalDepth) ([]byte, error) {
	c := NewCursorSize(8 + 8 + 4)
	if err := c.PutF64(v.Latitude); err != nil {
		return nil, err
	}
	if err := c.PutF64(v.Longitude); err != nil {
		return nil, err
	}
	if err := c.PutF32(v.Depth); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// TVG is the time-varied-gain curve applied during reception, one gain
// sample per range step.
type TVG struct {
	SampleCount uint32
	Gain        []float32
}

func DecodeTVGPayload(payload []byte, arr *VarArray) (TVG, error) {
	var t TVG
	c := NewCursor(payload)
	n, err := c.GetU32()
	if err != nil {
		return t, err
	}
	t.SampleCount = n
	if err := arr.EnsureCapacity(int(n)); err != nil {
		return t, err
	}
	t.Gain = make([]float32, n)
	for i := range t.Gain {
		if t.Gain[i], err = c.GetF32(); err != nil {
			return t, err
		}
	}
	return t, nil
}

func EncodeTVGPayload(t TVG) ([]byte, error) {
	c := NewCursorSize(4 + 4*len(t.Gain))
	if err := c.PutU32(t.SampleCount); err != nil {
		return nil, err
	}
	for _, v := range t.Gain {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// PingMotion is the vessel motion (roll/pitch/heave/heading) sampled at
// transmit time and attached directly to the ping, distinct from the
// asynchronous Attitude stream.
type PingMotion struct {
	Roll    float32
	Pitch   float32
	Heave   float32
	Heading float32
}

func DecodePingMotionPayload(payload []byte) (PingMotion, error) {
	var m PingMotion
	c := NewCursor(payload)
	var err error
	if m.Roll, err = c.GetF32(); err != nil {
		return m, err
	}
	if m.Pitch, err = c.GetF32(); err != nil {
		return m, err
	}
	if m.Heave, err = c.GetF32(); err != nil {
		return m, err
	}
	if m.Heading, err = c.GetF32(); err != nil {
		return m, err
	}
	return m, nil
}

func EncodePingMotionPayload(m PingMotion) ([]byte, error) {
	c := NewCursorSize(4 * 4)
	for _, v := range []float32{m.Roll, m.Pitch, m.Heave, m.Heading} {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}
