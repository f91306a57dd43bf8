package sonartel

// Position is a timestamped navigation fix (spec §3.3 GLOSSARY: Position,
// Navigation). Navigation shares this exact shape: a sonar that separates
// "raw GPS fix" from "filtered navigation solution" uses the two record
// types to distinguish them, the fields are identical.
type Position struct {
	Latitude  float64
	Longitude float64
	Height    float32
}

func DecodePositionPayload(payload []byte) (Position, error) {
	var p Position
	c := NewCursor(payload)
	var err error
	if p.Latitude, err = c.GetF64(); err != nil {
		return p, err
	}
	if p.Longitude, err = c.GetF64(); err != nil {
		return p, err
	}
	if p.Height, err = c.GetF32(); err != nil {
		return p, err
	}
	return p, nil
}

func EncodePositionPayload(p Position) ([]byte, error) {
	c := NewCursorSize(8 + 8 + 4)
	if err := c.PutF64(p.Latitude); err != nil {
		return nil, err
	}
	if err := c.PutF64(p.Longitude); err != nil {
		return nil, err
	}
	if err := c.PutF32(p.Height); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// Attitude is a timestamped roll/pitch/heave sample (spec §3.3 GLOSSARY:
// Attitude, RollPitchHeave). Both records share this shape;
// CustomAttitude has its own multi-channel type (see CustomAttitude
// below).
type Attitude struct {
	Roll     float32
	Pitch    float32
	Heave    float32
	SensorID uint16 // 0 for the primary sensor
}

func DecodeAttitudePayload(payload []byte) (Attitude, error) {
	var a Attitude
	c := NewCursor(payload)
	var err error
	if a.Roll, err = c.GetF32(); err != nil {
		return a, err
	}
	if a.Pitch, err = c.GetF32(); err != nil {
		return a, err
	}
	if a.Heave, err = c.GetF32(); err != nil {
		return a, err
	}
	if a.SensorID, err = c.GetU16(); err != nil {
		return a, err
	}
	return a, nil
}

func EncodeAttitudePayload(a Attitude) ([]byte, error) {
	c := NewCursorSize(4 + 4 + 4 + 2)
	if err := c.PutF32(a.Roll); err != nil {
		return nil, err
	}
	if err := c.PutF32(a.Pitch); err != nil {
		return nil, err
	}
	if err := c.PutF32(a.Heave); err != nil {
		return nil, err
	}
	if err := c.PutU16(a.SensorID); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// Tide is a timestamped tide-gauge correction (spec §3.3 GLOSSARY: Tide).
type Tide struct {
	Height float32
}

func DecodeTidePayload(payload []byte) (Tide, error) {
	c := NewCursor(payload)
	h, err := c.GetF32()
	return Tide{Height: h}, err
}

func EncodeTidePayload(t Tide) ([]byte, error) {
	c := NewCursorSize(4)
	if err := c.PutF32(t.Height); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// Altitude is a timestamped height-above-bottom sample from an altimeter.
type Altitude struct {
	Height float32
}

func DecodeAltitudePayload(payload []byte) (Altitude, error) {
	c := NewCursor(payload)
	h, err := c.GetF32()
	return Altitude{Height: h}, err
}

func EncodeAltitudePayload(a Altitude) ([]byte, error) {
	c := NewCursorSize(4)
	if err := c.PutF32(a.Height); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// MotionOverGround is a timestamped speed/course-over-ground sample.
type MotionOverGround struct {
	SpeedMS float32
	CourseDeg float32
}

func DecodeMotionOverGroundPayload(payload []byte) (MotionOverGround, error) {
	var m MotionOverGround
	c := NewCursor(payload)
	var err error
	if m.SpeedMS, err = c.GetF32(); err != nil {
		return m, err
	}
	if m.CourseDeg, err = c.GetF32(); err != nil {
		return m, err
	}
	return m, nil
}

func EncodeMotionOverGroundPayload(m MotionOverGround) ([]byte, error) {
	c := NewCursorSize(4 + 4)
	if err := c.PutF32(m.SpeedMS); err != nil {
		return nil, err
	}
	if err := c.PutF32(m.CourseDeg); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// Depth is a timestamped single-beam echosounder depth, independent of
// the multibeam ping stream.
type Depth struct {
	Depth float32
}

func DecodeDepthPayload(payload []byte) (Depth, error) {
	c := NewCursor(payload)
	d, err := c.GetF32()
	return Depth{Depth: d}, err
}

func EncodeDepthPayload(d Depth) ([]byte, error) {
	c := NewCursorSize(4)
	if err := c.PutF32(d.Depth); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// CTD is a timestamped conductivity/temperature/depth cast sample.
type CTD struct {
	Conductivity float32
	Temperature  float32
	Depth        float32
}

func DecodeCTDPayload(payload []byte) (CTD, error) {
	var c2 CTD
	c := NewCursor(payload)
	var err error
	if c2.Conductivity, err = c.GetF32(); err != nil {
		return c2, err
	}
	if c2.Temperature, err = c.GetF32(); err != nil {
		return c2, err
	}
	if c2.Depth, err = c.GetF32(); err != nil {
		return c2, err
	}
	return c2, nil
}

func EncodeCTDPayload(c2 CTD) ([]byte, error) {
	c := NewCursorSize(4 * 3)
	for _, v := range []float32{c2.Conductivity, c2.Temperature, c2.Depth} {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// Geodesy describes the ellipsoid/datum in force for positions in the
// file: a short fixed text tag.
type Geodesy struct {
	Ellipsoid string
	Datum     string
}

const geodesyFieldLen = 32

func DecodeGeodesyPayload(payload []byte) (Geodesy, error) {
	var g Geodesy
	c := NewCursor(payload)
	e, err := c.GetBytes(geodesyFieldLen)
	if err != nil {
		return g, err
	}
	g.Ellipsoid = trimNulString(e)
	d, err := c.GetBytes(geodesyFieldLen)
	if err != nil {
		return g, err
	}
	g.Datum = trimNulString(d)
	return g, nil
}

func EncodeGeodesyPayload(g Geodesy) ([]byte, error) {
	c := NewCursorSize(geodesyFieldLen * 2)
	e := make([]byte, geodesyFieldLen)
	copy(e, g.Ellipsoid)
	if err := c.PutBytes(e); err != nil {
		return nil, err
	}
	d := make([]byte, geodesyFieldLen)
	copy(d, g.Datum)
	if err := c.PutBytes(d); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// Heading is a timestamped gyrocompass heading sample.
type Heading struct {
	HeadingDeg float32
}

func DecodeHeadingPayload(payload []byte) (Heading, error) {
	c := NewCursor(payload)
	h, err := c.GetF32()
	return Heading{HeadingDeg: h}, err
}

func EncodeHeadingPayload(h Heading) ([]byte, error) {
	c := NewCursorSize(4)
	if err := c.PutF32(h.HeadingDeg); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// SurveyLine marks the start or end of a named survey line.
type SurveyLine struct {
	Name string
}

const surveyLineNameLen = 64

func DecodeSurveyLinePayload(payload []byte) (SurveyLine, error) {
	var s SurveyLine
	c := NewCursor(payload)
	b, err := c.GetBytes(surveyLineNameLen)
	if err != nil {
		return s, err
	}
	s.Name = trimNulString(b)
	return s, nil
}

func EncodeSurveyLinePayload(s SurveyLine) ([]byte, error) {
	c := NewCursorSize(surveyLineNameLen)
	b := make([]byte, surveyLineNameLen)
	copy(b, s.Name)
	if err := c.PutBytes(b); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// SoundVelocityProfile is a cast of sound-velocity-versus-depth samples
// (spec §3.3 GLOSSARY: SVP).
type SoundVelocityProfile struct {
	Latitude  float64
	Longitude float64
	Count     uint32
	Depth     []float32
	Velocity  []float32
}

func DecodeSoundVelocityProfilePayload(payload []byte, arr *VarArray) (SoundVelocityProfile, error) {
	var s SoundVelocityProfile
	c := NewCursor(payload)
	var err error
	if s.Latitude, err = c.GetF64(); err != nil {
		return s, err
	}
	if s.Longitude, err = c.GetF64(); err != nil {
		return s, err
	}
	if s.Count, err = c.GetU32(); err != nil {
		return s, err
	}
	if err := arr.EnsureCapacity(int(s.Count)); err != nil {
		return s, err
	}
	s.Depth = make([]float32, s.Count)
	for i := range s.Depth {
		if s.Depth[i], err = c.GetF32(); err != nil {
			return s, err
		}
	}
	s.Velocity = make([]float32, s.Count)
	for i := range s.Velocity {
		if s.Velocity[i], err = c.GetF32(); err != nil {
			return s, err
		}
	}
	return s, nil
}

func EncodeSoundVelocityProfilePayload(s SoundVelocityProfile) ([]byte, error) {
	c := NewCursorSize(8 + 8 + 4 + 4*len(s.Depth) + 4*len(s.Velocity))
	if err := c.PutF64(s.Latitude); err != nil {
		return nil, err
	}
	if err := c.PutF64(s.Longitude); err != nil {
		return nil, err
	}
	if err := c.PutU32(s.Count); err != nil {
		return nil, err
	}
	for _, v := range s.Depth {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	for _, v := range s.Velocity {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// CustomAttitude field-mask bits: each set bit declares one channel's
// parallel sample array is present on the wire, in bit order (spec §4.3
// bitmask-selected fields). Rate channels report degrees per second.
const (
	CustomAttitudeFieldPitch uint8 = 1 << iota
	CustomAttitudeFieldRoll
	CustomAttitudeFieldHeave
	CustomAttitudeFieldHeading
	CustomAttitudeFieldPitchRate
	CustomAttitudeFieldRollRate
	CustomAttitudeFieldHeaveRate
	CustomAttitudeFieldHeadingRate
)

// CustomAttitude is the multi-channel attitude time series a vessel's
// secondary motion sensors report: a field mask names which channels
// were sampled, and one parallel array per set bit follows, all of
// SampleCount length at SamplingRate Hz.
type CustomAttitude struct {
	FieldMask    uint8
	SensorID     uint8
	SampleCount  uint16
	SamplingRate float32

	Pitch       []float32
	Roll        []float32
	Heave       []float32
	Heading     []float32
	PitchRate   []float32
	RollRate    []float32
	HeaveRate   []float32
	HeadingRate []float32
}

// channels lists the channel arrays in wire (bit) order.
func (a *CustomAttitude) channels() []struct {
	bit uint8
	arr *[]float32
} {
	return []struct {
		bit uint8
		arr *[]float32
	}{
		{CustomAttitudeFieldPitch, &a.Pitch},
		{CustomAttitudeFieldRoll, &a.Roll},
		{CustomAttitudeFieldHeave, &a.Heave},
		{CustomAttitudeFieldHeading, &a.Heading},
		{CustomAttitudeFieldPitchRate, &a.PitchRate},
		{CustomAttitudeFieldRollRate, &a.RollRate},
		{CustomAttitudeFieldHeaveRate, &a.HeaveRate},
		{CustomAttitudeFieldHeadingRate, &a.HeadingRate},
	}
}

func DecodeCustomAttitudePayload(payload []byte, arr *VarArray) (CustomAttitude, error) {
	var a CustomAttitude
	c := NewCursor(payload)
	var err error
	if a.FieldMask, err = c.GetU8(); err != nil {
		return a, err
	}
	if a.SensorID, err = c.GetU8(); err != nil {
		return a, err
	}
	if a.SampleCount, err = c.GetU16(); err != nil {
		return a, err
	}
	if a.SamplingRate, err = c.GetF32(); err != nil {
		return a, err
	}
	if err := arr.EnsureCapacity(int(a.SampleCount)); err != nil {
		return a, err
	}
	for _, ch := range a.channels() {
		if a.FieldMask&ch.bit == 0 {
			*ch.arr = nil
			continue
		}
		vals := make([]float32, a.SampleCount)
		for i := range vals {
			if vals[i], err = c.GetF32(); err != nil {
				return a, err
			}
		}
		*ch.arr = vals
	}
	return a, nil
}

func EncodeCustomAttitudePayload(a CustomAttitude) ([]byte, error) {
	present := 0
	for _, ch := range a.channels() {
		if a.FieldMask&ch.bit != 0 {
			present++
		}
	}
	c := NewCursorSize(1 + 1 + 2 + 4 + 4*present*int(a.SampleCount))
	if err := c.PutU8(a.FieldMask); err != nil {
		return nil, err
	}
	if err := c.PutU8(a.SensorID); err != nil {
		return nil, err
	}
	if err := c.PutU16(a.SampleCount); err != nil {
		return nil, err
	}
	if err := c.PutF32(a.SamplingRate); err != nil {
		return nil, err
	}
	for _, ch := range a.channels() {
		if a.FieldMask&ch.bit == 0 {
			continue
		}
		for _, v := range *ch.arr {
			if err := c.PutF32(v); err != nil {
				return nil, err
			}
		}
	}
	return c.Bytes(), nil
}
