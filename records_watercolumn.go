package sonartel

// SampleType is the packed nibble field a water-column record uses to
// declare which sample planes are present and how wide each one is:
// bits 0-3 amplitude, bits 4-7 phase, bits 8-11 I&Q. Each nibble is 0
// (plane absent), 1 (8-bit), 2 (16-bit) or 3 (32-bit); the I&Q plane
// stores an I and a Q value per sample, so its nibble counts double.
//
// Grounded on the teacher's ping.go subrecord-ID nibble handling
// (GSF packs beam-array scale/offset selectors the same way).
type SampleType uint16

func (s SampleType) AmpNibble() uint8   { return uint8(s & 0xF) }
func (s SampleType) PhaseNibble() uint8 { return uint8((s >> 4) & 0xF) }
func (s SampleType) IQNibble() uint8    { return uint8((s >> 8) & 0xF) }

// nibbleBytes maps a plane nibble to its per-value byte width.
func nibbleBytes(n uint8) int {
	switch n {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 4
	default:
		return 0
	}
}

// nibbleWidth maps a plane nibble to the Samples variant it selects.
// Only called for non-zero nibbles.
func nibbleWidth(n uint8) SampleWidth {
	switch n {
	case 1:
		return SampleWidthU8
	case 2:
		return SampleWidthU16
	default:
		return SampleWidthU32
	}
}

// BytesPerSample is the total wire width of one sample across every
// plane the nibbles declare present. I&Q carries two values per sample.
func (s SampleType) BytesPerSample() int {
	return nibbleBytes(s.AmpNibble()) +
		nibbleBytes(s.PhaseNibble()) +
		2*nibbleBytes(s.IQNibble())
}

// WaterColumnBeam is one beam's slice of the water-column volume: the
// beam's receive-array index plus whichever sample planes the record's
// SampleType declares. Absent planes hold the zero Samples value.
type WaterColumnBeam struct {
	BeamID    uint16
	Amplitude Samples
	Phase     Samples
	I         Samples
	Q         Samples
}

// WaterColumn is the full per-beam, per-range-sample acoustic
// backscatter volume for a ping, the largest per-ping payload this
// format carries. The SampleType nibbles select which planes each beam
// stores and at what width; decode and encode both switch on them.
type WaterColumn struct {
	SoundVelocity float32
	SamplingRate  float32
	TxAngle       float32
	BeamCount     uint16
	SampleCount   uint32
	SampleType    SampleType
	Beams         []WaterColumnBeam
}

func decodeWCPlane(c *Cursor, nibble uint8, n int) (Samples, error) {
	if nibbleBytes(nibble) == 0 {
		return Samples{}, nil
	}
	return DecodeSamples(c, nibbleWidth(nibble), n)
}

func encodeWCPlane(c *Cursor, nibble uint8, s Samples) error {
	if nibbleBytes(nibble) == 0 {
		return nil
	}
	return EncodeSamples(c, s)
}

func DecodeWaterColumnPayload(payload []byte, arr *VarArray) (WaterColumn, error) {
	var w WaterColumn
	c := NewCursor(payload)
	var err error
	if w.SoundVelocity, err = c.GetF32(); err != nil {
		return w, err
	}
	if w.SamplingRate, err = c.GetF32(); err != nil {
		return w, err
	}
	if w.TxAngle, err = c.GetF32(); err != nil {
		return w, err
	}
	if w.BeamCount, err = c.GetU16(); err != nil {
		return w, err
	}
	if w.SampleCount, err = c.GetU32(); err != nil {
		return w, err
	}
	st, err := c.GetU16()
	if err != nil {
		return w, err
	}
	w.SampleType = SampleType(st)
	if err := arr.EnsureCapacity(int(w.BeamCount) * int(w.SampleCount)); err != nil {
		return w, err
	}
	n := int(w.SampleCount)
	w.Beams = make([]WaterColumnBeam, w.BeamCount)
	for i := range w.Beams {
		b := &w.Beams[i]
		if b.BeamID, err = c.GetU16(); err != nil {
			return w, err
		}
		if b.Amplitude, err = decodeWCPlane(c, w.SampleType.AmpNibble(), n); err != nil {
			return w, err
		}
		if b.Phase, err = decodeWCPlane(c, w.SampleType.PhaseNibble(), n); err != nil {
			return w, err
		}
		// I&Q samples are laid out on the wire as n I values followed by
		// n Q values per beam.
		if b.I, err = decodeWCPlane(c, w.SampleType.IQNibble(), n); err != nil {
			return w, err
		}
		if b.Q, err = decodeWCPlane(c, w.SampleType.IQNibble(), n); err != nil {
			return w, err
		}
	}
	return w, nil
}

func EncodeWaterColumnPayload(w WaterColumn) ([]byte, error) {
	perBeam := 2 + w.SampleType.BytesPerSample()*int(w.SampleCount)
	c := NewCursorSize(4 + 4 + 4 + 2 + 4 + 2 + perBeam*int(w.BeamCount))
	for _, v := range []float32{w.SoundVelocity, w.SamplingRate, w.TxAngle} {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	if err := c.PutU16(w.BeamCount); err != nil {
		return nil, err
	}
	if err := c.PutU32(w.SampleCount); err != nil {
		return nil, err
	}
	if err := c.PutU16(uint16(w.SampleType)); err != nil {
		return nil, err
	}
	for _, b := range w.Beams {
		if err := c.PutU16(b.BeamID); err != nil {
			return nil, err
		}
		if err := encodeWCPlane(c, w.SampleType.AmpNibble(), b.Amplitude); err != nil {
			return nil, err
		}
		if err := encodeWCPlane(c, w.SampleType.PhaseNibble(), b.Phase); err != nil {
			return nil, err
		}
		if err := encodeWCPlane(c, w.SampleType.IQNibble(), b.I); err != nil {
			return nil, err
		}
		if err := encodeWCPlane(c, w.SampleType.IQNibble(), b.Q); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// CompressedWaterColumn flag bits (spec wire layout): the flags word
// selects both the sample encoding and the per-beam header layout, so
// the decoder must interpret it before it can even frame the beams.
const (
	CWCFlagMagnitudeOnly     uint16 = 1 << 0
	CWCFlagCompressed8Bit    uint16 = 1 << 1
	CWCFlag32BitSamples      uint16 = 1 << 12
	CWCFlagCompressionFactor uint16 = 1 << 13
	CWCFlagSegmentNumbers    uint16 = 1 << 14
	CWCFlagFirstSampleRxDelay uint16 = 1 << 15

	cwcDownsampleDivisorShift = 4
	cwcDownsampleKindShift    = 8
	cwcNibbleMask             = 0xF
)

// CompressedWaterColumnBeam is one beam of the compressed volume. The
// SegmentNumber byte exists on the wire only when CWCFlagSegmentNumbers
// is set; FirstSample is the receiver delay in samples when
// CWCFlagFirstSampleRxDelay is set, otherwise the index of the first
// retained sample after gating.
type CompressedWaterColumnBeam struct {
	BeamID        uint16
	SegmentNumber uint8
	FirstSample   uint32
	SampleCount   uint32
	Magnitude     Samples
	Phase         Samples
}

// CompressedWaterColumn is the reduced-rate variant of WaterColumn: the
// sonar head downsamples, optionally drops phase, and optionally
// requantizes to 8 bits before transmit. Beyond the framing governed by
// Flags, the sample values themselves are carried as-is.
type CompressedWaterColumn struct {
	SoundVelocity     float32
	SamplingRate      float32
	Flags             uint16
	CompressionFactor float32 // valid only when CWCFlagCompressionFactor is set
	BeamCount         uint16
	Beams             []CompressedWaterColumnBeam
}

func (w CompressedWaterColumn) MagnitudeOnly() bool {
	return w.Flags&CWCFlagMagnitudeOnly != 0
}

func (w CompressedWaterColumn) DownsampleDivisor() int {
	d := int(w.Flags>>cwcDownsampleDivisorShift) & cwcNibbleMask
	if d == 0 {
		return 1
	}
	return d
}

func (w CompressedWaterColumn) DownsampleKind() int {
	return int(w.Flags>>cwcDownsampleKindShift) & cwcNibbleMask
}

func (w CompressedWaterColumn) FirstSampleIsRxDelay() bool {
	return w.Flags&CWCFlagFirstSampleRxDelay != 0
}

// sampleWidth resolves the magnitude/phase width the flags select:
// 8-bit when requantized, 32-bit in extended mode, 16-bit otherwise.
func (w CompressedWaterColumn) sampleWidth() SampleWidth {
	switch {
	case w.Flags&CWCFlagCompressed8Bit != 0:
		return SampleWidthU8
	case w.Flags&CWCFlag32BitSamples != 0:
		return SampleWidthU32
	default:
		return SampleWidthU16
	}
}

func DecodeCompressedWaterColumnPayload(payload []byte, arr *VarArray) (CompressedWaterColumn, error) {
	var w CompressedWaterColumn
	c := NewCursor(payload)
	var err error
	if w.SoundVelocity, err = c.GetF32(); err != nil {
		return w, err
	}
	if w.SamplingRate, err = c.GetF32(); err != nil {
		return w, err
	}
	if w.Flags, err = c.GetU16(); err != nil {
		return w, err
	}
	if w.Flags&CWCFlagCompressionFactor != 0 {
		if w.CompressionFactor, err = c.GetF32(); err != nil {
			return w, err
		}
	} else {
		w.CompressionFactor = 0
	}
	if w.BeamCount, err = c.GetU16(); err != nil {
		return w, err
	}
	width := w.sampleWidth()
	w.Beams = make([]CompressedWaterColumnBeam, w.BeamCount)
	total := 0
	for i := range w.Beams {
		b := &w.Beams[i]
		if b.BeamID, err = c.GetU16(); err != nil {
			return w, err
		}
		// Per-beam header is one byte longer when segment numbers ride
		// along (spec: bit 14 changes the per-beam header size).
		if w.Flags&CWCFlagSegmentNumbers != 0 {
			if b.SegmentNumber, err = c.GetU8(); err != nil {
				return w, err
			}
		} else {
			b.SegmentNumber = 0
		}
		if b.FirstSample, err = c.GetU32(); err != nil {
			return w, err
		}
		if b.SampleCount, err = c.GetU32(); err != nil {
			return w, err
		}
		total += int(b.SampleCount)
		if b.Magnitude, err = DecodeSamples(c, width, int(b.SampleCount)); err != nil {
			return w, err
		}
		if !w.MagnitudeOnly() {
			if b.Phase, err = DecodeSamples(c, width, int(b.SampleCount)); err != nil {
				return w, err
			}
		} else {
			b.Phase = Samples{}
		}
	}
	if err := arr.EnsureCapacity(total); err != nil {
		return w, err
	}
	return w, nil
}

func EncodeCompressedWaterColumnPayload(w CompressedWaterColumn) ([]byte, error) {
	width := w.sampleWidth()
	perSample := sampleWidthBytes(width)
	beamHeader := 2 + 4 + 4
	if w.Flags&CWCFlagSegmentNumbers != 0 {
		beamHeader++
	}
	size := 4 + 4 + 2 + 2
	if w.Flags&CWCFlagCompressionFactor != 0 {
		size += 4
	}
	planes := 2
	if w.MagnitudeOnly() {
		planes = 1
	}
	for _, b := range w.Beams {
		size += beamHeader + planes*perSample*int(b.SampleCount)
	}
	c := NewCursorSize(size)
	if err := c.PutF32(w.SoundVelocity); err != nil {
		return nil, err
	}
	if err := c.PutF32(w.SamplingRate); err != nil {
		return nil, err
	}
	if err := c.PutU16(w.Flags); err != nil {
		return nil, err
	}
	if w.Flags&CWCFlagCompressionFactor != 0 {
		if err := c.PutF32(w.CompressionFactor); err != nil {
			return nil, err
		}
	}
	if err := c.PutU16(w.BeamCount); err != nil {
		return nil, err
	}
	for _, b := range w.Beams {
		if err := c.PutU16(b.BeamID); err != nil {
			return nil, err
		}
		if w.Flags&CWCFlagSegmentNumbers != 0 {
			if err := c.PutU8(b.SegmentNumber); err != nil {
				return nil, err
			}
		}
		if err := c.PutU32(b.FirstSample); err != nil {
			return nil, err
		}
		if err := c.PutU32(b.SampleCount); err != nil {
			return nil, err
		}
		if err := EncodeSamples(c, b.Magnitude); err != nil {
			return nil, err
		}
		if !w.MagnitudeOnly() {
			if err := EncodeSamples(c, b.Phase); err != nil {
				return nil, err
			}
		}
	}
	return c.Bytes(), nil
}
