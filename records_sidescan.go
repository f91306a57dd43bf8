package sonartel

// SideScan is a single side-scan image line: one intensity sample per
// pixel, across port and starboard channels. The same shape serves
// SideScan, CalibratedSideScan, and ProcessedSideScan (spec §3.3/§3.4);
// only the record type distinguishes calibration/processing stage, the
// wire layout is identical.
//
// Grounded on the teacher's ping.go side-scan channel arrays, generalized
// to this format's tagged Samples union so the pixel width can vary by
// sonar (spec §9 design note).
type SideScan struct {
	PixelCount uint32
	Width      SampleWidth
	Port       Samples
	Starboard  Samples
}

func DecodeSideScanPayload(payload []byte, arr *VarArray) (SideScan, error) {
	var s SideScan
	c := NewCursor(payload)
	n, err := c.GetU32()
	if err != nil {
		return s, err
	}
	s.PixelCount = n
	if err := arr.EnsureCapacity(int(n)); err != nil {
		return s, err
	}
	width, err := c.GetU8()
	if err != nil {
		return s, err
	}
	s.Width = SampleWidth(width)
	if s.Port, err = DecodeSamples(c, s.Width, int(n)); err != nil {
		return s, err
	}
	if s.Starboard, err = DecodeSamples(c, s.Width, int(n)); err != nil {
		return s, err
	}
	return s, nil
}

func EncodeSideScanPayload(s SideScan) ([]byte, error) {
	sampleSize := sampleWidthBytes(s.Width)
	c := NewCursorSize(4 + 1 + 2*sampleSize*int(s.PixelCount))
	if err := c.PutU32(s.PixelCount); err != nil {
		return nil, err
	}
	if err := c.PutU8(uint8(s.Width)); err != nil {
		return nil, err
	}
	if err := EncodeSamples(c, s.Port); err != nil {
		return nil, err
	}
	if err := EncodeSamples(c, s.Starboard); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

func sampleWidthBytes(w SampleWidth) int {
	switch w {
	case SampleWidthU8:
		return 1
	case SampleWidthU16, SampleWidthI16:
		return 2
	case SampleWidthU32, SampleWidthI32:
		return 4
	default:
		return 0
	}
}
