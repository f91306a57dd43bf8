package sonartel

// Snippet is a short per-beam sample window around each detected bottom
// return, used for amplitude-based backscatter mosaicking. Snippet and
// SnippetBackscatteringStrength share this shape; the latter carries
// calibrated dB values instead of raw counts (spec §3.3/§3.4).
type Snippet struct {
	BeamCount    uint32
	WindowLength []uint16
	Width        SampleWidth
	Windows      []Samples
}

func DecodeSnippetPayload(payload []byte, arr *VarArray) (Snippet, error) {
	var s Snippet
	c := NewCursor(payload)
	n, err := c.GetU32()
	if err != nil {
		return s, err
	}
	s.BeamCount = n
	if err := arr.EnsureCapacity(int(n)); err != nil {
		return s, err
	}
	width, err := c.GetU8()
	if err != nil {
		return s, err
	}
	s.Width = SampleWidth(width)
	s.WindowLength = make([]uint16, n)
	s.Windows = make([]Samples, n)
	for i := uint32(0); i < n; i++ {
		if s.WindowLength[i], err = c.GetU16(); err != nil {
			return s, err
		}
		if s.Windows[i], err = DecodeSamples(c, s.Width, int(s.WindowLength[i])); err != nil {
			return s, err
		}
	}
	return s, nil
}

func EncodeSnippetPayload(s Snippet) ([]byte, error) {
	sampleSize := sampleWidthBytes(s.Width)
	size := 4 + 1
	for _, l := range s.WindowLength {
		size += 2 + sampleSize*int(l)
	}
	c := NewCursorSize(size)
	if err := c.PutU32(s.BeamCount); err != nil {
		return nil, err
	}
	if err := c.PutU8(uint8(s.Width)); err != nil {
		return nil, err
	}
	for i, w := range s.Windows {
		if err := c.PutU16(s.WindowLength[i]); err != nil {
			return nil, err
		}
		if err := EncodeSamples(c, w); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// SnippetBackscatteringStrength shares Snippet's wire shape exactly.
type SnippetBackscatteringStrength = Snippet

func DecodeSnippetBackscatterPayload(payload []byte, arr *VarArray) (SnippetBackscatteringStrength, error) {
	return DecodeSnippetPayload(payload, arr)
}

func EncodeSnippetBackscatterPayload(s SnippetBackscatteringStrength) ([]byte, error) {
	return EncodeSnippetPayload(s)
}
