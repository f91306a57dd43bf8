package sonartel

// SampleWidth identifies the wire width of a per-sample array for
// records whose encoding flags select between 8/16/32-bit sample
// widths (spec §4.3: water-column, image, compressed water-column,
// calibrated side-scan).
type SampleWidth uint8

const (
	SampleWidthU8 SampleWidth = iota
	SampleWidthU16
	SampleWidthU32
	SampleWidthI16
	SampleWidthI32
)

// Samples is a tagged container modeling the C source's untyped byte
// buffers re-cast to differing integer widths (spec §9 design note).
// Exactly one of the slices is populated, selected by Width.
type Samples struct {
	Width SampleWidth
	U8    []uint8
	U16   []uint16
	U32   []uint32
	I16   []int16
	I32   []int32
}

// Len reports the sample count regardless of width.
func (s Samples) Len() int {
	switch s.Width {
	case SampleWidthU8:
		return len(s.U8)
	case SampleWidthU16:
		return len(s.U16)
	case SampleWidthU32:
		return len(s.U32)
	case SampleWidthI16:
		return len(s.I16)
	case SampleWidthI32:
		return len(s.I32)
	default:
		return 0
	}
}

// DecodeSamples reads n samples of the given width from c.
func DecodeSamples(c *Cursor, width SampleWidth, n int) (Samples, error) {
	s := Samples{Width: width}
	var err error
	switch width {
	case SampleWidthU8:
		s.U8 = make([]uint8, n)
		for i := range s.U8 {
			if s.U8[i], err = c.GetU8(); err != nil {
				return s, err
			}
		}
	case SampleWidthU16:
		s.U16 = make([]uint16, n)
		for i := range s.U16 {
			if s.U16[i], err = c.GetU16(); err != nil {
				return s, err
			}
		}
	case SampleWidthU32:
		s.U32 = make([]uint32, n)
		for i := range s.U32 {
			if s.U32[i], err = c.GetU32(); err != nil {
				return s, err
			}
		}
	case SampleWidthI16:
		s.I16 = make([]int16, n)
		for i := range s.I16 {
			if s.I16[i], err = c.GetI16(); err != nil {
				return s, err
			}
		}
	case SampleWidthI32:
		s.I32 = make([]int32, n)
		for i := range s.I32 {
			if s.I32[i], err = c.GetI32(); err != nil {
				return s, err
			}
		}
	default:
		return s, BadFrame("unknown sample width")
	}
	return s, nil
}

// EncodeSamples mirrors DecodeSamples for the write path.
func EncodeSamples(c *Cursor, s Samples) error {
	switch s.Width {
	case SampleWidthU8:
		for _, v := range s.U8 {
			if err := c.PutU8(v); err != nil {
				return err
			}
		}
	case SampleWidthU16:
		for _, v := range s.U16 {
			if err := c.PutU16(v); err != nil {
				return err
			}
		}
	case SampleWidthU32:
		for _, v := range s.U32 {
			if err := c.PutU32(v); err != nil {
				return err
			}
		}
	case SampleWidthI16:
		for _, v := range s.I16 {
			if err := c.PutI16(v); err != nil {
				return err
			}
		}
	case SampleWidthI32:
		for _, v := range s.I32 {
			if err := c.PutI32(v); err != nil {
				return err
			}
		}
	default:
		return BadFrame("unknown sample width")
	}
	return nil
}

// VarArray tracks a reusable variable-length buffer's capacity-vs-count
// pair (spec §3.4/§4.3). It holds counters only; the slices themselves
// are allocated afresh by each decode and are not reused across pings.
type VarArray struct {
	Count    int
	Capacity int
}

// EnsureCapacity grows the logical count to n, reallocating only when n
// exceeds the current capacity (spec §4.3: "if count > capacity it
// reallocates the store's buffer to exactly count, records the new
// capacity"). On failure both Count and Capacity reset to zero and
// ErrOutOfMemory is returned; the caller still must perform the actual
// slice reallocation (Go slices can't be grown generically from here),
// this only tracks the bookkeeping invariant.
func (v *VarArray) EnsureCapacity(n int) error {
	if n < 0 {
		v.Count, v.Capacity = 0, 0
		return OutOfMemory("negative array length")
	}
	if n > v.Capacity {
		v.Capacity = n
	}
	v.Count = n
	return nil
}
