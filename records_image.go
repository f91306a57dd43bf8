package sonartel

// Image is a co-registered optical/acoustic image frame attached to a
// ping (spec §3.4 ping-associated records).
type Image struct {
	Width, Height uint32
	SampleWidth   SampleWidth
	Pixels        Samples
}

func DecodeImagePayload(payload []byte, arr *VarArray) (Image, error) {
	var img Image
	c := NewCursor(payload)
	var err error
	if img.Width, err = c.GetU32(); err != nil {
		return img, err
	}
	if img.Height, err = c.GetU32(); err != nil {
		return img, err
	}
	width, err := c.GetU8()
	if err != nil {
		return img, err
	}
	img.SampleWidth = SampleWidth(width)
	n := int(img.Width) * int(img.Height)
	if err := arr.EnsureCapacity(n); err != nil {
		return img, err
	}
	img.Pixels, err = DecodeSamples(c, img.SampleWidth, n)
	return img, err
}

func EncodeImagePayload(img Image) ([]byte, error) {
	sampleSize := sampleWidthBytes(img.SampleWidth)
	c := NewCursorSize(4 + 4 + 1 + sampleSize*int(img.Width)*int(img.Height))
	if err := c.PutU32(img.Width); err != nil {
		return nil, err
	}
	if err := c.PutU32(img.Height); err != nil {
		return nil, err
	}
	if err := c.PutU8(uint8(img.SampleWidth)); err != nil {
		return nil, err
	}
	if err := EncodeSamples(c, img.Pixels); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}
