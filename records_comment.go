package sonartel

// SystemEventMessage is a free-text, timestamped log line embedded in the
// stream (spec §3.4/§4.5: "comments"); it may legally appear before the
// FileHeader, in which case the Store buffers it instead of attaching it
// to a ping.
//
// Grounded on the teacher's decode/comment.go, which has the identical
// "timestamped text blob" shape.
type SystemEventMessage struct {
	Timestamp Timestamp
	Severity  uint16
	Text      string
}

// DecodeSystemEventMessagePayload parses a SystemEventMessage payload.
func DecodeSystemEventMessagePayload(payload []byte) (SystemEventMessage, error) {
	var m SystemEventMessage
	c := NewCursor(payload)

	year, err := c.GetU16()
	if err != nil {
		return m, err
	}
	doy, err := c.GetU16()
	if err != nil {
		return m, err
	}
	hours, err := c.GetU8()
	if err != nil {
		return m, err
	}
	minutes, err := c.GetU8()
	if err != nil {
		return m, err
	}
	seconds, err := c.GetF32()
	if err != nil {
		return m, err
	}
	m.Timestamp = Timestamp{Year: year, DayOfYear: doy, Hours: hours, Minutes: minutes, Seconds: seconds}

	if m.Severity, err = c.GetU16(); err != nil {
		return m, err
	}
	textLen, err := c.GetU32()
	if err != nil {
		return m, err
	}
	textBytes, err := c.GetBytes(int(textLen))
	if err != nil {
		return m, err
	}
	m.Text = string(textBytes)
	return m, nil
}

// EncodeSystemEventMessagePayload serializes a SystemEventMessage payload.
func EncodeSystemEventMessagePayload(m SystemEventMessage) ([]byte, error) {
	c := NewCursorSize(2 + 2 + 1 + 1 + 4 + 2 + 4 + len(m.Text))
	if err := c.PutU16(m.Timestamp.Year); err != nil {
		return nil, err
	}
	if err := c.PutU16(m.Timestamp.DayOfYear); err != nil {
		return nil, err
	}
	if err := c.PutU8(m.Timestamp.Hours); err != nil {
		return nil, err
	}
	if err := c.PutU8(m.Timestamp.Minutes); err != nil {
		return nil, err
	}
	if err := c.PutF32(m.Timestamp.Seconds); err != nil {
		return nil, err
	}
	if err := c.PutU16(m.Severity); err != nil {
		return nil, err
	}
	if err := c.PutU32(uint32(len(m.Text))); err != nil {
		return nil, err
	}
	if err := c.PutBytes([]byte(m.Text)); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}
