package sonartel

import (
	"encoding/binary"
	"math"
)

// Cursor is a byte-level codec over a fixed-size in-memory buffer; a read
// or write past its end fails instead of growing it. All
// multi-byte integers and floats are little-endian (spec §4.1); every
// get/put call advances the cursor's position.
//
// Cursor is grounded on the teacher's Tell/Padding helpers (file.go) and
// the manual binary.Read offsets used throughout record.go, generalized
// into a single typed reader/writer instead of one-off byte-slice math.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps an existing buffer for reading or in-place writing.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// NewCursorSize allocates a fresh zeroed buffer of the given size, for
// building a record up from scratch during encode.
func NewCursorSize(size int) *Cursor {
	return &Cursor{buf: make([]byte, size)}
}

// Bytes returns the underlying buffer.
func (c *Cursor) Bytes() []byte { return c.buf }

// Pos returns the current position.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread/unwritten bytes left in the
// buffer.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Seek moves the cursor to an absolute position.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return BadFrame("seek out of bounds")
	}
	c.pos = pos
	return nil
}

// Skip advances the cursor by n bytes without reading them.
func (c *Cursor) Skip(n int) error {
	return c.Seek(c.pos + n)
}

func (c *Cursor) need(n int) error {
	if c.pos+n > len(c.buf) {
		return BadFrame("cursor out of bounds")
	}
	return nil
}

// GetBytes reads exactly n bytes and advances the cursor.
func (c *Cursor) GetBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// PutBytes writes a fixed-size byte run and advances the cursor.
func (c *Cursor) PutBytes(b []byte) error {
	if err := c.need(len(b)); err != nil {
		return err
	}
	copy(c.buf[c.pos:c.pos+len(b)], b)
	c.pos += len(b)
	return nil
}

func (c *Cursor) GetU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

func (c *Cursor) PutU8(v uint8) error {
	if err := c.need(1); err != nil {
		return err
	}
	c.buf[c.pos] = v
	c.pos++
	return nil
}

func (c *Cursor) GetI8() (int8, error) {
	v, err := c.GetU8()
	return int8(v), err
}

func (c *Cursor) PutI8(v int8) error { return c.PutU8(uint8(v)) }

func (c *Cursor) GetU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) PutU16(v uint16) error {
	if err := c.need(2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(c.buf[c.pos:], v)
	c.pos += 2
	return nil
}

func (c *Cursor) GetI16() (int16, error) {
	v, err := c.GetU16()
	return int16(v), err
}

func (c *Cursor) PutI16(v int16) error { return c.PutU16(uint16(v)) }

func (c *Cursor) GetU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *Cursor) PutU32(v uint32) error {
	if err := c.need(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(c.buf[c.pos:], v)
	c.pos += 4
	return nil
}

func (c *Cursor) GetI32() (int32, error) {
	v, err := c.GetU32()
	return int32(v), err
}

func (c *Cursor) PutI32(v int32) error { return c.PutU32(uint32(v)) }

func (c *Cursor) GetU64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.buf[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *Cursor) PutU64(v uint64) error {
	if err := c.need(8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(c.buf[c.pos:], v)
	c.pos += 8
	return nil
}

func (c *Cursor) GetI64() (int64, error) {
	v, err := c.GetU64()
	return int64(v), err
}

func (c *Cursor) PutI64(v int64) error { return c.PutU64(uint64(v)) }

func (c *Cursor) GetF32() (float32, error) {
	v, err := c.GetU32()
	return math.Float32frombits(v), err
}

func (c *Cursor) PutF32(v float32) error { return c.PutU32(math.Float32bits(v)) }

func (c *Cursor) GetF64() (float64, error) {
	v, err := c.GetU64()
	return math.Float64frombits(v), err
}

func (c *Cursor) PutF64(v float64) error { return c.PutU64(math.Float64bits(v)) }

// Checksum returns the arithmetic sum of all bytes in buf interpreted as
// u8, modulo 2^32 (spec §4.3/§6).
func Checksum(buf []byte) uint32 {
	var sum uint32
	for _, b := range buf {
		sum += uint32(b)
	}
	return sum
}
