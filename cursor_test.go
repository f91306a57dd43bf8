package sonartel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	c := NewCursorSize(32)
	require.NoError(t, c.PutU8(0xAB))
	require.NoError(t, c.PutU16(0x1234))
	require.NoError(t, c.PutU32(0xDEADBEEF))
	require.NoError(t, c.PutI32(-42))
	require.NoError(t, c.PutF32(3.5))
	require.NoError(t, c.PutF64(2.718281828))
	require.NoError(t, c.PutBytes([]byte("gsf")))

	r := NewCursor(c.Bytes())
	u8, err := r.GetU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), u8)

	u16, err := r.GetU16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := r.GetU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	i32, err := r.GetI32()
	require.NoError(t, err)
	require.Equal(t, int32(-42), i32)

	f32, err := r.GetF32()
	require.NoError(t, err)
	require.InDelta(t, 3.5, f32, 1e-6)

	f64, err := r.GetF64()
	require.NoError(t, err)
	require.InDelta(t, 2.718281828, f64, 1e-9)

	b, err := r.GetBytes(3)
	require.NoError(t, err)
	require.Equal(t, "gsf", string(b))
}

func TestCursorOutOfBounds(t *testing.T) {
	c := NewCursor(make([]byte, 2))
	_, err := c.GetU32()
	require.Error(t, err)
	require.True(t, Is(err, ErrBadFrame))
}

func TestChecksum(t *testing.T) {
	buf := []byte{1, 2, 3, 255}
	require.Equal(t, uint32(1+2+3+255), Checksum(buf))
}
