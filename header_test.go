package sonartel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		ProtocolVersion: 2,
		Size:            128,
		RecordType:      RecordSonarSettings,
		DeviceID:        7,
		SystemEnumerator: 3,
		Timestamp: Header_Timestamp{
			Year: 2024, DayOfYear: 45, Hours: 10, Minutes: 30, Seconds: 12.5,
		},
	}

	c := NewCursorSize(HeaderSize)
	require.NoError(t, EncodeHeader(c, &h))
	require.Equal(t, HeaderSize, c.Pos())
	require.Equal(t, HeaderOffset, h.Offset)
	require.Equal(t, SyncPattern, h.Sync)

	decoded, err := DecodeHeader(NewCursor(c.Bytes()))
	require.NoError(t, err)
	require.Equal(t, h.RecordType, decoded.RecordType)
	require.Equal(t, h.DeviceID, decoded.DeviceID)
	require.Equal(t, h.SystemEnumerator, decoded.SystemEnumerator)
	require.Equal(t, h.Timestamp, decoded.Timestamp)
}

func TestDecodeHeaderRejectsBadSync(t *testing.T) {
	buf := make([]byte, HeaderSize)
	_, err := DecodeHeader(NewCursor(buf))
	require.Error(t, err)
	require.True(t, Is(err, ErrBadFrame))
}

func TestVerifySyncAndTypeRejectsUnknownType(t *testing.T) {
	h := Header{ProtocolVersion: 2, Size: 64, RecordType: RecordType(999999)}
	c := NewCursorSize(HeaderSize)
	require.NoError(t, EncodeHeader(c, &h))
	_, err := VerifySyncAndType(c.Bytes()[:48])
	require.Error(t, err)
}
