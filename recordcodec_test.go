package sonartel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildAndParseRecordRoundTrip(t *testing.T) {
	h := Header{ProtocolVersion: 2, RecordType: RecordTide, DeviceID: 1}
	payload := []byte{1, 2, 3, 4}

	buf, err := BuildRecord(h, payload, nil)
	require.NoError(t, err)

	rec, err := ParseRecord(buf)
	require.NoError(t, err)
	require.Equal(t, RecordTide, rec.Header.RecordType)
	require.Equal(t, payload, rec.Payload)
	require.Nil(t, rec.Optional)
}

func TestBuildAndParseRecordWithOptionalData(t *testing.T) {
	h := Header{ProtocolVersion: 2, RecordType: RecordSonarSourceVer}
	payload := []byte("payload")
	optional := []byte("extra")

	buf, err := BuildRecord(h, payload, optional)
	require.NoError(t, err)

	rec, err := ParseRecord(buf)
	require.NoError(t, err)
	require.Equal(t, payload, rec.Payload)
	require.Equal(t, optional, rec.Optional)
}

func TestParseRecordDetectsChecksumCorruption(t *testing.T) {
	h := Header{ProtocolVersion: 2, RecordType: RecordTide}
	buf, err := BuildRecord(h, []byte{9, 9}, nil)
	require.NoError(t, err)

	buf[len(buf)-1] ^= 0xFF // corrupt the checksum

	_, err = ParseRecord(buf)
	require.Error(t, err)
	require.True(t, Is(err, ErrBadFrame))
}

func TestParseRecordRejectsTruncatedBuffer(t *testing.T) {
	_, err := ParseRecord(make([]byte, 10))
	require.Error(t, err)
	require.True(t, Is(err, ErrBadFrame))
}
