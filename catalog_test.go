package sonartel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileCatalogCanonicalOrder(t *testing.T) {
	var fc FileCatalog
	t1 := Timestamp{Year: 2024, DayOfYear: 10, Hours: 1, Minutes: 0, Seconds: 0}
	t2 := Timestamp{Year: 2024, DayOfYear: 10, Hours: 1, Minutes: 0, Seconds: 5}

	fc.Add(FileCatalogEntry{RecordType: RecordBathymetry, Timestamp: t2})
	fc.Add(FileCatalogEntry{RecordType: RecordSonarSettings, Timestamp: t2})
	fc.Add(FileCatalogEntry{RecordType: RecordRawDetection, Timestamp: t1})
	fc.Add(FileCatalogEntry{RecordType: RecordConfiguration})
	fc.Add(FileCatalogEntry{RecordType: RecordSonarSourceVer})
	fc.Add(FileCatalogEntry{RecordType: RecordSystemEventMessage})
	fc.Add(FileCatalogEntry{RecordType: RecordFileHeader})

	fc.Sort()

	got := make([]RecordType, len(fc.Entries))
	for i, e := range fc.Entries {
		got[i] = e.RecordType
	}

	require.Equal(t, []RecordType{
		RecordFileHeader,
		RecordSystemEventMessage,
		RecordSonarSourceVer,
		RecordConfiguration,
		RecordRawDetection,      // t1, earliest
		RecordSonarSettings,     // t2, intra-ping rank before Bathymetry
		RecordBathymetry,
	}, got)
}

func TestFileCatalogFiltersBadTimestamps(t *testing.T) {
	var fc FileCatalog
	fc.Add(FileCatalogEntry{RecordType: RecordTide, Timestamp: Timestamp{Year: 1900}})
	fc.Add(FileCatalogEntry{RecordType: RecordTide, Timestamp: Timestamp{Year: 2024}})
	fc.Add(FileCatalogEntry{RecordType: RecordFileHeader})

	fc.FilterBadTimestamps()
	require.Len(t, fc.Entries, 2)
}

func TestFileCatalogPayloadRoundTrip(t *testing.T) {
	var fc FileCatalog
	fc.Add(FileCatalogEntry{Offset: 64, Size: 128, RecordType: RecordTide, Timestamp: Timestamp{Year: 2024, DayOfYear: 5, Seconds: 1.5}})

	buf, err := EncodeFileCatalogPayload(fc)
	require.NoError(t, err)

	decoded, err := DecodeFileCatalogPayload(buf)
	require.NoError(t, err)
	require.Len(t, decoded.Entries, 1)
	require.Equal(t, uint64(64), decoded.Entries[0].Offset)
	require.Equal(t, uint32(128), decoded.Entries[0].Size)
	require.Equal(t, RecordTide, decoded.Entries[0].RecordType)
}
