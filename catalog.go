package sonartel

import (
	"sort"

	"github.com/samber/lo"
)

// FileCatalogEntry is one row of the end-of-file index (spec §3.4/§4.6):
// enough to seek directly to any record without a linear scan.
type FileCatalogEntry struct {
	Offset           uint64
	Size             uint32
	RecordType       RecordType
	DeviceID         uint16
	SystemEnumerator uint16
	Timestamp        Timestamp
	RecordCount      uint32 // 1 for ping-associated records, else 0 (spec §3.5)
	sequence         int    // insertion order, used only to break exact ties
}

// IsPingRecord reports whether the entry indexes a ping-associated
// record, derived from its RecordType (spec §3.5 "is-ping-record").
func (e FileCatalogEntry) IsPingRecord() bool { return IsPingRecord(e.RecordType) }

// FileCatalog is the accumulated index: the writer builds one in memory
// as records are emitted and a FileCatalog record is appended just before
// close, with the file header patched to point at it; the reader loads
// that trailing record when the header points at a usable one and
// otherwise reads the file sequentially without building a catalog.
type FileCatalog struct {
	Entries []FileCatalogEntry
}

// Add appends an entry, tagging it with the next sequence number and
// deriving RecordCount from the record type if the caller left it unset
// (spec §3.5: 1 for ping-associated records, else 0).
func (fc *FileCatalog) Add(e FileCatalogEntry) {
	e.sequence = len(fc.Entries)
	if e.RecordCount == 0 && IsPingRecord(e.RecordType) {
		e.RecordCount = 1
	}
	fc.Entries = append(fc.Entries, e)
}

// intraPingOrder fixes the tiebreak order of ping-associated record types
// that share an identical ping timestamp (spec §4.6 item 4, quoted
// verbatim): SonarSettings, RemoteControlSonarSettings, MatchFilter,
// BeamGeometry, RawDetection, SegmentedRawDetection, SideScan,
// CalibratedSideScan, Snippet, SnippetBackscatter, Beamformed,
// CompressedBeamformedMagnitude, CalibratedBeam, CompressedWaterColumn,
// ProcessedSideScan, then everything else. This is the single ordering
// both the read-side catalog comparator (catalogLess below) and the
// write-side Store.PresentPingRecordTypes consult, so a file's on-disk
// canonical order and the Writer's emission order never diverge.
var intraPingOrder = []RecordType{
	RecordSonarSettings,
	RecordRemoteControlSonarSettings,
	RecordMatchFilter,
	RecordBeamGeometry,
	RecordRawDetection,
	RecordSegmentedRawDetection,
	RecordSideScan,
	RecordCalibratedSideScan,
	RecordSnippet,
	RecordSnippetBackscatter,
	RecordBeamformed,
	RecordCompressedBeamformedMag,
	RecordCalibratedBeam,
	RecordCompressedWaterColumn,
	RecordProcessedSideScan,

	// "(others)" — ping-associated types the comparator names no
	// position for; order among these is not spec-mandated.
	RecordBathymetry,
	RecordWaterColumn,
	RecordVerticalDepth,
	RecordTVG,
	RecordImage,
	RecordPingMotion,
	RecordAdaptiveGate,
	RecordDetectionDataSetup,
	RecordVernierProcessingDataRaw,
	RecordVernierProcessingDataFiltd,
}

var intraPingRank = func() map[RecordType]int {
	m := make(map[RecordType]int, len(intraPingOrder))
	for i, t := range intraPingOrder {
		m[t] = i
	}
	return m
}()

// catalogRank buckets a record type into the five canonical groups (spec
// §4.6): FileHeader, then comments, then SonarSourceVersion, then
// Configuration, then everything else. catalogLess orders entries within
// each group by timestamp.
func catalogRank(t RecordType) int {
	switch t {
	case RecordFileHeader:
		return 0
	case RecordSystemEventMessage:
		return 1
	case RecordSonarSourceVer:
		return 2
	case RecordConfiguration:
		return 3
	default:
		return 4
	}
}

// Less implements the canonical catalog comparator (spec §4.6).
func catalogLess(a, b FileCatalogEntry) bool {
	ra, rb := catalogRank(a.RecordType), catalogRank(b.RecordType)
	if ra != rb {
		return ra < rb
	}
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	pa, oka := intraPingRank[a.RecordType]
	pb, okb := intraPingRank[b.RecordType]
	if oka && okb {
		if pa != pb {
			return pa < pb
		}
	} else if oka != okb {
		// Aux/async records at the same instant sort after ping records.
		return oka
	}
	return a.sequence < b.sequence
}

// Sort reorders entries into canonical catalog order in place.
func (fc *FileCatalog) Sort() {
	sort.SliceStable(fc.Entries, func(i, j int) bool {
		return catalogLess(fc.Entries[i], fc.Entries[j])
	})
}

// FilterBadTimestamps drops entries whose year falls outside the valid
// catalog range (spec §9: the corrected year-range check), leaving
// FileHeader/comment/SonarSourceVersion/Configuration entries untouched
// whatever their year.
func (fc *FileCatalog) FilterBadTimestamps() {
	fc.Entries = lo.Filter(fc.Entries, func(e FileCatalogEntry, _ int) bool {
		return catalogRank(e.RecordType) != 4 || validYearRange(e.Timestamp.Year)
	})
}

// fileCatalogEntryDocumentedSize is the documented wire size of one
// catalog entry's named fields (spec §3.5): size(4) + offset(8) +
// type(2) + device-id(2) + system-enumerator(2) + timestamp
// (year2+doy2+seconds4+hours1+minutes1=10) + record-count(4) = 32.
const fileCatalogEntryDocumentedSize = 4 + 8 + 2 + 2 + 2 + 10 + 4

// fileCatalogEntrySize is the on-disk entry size (spec §4.3 FileHeader
// note: "48 bytes per entry"). The gap between the documented field list
// and 48 is carried as trailing reserved padding, the same tolerance the
// spec applies to other records via their `data_field_size` mechanism.
const fileCatalogEntrySize = 48
const fileCatalogEntryReserved = fileCatalogEntrySize - fileCatalogEntryDocumentedSize

// DecodeFileCatalogPayload parses a FileCatalog record's payload: a
// table header (size, version, entry count, reserved) followed by N
// fixed-width entries (spec §4.3 FileCatalog).
func DecodeFileCatalogPayload(payload []byte) (FileCatalog, error) {
	var fc FileCatalog
	c := NewCursor(payload)
	if _, err := c.GetU32(); err != nil { // table size
		return fc, err
	}
	if _, err := c.GetU16(); err != nil { // table version
		return fc, err
	}
	count, err := c.GetU32()
	if err != nil {
		return fc, err
	}
	if _, err := c.GetU16(); err != nil { // reserved
		return fc, err
	}
	fc.Entries = make([]FileCatalogEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		var e FileCatalogEntry
		if e.Size, err = c.GetU32(); err != nil {
			return fc, err
		}
		if e.Offset, err = c.GetU64(); err != nil {
			return fc, err
		}
		rt, err := c.GetU16()
		if err != nil {
			return fc, err
		}
		e.RecordType = RecordType(rt)
		if e.DeviceID, err = c.GetU16(); err != nil {
			return fc, err
		}
		if e.SystemEnumerator, err = c.GetU16(); err != nil {
			return fc, err
		}
		if e.Timestamp.Year, err = c.GetU16(); err != nil {
			return fc, err
		}
		if e.Timestamp.DayOfYear, err = c.GetU16(); err != nil {
			return fc, err
		}
		if e.Timestamp.Seconds, err = c.GetF32(); err != nil {
			return fc, err
		}
		if e.Timestamp.Hours, err = c.GetU8(); err != nil {
			return fc, err
		}
		if e.Timestamp.Minutes, err = c.GetU8(); err != nil {
			return fc, err
		}
		if e.RecordCount, err = c.GetU32(); err != nil {
			return fc, err
		}
		if err := c.Skip(fileCatalogEntryReserved); err != nil {
			return fc, err
		}
		e.sequence = int(i)
		fc.Entries = append(fc.Entries, e)
	}
	return fc, nil
}

// EncodeFileCatalogPayload serializes a FileCatalog record's payload.
func EncodeFileCatalogPayload(fc FileCatalog) ([]byte, error) {
	const tableHeaderSize = 4 + 2 + 4 + 2
	body := tableHeaderSize + len(fc.Entries)*fileCatalogEntrySize
	c := NewCursorSize(body)
	if err := c.PutU32(uint32(body)); err != nil {
		return nil, err
	}
	if err := c.PutU16(1); err != nil { // table version
		return nil, err
	}
	if err := c.PutU32(uint32(len(fc.Entries))); err != nil {
		return nil, err
	}
	if err := c.PutU16(0); err != nil { // reserved
		return nil, err
	}
	reserved := make([]byte, fileCatalogEntryReserved)
	for _, e := range fc.Entries {
		if err := c.PutU32(e.Size); err != nil {
			return nil, err
		}
		if err := c.PutU64(e.Offset); err != nil {
			return nil, err
		}
		if err := c.PutU16(uint16(e.RecordType)); err != nil {
			return nil, err
		}
		if err := c.PutU16(e.DeviceID); err != nil {
			return nil, err
		}
		if err := c.PutU16(e.SystemEnumerator); err != nil {
			return nil, err
		}
		if err := c.PutU16(e.Timestamp.Year); err != nil {
			return nil, err
		}
		if err := c.PutU16(e.Timestamp.DayOfYear); err != nil {
			return nil, err
		}
		if err := c.PutF32(e.Timestamp.Seconds); err != nil {
			return nil, err
		}
		if err := c.PutU8(e.Timestamp.Hours); err != nil {
			return nil, err
		}
		if err := c.PutU8(e.Timestamp.Minutes); err != nil {
			return nil, err
		}
		if err := c.PutU32(e.RecordCount); err != nil {
			return nil, err
		}
		if err := c.PutBytes(reserved); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// CatalogPayloadIsBareList reports whether a FileHeader's recorded
// catalog size names the bare entry list (n * 48 bytes) rather than the
// full record including the table header and trailing checksum (spec
// §4.3 FileHeader note / §9): some producers record only the list.
// Callers add the table-header and header+checksum overhead before
// seeking if this returns true.
func CatalogPayloadIsBareList(catalogSize uint32) bool {
	return catalogSize > 0 && catalogSize%fileCatalogEntrySize == 0
}
