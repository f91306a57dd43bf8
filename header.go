package sonartel

// SyncPattern is the constant marker at offset 4 of every record (spec
// §3.1/GLOSSARY); the Framer scans for this byte pattern to re-acquire
// alignment after corruption.
const SyncPattern uint32 = 0x0000FFFF

// HeaderSize is the fixed size, in bytes, of a record header (spec §3.1).
const HeaderSize = 64

// HeaderOffset is the invariant value of Header.Offset. It is counted from
// the sync pattern at byte 4, so 4 + HeaderOffset is byte 64, the end of
// the header, where the payload begins.
const HeaderOffset uint16 = 60

// Header is the fixed 64-byte record header (spec §3.1). Field order and
// sizes mirror the wire layout exactly; Go struct field order here is
// documentation only; encode/decode always go through explicit Cursor
// calls, never struct-to-bytes punning, matching the teacher's explicit
// binary.Read-per-field style (record.go, ping.go) rather than a single
// unsafe cast.
type Header struct {
	ProtocolVersion      uint16
	Offset               uint16 // header-offset-to-payload; invariant 60
	Sync                 uint32 // invariant SyncPattern
	Size                 uint32 // total record size in bytes, header+payload+checksum
	OptionalDataOffset   uint32 // 0 means absent
	OptionalDataID       uint32
	Timestamp            Header_Timestamp
	Version              uint16
	RecordType           RecordType
	DeviceID             uint32
	reserved             uint16
	SystemEnumerator     uint16
	reserved2            uint32
	Flags                uint16
	reserved3            uint16
	reserved4            uint32
	FragmentedTotal      uint32
	FragmentNumber       uint32
}

// Header_Timestamp is the header's embedded broken-down time.
type Header_Timestamp struct {
	Year      uint16
	DayOfYear uint16
	Seconds   float32
	Hours     uint8
	Minutes   uint8
}

// ToTimestamp converts the header's embedded time fields to a Timestamp.
func (h Header_Timestamp) ToTimestamp() Timestamp {
	return Timestamp{
		Year:      h.Year,
		DayOfYear: h.DayOfYear,
		Hours:     h.Hours,
		Minutes:   h.Minutes,
		Seconds:   h.Seconds,
	}
}

// DecodeHeader reads exactly HeaderSize bytes from c and applies the
// protocol-version-2 enumerator fix-up (spec §3.1: "If protocol-version
// is 2, the reserved field is repurposed as system-enumerator.").
func DecodeHeader(c *Cursor) (Header, error) {
	var h Header
	var err error

	if h.ProtocolVersion, err = c.GetU16(); err != nil {
		return h, err
	}
	if h.Offset, err = c.GetU16(); err != nil {
		return h, err
	}
	if h.Sync, err = c.GetU32(); err != nil {
		return h, err
	}
	if h.Sync != SyncPattern {
		return h, BadFrame("sync pattern mismatch")
	}
	if h.Size, err = c.GetU32(); err != nil {
		return h, err
	}
	if h.OptionalDataOffset, err = c.GetU32(); err != nil {
		return h, err
	}
	if h.OptionalDataID, err = c.GetU32(); err != nil {
		return h, err
	}
	if h.Timestamp.Year, err = c.GetU16(); err != nil {
		return h, err
	}
	if h.Timestamp.DayOfYear, err = c.GetU16(); err != nil {
		return h, err
	}
	if h.Timestamp.Seconds, err = c.GetF32(); err != nil {
		return h, err
	}
	if h.Timestamp.Hours, err = c.GetU8(); err != nil {
		return h, err
	}
	if h.Timestamp.Minutes, err = c.GetU8(); err != nil {
		return h, err
	}
	if h.Version, err = c.GetU16(); err != nil {
		return h, err
	}
	{
		rt, e := c.GetU32()
		if e != nil {
			return h, e
		}
		h.RecordType = RecordType(rt)
	}
	if h.DeviceID, err = c.GetU32(); err != nil {
		return h, err
	}
	if h.reserved, err = c.GetU16(); err != nil {
		return h, err
	}
	if h.SystemEnumerator, err = c.GetU16(); err != nil {
		return h, err
	}
	if h.reserved2, err = c.GetU32(); err != nil {
		return h, err
	}
	if h.Flags, err = c.GetU16(); err != nil {
		return h, err
	}
	if h.reserved3, err = c.GetU16(); err != nil {
		return h, err
	}
	if h.reserved4, err = c.GetU32(); err != nil {
		return h, err
	}
	if h.FragmentedTotal, err = c.GetU32(); err != nil {
		return h, err
	}
	if h.FragmentNumber, err = c.GetU32(); err != nil {
		return h, err
	}

	if h.ProtocolVersion == 2 {
		h.SystemEnumerator = h.reserved
	}

	return h, nil
}

// EncodeHeader writes exactly HeaderSize bytes to c.
func EncodeHeader(c *Cursor, h *Header) error {
	h.Offset = HeaderOffset
	h.Sync = SyncPattern

	puts := []func() error{
		func() error { return c.PutU16(h.ProtocolVersion) },
		func() error { return c.PutU16(h.Offset) },
		func() error { return c.PutU32(h.Sync) },
		func() error { return c.PutU32(h.Size) },
		func() error { return c.PutU32(h.OptionalDataOffset) },
		func() error { return c.PutU32(h.OptionalDataID) },
		func() error { return c.PutU16(h.Timestamp.Year) },
		func() error { return c.PutU16(h.Timestamp.DayOfYear) },
		func() error { return c.PutF32(h.Timestamp.Seconds) },
		func() error { return c.PutU8(h.Timestamp.Hours) },
		func() error { return c.PutU8(h.Timestamp.Minutes) },
		func() error { return c.PutU16(h.Version) },
		func() error { return c.PutU32(uint32(h.RecordType)) },
		func() error { return c.PutU32(h.DeviceID) },
		func() error {
			if h.ProtocolVersion == 2 {
				return c.PutU16(h.SystemEnumerator)
			}
			return c.PutU16(h.reserved)
		},
		func() error { return c.PutU16(h.SystemEnumerator) },
		func() error { return c.PutU32(h.reserved2) },
		func() error { return c.PutU16(h.Flags) },
		func() error { return c.PutU16(h.reserved3) },
		func() error { return c.PutU32(h.reserved4) },
		func() error { return c.PutU32(h.FragmentedTotal) },
		func() error { return c.PutU32(h.FragmentNumber) },
	}
	for _, put := range puts {
		if err := put(); err != nil {
			return err
		}
	}
	return nil
}

// SyncInfo is the lightweight classification returned by
// VerifySyncAndType: just enough to dispatch without decoding the full
// header (spec §4.2).
type SyncInfo struct {
	RecordType       RecordType
	DeviceID         uint32
	SystemEnumerator uint16
	Size             uint32
}

// VerifySyncAndType checks the sync pattern and record-type whitelist
// from the first 48 bytes of a candidate record, without consuming the
// full header. Used by the Framer's sync scanner (spec §4.2/§4.4).
func VerifySyncAndType(first48 []byte) (SyncInfo, error) {
	if len(first48) < 48 {
		return SyncInfo{}, BadFrame("short sync probe buffer")
	}
	c := NewCursor(first48)
	if err := c.Skip(2); err != nil { // protocol version
		return SyncInfo{}, err
	}
	if err := c.Skip(2); err != nil { // offset
		return SyncInfo{}, err
	}
	sync, err := c.GetU32()
	if err != nil {
		return SyncInfo{}, err
	}
	if sync != SyncPattern {
		return SyncInfo{}, BadFrame("sync pattern mismatch")
	}
	size, err := c.GetU32()
	if err != nil {
		return SyncInfo{}, err
	}
	if err := c.Skip(4 + 4); err != nil { // optional offset + id
		return SyncInfo{}, err
	}
	if err := c.Skip(2 + 2 + 4 + 1 + 1); err != nil { // timestamp
		return SyncInfo{}, err
	}
	if err := c.Skip(2); err != nil { // record version
		return SyncInfo{}, err
	}
	rt, err := c.GetU32()
	if err != nil {
		return SyncInfo{}, err
	}
	recType := RecordType(rt)
	if !InWhitelist(recType) {
		return SyncInfo{}, BadFrame("record type not in whitelist")
	}
	deviceID, err := c.GetU32()
	if err != nil {
		return SyncInfo{}, err
	}
	reserved, err := c.GetU16()
	if err != nil {
		return SyncInfo{}, err
	}
	sysEnum, err := c.GetU16()
	if err != nil {
		return SyncInfo{}, err
	}
	_ = reserved

	return SyncInfo{
		RecordType:       recType,
		DeviceID:         deviceID,
		SystemEnumerator: sysEnum,
		Size:             size,
	}, nil
}
