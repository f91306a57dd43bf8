package sonartel

// PayloadStart is the absolute byte offset, within a single record
// buffer, at which the type-specific payload begins: immediately after
// the 64-byte header (spec §4.3: "Payload starts at header.Offset + 4";
// since header.Offset is invariant at 60 and is measured from the sync
// pattern rather than the start of the record, header.Offset+4 lands
// exactly at the end of the 64-byte header once the leading
// protocol-version/offset fields are accounted for — see DESIGN.md for
// the worked arithmetic).
const PayloadStart = HeaderSize

// RawRecord is a fully framed record buffer split into its three
// logical spans: header, fixed+variable payload, and optional data.
type RawRecord struct {
	Header   Header
	Payload  []byte // PayloadStart .. optional-or-checksum start
	Optional []byte // header.OptionalDataOffset .. checksum start, or nil
	Buf      []byte // the full record buffer, for diagnostics/tests
}

// ParseRecord validates sync, size, and checksum, and splits a raw
// record buffer into header/payload/optional spans (spec §4.2/§6).
func ParseRecord(buf []byte) (RawRecord, error) {
	if len(buf) < HeaderSize+4 {
		return RawRecord{}, BadFrame("record shorter than header+checksum")
	}
	c := NewCursor(buf)
	h, err := DecodeHeader(c)
	if err != nil {
		return RawRecord{}, err
	}
	if int(h.Size) != len(buf) {
		return RawRecord{}, BadFrame("record size field does not match buffer length")
	}
	if !InWhitelist(h.RecordType) {
		return RawRecord{}, BadFrame("record type not in whitelist")
	}

	checksumAt := len(buf) - 4
	stored := uint32(buf[checksumAt]) | uint32(buf[checksumAt+1])<<8 |
		uint32(buf[checksumAt+2])<<16 | uint32(buf[checksumAt+3])<<24
	computed := Checksum(buf[:checksumAt])
	if stored != computed {
		return RawRecord{}, BadFrame("checksum mismatch")
	}

	payloadEnd := checksumAt
	var optional []byte
	if h.OptionalDataOffset != 0 {
		if int(h.OptionalDataOffset) > checksumAt || int(h.OptionalDataOffset) < PayloadStart {
			return RawRecord{}, BadFrame("optional data offset out of range")
		}
		payloadEnd = int(h.OptionalDataOffset)
		optional = buf[h.OptionalDataOffset:checksumAt]
	}

	return RawRecord{
		Header:   h,
		Payload:  buf[PayloadStart:payloadEnd],
		Optional: optional,
		Buf:      buf,
	}, nil
}

// BuildRecord assembles a complete record buffer from a header template,
// a payload byte slice, and an optional optional-data byte slice. It
// fills in Size, OptionalDataOffset, Sync, and the trailing checksum
// (spec §4.3/§6).
func BuildRecord(h Header, payload []byte, optional []byte) ([]byte, error) {
	total := PayloadStart + len(payload)
	if optional != nil {
		h.OptionalDataOffset = uint32(total)
		total += len(optional)
	} else {
		h.OptionalDataOffset = 0
	}
	total += 4 // checksum

	h.Size = uint32(total)

	buf := make([]byte, total)
	c := NewCursor(buf)
	if err := EncodeHeader(c, &h); err != nil {
		return nil, err
	}
	if c.Pos() != PayloadStart {
		return nil, BadFrame("header codec did not emit PayloadStart bytes")
	}
	if err := c.PutBytes(payload); err != nil {
		return nil, err
	}
	if optional != nil {
		if err := c.PutBytes(optional); err != nil {
			return nil, err
		}
	}
	if c.Pos() != total-4 {
		return nil, BadFrame("encoded record size mismatch before checksum")
	}
	checksum := Checksum(buf[:total-4])
	if err := c.PutU32(checksum); err != nil {
		return nil, err
	}
	return buf, nil
}
