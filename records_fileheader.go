package sonartel

// FileHeader is the first record of a well-formed file (spec §3.4/§4.5):
// a format tag, creation-application identity, and the catalog pointer
// patched in at Close time once every record has been written.
//
// Grounded on the teacher's file.go header parsing (magic number +
// version fields read once at Open) generalized to this format's
// catalog-pointer bookkeeping, which GSF itself does not have.
type FileHeader struct {
	FormatTag      [8]byte
	MajorVersion   uint16
	MinorVersion   uint16
	Application    string // creating application name, NUL-padded on wire
	CatalogOffset  uint64 // absolute byte offset of the FileCatalog record, 0 until patched
	CatalogSize    uint32 // byte length of the FileCatalog record, 0 until patched
}

const fileHeaderAppNameLen = 64

// DecodeFileHeaderPayload parses a FileHeader record's payload.
func DecodeFileHeaderPayload(payload []byte) (FileHeader, error) {
	var fh FileHeader
	c := NewCursor(payload)
	tag, err := c.GetBytes(8)
	if err != nil {
		return fh, err
	}
	copy(fh.FormatTag[:], tag)
	if fh.MajorVersion, err = c.GetU16(); err != nil {
		return fh, err
	}
	if fh.MinorVersion, err = c.GetU16(); err != nil {
		return fh, err
	}
	nameBytes, err := c.GetBytes(fileHeaderAppNameLen)
	if err != nil {
		return fh, err
	}
	fh.Application = trimNulString(nameBytes)
	if fh.CatalogOffset, err = c.GetU64(); err != nil {
		return fh, err
	}
	if fh.CatalogSize, err = c.GetU32(); err != nil {
		return fh, err
	}
	return fh, nil
}

// EncodeFileHeaderPayload serializes a FileHeader record's payload.
func EncodeFileHeaderPayload(fh FileHeader) ([]byte, error) {
	c := NewCursorSize(8 + 2 + 2 + fileHeaderAppNameLen + 8 + 4)
	if err := c.PutBytes(fh.FormatTag[:]); err != nil {
		return nil, err
	}
	if err := c.PutU16(fh.MajorVersion); err != nil {
		return nil, err
	}
	if err := c.PutU16(fh.MinorVersion); err != nil {
		return nil, err
	}
	name := make([]byte, fileHeaderAppNameLen)
	copy(name, fh.Application)
	if err := c.PutBytes(name); err != nil {
		return nil, err
	}
	if err := c.PutU64(fh.CatalogOffset); err != nil {
		return nil, err
	}
	if err := c.PutU32(fh.CatalogSize); err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

func trimNulString(b []byte) string {
	for i, v := range b {
		if v == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
