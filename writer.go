package sonartel

import "io"

// Writer encodes a Store's current field values into a record stream,
// accumulating a FileCatalog as it goes and patching the FileHeader's
// catalog pointer at Close (spec §3.4/§4.6/§6).
//
// Grounded on the teacher's encode/encode.go Writer, generalized with the
// catalog-accumulate-then-patch behavior GSF's fixed-header format never
// needed.
type Writer struct {
	dst io.WriteSeeker
	rw  *RecordWriter
	st  *Store
	log Logger

	headerOffset int64
	headerSize   int
	wroteHeader  bool
}

// NewWriter constructs a Writer over c.Sink, backed by a fresh Store the
// caller populates before each WriteRecord call.
func NewWriter(c Collaborators) (*Writer, error) {
	if c.Sink == nil {
		return nil, BadFrame("writer requires a sink")
	}
	log := c.Logger
	if log == nil {
		log = NewDiscardLogger()
	}
	return &Writer{
		dst: c.Sink,
		rw:  NewRecordWriter(c.Sink),
		st:  NewStore(),
		log: log,
	}, nil
}

// Store returns the Store the caller populates before each WriteRecord
// call.
func (w *Writer) Store() *Store { return w.st }

// WriteFileHeader writes the file's leading FileHeader record, then any
// comments queued before it. It must be written first; Close later seeks
// back to patch its catalog fields.
func (w *Writer) WriteFileHeader(fh FileHeader) error {
	w.st.FileHeader = fh
	h := Header{ProtocolVersion: 2, RecordType: RecordFileHeader, Version: RecordWireVersion(RecordFileHeader)}
	payload, err := EncodeFileHeaderPayload(fh)
	if err != nil {
		return err
	}
	off, size, err := w.rw.Write(h, payload, nil)
	if err != nil {
		return err
	}
	w.headerOffset = off
	w.headerSize = size
	w.wroteHeader = true
	w.appendCatalog(RecordFileHeader, off, size, Timestamp{})
	// Each encode pops the oldest queued comment.
	for len(w.st.BufferedComments) > 0 {
		if err := w.encodeAndWrite(RecordSystemEventMessage, w.st.BufferedComments[0].Timestamp); err != nil {
			return err
		}
	}
	return nil
}

// WriteRecord encodes the Store's current value for rt and appends it to
// the stream with the given timestamp.
func (w *Writer) WriteRecord(rt RecordType, ts Timestamp) error {
	if !w.wroteHeader {
		return BadFrame("WriteFileHeader must be called before WriteRecord")
	}
	return w.encodeAndWrite(rt, ts)
}

// encodeAndWrite is the shared single-record emission path: encode the
// Store's current value for rt (plus any optional-data section it
// carries), frame it, write it, and index it in the catalog being built.
func (w *Writer) encodeAndWrite(rt RecordType, ts Timestamp) error {
	payload, err := EncodeRecordPayload(rt, w.st)
	if err != nil {
		return err
	}
	optional, err := EncodeRecordOptional(rt, w.st)
	if err != nil {
		return err
	}
	h := Header{
		ProtocolVersion: 2,
		RecordType:      rt,
		Version:         RecordWireVersion(rt),
		Timestamp: Header_Timestamp{
			Year: ts.Year, DayOfYear: ts.DayOfYear,
			Hours: ts.Hours, Minutes: ts.Minutes, Seconds: ts.Seconds,
		},
	}
	off, size, err := w.rw.Write(h, payload, optional)
	if err != nil {
		return err
	}
	w.appendCatalog(rt, off, size, ts)
	return nil
}

// WriteComment appends a SystemEventMessage record.
func (w *Writer) WriteComment(m SystemEventMessage) error {
	w.st.BufferedComments = append(w.st.BufferedComments, m)
	return w.WriteRecord(RecordSystemEventMessage, m.Timestamp)
}

// Write accepts a populated Store and emits whatever it describes (spec
// §6): a PingData Store emits every ping-associated record currently
// marked present, in canonical intra-ping order; a Comment Store is
// buffered instead of written if no FileHeader has gone out yet; anything
// else emits the single record identified by the Store's Type. If no
// FileHeader has been written yet and s isn't itself one, a default
// header is synthesized first (spec §4.7) so callers can start writing
// ping data without a manual WriteFileHeader call.
func (w *Writer) Write(s *Store) error {
	switch s.Kind {
	case KindComment:
		for _, m := range s.BufferedComments {
			if !w.wroteHeader {
				w.st.BufferedComments = append(w.st.BufferedComments, m)
				continue
			}
			if err := w.WriteComment(m); err != nil {
				return err
			}
		}
		return nil

	case KindPing:
		if !w.wroteHeader {
			if err := w.WriteFileHeader(FileHeader{}); err != nil {
				return err
			}
		}
		w.mergeFrom(s)
		types := s.PresentPingRecordTypes()
		if len(types) == 0 {
			return BadFrame("PingData store has no ping-associated records present")
		}
		for _, rt := range types {
			if err := w.WriteRecord(rt, s.Timestamp); err != nil {
				return err
			}
		}
		return nil

	default:
		if s.Type == RecordFileHeader {
			return w.WriteFileHeader(s.FileHeader)
		}
		if !w.wroteHeader {
			if err := w.WriteFileHeader(FileHeader{}); err != nil {
				return err
			}
		}
		w.mergeFrom(s)
		return w.encodeAndWrite(s.Type, s.Timestamp)
	}
}

// mergeFrom copies s's record fields into the Writer's own Store so the
// encode path always reads from a single consistent instance, while
// leaving the Writer's own bookkeeping (the catalog being built, reusable
// array buffers, buffered comments, and the already-written file header)
// untouched.
func (w *Writer) mergeFrom(s *Store) {
	prevWriteCatalog := w.st.WriteCatalog
	prevArrays := w.st.arrays
	prevBuffered := w.st.BufferedComments
	prevFileHeader := w.st.FileHeader
	*w.st = *s
	w.st.WriteCatalog = prevWriteCatalog
	w.st.arrays = prevArrays
	w.st.BufferedComments = prevBuffered
	w.st.FileHeader = prevFileHeader
}

func (w *Writer) appendCatalog(rt RecordType, offset int64, size int, ts Timestamp) {
	w.st.WriteCatalog.Add(FileCatalogEntry{
		Offset:     uint64(offset),
		Size:       uint32(size),
		RecordType: rt,
		Timestamp:  ts,
	})
}

// Close appends the accumulated FileCatalog and patches the FileHeader
// record in place with the catalog's offset and size (spec §4.6).
func (w *Writer) Close() error {
	if !w.wroteHeader {
		return BadFrame("no FileHeader was ever written")
	}

	w.st.WriteCatalog.Sort()
	catalogPayload, err := EncodeFileCatalogPayload(w.st.WriteCatalog)
	if err != nil {
		return err
	}
	catalogOffset, catalogSize, err := w.rw.Write(
		Header{ProtocolVersion: 2, RecordType: RecordFileCatalog, Version: RecordWireVersion(RecordFileCatalog)},
		catalogPayload, nil,
	)
	if err != nil {
		return err
	}

	w.st.FileHeader.CatalogOffset = uint64(catalogOffset)
	w.st.FileHeader.CatalogSize = uint32(catalogSize)

	patched, err := EncodeFileHeaderPayload(w.st.FileHeader)
	if err != nil {
		return err
	}
	h := Header{ProtocolVersion: 2, RecordType: RecordFileHeader, Version: RecordWireVersion(RecordFileHeader)}
	buf, err := BuildRecord(h, patched, nil)
	if err != nil {
		return err
	}
	if len(buf) != w.headerSize {
		return BadFrame("patched file header changed size, cannot overwrite in place")
	}
	if _, err := w.dst.Seek(w.headerOffset, io.SeekStart); err != nil {
		return IOError(err)
	}
	if _, err := w.dst.Write(buf); err != nil {
		return IOError(err)
	}

	if c, ok := w.dst.(io.Closer); ok {
		return IOError(c.Close())
	}
	return nil
}
