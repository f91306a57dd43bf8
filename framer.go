package sonartel

import (
	"bufio"
	"io"

	"go.uber.org/zap"
)

// syncProbeSize is the number of bytes VerifySyncAndType needs to
// classify a candidate record without decoding its full header.
const syncProbeSize = 48

// Framer turns a byte stream into a sequence of validated RawRecords,
// re-synchronizing past corruption by scanning for the sync pattern one
// byte at a time (spec §4.2/§4.4).
//
// Grounded on the teacher's file.go Reader, which performs the identical
// "read header, validate, read size-directed body" loop; the byte-wise
// resync scan and the bad-record/skipped-byte counters are this format's
// addition (GSF's fixed record catalog rarely needs resync, spec §4.2
// does).
type Framer struct {
	r      *bufio.Reader
	seeker io.ReadSeeker
	log    Logger

	offset int64

	badRecords   int
	skippedBytes int

	lookahead    *RawRecord
	lookaheadErr error

	// catalog, when non-nil, switches next() into catalog-directed
	// reading: each call seeks straight to the next entry's offset
	// instead of scanning sequentially (spec §4.6 "Pre-catalog
	// ordering").
	catalog    []FileCatalogEntry
	catalogIdx int
}

// NewFramer wraps src for sequential record-at-a-time reading. If src
// also implements io.ReadSeeker, the framer can later be switched into
// catalog-directed reading via UseCatalog.
func NewFramer(src io.Reader, log Logger) *Framer {
	if log == nil {
		log = NewDiscardLogger()
	}
	f := &Framer{r: bufio.NewReaderSize(src, 1 << 16), log: log}
	if s, ok := src.(io.ReadSeeker); ok {
		f.seeker = s
	}
	return f
}

// UseCatalog switches the framer into catalog-directed reading: each
// subsequent record is read by seeking straight to its indexed offset
// rather than by sequential scan (spec §4.6). entries must already be in
// canonical order (FileCatalog.Sort). Has no effect if the underlying
// source does not support seeking, in which case the framer continues
// reading sequentially.
func (f *Framer) UseCatalog(entries []FileCatalogEntry) {
	if f.seeker == nil {
		return
	}
	f.catalog = entries
	f.catalogIdx = 0
}

// Offset returns the framer's current absolute stream position.
func (f *Framer) Offset() int64 { return f.offset }

// BadRecords reports how many candidate records were sync-valid but
// failed full validation (checksum/size mismatch).
func (f *Framer) BadRecords() int { return f.badRecords }

// SkippedBytes reports how many bytes were discarded while resynchronizing.
func (f *Framer) SkippedBytes() int { return f.skippedBytes }

// Peek returns the next record without consuming it; repeated calls
// return the same record until Next is called.
func (f *Framer) Peek() (RawRecord, error) {
	if f.lookahead == nil {
		rec, err := f.next()
		f.lookahead, f.lookaheadErr = &rec, err
		if err != nil {
			f.lookahead = nil
		}
	}
	if f.lookahead == nil {
		return RawRecord{}, f.lookaheadErr
	}
	return *f.lookahead, nil
}

// Next returns the next validated record, consuming the lookahead buffer
// first if one was peeked.
func (f *Framer) Next() (RawRecord, error) {
	if f.lookahead != nil {
		rec := *f.lookahead
		f.lookahead = nil
		return rec, nil
	}
	return f.next()
}

// PushBack saves rec as the one record the PingAssembler over-read while
// deciding a ping was complete, so the very next Next() call replays it
// instead of reading past it (spec §4.4: "a save-one buffer for a record
// pushed back by the ping-assembler"; §9 "save-one lookahead" design
// note). Only one record can be saved at a time.
func (f *Framer) PushBack(rec RawRecord) {
	f.lookahead = &rec
	f.lookaheadErr = nil
}

func (f *Framer) next() (RawRecord, error) {
	if f.catalog != nil {
		return f.nextFromCatalog()
	}
	for {
		probe, err := f.r.Peek(syncProbeSize)
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return RawRecord{}, ErrEOF
			}
			return RawRecord{}, IOError(err)
		}

		info, err := VerifySyncAndType(probe)
		if err != nil {
			if _, discardErr := f.r.Discard(1); discardErr != nil {
				return RawRecord{}, IOError(discardErr)
			}
			f.offset++
			f.skippedBytes++
			continue
		}

		buf := make([]byte, info.Size)
		if _, err := io.ReadFull(f.r, buf); err != nil {
			return RawRecord{}, IOError(err)
		}
		f.offset += int64(len(buf))

		rec, err := ParseRecord(buf)
		if err != nil {
			f.badRecords++
			f.log.Warn("discarding invalid record", zap.Uint32("record_type", uint32(info.RecordType)), zap.Error(err))
			continue
		}
		return rec, nil
	}
}

// nextFromCatalog reads the entry at catalogIdx by seeking directly to
// its offset, advancing past invalid entries instead of failing the
// whole read (spec §4.6: a corrupt or stale catalog entry shouldn't take
// down catalog-directed reading any more than sequential scanning does).
func (f *Framer) nextFromCatalog() (RawRecord, error) {
	if f.catalogIdx >= len(f.catalog) {
		return RawRecord{}, ErrEOF
	}
	e := f.catalog[f.catalogIdx]
	f.catalogIdx++

	if _, err := f.seeker.Seek(int64(e.Offset), io.SeekStart); err != nil {
		return RawRecord{}, IOError(err)
	}
	buf := make([]byte, e.Size)
	if _, err := io.ReadFull(f.seeker, buf); err != nil {
		return RawRecord{}, IOError(err)
	}
	f.offset = int64(e.Offset) + int64(e.Size)

	rec, err := ParseRecord(buf)
	if err != nil {
		f.badRecords++
		f.log.Warn("discarding invalid catalog-indexed record", zap.Uint32("record_type", uint32(e.RecordType)), zap.Error(err))
		return f.nextFromCatalog()
	}
	return rec, nil
}

// RecordWriter serializes built records to a destination stream, tracking
// the absolute offset each record was written at (spec §4.6, used to
// populate FileCatalog entries as they're written).
type RecordWriter struct {
	w      io.Writer
	offset int64
}

// NewRecordWriter wraps dst for sequential record writing.
func NewRecordWriter(dst io.Writer) *RecordWriter {
	return &RecordWriter{w: dst}
}

// Offset returns the writer's current absolute stream position.
func (w *RecordWriter) Offset() int64 { return w.offset }

// Write assembles and writes one record, returning the offset it was
// written at and its total size in bytes.
func (w *RecordWriter) Write(h Header, payload, optional []byte) (int64, int, error) {
	buf, err := BuildRecord(h, payload, optional)
	if err != nil {
		return 0, 0, err
	}
	off := w.offset
	n, err := w.w.Write(buf)
	w.offset += int64(n)
	if err != nil {
		return off, n, IOError(err)
	}
	return off, len(buf), nil
}
