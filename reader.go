package sonartel

import "io"

// Collaborators bundles the external dependencies Reader/Writer need:
// a seekable source or sink and an optional logger (spec §6 External
// Interfaces). Nothing else reaches outside the process — no ambient
// globals, no package-level logger.
type Collaborators struct {
	Source io.ReadSeeker
	Sink   io.WriteSeeker
	Logger Logger
}

// Reader decodes one container file's record stream into a reusable
// Store, one ping or auxiliary record at a time (spec §6).
//
// Grounded on the teacher's decode.Decoder, generalized from GSF's flat
// per-record callback into the ping-grouping Outcome protocol this format
// needs.
type Reader struct {
	src       io.ReadSeeker
	framer    *Framer
	assembler *PingAssembler
	store     *Store
	log       Logger
	async     *AsyncBuffers
}

// NewReader constructs a Reader over c.Source.
func NewReader(c Collaborators) (*Reader, error) {
	if c.Source == nil {
		return nil, BadFrame("reader requires a source")
	}
	log := c.Logger
	if log == nil {
		log = NewDiscardLogger()
	}
	st := NewStore()
	framer := NewFramer(c.Source, log)
	return &Reader{
		src:       c.Source,
		framer:    framer,
		assembler: NewPingAssembler(framer, st),
		store:     st,
		log:       log,
		async:     NewAsyncBuffers(DefaultFormatLimits().AsyncBufferCapacity),
	}, nil
}

// ReadNext advances the reader by one logical unit: a complete ping, a
// single auxiliary/file-level record, end of file, or an error. Every
// auxiliary record belonging to one of the asynchronous streams (nav,
// attitude, depth, heading, altitude, SVP) is also recorded into the
// reader's AsyncBuffers as it goes by (spec §2/§9), so Latest/Drain
// reflect everything seen so far without the caller rescanning the file.
func (r *Reader) ReadNext() Outcome {
	outcome := r.assembler.Next()
	if outcome.Kind == OutcomeAux {
		if outcome.RecordType == RecordFileHeader {
			r.tryActivateCatalog()
		}
		r.observeAsync(outcome.RecordType)
	}
	return outcome
}

// tryActivateCatalog attempts to load the trailing FileCatalog referenced
// by the file header just delivered and switches the framer into
// catalog-directed reading, so subsequent records arrive in canonical
// order rather than on-disk order (spec §4.6, §8 scenario 5 "Pre-catalog
// ordering"). If no usable catalog is found, the framer is left reading
// sequentially, which still produces a correct result, just not
// necessarily in canonical order.
func (r *Reader) tryActivateCatalog() {
	pos, err := r.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return
	}
	fc, err := r.LoadCatalogDirect()
	if err != nil {
		// Put the source back where the sequential framer left it.
		_, _ = r.src.Seek(pos, io.SeekStart)
		return
	}
	r.store.ReadCatalog = fc

	entries := make([]FileCatalogEntry, 0, len(fc.Entries))
	for _, e := range fc.Entries {
		if e.RecordType == RecordFileHeader || e.RecordType == RecordFileCatalog {
			continue
		}
		entries = append(entries, e)
	}
	r.framer.UseCatalog(entries)
}

func (r *Reader) observeAsync(t RecordType) {
	var value interface{}
	switch t {
	case RecordPosition:
		value = r.store.Position
	case RecordNavigation:
		value = r.store.Navigation
	case RecordCustomAttitude:
		value = r.store.CustomAttitude
	case RecordAttitude:
		value = r.store.Attitude
	case RecordRollPitchHeave:
		value = r.store.RollPitchHeave
	case RecordDepth:
		value = r.store.Depth
	case RecordHeading:
		value = r.store.Heading
	case RecordAltitude:
		value = r.store.Altitude
	case RecordSVP:
		value = r.store.SVP
	default:
		return
	}
	r.async.Observe(t, r.store.Timestamp.Epoch(), value)
}

// Latest returns the most recently observed sample for an asynchronous
// stream, and whether any sample has been seen yet.
func (r *Reader) Latest(category AsyncCategory) (AsyncSample, bool) {
	buf := r.async.Buffer(category)
	if buf == nil {
		return AsyncSample{}, false
	}
	return buf.Latest()
}

// Drain returns and clears every buffered sample for an asynchronous
// stream, oldest first.
func (r *Reader) Drain(category AsyncCategory) []AsyncSample {
	buf := r.async.Buffer(category)
	if buf == nil {
		return nil
	}
	return buf.Drain()
}

// Store returns the reusable aggregate the most recent ReadNext call
// decoded into. Callers must copy out any fields they need before the
// next ReadNext call, which may overwrite them (spec §3.4).
func (r *Reader) Store() *Store { return r.store }

// BadRecords reports how many candidate records failed validation after
// passing the sync/whitelist probe.
func (r *Reader) BadRecords() int { return r.framer.BadRecords() }

// SkippedBytes reports how many bytes were discarded while
// resynchronizing past corruption.
func (r *Reader) SkippedBytes() int { return r.framer.SkippedBytes() }

// Close releases the underlying source, if it implements io.Closer.
func (r *Reader) Close() error {
	if c, ok := r.src.(io.Closer); ok {
		return IOError(c.Close())
	}
	return nil
}

// LoadCatalogDirect seeks straight to the catalog pointed at by the
// already-decoded FileHeader and parses it, instead of scanning the
// whole file sequentially (spec §4.6: the catalog exists so readers
// don't have to).
func (r *Reader) LoadCatalogDirect() (FileCatalog, error) {
	if r.store.FileHeader.CatalogOffset == 0 {
		return FileCatalog{}, BadFrame("file header has no catalog pointer")
	}
	if _, err := r.src.Seek(int64(r.store.FileHeader.CatalogOffset), io.SeekStart); err != nil {
		return FileCatalog{}, IOError(err)
	}

	probe := make([]byte, syncProbeSize)
	if _, err := io.ReadFull(r.src, probe); err != nil {
		return FileCatalog{}, IOError(err)
	}
	info, err := VerifySyncAndType(probe)
	if err != nil {
		return FileCatalog{}, err
	}
	if info.RecordType != RecordFileCatalog {
		return FileCatalog{}, BadFrame("catalog pointer does not reference a FileCatalog record")
	}

	if _, err := r.src.Seek(int64(r.store.FileHeader.CatalogOffset), io.SeekStart); err != nil {
		return FileCatalog{}, IOError(err)
	}
	buf := make([]byte, info.Size)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return FileCatalog{}, IOError(err)
	}
	rec, err := ParseRecord(buf)
	if err != nil {
		return FileCatalog{}, err
	}
	fc, err := DecodeFileCatalogPayload(rec.Payload)
	if err != nil {
		return FileCatalog{}, err
	}
	fc.Sort()
	fc.FilterBadTimestamps()
	return fc, nil
}
