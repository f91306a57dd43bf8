package sonartel

// OutcomeKind classifies what ReadNext delivered (spec §6: "Outcome{
// Pingable|Aux|Eof|Err}").
type OutcomeKind uint8

const (
	OutcomeAux OutcomeKind = iota
	OutcomePing
	OutcomeEOF
	OutcomeErr
)

// Outcome is the result of one PingAssembler/Reader step.
type Outcome struct {
	Kind       OutcomeKind
	RecordType RecordType   // populated for OutcomeAux
	PingTypes  []RecordType // populated for OutcomePing, snapshotted before the flags reset
	Err        error        // populated for OutcomeErr
}

// PingAssembler groups the ping-associated records belonging to one ping
// into a single deliverable Outcome, while every non-ping record it sees
// along the way is surfaced individually (spec §4.4).
//
// Grounded on the teacher's ping.go ping-accumulation loop (GSF also
// assembles a ping from several consecutive subrecords before handing it
// to the caller); the completion rule and the Io/BadFrame downgrade are
// this format's addition, since GSF has no equivalent "ping isn't done
// yet" ambiguity.
type PingAssembler struct {
	store  *Store
	framer *Framer

	// lastPing is the ping number currently being accumulated, or -1 if
	// no accumulation is in progress (spec §4.5 "current_ping"/"last_ping").
	lastPing int64

	deliverEOFNext bool
}

// NewPingAssembler builds an assembler reading from f into st.
func NewPingAssembler(f *Framer, st *Store) *PingAssembler {
	return &PingAssembler{framer: f, store: st, lastPing: -1}
}

// Next advances the assembler by exactly one Outcome.
func (p *PingAssembler) Next() Outcome {
	if p.deliverEOFNext {
		p.deliverEOFNext = false
		return Outcome{Kind: OutcomeEOF}
	}

	for {
		rec, err := p.framer.Next()
		if err != nil {
			return p.handleFramerError(err)
		}

		rt := rec.Header.RecordType

		if rt == RecordFileCatalog {
			// Bookkeeping only: a trailing (or, mid-stream, rebuilt)
			// catalog record is never surfaced as a caller-visible
			// outcome (spec §8 scenario 1), but its arrival still forces
			// the completion test on whatever ping is accumulating
			// (spec §4.5 "On encountering a FileCatalog record... apply
			// the same completion test to force out the current ping").
			if out, flushed := p.forceOut(rec); flushed {
				return out
			}
			continue
		}

		if !IsPingRecord(rt) {
			if out, flushed := p.forceOut(rec); flushed {
				return out
			}
			p.store.Header = rec.Header
			p.store.Timestamp = rec.Header.Timestamp.ToTimestamp()
			if decodeErr := DecodeRecordPayload(rt, rec.Payload, rec.Optional, p.store); decodeErr != nil {
				return Outcome{Kind: OutcomeErr, Err: decodeErr}
			}
			return Outcome{Kind: OutcomeAux, RecordType: rt}
		}

		// Ping-associated record: determine its ping number before
		// decoding, so a flush/drop decision about the ping already in
		// progress never races against this record's payload (spec §4.5:
		// "extract its embedded ping number" happens before the
		// completion test it feeds).
		var newPing uint32
		if rt == RecordBeamGeometry {
			// BeamGeometry carries no ping number of its own and
			// inherits last_ping (spec §4.5); with nothing accumulating
			// yet, it simply starts a new accumulation at 0.
			if p.lastPing != -1 {
				newPing = uint32(p.lastPing)
			}
		} else if newPing, err = peekPingNumber(rec.Payload); err != nil {
			return Outcome{Kind: OutcomeErr, Err: err}
		}

		switch {
		case p.lastPing == -1:
			p.lastPing = int64(newPing)
			p.store.ResetPingFlags()
		case uint32(p.lastPing) == newPing:
			// Same ping: fall through and keep accumulating.
		default:
			// Ping number changed: resolve the accumulation in progress
			// before adopting this record's ping number.
			if p.store.PingComplete() {
				out := p.flush()
				p.framer.PushBack(rec)
				return out
			}
			p.store.ResetPingFlags()
			p.lastPing = int64(newPing)
		}

		p.store.Header = rec.Header
		p.store.Timestamp = rec.Header.Timestamp.ToTimestamp()
		p.store.PingNumber = newPing
		if decodeErr := DecodeRecordPayload(rt, rec.Payload, rec.Optional, p.store); decodeErr != nil {
			return Outcome{Kind: OutcomeErr, Err: decodeErr}
		}
	}
}

// forceOut applies the spec §4.5 completion test when a record outside
// the ping in progress arrives. If the accumulation is complete it is
// flushed and rec is pushed back so the framer replays it on the next
// call; the caller then returns that Outcome. If incomplete, the partial
// ping is dropped and forceOut reports false so the caller proceeds to
// handle rec itself.
func (p *PingAssembler) forceOut(rec RawRecord) (Outcome, bool) {
	if p.lastPing == -1 {
		return Outcome{}, false
	}
	if p.store.PingComplete() {
		out := p.flush()
		p.framer.PushBack(rec)
		return out, true
	}
	p.store.ResetPingFlags()
	p.lastPing = -1
	return Outcome{}, false
}

// flush emits the ping currently accumulated and clears assembler state
// so the next record starts a fresh accumulation.
func (p *PingAssembler) flush() Outcome {
	types := p.store.PresentPingRecordTypes()
	p.store.ResetPingFlags()
	p.lastPing = -1
	return Outcome{Kind: OutcomePing, PingTypes: types}
}

// handleFramerError applies the spec §7 downgrade rule: an Io or
// BadFrame failure while a ping is already complete in the buffer is
// downgraded to delivering that ping now, with Eof queued for the very
// next call, instead of losing the last ping to a trailing I/O error.
func (p *PingAssembler) handleFramerError(err error) Outcome {
	if Is(err, ErrEOF) {
		if p.store.PingComplete() {
			return p.flush()
		}
		return Outcome{Kind: OutcomeEOF}
	}

	if Is(err, ErrIO) || Is(err, ErrBadFrame) {
		if p.store.PingComplete() {
			out := p.flush()
			p.deliverEOFNext = true
			return out
		}
	}

	return Outcome{Kind: OutcomeErr, Err: err}
}
