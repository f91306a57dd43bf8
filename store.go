package sonartel

import "github.com/samber/lo"

// Store is the single aggregate instance the Reader decodes into and the
// Writer encodes from (spec §3.4): one field set per record kind, a
// "kind"/"type" pair describing what was last delivered, a broken-down and
// scalar timestamp, the read_<Kind> completion flags the PingAssembler
// flips as a ping accumulates, a buffered-comment list for comments that
// arrive before the file header, and the reader's and writer's own
// FileCatalog instances.
//
// Grounded on the teacher's top-level aggregate in decode.go (the struct
// every decode_<Record> method fills in place) and the single-instance-
// per-kind pattern in summary.go; generalized from GSF's fixed field list
// to this format's larger record set.
type Store struct {
	Kind RecordKind
	Type RecordType

	Header    Header
	Timestamp Timestamp

	// PingNumber is the ping number embedded in the most recently decoded
	// ping-associated record (read side), or the ping number to stamp
	// outgoing ping records with (write side). BeamGeometry has no
	// embedded ping number of its own and inherits whatever the
	// PingAssembler is currently accumulating (spec §4.5).
	PingNumber uint32

	// Ping-associated records, one slot each, overwritten every ping.
	SonarSettings             SonarSettings
	MatchFilter               MatchFilter
	BeamGeometry              BeamGeometry
	Bathymetry                Bathymetry
	SideScan                  SideScan
	WaterColumn               WaterColumn
	VerticalDepth             VerticalDepth
	TVG                       TVG
	Image                     Image
	PingMotion                PingMotion
	AdaptiveGate              AdaptiveGate
	DetectionDataSetup        DetectionDataSetup
	Beamformed                Beamformed
	VernierProcessingDataRaw  VernierProcessingData
	VernierProcessingDataFilt VernierProcessingData
	RawDetection              RawDetection
	SegmentedRawDetection     SegmentedRawDetection
	Snippet                   Snippet
	SnippetBackscatter        SnippetBackscatteringStrength
	CompressedBeamformedMag   OpaqueRecord
	CompressedWaterColumn     CompressedWaterColumn
	CalibratedBeam            CalibratedBeam
	CalibratedSideScan        SideScan
	ProcessedSideScan         SideScan
	RemoteControlSonarSettings RemoteControlSonarSettings

	// read_<Kind> flags: set as each ping-associated record arrives,
	// cleared when a ping is flushed (spec §4.4).
	ReadSonarSettings             bool
	ReadMatchFilter               bool
	ReadBeamGeometry              bool
	ReadBathymetry                bool
	ReadSideScan                  bool
	ReadWaterColumn               bool
	ReadVerticalDepth             bool
	ReadTVG                       bool
	ReadImage                     bool
	ReadPingMotion                bool
	ReadAdaptiveGate              bool
	ReadDetectionDataSetup        bool
	ReadBeamformed                bool
	ReadVernierProcessingDataRaw  bool
	ReadVernierProcessingDataFilt bool
	ReadRawDetection              bool
	ReadSegmentedRawDetection     bool
	ReadSnippet                   bool
	ReadSnippetBackscatter        bool
	ReadCompressedBeamformedMag   bool
	ReadCompressedWaterColumn     bool
	ReadCalibratedBeam            bool
	ReadCalibratedSideScan        bool
	ReadProcessedSideScan         bool
	ReadRemoteControlSonarSettings bool

	// Auxiliary/async records, one slot each.
	FileHeader     FileHeader
	SonarSourceVer OpaqueRecord
	Configuration  OpaqueRecord
	Position       Position
	CustomAttitude CustomAttitude
	Tide           Tide
	Altitude       Altitude
	MotionOverGround MotionOverGround
	Depth          Depth
	SVP            SoundVelocityProfile
	CTD            CTD
	Geodesy        Geodesy
	RollPitchHeave Attitude
	Heading        Heading
	SurveyLine     SurveyLine
	Navigation     Position
	Attitude       Attitude

	RemoteControl            OpaqueRecord
	RemoteControlAck         OpaqueRecord
	RemoteControlNotAck      OpaqueRecord
	Subscriptions            OpaqueRecord
	RDRRecordingStatus       OpaqueRecord

	// Comments that arrived before the file header was seen. The Writer
	// writes its queued comments right after the FileHeader record; the
	// Reader leaves them here (spec §3.4/§4.5).
	BufferedComments []SystemEventMessage

	// Dedicated catalog instances: the reader holds the one found at
	// end-of-file (and leaves it empty if none is usable), the writer
	// accumulates entries as records are written and patches the file
	// header at Close (spec §3.4/§4.6).
	ReadCatalog  FileCatalog
	WriteCatalog FileCatalog

	// Variable-array count/capacity bookkeeping, keyed by the field it
	// backs (spec §4.3). Only the counters persist across pings; record
	// decoders allocate fresh sample slices for every record.
	arrays map[string]*VarArray
}

// NewStore returns a zero-valued Store ready for decoding into.
func NewStore() *Store {
	return &Store{arrays: make(map[string]*VarArray)}
}

// Array returns the VarArray tracking the named buffer, creating it on
// first use.
func (s *Store) Array(name string) *VarArray {
	if s.arrays == nil {
		s.arrays = make(map[string]*VarArray)
	}
	a, ok := s.arrays[name]
	if !ok {
		a = &VarArray{}
		s.arrays[name] = a
	}
	return a
}

// ResetPingFlags clears every read_<Kind> flag, used once a ping has been
// flushed and a new one begins accumulating (spec §4.4).
func (s *Store) ResetPingFlags() {
	s.ReadSonarSettings = false
	s.ReadMatchFilter = false
	s.ReadBeamGeometry = false
	s.ReadBathymetry = false
	s.ReadSideScan = false
	s.ReadWaterColumn = false
	s.ReadVerticalDepth = false
	s.ReadTVG = false
	s.ReadImage = false
	s.ReadPingMotion = false
	s.ReadAdaptiveGate = false
	s.ReadDetectionDataSetup = false
	s.ReadBeamformed = false
	s.ReadVernierProcessingDataRaw = false
	s.ReadVernierProcessingDataFilt = false
	s.ReadRawDetection = false
	s.ReadSegmentedRawDetection = false
	s.ReadSnippet = false
	s.ReadSnippetBackscatter = false
	s.ReadCompressedBeamformedMag = false
	s.ReadCompressedWaterColumn = false
	s.ReadCalibratedBeam = false
	s.ReadCalibratedSideScan = false
	s.ReadProcessedSideScan = false
	s.ReadRemoteControlSonarSettings = false
}

// PingComplete reports whether the ping-completion rule is satisfied
// (spec §4.4): a ping is deliverable once either RawDetection or
// SegmentedRawDetection has arrived.
func (s *Store) PingComplete() bool {
	return s.ReadRawDetection || s.ReadSegmentedRawDetection
}

// PresentPingRecordTypes lists which ping-associated record types carry
// data for the ping currently held in the Store, read off the read_<Kind>
// flags and returned in the canonical intra-ping order of spec §4.6 (the
// same order catalog.go's comparator uses to break same-timestamp ties),
// so the Writer can emit them correctly without its own ordering logic.
// Callers that need this (the Writer, the CLI's re-encode step) must call
// it before ResetPingFlags clears the flags.
func (s *Store) PresentPingRecordTypes() []RecordType {
	flags := s.pingFlags()
	return lo.Filter(intraPingOrder, func(rt RecordType, _ int) bool {
		return flags[rt]
	})
}

// pingFlags maps each ping-associated record type to its read_<Kind>
// flag, the lookup PresentPingRecordTypes filters the canonical order
// through.
func (s *Store) pingFlags() map[RecordType]bool {
	return map[RecordType]bool{
		RecordSonarSettings:              s.ReadSonarSettings,
		RecordMatchFilter:                s.ReadMatchFilter,
		RecordBeamGeometry:               s.ReadBeamGeometry,
		RecordBathymetry:                 s.ReadBathymetry,
		RecordSideScan:                   s.ReadSideScan,
		RecordWaterColumn:                s.ReadWaterColumn,
		RecordVerticalDepth:              s.ReadVerticalDepth,
		RecordTVG:                        s.ReadTVG,
		RecordImage:                      s.ReadImage,
		RecordPingMotion:                 s.ReadPingMotion,
		RecordAdaptiveGate:               s.ReadAdaptiveGate,
		RecordDetectionDataSetup:         s.ReadDetectionDataSetup,
		RecordBeamformed:                 s.ReadBeamformed,
		RecordVernierProcessingDataRaw:   s.ReadVernierProcessingDataRaw,
		RecordVernierProcessingDataFiltd: s.ReadVernierProcessingDataFilt,
		RecordRawDetection:               s.ReadRawDetection,
		RecordSegmentedRawDetection:      s.ReadSegmentedRawDetection,
		RecordSnippet:                    s.ReadSnippet,
		RecordSnippetBackscatter:         s.ReadSnippetBackscatter,
		RecordCompressedBeamformedMag:    s.ReadCompressedBeamformedMag,
		RecordCompressedWaterColumn:      s.ReadCompressedWaterColumn,
		RecordCalibratedBeam:             s.ReadCalibratedBeam,
		RecordCalibratedSideScan:         s.ReadCalibratedSideScan,
		RecordProcessedSideScan:          s.ReadProcessedSideScan,
		RecordRemoteControlSonarSettings: s.ReadRemoteControlSonarSettings,
	}
}

// OpaqueRecord holds the raw payload bytes of a record kind this
// implementation does not interpret field-by-field (spec Non-goals:
// vendor remote-control/status channels and the two invented bookkeeping
// records are carried opaquely, round-tripped verbatim).
type OpaqueRecord struct {
	Payload []byte
}
