package sonartel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinimalFileRoundTrip(t *testing.T) {
	sink := &memSink{}
	w, err := NewWriter(Collaborators{Sink: sink})
	require.NoError(t, err)

	require.NoError(t, w.WriteFileHeader(FileHeader{
		FormatTag: [8]byte{'M', 'B', 'E', 'S'}, MajorVersion: 1, Application: "sonartel-test",
	}))
	require.NoError(t, w.Close())

	r, err := NewReader(Collaborators{Source: bytes.NewReader(sink.Bytes())})
	require.NoError(t, err)

	outcome := r.ReadNext()
	require.Equal(t, OutcomeAux, outcome.Kind)
	require.Equal(t, RecordFileHeader, outcome.RecordType)
	require.Equal(t, "sonartel-test", r.Store().FileHeader.Application)

	// The trailing FileCatalog record is reader bookkeeping, never a
	// caller-visible outcome (spec §8 scenario 1).
	outcome = r.ReadNext()
	require.Equal(t, OutcomeEOF, outcome.Kind)
}

func TestOnePingRoundTrip(t *testing.T) {
	sink := &memSink{}
	w, err := NewWriter(Collaborators{Sink: sink})
	require.NoError(t, err)
	require.NoError(t, w.WriteFileHeader(FileHeader{FormatTag: [8]byte{'M', 'B', 'E', 'S'}}))

	ts := Timestamp{Year: 2024, DayOfYear: 30, Hours: 4, Minutes: 15, Seconds: 2.5}

	st := w.Store()
	st.PingNumber = 42
	st.SonarSettings = SonarSettings{Frequency: 300000, SoundVelocity: 1500}
	require.NoError(t, w.WriteRecord(RecordSonarSettings, ts))

	st.BeamGeometry = BeamGeometry{BeamCount: 2, AlongAngles: []float32{0, 0}, AcrossAngles: []float32{-10, 10}}
	require.NoError(t, w.WriteRecord(RecordBeamGeometry, ts))

	st.PingNumber = 42
	st.RawDetection = RawDetection{
		TxAngle:        0,
		SamplingRate:   25000,
		BeamCount:      2,
		BeamDescriptor: []uint32{0, 1},
		DetectionPoint: []float32{0.05, 0.06},
		RxAngle:        []float32{-10, 10},
		Flags:          []uint32{0, 0},
		Quality:        []uint8{250, 250},
	}
	require.NoError(t, w.WriteRecord(RecordRawDetection, ts))
	require.NoError(t, w.Close())

	r, err := NewReader(Collaborators{Source: bytes.NewReader(sink.Bytes())})
	require.NoError(t, err)

	outcome := r.ReadNext()
	require.Equal(t, OutcomeAux, outcome.Kind) // FileHeader

	outcome = r.ReadNext()
	require.Equal(t, OutcomePing, outcome.Kind)
	require.True(t, r.Store().ReadRawDetection == false) // flags reset on delivery
	require.Equal(t, uint32(2), r.Store().RawDetection.BeamCount)
	require.Equal(t, float32(300000), r.Store().SonarSettings.Frequency)
	require.Equal(t, uint32(42), r.Store().PingNumber)
	require.ElementsMatch(t, []RecordType{RecordSonarSettings, RecordBeamGeometry, RecordRawDetection}, outcome.PingTypes)

	// The trailing FileCatalog record is reader bookkeeping, never a
	// caller-visible outcome (spec §8 scenario 1).
	outcome = r.ReadNext()
	require.Equal(t, OutcomeEOF, outcome.Kind)
}

func TestTruncationRecoversWithSkippedBytesCounted(t *testing.T) {
	sink := &memSink{}
	w, err := NewWriter(Collaborators{Sink: sink})
	require.NoError(t, err)
	require.NoError(t, w.WriteFileHeader(FileHeader{FormatTag: [8]byte{'M', 'B', 'E', 'S'}}))
	require.NoError(t, w.Close())

	raw := sink.Bytes()
	corrupted := append([]byte{0xDE, 0xAD, 0xBE, 0xEF}, raw...)

	r, err := NewReader(Collaborators{Source: bytes.NewReader(corrupted)})
	require.NoError(t, err)

	outcome := r.ReadNext()
	require.Equal(t, OutcomeAux, outcome.Kind)
	require.Equal(t, RecordFileHeader, outcome.RecordType)
	require.Equal(t, 4, r.SkippedBytes())
}

func TestReaderTracksAsyncStreams(t *testing.T) {
	sink := &memSink{}
	w, err := NewWriter(Collaborators{Sink: sink})
	require.NoError(t, err)
	require.NoError(t, w.WriteFileHeader(FileHeader{FormatTag: [8]byte{'M', 'B', 'E', 'S'}}))

	t1 := Timestamp{Year: 2024, DayOfYear: 10, Hours: 1, Minutes: 0, Seconds: 0}
	t2 := Timestamp{Year: 2024, DayOfYear: 10, Hours: 1, Minutes: 0, Seconds: 30}

	st := w.Store()
	st.Position = Position{Latitude: 10, Longitude: 20}
	require.NoError(t, w.WriteRecord(RecordPosition, t1))

	st.Position = Position{Latitude: 11, Longitude: 21}
	require.NoError(t, w.WriteRecord(RecordPosition, t2))
	require.NoError(t, w.Close())

	r, err := NewReader(Collaborators{Source: bytes.NewReader(sink.Bytes())})
	require.NoError(t, err)

	for {
		outcome := r.ReadNext()
		if outcome.Kind == OutcomeEOF {
			break
		}
	}

	latest, ok := r.Latest(AsyncPosition)
	require.True(t, ok)
	require.Equal(t, Position{Latitude: 11, Longitude: 21}, latest.Value)

	samples := r.Drain(AsyncPosition)
	require.Len(t, samples, 2)
	require.Equal(t, Position{Latitude: 10, Longitude: 20}, samples[0].Value)

	_, ok = r.Latest(AsyncPosition)
	require.False(t, ok) // Drain empties the buffer
}

func TestIncompletePingIsDroppedOnAuxInterruption(t *testing.T) {
	sink := &memSink{}
	w, err := NewWriter(Collaborators{Sink: sink})
	require.NoError(t, err)
	require.NoError(t, w.WriteFileHeader(FileHeader{FormatTag: [8]byte{'M', 'B', 'E', 'S'}}))

	ts := Timestamp{Year: 2024, DayOfYear: 30, Hours: 4, Minutes: 15, Seconds: 2.5}

	st := w.Store()
	st.SonarSettings = SonarSettings{Frequency: 300000, SoundVelocity: 1500}
	require.NoError(t, w.WriteRecord(RecordSonarSettings, ts))

	// No RawDetection/SegmentedRawDetection ever arrives for this ping:
	// a Position record interrupts it, which must force the incomplete
	// accumulation to be dropped (spec §4.4/§4.5) rather than merged into
	// whatever ping arrives next.
	st.Position = Position{Latitude: 1, Longitude: 2}
	require.NoError(t, w.WriteRecord(RecordPosition, ts))
	require.NoError(t, w.Close())

	r, err := NewReader(Collaborators{Source: bytes.NewReader(sink.Bytes())})
	require.NoError(t, err)

	outcome := r.ReadNext()
	require.Equal(t, OutcomeAux, outcome.Kind) // FileHeader

	outcome = r.ReadNext()
	require.Equal(t, OutcomeAux, outcome.Kind)
	require.Equal(t, RecordPosition, outcome.RecordType)
	require.False(t, r.Store().ReadSonarSettings, "dropped incomplete ping's flag must not linger")

	// The trailing FileCatalog record is reader bookkeeping, never a
	// caller-visible outcome (spec §8 scenario 1).
	outcome = r.ReadNext()
	require.Equal(t, OutcomeEOF, outcome.Kind)
}

func TestCommentsBeforeFileHeaderAreBuffered(t *testing.T) {
	sink := &memSink{}
	w, err := NewWriter(Collaborators{Sink: sink})
	require.NoError(t, err)

	payload, err := EncodeSystemEventMessagePayload(SystemEventMessage{Text: "boot"})
	require.NoError(t, err)
	_, _, err = w.rw.Write(Header{ProtocolVersion: 2, RecordType: RecordSystemEventMessage}, payload, nil)
	require.NoError(t, err)

	require.NoError(t, w.WriteFileHeader(FileHeader{FormatTag: [8]byte{'M', 'B', 'E', 'S'}}))
	require.NoError(t, w.Close())

	r, err := NewReader(Collaborators{Source: bytes.NewReader(sink.Bytes())})
	require.NoError(t, err)

	outcome := r.ReadNext()
	require.Equal(t, OutcomeAux, outcome.Kind)
	require.Equal(t, RecordSystemEventMessage, outcome.RecordType)
	require.Len(t, r.Store().BufferedComments, 1)
	require.Equal(t, "boot", r.Store().BufferedComments[0].Text)
}

func TestCatalogRestoresCanonicalOrderOnRead(t *testing.T) {
	sink := &memSink{}
	w, err := NewWriter(Collaborators{Sink: sink})
	require.NoError(t, err)
	require.NoError(t, w.WriteFileHeader(FileHeader{FormatTag: [8]byte{'M', 'B', 'E', 'S'}}))

	t10 := Timestamp{Year: 2024, DayOfYear: 100, Hours: 8, Minutes: 0, Seconds: 0}
	t11 := Timestamp{Year: 2024, DayOfYear: 100, Hours: 8, Minutes: 0, Seconds: 5}

	st := w.Store()

	// Deliberately non-canonical on-disk interleaving: ping 11's records
	// land between ping 10's.
	st.PingNumber = 10
	st.SonarSettings = SonarSettings{Frequency: 100000}
	require.NoError(t, w.WriteRecord(RecordSonarSettings, t10))

	st.PingNumber = 11
	st.SonarSettings = SonarSettings{Frequency: 110000}
	require.NoError(t, w.WriteRecord(RecordSonarSettings, t11))

	st.RawDetection = RawDetection{
		SamplingRate: 25000, BeamCount: 1,
		BeamDescriptor: []uint32{0}, DetectionPoint: []float32{0.07},
		RxAngle: []float32{0}, Flags: []uint32{0}, Quality: []uint8{250},
	}
	require.NoError(t, w.WriteRecord(RecordRawDetection, t11))

	st.PingNumber = 10
	st.Bathymetry = Bathymetry{
		BeamCount: 1, AlongTrack: []float32{0}, AcrossTrack: []float32{0},
		Depth: []float32{42}, Quality: []uint8{255},
		Frequency: 100000, Uncertainty: []float32{0.1},
	}
	require.NoError(t, w.WriteRecord(RecordBathymetry, t10))

	st.RawDetection = RawDetection{
		SamplingRate: 25000, BeamCount: 1,
		BeamDescriptor: []uint32{0}, DetectionPoint: []float32{0.05},
		RxAngle: []float32{0}, Flags: []uint32{0}, Quality: []uint8{250},
	}
	require.NoError(t, w.WriteRecord(RecordRawDetection, t10))
	require.NoError(t, w.Close())

	r, err := NewReader(Collaborators{Source: bytes.NewReader(sink.Bytes())})
	require.NoError(t, err)

	outcome := r.ReadNext()
	require.Equal(t, OutcomeAux, outcome.Kind)
	require.Equal(t, RecordFileHeader, outcome.RecordType)

	// The catalog drives reads from here on, so ping 10 assembles fully
	// before any of ping 11's records are touched.
	outcome = r.ReadNext()
	require.Equal(t, OutcomePing, outcome.Kind)
	require.Equal(t, uint32(10), r.Store().PingNumber)
	require.ElementsMatch(t,
		[]RecordType{RecordSonarSettings, RecordRawDetection, RecordBathymetry},
		outcome.PingTypes)
	require.Equal(t, float32(42), r.Store().Bathymetry.Depth[0])

	outcome = r.ReadNext()
	require.Equal(t, OutcomePing, outcome.Kind)
	require.Equal(t, uint32(11), r.Store().PingNumber)
	require.ElementsMatch(t,
		[]RecordType{RecordSonarSettings, RecordRawDetection},
		outcome.PingTypes)

	outcome = r.ReadNext()
	require.Equal(t, OutcomeEOF, outcome.Kind)
}
