package sonartel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleTypeNibbles(t *testing.T) {
	// amp 8-bit, phase 16-bit, I&Q 32-bit
	st := SampleType(0x0321)
	require.Equal(t, uint8(1), st.AmpNibble())
	require.Equal(t, uint8(2), st.PhaseNibble())
	require.Equal(t, uint8(3), st.IQNibble())
	require.Equal(t, 1+2+2*4, st.BytesPerSample())

	require.Equal(t, 0, SampleType(0).BytesPerSample())
}

func TestWaterColumnRoundTrip(t *testing.T) {
	// amp 16-bit + phase 8-bit, no I&Q
	w := WaterColumn{
		SoundVelocity: 1480,
		SamplingRate:  34000,
		TxAngle:       -0.5,
		BeamCount:     2,
		SampleCount:   3,
		SampleType:    SampleType(0x012), // amp nibble 2, phase nibble 1
		Beams: []WaterColumnBeam{
			{
				BeamID:    0,
				Amplitude: Samples{Width: SampleWidthU16, U16: []uint16{100, 200, 300}},
				Phase:     Samples{Width: SampleWidthU8, U8: []uint8{1, 2, 3}},
			},
			{
				BeamID:    1,
				Amplitude: Samples{Width: SampleWidthU16, U16: []uint16{400, 500, 600}},
				Phase:     Samples{Width: SampleWidthU8, U8: []uint8{4, 5, 6}},
			},
		},
	}

	buf, err := EncodeWaterColumnPayload(w)
	require.NoError(t, err)

	st := NewStore()
	decoded, err := DecodeWaterColumnPayload(buf, st.Array("wc"))
	require.NoError(t, err)
	require.Equal(t, w, decoded)
}

func TestWaterColumnIQPlaneRoundTrip(t *testing.T) {
	w := WaterColumn{
		BeamCount:   1,
		SampleCount: 2,
		SampleType:  SampleType(0x200), // I&Q only, 16-bit
		Beams: []WaterColumnBeam{
			{
				BeamID: 7,
				I:      Samples{Width: SampleWidthU16, U16: []uint16{10, 20}},
				Q:      Samples{Width: SampleWidthU16, U16: []uint16{30, 40}},
			},
		},
	}
	buf, err := EncodeWaterColumnPayload(w)
	require.NoError(t, err)
	// 20-byte fixed prefix, then per beam: beam id + 2 samples x (I+Q) x 2 bytes.
	require.Len(t, buf, 20+(2+2*2*2))

	st := NewStore()
	decoded, err := DecodeWaterColumnPayload(buf, st.Array("wc"))
	require.NoError(t, err)
	require.Equal(t, w, decoded)
}

func TestCompressedWaterColumnMagnitudeOnly8Bit(t *testing.T) {
	w := CompressedWaterColumn{
		SoundVelocity: 1500,
		SamplingRate:  20000,
		Flags:         CWCFlagMagnitudeOnly | CWCFlagCompressed8Bit,
		BeamCount:     2,
		Beams: []CompressedWaterColumnBeam{
			{BeamID: 0, FirstSample: 10, SampleCount: 4,
				Magnitude: Samples{Width: SampleWidthU8, U8: []uint8{9, 8, 7, 6}}},
			{BeamID: 1, FirstSample: 12, SampleCount: 2,
				Magnitude: Samples{Width: SampleWidthU8, U8: []uint8{5, 4}}},
		},
	}

	buf, err := EncodeCompressedWaterColumnPayload(w)
	require.NoError(t, err)

	st := NewStore()
	decoded, err := DecodeCompressedWaterColumnPayload(buf, st.Array("cwc"))
	require.NoError(t, err)
	require.Equal(t, w, decoded)
	require.True(t, decoded.MagnitudeOnly())
}

func TestCompressedWaterColumnSegmentNumbersChangeBeamHeader(t *testing.T) {
	base := CompressedWaterColumn{
		Flags:     0,
		BeamCount: 1,
		Beams: []CompressedWaterColumnBeam{
			{BeamID: 3, FirstSample: 0, SampleCount: 1,
				Magnitude: Samples{Width: SampleWidthU16, U16: []uint16{42}},
				Phase:     Samples{Width: SampleWidthU16, U16: []uint16{17}}},
		},
	}
	plain, err := EncodeCompressedWaterColumnPayload(base)
	require.NoError(t, err)

	withSeg := base
	withSeg.Flags = CWCFlagSegmentNumbers
	withSeg.Beams[0].SegmentNumber = 2
	tagged, err := EncodeCompressedWaterColumnPayload(withSeg)
	require.NoError(t, err)

	// Bit 14 adds exactly one byte to each per-beam header.
	require.Len(t, tagged, len(plain)+1)

	st := NewStore()
	decoded, err := DecodeCompressedWaterColumnPayload(tagged, st.Array("cwc"))
	require.NoError(t, err)
	require.Equal(t, uint8(2), decoded.Beams[0].SegmentNumber)
}

func TestCompressedWaterColumnFlagAccessors(t *testing.T) {
	w := CompressedWaterColumn{
		Flags: CWCFlagCompressionFactor | CWCFlagFirstSampleRxDelay |
			(3 << cwcDownsampleDivisorShift) | (1 << cwcDownsampleKindShift),
		CompressionFactor: 0.25,
		BeamCount:         1,
		Beams: []CompressedWaterColumnBeam{
			{BeamID: 0, SampleCount: 1,
				Magnitude: Samples{Width: SampleWidthU16, U16: []uint16{1}},
				Phase:     Samples{Width: SampleWidthU16, U16: []uint16{2}}},
		},
	}
	require.Equal(t, 3, w.DownsampleDivisor())
	require.Equal(t, 1, w.DownsampleKind())
	require.True(t, w.FirstSampleIsRxDelay())

	buf, err := EncodeCompressedWaterColumnPayload(w)
	require.NoError(t, err)

	st := NewStore()
	decoded, err := DecodeCompressedWaterColumnPayload(buf, st.Array("cwc"))
	require.NoError(t, err)
	require.Equal(t, float32(0.25), decoded.CompressionFactor)
	require.Equal(t, w, decoded)
}
