package sonartel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomAttitudeMaskSelectsChannels(t *testing.T) {
	a := CustomAttitude{
		FieldMask:    CustomAttitudeFieldPitch | CustomAttitudeFieldHeave | CustomAttitudeFieldHeadingRate,
		SensorID:     1,
		SampleCount:  3,
		SamplingRate: 100,
		Pitch:        []float32{0.1, 0.2, 0.3},
		Heave:        []float32{-0.5, 0, 0.5},
		HeadingRate:  []float32{1, 2, 3},
	}

	buf, err := EncodeCustomAttitudePayload(a)
	require.NoError(t, err)
	// 8-byte fixed prefix, then one f32 array per set mask bit.
	require.Len(t, buf, 8+3*4*3)

	st := NewStore()
	decoded, err := DecodeCustomAttitudePayload(buf, st.Array("customattitude"))
	require.NoError(t, err)
	require.Equal(t, a, decoded)

	// Channels the mask never named stay absent.
	require.Nil(t, decoded.Roll)
	require.Nil(t, decoded.Heading)
	require.Nil(t, decoded.PitchRate)
}

func TestCustomAttitudeEmptyMaskRoundTrip(t *testing.T) {
	a := CustomAttitude{SampleCount: 16, SamplingRate: 50}
	buf, err := EncodeCustomAttitudePayload(a)
	require.NoError(t, err)
	require.Len(t, buf, 8)

	st := NewStore()
	decoded, err := DecodeCustomAttitudePayload(buf, st.Array("customattitude"))
	require.NoError(t, err)
	require.Equal(t, a, decoded)
}

func TestBathymetryVersionGatedFields(t *testing.T) {
	b := Bathymetry{
		BeamCount:   2,
		AlongTrack:  []float32{1, 2},
		AcrossTrack: []float32{3, 4},
		Depth:       []float32{10, 11},
		Quality:     []uint8{200, 201},
		Frequency:   200000,
		Uncertainty: []float32{0.05, 0.06},
	}

	v5, err := EncodeBathymetryPayload(b, 5)
	require.NoError(t, err)
	st := NewStore()
	decoded, err := DecodeBathymetryPayload(v5, 5, st.Array("bathymetry"))
	require.NoError(t, err)
	require.Equal(t, b, decoded)

	// A version-4 record simply stops before the gated fields; the
	// decoder defaults them to zero.
	v4, err := EncodeBathymetryPayload(b, 4)
	require.NoError(t, err)
	require.Len(t, v4, len(v5)-4-4*2)
	decoded, err = DecodeBathymetryPayload(v4, 4, st.Array("bathymetry"))
	require.NoError(t, err)
	require.Zero(t, decoded.Frequency)
	require.Nil(t, decoded.Uncertainty)
	require.Equal(t, b.Depth, decoded.Depth)
}
