package sonartel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRawDetectionRoundTrip(t *testing.T) {
	r := RawDetection{
		TxAngle:        1.5,
		SamplingRate:   25000,
		BeamCount:      2,
		BeamDescriptor: []uint32{0, 1},
		DetectionPoint: []float32{0.1, 0.2},
		RxAngle:        []float32{-5, 5},
		Flags:          []uint32{0, 1},
		Quality:        []uint8{200, 210},
	}

	payload, err := EncodeRawDetectionPayload(r)
	require.NoError(t, err)

	arr := &VarArray{}
	decoded, err := DecodeRawDetectionPayload(payload, nil, arr, 1024)
	require.NoError(t, err)
	r.DataFieldSize = uint32(rawDetectionCoreSize)
	require.Equal(t, r, decoded)
	require.Equal(t, 2, arr.Capacity)
}

func TestRawDetectionOptionalTailFieldsGatedByDataFieldSize(t *testing.T) {
	r := RawDetection{
		BeamCount:      2,
		BeamDescriptor: []uint32{0, 1},
		DetectionPoint: []float32{0.1, 0.2},
		RxAngle:        []float32{-5, 5},
		Flags:          []uint32{0, 0},
		Quality:        []uint8{200, 210},
		Uncertainty:    []float32{0.01, 0.02},
		SignalStrength: []float32{30, 31},
	}

	payload, err := EncodeRawDetectionPayload(r)
	require.NoError(t, err)

	decoded, err := DecodeRawDetectionPayload(payload, nil, &VarArray{}, 1024)
	require.NoError(t, err)
	require.Equal(t, uint32(rawDetectionSignalStrengthThreshold), decoded.DataFieldSize)
	require.Equal(t, r.Uncertainty, decoded.Uncertainty)
	require.Equal(t, r.SignalStrength, decoded.SignalStrength)
	require.Nil(t, decoded.MinLimit)
	require.Nil(t, decoded.MaxLimit)
}

func TestRawDetectionOptionalGeoreferencingRoundTrip(t *testing.T) {
	r := RawDetection{
		BeamCount:          2,
		BeamDescriptor:     []uint32{0, 1},
		DetectionPoint:     []float32{0.1, 0.2},
		RxAngle:            []float32{-5, 5},
		Flags:              []uint32{0, 0},
		Quality:            []uint8{200, 210},
		HasOptionalData:    true,
		Frequency:          300000,
		Latitude:           36.7,
		Longitude:          -121.9,
		Heading:            180,
		HeightSource:       1,
		Tide:               0.3,
		Roll:               1.1,
		Pitch:              -0.5,
		Heave:              0.02,
		VehicleDepth:       12.5,
		ComputedBathymetry: []float32{10.1, 10.2},
	}

	payload, err := EncodeRawDetectionPayload(r)
	require.NoError(t, err)
	optional, err := EncodeRawDetectionOptional(r)
	require.NoError(t, err)
	require.NotEmpty(t, optional)

	decoded, err := DecodeRawDetectionPayload(payload, optional, &VarArray{}, 1024)
	require.NoError(t, err)
	require.True(t, decoded.HasOptionalData)
	require.Equal(t, r.Latitude, decoded.Latitude)
	require.Equal(t, r.ComputedBathymetry, decoded.ComputedBathymetry)
}

func TestRawDetectionInvalidBeamDescriptorIsUnintelligible(t *testing.T) {
	r := RawDetection{
		BeamCount:      1,
		BeamDescriptor: []uint32{99},
		DetectionPoint: []float32{0.1},
		RxAngle:        []float32{0},
		Flags:          []uint32{0},
		Quality:        []uint8{0},
	}
	payload, err := EncodeRawDetectionPayload(r)
	require.NoError(t, err)

	_, err = DecodeRawDetectionPayload(payload, nil, &VarArray{}, 32)
	require.Error(t, err)
	require.True(t, Is(err, ErrUnintelligible))
}

func TestSegmentedRawDetectionRoundTrip(t *testing.T) {
	r := SegmentedRawDetection{
		Segments: []SegmentedTxDescriptor{
			{SegmentNumber: 0, TxAngleAlong: -1.5, TxAngleAcross: 0.5, TxDelay: 0.001, Frequency: 200000},
			{SegmentNumber: 1, TxAngleAlong: 1.5, TxAngleAcross: 0.5, TxDelay: 0.002, Frequency: 210000},
		},
		RxDetections: []SegmentedRxDescriptor{
			{BeamDescriptor: 0, SegmentNumber: 0, DetectionPoint: 0.05, RxAngle: -10, Quality: 250, SignalStrength: 40},
			{BeamDescriptor: 1, SegmentNumber: 1, DetectionPoint: 0.06, RxAngle: 10, Flags: 1, Quality: 251, SignalStrength: 41},
		},
	}
	payload, err := EncodeSegmentedRawDetectionPayload(r)
	require.NoError(t, err)

	decoded, err := DecodeSegmentedRawDetectionPayload(payload, &VarArray{}, 32)
	require.NoError(t, err)
	require.Equal(t, uint16(2), decoded.SegmentCount)
	require.Equal(t, uint32(2), decoded.RxCount)
	require.Equal(t, r.Segments, decoded.Segments)
	require.Equal(t, r.RxDetections, decoded.RxDetections)
}

func TestSegmentedRawDetectionSkipsDeclaredTrailingBytes(t *testing.T) {
	// A producer with a newer layout declares larger per-entry sizes;
	// the reader takes the documented fields and skips the rest.
	const txExtra, rxExtra = 3, 5
	c := NewCursorSize(2 + 4 + 2 + 2 +
		(segmentedTxDocumentedSize+txExtra) +
		(segmentedRxDocumentedSize+rxExtra))
	require.NoError(t, c.PutU16(1)) // n_segments
	require.NoError(t, c.PutU32(1)) // n_rx
	require.NoError(t, c.PutU16(segmentedTxDocumentedSize+txExtra))
	require.NoError(t, c.PutU16(segmentedRxDocumentedSize+rxExtra))

	require.NoError(t, c.PutU16(4)) // tx: segment number
	for _, v := range []float32{-2, 2, 0.003, 150000} {
		require.NoError(t, c.PutF32(v))
	}
	require.NoError(t, c.PutBytes(make([]byte, txExtra)))

	require.NoError(t, c.PutU32(7)) // rx: beam descriptor
	require.NoError(t, c.PutU16(4))
	require.NoError(t, c.PutF32(0.08))
	require.NoError(t, c.PutF32(-5))
	require.NoError(t, c.PutU32(0))
	require.NoError(t, c.PutU8(249))
	require.NoError(t, c.PutF32(38))
	require.NoError(t, c.PutBytes(make([]byte, rxExtra)))

	decoded, err := DecodeSegmentedRawDetectionPayload(c.Bytes(), &VarArray{}, 32)
	require.NoError(t, err)
	require.Equal(t, uint16(4), decoded.Segments[0].SegmentNumber)
	require.Equal(t, uint32(7), decoded.RxDetections[0].BeamDescriptor)
	require.Equal(t, uint8(249), decoded.RxDetections[0].Quality)

	// The oversized declared sizes are clamped back on re-encode.
	reencoded, err := EncodeSegmentedRawDetectionPayload(decoded)
	require.NoError(t, err)
	require.Len(t, reencoded, 2+4+2+2+segmentedTxDocumentedSize+segmentedRxDocumentedSize)
}

func TestSegmentedRawDetectionInvalidBeamDescriptorIsUnintelligible(t *testing.T) {
	r := SegmentedRawDetection{
		RxDetections: []SegmentedRxDescriptor{
			{BeamDescriptor: 99, DetectionPoint: 0.1, Quality: 250},
		},
	}
	payload, err := EncodeSegmentedRawDetectionPayload(r)
	require.NoError(t, err)

	_, err = DecodeSegmentedRawDetectionPayload(payload, &VarArray{}, 32)
	require.Error(t, err)
	require.True(t, Is(err, ErrUnintelligible))
}
