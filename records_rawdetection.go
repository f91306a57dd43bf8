package sonartel

// rawDetectionCoreSize is the always-present portion of one beam's entry
// in a RawDetection record: beam_descriptor(4) + detection_point(4) +
// rx_angle(4) + flags(4) + quality(1) (spec §4.3).
const rawDetectionCoreSize = 4 + 4 + 4 + 4 + 1

// Per-beam optional tail fields are gated by data_field_size crossing
// these thresholds (spec §4.3, quoted verbatim: "gated by data_field_size
// >= {22, 26, 30, 34}"). Whatever gap remains between the last field
// written and the declared data_field_size is reserved padding, carried
// the same way fileCatalogEntryReserved is in catalog.go.
const (
	rawDetectionUncertaintyThreshold    = 22
	rawDetectionSignalStrengthThreshold = 26
	rawDetectionMinLimitThreshold       = 30
	rawDetectionMaxLimitThreshold       = 34
)

// validateBeamDescriptor checks a per-beam descriptor index against the
// format's beam-count ceiling (spec §4.3: "every beam_descriptor must be
// below the max-beams constant or the record is rejected as
// Unintelligible"). A beam_descriptor here is the beam's own index, not a
// closed set of tags.
func validateBeamDescriptor(d uint32, maxBeams int) error {
	if maxBeams > 0 && d >= uint32(maxBeams) {
		return Unintelligible("beam_descriptor exceeds format's max-beams limit")
	}
	return nil
}

// RawDetection is the per-beam detected range/angle/quality set that
// completes a ping (spec §4.4: "completion requires RawDetection or
// SegmentedRawDetection").
//
// Grounded on the teacher's ping.go RawDetection decode, the record GSF
// calls the bathymetric "detection" subrecord; the beam-descriptor
// bounds-check and the optional georeferencing section are this format's
// addition (spec §4.3/§7/§8).
type RawDetection struct {
	TxAngle      float32
	SamplingRate float32
	BeamCount    uint32

	BeamDescriptor []uint32
	DetectionPoint []float32
	RxAngle        []float32
	Flags          []uint32
	Quality        []uint8

	// DataFieldSize is the declared per-beam entry size in bytes,
	// gating which of the optional tail fields below are present
	// (spec §4.3). Zero on encode lets EncodeRawDetectionPayload pick
	// the smallest size covering whatever optional fields are set.
	DataFieldSize uint32

	Uncertainty    []float32
	SignalStrength []float32
	MinLimit       []float32
	MaxLimit       []float32

	// HasOptionalData reports whether the georeferencing section below
	// was present at header.OptionalDataOffset (spec §4.3).
	HasOptionalData    bool
	Frequency          float32
	Latitude           float64
	Longitude          float64
	Heading            float32
	HeightSource       uint8
	Tide               float32
	Roll               float32
	Pitch              float32
	Heave              float32
	VehicleDepth       float32
	ComputedBathymetry []float32
}

// DecodeRawDetectionPayload parses a RawDetection record's primary
// payload and, if present, its optional-data georeferencing section
// (spec §4.3). maxBeams bounds-checks every beam_descriptor.
func DecodeRawDetectionPayload(payload, optional []byte, arr *VarArray, maxBeams int) (RawDetection, error) {
	var r RawDetection
	c := NewCursor(payload)

	var err error
	if r.TxAngle, err = c.GetF32(); err != nil {
		return r, err
	}
	if r.SamplingRate, err = c.GetF32(); err != nil {
		return r, err
	}
	n, err := c.GetU32()
	if err != nil {
		return r, err
	}
	r.BeamCount = n
	if err := arr.EnsureCapacity(int(n)); err != nil {
		return r, err
	}
	if r.DataFieldSize, err = c.GetU32(); err != nil {
		return r, err
	}
	dfs := int(r.DataFieldSize)

	r.BeamDescriptor = make([]uint32, n)
	r.DetectionPoint = make([]float32, n)
	r.RxAngle = make([]float32, n)
	r.Flags = make([]uint32, n)
	r.Quality = make([]uint8, n)

	hasUncertainty := dfs >= rawDetectionUncertaintyThreshold
	hasSignalStrength := dfs >= rawDetectionSignalStrengthThreshold
	hasMinLimit := dfs >= rawDetectionMinLimitThreshold
	hasMaxLimit := dfs >= rawDetectionMaxLimitThreshold
	if hasUncertainty {
		r.Uncertainty = make([]float32, n)
	}
	if hasSignalStrength {
		r.SignalStrength = make([]float32, n)
	}
	if hasMinLimit {
		r.MinLimit = make([]float32, n)
	}
	if hasMaxLimit {
		r.MaxLimit = make([]float32, n)
	}

	for i := uint32(0); i < n; i++ {
		read := rawDetectionCoreSize

		if r.BeamDescriptor[i], err = c.GetU32(); err != nil {
			return r, err
		}
		if err := validateBeamDescriptor(r.BeamDescriptor[i], maxBeams); err != nil {
			return r, err
		}
		if r.DetectionPoint[i], err = c.GetF32(); err != nil {
			return r, err
		}
		if r.RxAngle[i], err = c.GetF32(); err != nil {
			return r, err
		}
		if r.Flags[i], err = c.GetU32(); err != nil {
			return r, err
		}
		if r.Quality[i], err = c.GetU8(); err != nil {
			return r, err
		}

		if hasUncertainty {
			if r.Uncertainty[i], err = c.GetF32(); err != nil {
				return r, err
			}
			read += 4
		}
		if hasSignalStrength {
			if r.SignalStrength[i], err = c.GetF32(); err != nil {
				return r, err
			}
			read += 4
		}
		if hasMinLimit {
			if r.MinLimit[i], err = c.GetF32(); err != nil {
				return r, err
			}
			read += 4
		}
		if hasMaxLimit {
			if r.MaxLimit[i], err = c.GetF32(); err != nil {
				return r, err
			}
			read += 4
		}
		if pad := dfs - read; dfs > 0 && pad > 0 {
			if err := c.Skip(pad); err != nil {
				return r, err
			}
		}
	}

	if len(optional) > 0 {
		r.HasOptionalData = true
		if err := r.decodeOptional(optional); err != nil {
			return r, err
		}
	}
	return r, nil
}

func (r *RawDetection) decodeOptional(optional []byte) error {
	oc := NewCursor(optional)
	var err error
	if r.Frequency, err = oc.GetF32(); err != nil {
		return err
	}
	if r.Latitude, err = oc.GetF64(); err != nil {
		return err
	}
	if r.Longitude, err = oc.GetF64(); err != nil {
		return err
	}
	if r.Heading, err = oc.GetF32(); err != nil {
		return err
	}
	if r.HeightSource, err = oc.GetU8(); err != nil {
		return err
	}
	if r.Tide, err = oc.GetF32(); err != nil {
		return err
	}
	if r.Roll, err = oc.GetF32(); err != nil {
		return err
	}
	if r.Pitch, err = oc.GetF32(); err != nil {
		return err
	}
	if r.Heave, err = oc.GetF32(); err != nil {
		return err
	}
	if r.VehicleDepth, err = oc.GetF32(); err != nil {
		return err
	}
	r.ComputedBathymetry = make([]float32, r.BeamCount)
	for i := range r.ComputedBathymetry {
		if r.ComputedBathymetry[i], err = oc.GetF32(); err != nil {
			return err
		}
	}
	return nil
}

// EncodeRawDetectionPayload serializes a RawDetection record's primary
// payload. The optional georeferencing section is encoded separately by
// EncodeRawDetectionOptional and carried in the record's optional-data
// span.
func EncodeRawDetectionPayload(r RawDetection) ([]byte, error) {
	n := int(r.BeamCount)
	dfs := requiredRawDetectionFieldSize(r)

	c := NewCursorSize(4 + 4 + 4 + 4 + n*dfs)
	if err := c.PutF32(r.TxAngle); err != nil {
		return nil, err
	}
	if err := c.PutF32(r.SamplingRate); err != nil {
		return nil, err
	}
	if err := c.PutU32(r.BeamCount); err != nil {
		return nil, err
	}
	if err := c.PutU32(uint32(dfs)); err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		written := rawDetectionCoreSize
		if err := c.PutU32(r.BeamDescriptor[i]); err != nil {
			return nil, err
		}
		if err := c.PutF32(r.DetectionPoint[i]); err != nil {
			return nil, err
		}
		if err := c.PutF32(r.RxAngle[i]); err != nil {
			return nil, err
		}
		if err := c.PutU32(r.Flags[i]); err != nil {
			return nil, err
		}
		if err := c.PutU8(r.Quality[i]); err != nil {
			return nil, err
		}
		if dfs >= rawDetectionUncertaintyThreshold {
			if err := c.PutF32(valueAt(r.Uncertainty, i)); err != nil {
				return nil, err
			}
			written += 4
		}
		if dfs >= rawDetectionSignalStrengthThreshold {
			if err := c.PutF32(valueAt(r.SignalStrength, i)); err != nil {
				return nil, err
			}
			written += 4
		}
		if dfs >= rawDetectionMinLimitThreshold {
			if err := c.PutF32(valueAt(r.MinLimit, i)); err != nil {
				return nil, err
			}
			written += 4
		}
		if dfs >= rawDetectionMaxLimitThreshold {
			if err := c.PutF32(valueAt(r.MaxLimit, i)); err != nil {
				return nil, err
			}
			written += 4
		}
		if pad := dfs - written; pad > 0 {
			if err := c.PutBytes(make([]byte, pad)); err != nil {
				return nil, err
			}
		}
	}
	return c.Bytes(), nil
}

// EncodeRawDetectionOptional serializes the georeferencing optional-data
// section (spec §4.3), or returns nil if the record carries none.
func EncodeRawDetectionOptional(r RawDetection) ([]byte, error) {
	if !r.HasOptionalData {
		return nil, nil
	}
	c := NewCursorSize(4 + 8 + 8 + 4 + 1 + 4 + 4 + 4 + 4 + 4 + len(r.ComputedBathymetry)*4)
	if err := c.PutF32(r.Frequency); err != nil {
		return nil, err
	}
	if err := c.PutF64(r.Latitude); err != nil {
		return nil, err
	}
	if err := c.PutF64(r.Longitude); err != nil {
		return nil, err
	}
	if err := c.PutF32(r.Heading); err != nil {
		return nil, err
	}
	if err := c.PutU8(r.HeightSource); err != nil {
		return nil, err
	}
	if err := c.PutF32(r.Tide); err != nil {
		return nil, err
	}
	if err := c.PutF32(r.Roll); err != nil {
		return nil, err
	}
	if err := c.PutF32(r.Pitch); err != nil {
		return nil, err
	}
	if err := c.PutF32(r.Heave); err != nil {
		return nil, err
	}
	if err := c.PutF32(r.VehicleDepth); err != nil {
		return nil, err
	}
	for _, v := range r.ComputedBathymetry {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

func requiredRawDetectionFieldSize(r RawDetection) int {
	dfs := rawDetectionCoreSize
	switch {
	case len(r.MaxLimit) > 0:
		dfs = rawDetectionMaxLimitThreshold
	case len(r.MinLimit) > 0:
		dfs = rawDetectionMinLimitThreshold
	case len(r.SignalStrength) > 0:
		dfs = rawDetectionSignalStrengthThreshold
	case len(r.Uncertainty) > 0:
		dfs = rawDetectionUncertaintyThreshold
	}
	if int(r.DataFieldSize) > dfs {
		dfs = int(r.DataFieldSize)
	}
	return dfs
}

func valueAt(s []float32, i int) float32 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// SegmentedRawDetection is RawDetection's multi-segment variant, used by
// sonars that split the transmit sector into segments and report raw
// detections per receive beam against them. The wire layout is two
// parallel descriptor tables, each with a declared per-entry size so
// readers skip trailing bytes past the documented fields, the same
// forward-compatibility mechanism RawDetection's data_field_size uses
// (spec §4.3).
type SegmentedTxDescriptor struct {
	SegmentNumber uint16
	TxAngleAlong  float32
	TxAngleAcross float32
	TxDelay       float32
	Frequency     float32
}

type SegmentedRxDescriptor struct {
	BeamDescriptor uint32
	SegmentNumber  uint16
	DetectionPoint float32
	RxAngle        float32
	Flags          uint32
	Quality        uint8
	SignalStrength float32
}

// Documented per-entry sizes of the two tables; declared sizes beyond
// these are tolerated on read and clamped back on write.
const (
	segmentedTxDocumentedSize = 2 + 4 + 4 + 4 + 4
	segmentedRxDocumentedSize = 4 + 2 + 4 + 4 + 4 + 1 + 4
)

type SegmentedRawDetection struct {
	SegmentCount     uint16
	RxCount          uint32
	SegmentFieldSize uint16
	RxFieldSize      uint16
	Segments         []SegmentedTxDescriptor
	RxDetections     []SegmentedRxDescriptor
}

// DecodeSegmentedRawDetectionPayload mirrors DecodeRawDetectionPayload's
// bounds-checking for each receive descriptor's beam_descriptor (spec
// §4.3).
func DecodeSegmentedRawDetectionPayload(payload []byte, arr *VarArray, maxBeams int) (SegmentedRawDetection, error) {
	var r SegmentedRawDetection
	c := NewCursor(payload)
	var err error
	if r.SegmentCount, err = c.GetU16(); err != nil {
		return r, err
	}
	if r.RxCount, err = c.GetU32(); err != nil {
		return r, err
	}
	if r.SegmentFieldSize, err = c.GetU16(); err != nil {
		return r, err
	}
	if r.RxFieldSize, err = c.GetU16(); err != nil {
		return r, err
	}
	if int(r.SegmentFieldSize) < segmentedTxDocumentedSize || int(r.RxFieldSize) < segmentedRxDocumentedSize {
		return r, BadFrame("segmented raw detection field size below documented layout")
	}
	if err := arr.EnsureCapacity(int(r.RxCount)); err != nil {
		return r, err
	}

	r.Segments = make([]SegmentedTxDescriptor, r.SegmentCount)
	txPad := int(r.SegmentFieldSize) - segmentedTxDocumentedSize
	for i := range r.Segments {
		t := &r.Segments[i]
		if t.SegmentNumber, err = c.GetU16(); err != nil {
			return r, err
		}
		if t.TxAngleAlong, err = c.GetF32(); err != nil {
			return r, err
		}
		if t.TxAngleAcross, err = c.GetF32(); err != nil {
			return r, err
		}
		if t.TxDelay, err = c.GetF32(); err != nil {
			return r, err
		}
		if t.Frequency, err = c.GetF32(); err != nil {
			return r, err
		}
		if txPad > 0 {
			if err := c.Skip(txPad); err != nil {
				return r, err
			}
		}
	}

	r.RxDetections = make([]SegmentedRxDescriptor, r.RxCount)
	rxPad := int(r.RxFieldSize) - segmentedRxDocumentedSize
	for i := range r.RxDetections {
		d := &r.RxDetections[i]
		if d.BeamDescriptor, err = c.GetU32(); err != nil {
			return r, err
		}
		if err := validateBeamDescriptor(d.BeamDescriptor, maxBeams); err != nil {
			return r, err
		}
		if d.SegmentNumber, err = c.GetU16(); err != nil {
			return r, err
		}
		if d.DetectionPoint, err = c.GetF32(); err != nil {
			return r, err
		}
		if d.RxAngle, err = c.GetF32(); err != nil {
			return r, err
		}
		if d.Flags, err = c.GetU32(); err != nil {
			return r, err
		}
		if d.Quality, err = c.GetU8(); err != nil {
			return r, err
		}
		if d.SignalStrength, err = c.GetF32(); err != nil {
			return r, err
		}
		if rxPad > 0 {
			if err := c.Skip(rxPad); err != nil {
				return r, err
			}
		}
	}
	return r, nil
}

// EncodeSegmentedRawDetectionPayload writes both descriptor tables at
// their documented entry sizes; an oversized declared field size that
// came in on read is clamped back to the documented layout (spec §8
// boundary behavior).
func EncodeSegmentedRawDetectionPayload(r SegmentedRawDetection) ([]byte, error) {
	size := 2 + 4 + 2 + 2 +
		len(r.Segments)*segmentedTxDocumentedSize +
		len(r.RxDetections)*segmentedRxDocumentedSize
	c := NewCursorSize(size)
	if err := c.PutU16(uint16(len(r.Segments))); err != nil {
		return nil, err
	}
	if err := c.PutU32(uint32(len(r.RxDetections))); err != nil {
		return nil, err
	}
	if err := c.PutU16(segmentedTxDocumentedSize); err != nil {
		return nil, err
	}
	if err := c.PutU16(segmentedRxDocumentedSize); err != nil {
		return nil, err
	}
	for _, t := range r.Segments {
		if err := c.PutU16(t.SegmentNumber); err != nil {
			return nil, err
		}
		for _, v := range []float32{t.TxAngleAlong, t.TxAngleAcross, t.TxDelay, t.Frequency} {
			if err := c.PutF32(v); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range r.RxDetections {
		if err := c.PutU32(d.BeamDescriptor); err != nil {
			return nil, err
		}
		if err := c.PutU16(d.SegmentNumber); err != nil {
			return nil, err
		}
		if err := c.PutF32(d.DetectionPoint); err != nil {
			return nil, err
		}
		if err := c.PutF32(d.RxAngle); err != nil {
			return nil, err
		}
		if err := c.PutU32(d.Flags); err != nil {
			return nil, err
		}
		if err := c.PutU8(d.Quality); err != nil {
			return nil, err
		}
		if err := c.PutF32(d.SignalStrength); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// EncodeSegmentedRawDetectionOptional mirrors EncodeRawDetectionOptional;
// SegmentedRawDetection carries no georeferencing section of its own in
// this format (spec §4.3 documents it only for RawDetection).
func EncodeSegmentedRawDetectionOptional(SegmentedRawDetection) ([]byte, error) {
	return nil, nil
}
