package sonartel

// splitPingNumber extracts a ping-associated record's embedded ping
// number from the front of its payload (spec §4.5 "extract its embedded
// ping number"), returning the remaining bytes for the type-specific
// decoder. Every ping-associated record carries one except BeamGeometry,
// which inherits last_ping instead (handled by the caller).
func splitPingNumber(payload []byte) (uint32, []byte, error) {
	c := NewCursor(payload)
	n, err := c.GetU32()
	if err != nil {
		return 0, nil, err
	}
	return n, payload[c.Pos():], nil
}

// withPingNumber prepends a ping number to an already-encoded payload,
// the write-side mirror of splitPingNumber.
func withPingNumber(n uint32, body []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	c := NewCursorSize(4)
	if err := c.PutU32(n); err != nil {
		return nil, err
	}
	return append(c.Bytes(), body...), nil
}

// peekPingNumber reads a ping-associated record's embedded ping number
// without consuming the payload, so the PingAssembler can decide whether
// to flush the ping already in progress before this record's data
// overwrites the Store (spec §4.5).
func peekPingNumber(payload []byte) (uint32, error) {
	n, _, err := splitPingNumber(payload)
	return n, err
}

// DecodeRecordPayload decodes a record's payload into the Store, keyed by
// record type. This is the single RecordType-keyed dispatch point every
// other component (Reader, PingAssembler) calls through (spec §9 design
// note), grounded on the teacher's decode.go switch over RecordID.
func DecodeRecordPayload(rt RecordType, payload, optional []byte, st *Store) error {
	st.Type = rt
	st.Kind = kindOf(rt)

	var err error
	switch rt {
	case RecordSonarSettings:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.SonarSettings, err = DecodeSonarSettingsPayload(body)
		}
		st.ReadSonarSettings = err == nil
	case RecordMatchFilter:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.MatchFilter, err = DecodeMatchFilterPayload(body)
		}
		st.ReadMatchFilter = err == nil
	case RecordBeamGeometry:
		st.BeamGeometry, err = DecodeBeamGeometryPayload(payload, st.Array("beamgeometry"))
		st.ReadBeamGeometry = err == nil
	case RecordBathymetry:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.Bathymetry, err = DecodeBathymetryPayload(body, st.Header.Version, st.Array("bathymetry"))
		}
		st.ReadBathymetry = err == nil
	case RecordSideScan:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.SideScan, err = DecodeSideScanPayload(body, st.Array("sidescan"))
		}
		st.ReadSideScan = err == nil
	case RecordCalibratedSideScan:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.CalibratedSideScan, err = DecodeSideScanPayload(body, st.Array("calibratedsidescan"))
		}
		st.ReadCalibratedSideScan = err == nil
	case RecordProcessedSideScan:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.ProcessedSideScan, err = DecodeSideScanPayload(body, st.Array("processedsidescan"))
		}
		st.ReadProcessedSideScan = err == nil
	case RecordWaterColumn:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.WaterColumn, err = DecodeWaterColumnPayload(body, st.Array("watercolumn"))
		}
		st.ReadWaterColumn = err == nil
	case RecordCompressedWaterColumn:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.CompressedWaterColumn, err = DecodeCompressedWaterColumnPayload(body, st.Array("compressedwatercolumn"))
		}
		st.ReadCompressedWaterColumn = err == nil
	case RecordVerticalDepth:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.VerticalDepth, err = DecodeVerticalDepthPayload(body)
		}
		st.ReadVerticalDepth = err == nil
	case RecordTVG:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.TVG, err = DecodeTVGPayload(body, st.Array("tvg"))
		}
		st.ReadTVG = err == nil
	case RecordImage:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.Image, err = DecodeImagePayload(body, st.Array("image"))
		}
		st.ReadImage = err == nil
	case RecordPingMotion:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.PingMotion, err = DecodePingMotionPayload(body)
		}
		st.ReadPingMotion = err == nil
	case RecordAdaptiveGate:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.AdaptiveGate, err = DecodeAdaptiveGatePayload(body, st.Array("adaptivegate"))
		}
		st.ReadAdaptiveGate = err == nil
	case RecordDetectionDataSetup:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.DetectionDataSetup, err = DecodeDetectionDataSetupPayload(body)
		}
		st.ReadDetectionDataSetup = err == nil
	case RecordBeamformed:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.Beamformed, err = DecodeBeamformedPayload(body, st.Array("beamformed"))
		}
		st.ReadBeamformed = err == nil
	case RecordCalibratedBeam:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.CalibratedBeam, err = DecodeCalibratedBeamPayload(body, st.Array("calibratedbeam"))
		}
		st.ReadCalibratedBeam = err == nil
	case RecordCompressedBeamformedMag:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.CompressedBeamformedMag, err = DecodeOpaquePayload(body)
		}
		st.ReadCompressedBeamformedMag = err == nil
	case RecordVernierProcessingDataRaw:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.VernierProcessingDataRaw, err = DecodeVernierProcessingDataPayload(body, st.Array("vernierraw"))
		}
		st.ReadVernierProcessingDataRaw = err == nil
	case RecordVernierProcessingDataFiltd:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.VernierProcessingDataFilt, err = DecodeVernierProcessingDataPayload(body, st.Array("vernierfilt"))
		}
		st.ReadVernierProcessingDataFilt = err == nil
	case RecordRawDetection:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.RawDetection, err = DecodeRawDetectionPayload(body, optional, st.Array("rawdetection"), FormatInfo(st).MaxBeams)
		}
		st.ReadRawDetection = err == nil
	case RecordSegmentedRawDetection:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.SegmentedRawDetection, err = DecodeSegmentedRawDetectionPayload(body, st.Array("segmentedrawdetection"), FormatInfo(st).MaxBeams)
		}
		st.ReadSegmentedRawDetection = err == nil
	case RecordSnippet:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.Snippet, err = DecodeSnippetPayload(body, st.Array("snippet"))
		}
		st.ReadSnippet = err == nil
	case RecordSnippetBackscatter:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.SnippetBackscatter, err = DecodeSnippetBackscatterPayload(body, st.Array("snippetbackscatter"))
		}
		st.ReadSnippetBackscatter = err == nil
	case RecordRemoteControlSonarSettings:
		var body []byte
		if st.PingNumber, body, err = splitPingNumber(payload); err == nil {
			st.RemoteControlSonarSettings, err = DecodeRemoteControlSonarSettingsPayload(body)
		}
		st.ReadRemoteControlSonarSettings = err == nil

	case RecordFileHeader:
		st.FileHeader, err = DecodeFileHeaderPayload(payload)
	case RecordFileCatalog:
		st.ReadCatalog, err = DecodeFileCatalogPayload(payload)
	case RecordSystemEventMessage:
		var m SystemEventMessage
		m, err = DecodeSystemEventMessagePayload(payload)
		if err == nil {
			if st.FileHeader.FormatTag == [8]byte{} {
				st.BufferedComments = append(st.BufferedComments, m)
			}
		}
	case RecordSonarSourceVer:
		st.SonarSourceVer, err = DecodeOpaquePayload(payload)
	case RecordConfiguration:
		st.Configuration, err = DecodeOpaquePayload(payload)
	case RecordRemoteControl:
		st.RemoteControl, err = DecodeOpaquePayload(payload)
	case RecordRemoteControlAck:
		st.RemoteControlAck, err = DecodeOpaquePayload(payload)
	case RecordRemoteControlNotAck:
		st.RemoteControlNotAck, err = DecodeOpaquePayload(payload)
	case RecordSubscriptions:
		st.Subscriptions, err = DecodeOpaquePayload(payload)
	case RecordRDRRecordingStatus:
		st.RDRRecordingStatus, err = DecodeOpaquePayload(payload)

	case RecordPosition:
		st.Position, err = DecodePositionPayload(payload)
	case RecordNavigation:
		st.Navigation, err = DecodePositionPayload(payload)
	case RecordCustomAttitude:
		st.CustomAttitude, err = DecodeCustomAttitudePayload(payload, st.Array("customattitude"))
	case RecordAttitude:
		st.Attitude, err = DecodeAttitudePayload(payload)
	case RecordRollPitchHeave:
		st.RollPitchHeave, err = DecodeAttitudePayload(payload)
	case RecordTide:
		st.Tide, err = DecodeTidePayload(payload)
	case RecordAltitude:
		st.Altitude, err = DecodeAltitudePayload(payload)
	case RecordMotionOverGround:
		st.MotionOverGround, err = DecodeMotionOverGroundPayload(payload)
	case RecordDepth:
		st.Depth, err = DecodeDepthPayload(payload)
	case RecordSVP:
		st.SVP, err = DecodeSoundVelocityProfilePayload(payload, st.Array("svp"))
	case RecordCTD:
		st.CTD, err = DecodeCTDPayload(payload)
	case RecordGeodesy:
		st.Geodesy, err = DecodeGeodesyPayload(payload)
	case RecordHeading:
		st.Heading, err = DecodeHeadingPayload(payload)
	case RecordSurveyLine:
		st.SurveyLine, err = DecodeSurveyLinePayload(payload)

	default:
		return Unintelligible("no decoder registered for record type")
	}
	return err
}

// EncodeRecordPayload mirrors DecodeRecordPayload for the write path,
// returning the encoded payload bytes for the Store's current value of
// the named record type.
func EncodeRecordPayload(rt RecordType, st *Store) ([]byte, error) {
	switch rt {
	case RecordSonarSettings:
		b, err := EncodeSonarSettingsPayload(st.SonarSettings)
		return withPingNumber(st.PingNumber, b, err)
	case RecordMatchFilter:
		b, err := EncodeMatchFilterPayload(st.MatchFilter)
		return withPingNumber(st.PingNumber, b, err)
	case RecordBeamGeometry:
		return EncodeBeamGeometryPayload(st.BeamGeometry)
	case RecordBathymetry:
		b, err := EncodeBathymetryPayload(st.Bathymetry, RecordWireVersion(RecordBathymetry))
		return withPingNumber(st.PingNumber, b, err)
	case RecordSideScan:
		b, err := EncodeSideScanPayload(st.SideScan)
		return withPingNumber(st.PingNumber, b, err)
	case RecordCalibratedSideScan:
		b, err := EncodeSideScanPayload(st.CalibratedSideScan)
		return withPingNumber(st.PingNumber, b, err)
	case RecordProcessedSideScan:
		b, err := EncodeSideScanPayload(st.ProcessedSideScan)
		return withPingNumber(st.PingNumber, b, err)
	case RecordWaterColumn:
		b, err := EncodeWaterColumnPayload(st.WaterColumn)
		return withPingNumber(st.PingNumber, b, err)
	case RecordCompressedWaterColumn:
		b, err := EncodeCompressedWaterColumnPayload(st.CompressedWaterColumn)
		return withPingNumber(st.PingNumber, b, err)
	case RecordVerticalDepth:
		b, err := EncodeVerticalDepthPayload(st.VerticalDepth)
		return withPingNumber(st.PingNumber, b, err)
	case RecordTVG:
		b, err := EncodeTVGPayload(st.TVG)
		return withPingNumber(st.PingNumber, b, err)
	case RecordImage:
		b, err := EncodeImagePayload(st.Image)
		return withPingNumber(st.PingNumber, b, err)
	case RecordPingMotion:
		b, err := EncodePingMotionPayload(st.PingMotion)
		return withPingNumber(st.PingNumber, b, err)
	case RecordAdaptiveGate:
		b, err := EncodeAdaptiveGatePayload(st.AdaptiveGate)
		return withPingNumber(st.PingNumber, b, err)
	case RecordDetectionDataSetup:
		b, err := EncodeDetectionDataSetupPayload(st.DetectionDataSetup)
		return withPingNumber(st.PingNumber, b, err)
	case RecordBeamformed:
		b, err := EncodeBeamformedPayload(st.Beamformed)
		return withPingNumber(st.PingNumber, b, err)
	case RecordCalibratedBeam:
		b, err := EncodeCalibratedBeamPayload(st.CalibratedBeam)
		return withPingNumber(st.PingNumber, b, err)
	case RecordCompressedBeamformedMag:
		b, err := EncodeOpaquePayload(st.CompressedBeamformedMag)
		return withPingNumber(st.PingNumber, b, err)
	case RecordVernierProcessingDataRaw:
		b, err := EncodeVernierProcessingDataPayload(st.VernierProcessingDataRaw)
		return withPingNumber(st.PingNumber, b, err)
	case RecordVernierProcessingDataFiltd:
		b, err := EncodeVernierProcessingDataPayload(st.VernierProcessingDataFilt)
		return withPingNumber(st.PingNumber, b, err)
	case RecordRawDetection:
		b, err := EncodeRawDetectionPayload(st.RawDetection)
		return withPingNumber(st.PingNumber, b, err)
	case RecordSegmentedRawDetection:
		b, err := EncodeSegmentedRawDetectionPayload(st.SegmentedRawDetection)
		return withPingNumber(st.PingNumber, b, err)
	case RecordSnippet:
		b, err := EncodeSnippetPayload(st.Snippet)
		return withPingNumber(st.PingNumber, b, err)
	case RecordSnippetBackscatter:
		b, err := EncodeSnippetBackscatterPayload(st.SnippetBackscatter)
		return withPingNumber(st.PingNumber, b, err)
	case RecordRemoteControlSonarSettings:
		b, err := EncodeRemoteControlSonarSettingsPayload(st.RemoteControlSonarSettings)
		return withPingNumber(st.PingNumber, b, err)

	case RecordFileHeader:
		return EncodeFileHeaderPayload(st.FileHeader)
	case RecordFileCatalog:
		return EncodeFileCatalogPayload(st.WriteCatalog)
	case RecordSystemEventMessage:
		if len(st.BufferedComments) > 0 {
			m := st.BufferedComments[0]
			st.BufferedComments = st.BufferedComments[1:]
			return EncodeSystemEventMessagePayload(m)
		}
		return nil, BadFrame("no buffered comment to encode")
	case RecordSonarSourceVer:
		return EncodeOpaquePayload(st.SonarSourceVer)
	case RecordConfiguration:
		return EncodeOpaquePayload(st.Configuration)
	case RecordRemoteControl:
		return EncodeOpaquePayload(st.RemoteControl)
	case RecordRemoteControlAck:
		return EncodeOpaquePayload(st.RemoteControlAck)
	case RecordRemoteControlNotAck:
		return EncodeOpaquePayload(st.RemoteControlNotAck)
	case RecordSubscriptions:
		return EncodeOpaquePayload(st.Subscriptions)
	case RecordRDRRecordingStatus:
		return EncodeOpaquePayload(st.RDRRecordingStatus)

	case RecordPosition:
		return EncodePositionPayload(st.Position)
	case RecordNavigation:
		return EncodePositionPayload(st.Navigation)
	case RecordCustomAttitude:
		return EncodeCustomAttitudePayload(st.CustomAttitude)
	case RecordAttitude:
		return EncodeAttitudePayload(st.Attitude)
	case RecordRollPitchHeave:
		return EncodeAttitudePayload(st.RollPitchHeave)
	case RecordTide:
		return EncodeTidePayload(st.Tide)
	case RecordAltitude:
		return EncodeAltitudePayload(st.Altitude)
	case RecordMotionOverGround:
		return EncodeMotionOverGroundPayload(st.MotionOverGround)
	case RecordDepth:
		return EncodeDepthPayload(st.Depth)
	case RecordSVP:
		return EncodeSoundVelocityProfilePayload(st.SVP)
	case RecordCTD:
		return EncodeCTDPayload(st.CTD)
	case RecordGeodesy:
		return EncodeGeodesyPayload(st.Geodesy)
	case RecordHeading:
		return EncodeHeadingPayload(st.Heading)
	case RecordSurveyLine:
		return EncodeSurveyLinePayload(st.SurveyLine)

	default:
		return nil, Unintelligible("no encoder registered for record type")
	}
}

// EncodeRecordOptional returns the optional-data section for record types
// that carry one (spec §4.3 RawDetection: georeferencing fields plus a
// per-beam computed-bathymetry array, present only when HasOptionalData is
// set). Every other record type has no optional section.
func EncodeRecordOptional(rt RecordType, st *Store) ([]byte, error) {
	switch rt {
	case RecordRawDetection:
		return EncodeRawDetectionOptional(st.RawDetection)
	case RecordSegmentedRawDetection:
		return EncodeSegmentedRawDetectionOptional(st.SegmentedRawDetection)
	default:
		return nil, nil
	}
}

// RecordWireVersion is the record-version this writer stamps into the
// header of each record it emits. Most layouts have never revised;
// Bathymetry is written at version 5, the revision that added the
// frequency and per-beam uncertainty fields. Readers gate on the header
// version they actually received, not on this table.
func RecordWireVersion(rt RecordType) uint16 {
	if rt == RecordBathymetry {
		return 5
	}
	return 1
}
