package sonartel

// RecordType identifies the concrete wire layout of a record (spec §3.3).
// The teacher's RecordID (decode.go) plays the same role for GSF's much
// smaller registry; this is the same idea scaled to ~60 kinds plus the
// two invented bookkeeping kinds noted in SPEC_FULL.md §3.
type RecordType uint32

// RecordKind is the caller-facing semantic category a record belongs to
// (spec §3.4): the Store's "kind" field.
type RecordKind uint8

const (
	KindUnknown RecordKind = iota
	KindPing
	KindNav
	KindAttitude
	KindTide
	KindComment
	KindFileHeader
	KindParameter
	KindEvent
	KindStatus
	KindSVP
	KindCatalog
)

// Record type registry (spec §3.3, GLOSSARY). Ping-associated records use
// the 7000-range plus 3199 (ProcessedSideScan); auxiliary/async records
// use the 1000-range; file-level records use the 7200/7300 range.
const (
	RecordSonarSettings              RecordType = 7000
	RecordMatchFilter                RecordType = 7002
	RecordBeamGeometry               RecordType = 7004
	RecordBathymetry                 RecordType = 7006
	RecordSideScan                   RecordType = 7007
	RecordWaterColumn                RecordType = 7008
	RecordVerticalDepth              RecordType = 7009
	RecordTVG                        RecordType = 7010
	RecordImage                      RecordType = 7011
	RecordPingMotion                 RecordType = 7012
	RecordDetectionDataSetup         RecordType = 7017
	RecordBeamformed                 RecordType = 7018
	RecordVernierProcessingDataRaw   RecordType = 7019
	RecordAdaptiveGate               RecordType = 7020
	RecordVernierProcessingDataFiltd RecordType = 7021
	RecordRawDetection               RecordType = 7027
	RecordSnippet                    RecordType = 7028
	RecordCompressedBeamformedMag    RecordType = 7041
	RecordCompressedWaterColumn      RecordType = 7042
	RecordSegmentedRawDetection      RecordType = 7047
	RecordCalibratedBeam             RecordType = 7048
	RecordCalibratedSideScan         RecordType = 7057
	RecordSnippetBackscatter         RecordType = 7058

	RecordFileHeader       RecordType = 7200
	RecordSonarSourceVer   RecordType = 7201 // invented id, see SPEC_FULL.md §3
	RecordConfiguration    RecordType = 7202 // invented id, see SPEC_FULL.md §3
	RecordFileCatalog      RecordType = 7300

	RecordSystemEventMessage RecordType = 7051 // comment

	RecordRemoteControl              RecordType = 7500 // invented id
	RecordRemoteControlAck           RecordType = 7501 // invented id
	RecordRemoteControlNotAck        RecordType = 7502 // invented id
	RecordRemoteControlSonarSettings RecordType = 7503
	RecordSubscriptions              RecordType = 7504 // invented id
	RecordRDRRecordingStatus         RecordType = 7505 // invented id

	RecordProcessedSideScan RecordType = 3199

	// Asynchronous auxiliary records (GLOSSARY).
	RecordPosition         RecordType = 1003
	RecordCustomAttitude   RecordType = 1004
	RecordTide             RecordType = 1005
	RecordAltitude         RecordType = 1006
	RecordMotionOverGround RecordType = 1007
	RecordDepth            RecordType = 1008
	RecordSVP              RecordType = 1009
	RecordCTD              RecordType = 1010
	RecordGeodesy          RecordType = 1011
	RecordRollPitchHeave   RecordType = 1012
	RecordHeading          RecordType = 1013
	RecordSurveyLine       RecordType = 1014
	RecordNavigation       RecordType = 1015
	RecordAttitude         RecordType = 1016
)

// RecordNames labels every whitelisted record type, used for diagnostics
// and the CLI inspector, mirroring the teacher's RecordNames map
// (decode.go).
var RecordNames = map[RecordType]string{
	RecordSonarSettings:               "SonarSettings",
	RecordMatchFilter:                 "MatchFilter",
	RecordBeamGeometry:                "BeamGeometry",
	RecordBathymetry:                  "Bathymetry",
	RecordSideScan:                    "SideScan",
	RecordWaterColumn:                 "WaterColumn",
	RecordVerticalDepth:               "VerticalDepth",
	RecordTVG:                         "TVG",
	RecordImage:                       "Image",
	RecordPingMotion:                  "PingMotion",
	RecordDetectionDataSetup:          "DetectionDataSetup",
	RecordBeamformed:                  "Beamformed",
	RecordVernierProcessingDataRaw:    "VernierProcessingDataRaw",
	RecordAdaptiveGate:                "AdaptiveGate",
	RecordVernierProcessingDataFiltd: "VernierProcessingDataFiltered",
	RecordRawDetection:                "RawDetection",
	RecordSnippet:                     "Snippet",
	RecordCompressedBeamformedMag:     "CompressedBeamformedMagnitude",
	RecordCompressedWaterColumn:       "CompressedWaterColumn",
	RecordSegmentedRawDetection:       "SegmentedRawDetection",
	RecordCalibratedBeam:              "CalibratedBeam",
	RecordCalibratedSideScan:          "CalibratedSideScan",
	RecordSnippetBackscatter:          "SnippetBackscatteringStrength",
	RecordFileHeader:                  "FileHeader",
	RecordSonarSourceVer:              "SonarSourceVersion",
	RecordConfiguration:               "Configuration",
	RecordFileCatalog:                 "FileCatalog",
	RecordSystemEventMessage:          "SystemEventMessage",
	RecordRemoteControl:               "RemoteControl",
	RecordRemoteControlAck:            "RemoteControlAcknowledge",
	RecordRemoteControlNotAck:         "RemoteControlNotAcknowledge",
	RecordRemoteControlSonarSettings:  "RemoteControlSonarSettings",
	RecordSubscriptions:               "Subscriptions",
	RecordRDRRecordingStatus:          "RDRRecordingStatus",
	RecordProcessedSideScan:           "ProcessedSideScan",
	RecordPosition:                    "Position",
	RecordCustomAttitude:              "CustomAttitude",
	RecordTide:                        "Tide",
	RecordAltitude:                    "Altitude",
	RecordMotionOverGround:            "MotionOverGround",
	RecordDepth:                       "Depth",
	RecordSVP:                         "SoundVelocityProfile",
	RecordCTD:                         "CTD",
	RecordGeodesy:                     "Geodesy",
	RecordRollPitchHeave:              "RollPitchHeave",
	RecordHeading:                     "Heading",
	RecordSurveyLine:                  "SurveyLine",
	RecordNavigation:                  "Navigation",
	RecordAttitude:                    "Attitude",
}

// pingRecordTypes is the exact set of ping-associated record kinds (spec
// §4.3).
var pingRecordTypes = map[RecordType]bool{
	RecordSonarSettings:               true,
	RecordMatchFilter:                 true,
	RecordBeamGeometry:                true,
	RecordBathymetry:                  true,
	RecordSideScan:                    true,
	RecordWaterColumn:                 true,
	RecordVerticalDepth:               true,
	RecordTVG:                         true,
	RecordImage:                       true,
	RecordPingMotion:                  true,
	RecordAdaptiveGate:                true,
	RecordDetectionDataSetup:          true,
	RecordBeamformed:                  true,
	RecordVernierProcessingDataRaw:    true,
	RecordRawDetection:                true,
	RecordSnippet:                     true,
	RecordVernierProcessingDataFiltd:  true,
	RecordCompressedBeamformedMag:     true,
	RecordCompressedWaterColumn:       true,
	RecordSegmentedRawDetection:       true,
	RecordCalibratedBeam:              true,
	RecordCalibratedSideScan:          true,
	RecordSnippetBackscatter:          true,
	RecordRemoteControlSonarSettings:  true,
	RecordProcessedSideScan:           true,
}

// IsPingRecord reports whether t belongs to a ping's record set.
func IsPingRecord(t RecordType) bool { return pingRecordTypes[t] }

// whitelist is the closed set of record types the reader will ingest
// (spec §3.3); anything else is rejected as BadFrame.
var whitelist = func() map[RecordType]bool {
	m := make(map[RecordType]bool, len(RecordNames))
	for t := range RecordNames {
		m[t] = true
	}
	return m
}()

// InWhitelist reports whether t is a known record type.
func InWhitelist(t RecordType) bool { return whitelist[t] }

// kindOf maps a record type to its Store-facing semantic category.
func kindOf(t RecordType) RecordKind {
	switch {
	case IsPingRecord(t):
		return KindPing
	case t == RecordFileHeader:
		return KindFileHeader
	case t == RecordFileCatalog:
		return KindCatalog
	case t == RecordSystemEventMessage:
		return KindComment
	case t == RecordSVP:
		return KindSVP
	case t == RecordPosition, t == RecordNavigation:
		return KindNav
	case t == RecordCustomAttitude, t == RecordAttitude, t == RecordRollPitchHeave:
		return KindAttitude
	case t == RecordTide:
		return KindTide
	default:
		return KindStatus
	}
}
