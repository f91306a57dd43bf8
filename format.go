package sonartel

// SonarFamily identifies the broad sonar product family a FileHeader's
// format tag was created by, used to pick sane defaults when a field a
// component needs was never supplied (spec §2 "FormatInfo()" note).
type SonarFamily uint8

const (
	SonarFamilyUnknown SonarFamily = iota
	SonarFamilyMultibeam
	SonarFamilySideScan
	SonarFamilySinglebeam
)

// FormatLimits carries the fixed ceilings this implementation enforces
// when allocating per-ping arrays, and the defaults it falls back to when
// an optional field is absent.
type FormatLimits struct {
	Family             SonarFamily
	MaxBeams           int
	MaxPixelsPerLine   int
	DefaultBeamwidthDeg float32
	AsyncBufferCapacity int
}

// DefaultFormatLimits returns the conservative defaults this
// implementation applies: enough beams/pixels for any multibeam system
// in current production use, a 1.0 degree default beamwidth when a sonar
// omits its own (mirroring the teacher's own fallback for missing beam
// geometry), and a modest async-buffer depth.
func DefaultFormatLimits() FormatLimits {
	return FormatLimits{
		Family:              SonarFamilyMultibeam,
		MaxBeams:            1024,
		MaxPixelsPerLine:    8192,
		DefaultBeamwidthDeg: 1.0,
		AsyncBufferCapacity: 256,
	}
}

// FormatInfo reports the limits and defaults the Store's current
// FileHeader implies, falling back to DefaultFormatLimits when the
// header hasn't been read yet or doesn't name a recognized family.
func FormatInfo(st *Store) FormatLimits {
	limits := DefaultFormatLimits()
	tag := trimNulString(st.FileHeader.FormatTag[:])
	switch tag {
	case "SSS":
		limits.Family = SonarFamilySideScan
		limits.MaxBeams = 2
	case "SBES":
		limits.Family = SonarFamilySinglebeam
		limits.MaxBeams = 1
	case "MBES", "":
		limits.Family = SonarFamilyMultibeam
	}
	return limits
}
