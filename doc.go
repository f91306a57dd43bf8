// Package sonartel decodes and encodes the binary telemetry container
// format emitted by a family of multibeam echosounders: ping-associated
// acoustic records (bathymetry, side-scan, water-column, snippets, raw
// detections), vehicle navigation and attitude, sound-velocity profiles,
// installation/configuration records, calibration and status messages,
// operator comments, and file-level metadata.
//
// The package only consumes a seekable byte reader/writer and a Store to
// deposit parsed records into; it does not interpret acoustic samples,
// transform coordinates, or resample time series.
package sonartel
