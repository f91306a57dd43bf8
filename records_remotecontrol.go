package sonartel

// RemoteControlSonarSettings is the subset of SonarSettings that can be
// changed live over a remote-control channel; it rides the ping stream
// like any other ping-associated record (spec §3.3/§3.4) even though its
// content is operator-initiated rather than per-ping telemetry.
type RemoteControlSonarSettings struct {
	Frequency float32
	TxPower   float32
	PulseWidth float32
}

func DecodeRemoteControlSonarSettingsPayload(payload []byte) (RemoteControlSonarSettings, error) {
	var r RemoteControlSonarSettings
	c := NewCursor(payload)
	var err error
	if r.Frequency, err = c.GetF32(); err != nil {
		return r, err
	}
	if r.TxPower, err = c.GetF32(); err != nil {
		return r, err
	}
	if r.PulseWidth, err = c.GetF32(); err != nil {
		return r, err
	}
	return r, nil
}

func EncodeRemoteControlSonarSettingsPayload(r RemoteControlSonarSettings) ([]byte, error) {
	c := NewCursorSize(4 * 3)
	for _, v := range []float32{r.Frequency, r.TxPower, r.PulseWidth} {
		if err := c.PutF32(v); err != nil {
			return nil, err
		}
	}
	return c.Bytes(), nil
}

// DecodeOpaquePayload copies a payload verbatim, used for the vendor
// remote-control acknowledgement/status channels and the two invented
// bookkeeping records this implementation does not interpret field-by-
// field (spec Non-goals).
func DecodeOpaquePayload(payload []byte) (OpaqueRecord, error) {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	return OpaqueRecord{Payload: buf}, nil
}

// EncodeOpaquePayload returns the stored payload verbatim.
func EncodeOpaquePayload(o OpaqueRecord) ([]byte, error) {
	buf := make([]byte, len(o.Payload))
	copy(buf, o.Payload)
	return buf, nil
}
