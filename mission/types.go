package mission

// Field identifiers emitted by the parameter form.
const (
	FieldPlatformID = "platform_id"
	FieldPayloadID  = "payload_id"
	FieldMonth      = "month"
	FieldDuration   = "duration"
	FieldRadius     = "target_radius_km"
)

// Editable ranges. The form controls clamp at these boundaries, so an
// out-of-range configuration cannot be constructed.
const (
	MonthMin    = 1
	MonthMax    = 12
	DurationMin = 7
	DurationMax = 180
	RadiusMin   = 10.0
	RadiusMax   = 200.0
)

// MarginPercent is the fixed business markup. It is never user-editable
// and goes on the wire as a fraction (MarginPercent / 100).
const MarginPercent = 30.0

// Configuration is the full mutable mission setup. It is owned by the
// Station; other components change it only through the field-change and
// pointer-activation events.
type Configuration struct {
	PlatformID     int64   `json:"platform_id"`
	PayloadID      int64   `json:"payload_id"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Month          int     `json:"month"`
	DurationDays   int     `json:"duration_days"`
	TargetRadiusKm float64 `json:"target_radius_km"`
}

// State classifies the submission side of the controller. Field edits
// are legal in every state.
type State int

const (
	// StateIdle: no submission in flight, no result yet.
	StateIdle State = iota
	// StateSubmitting: a request is in flight; further submits no-op.
	StateSubmitting
	// StateIdleWithResult: last submission succeeded.
	StateIdleWithResult
	// StateIdleWithError: last submission failed; any prior result is
	// retained for display.
	StateIdleWithError
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "Submitting"
	case StateIdleWithResult:
		return "Idle-with-result"
	case StateIdleWithError:
		return "Idle-with-error"
	default:
		return "Idle"
	}
}

// StateUpdate is the snapshot broadcast to map clients whenever the
// configuration changes by any path. RadiusM is the overlay radius in
// the map's native linear unit (meters).
type StateUpdate struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	RadiusKm   float64 `json:"radius_km"`
	RadiusM    float64 `json:"radius_m"`
	Submitting bool    `json:"submitting"`
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
