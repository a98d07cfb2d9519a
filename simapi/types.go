package simapi

// Platform is a stratospheric vehicle offering power, payload mass,
// altitude and endurance. Server-supplied, immutable for the session.
type Platform struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	Capex                 float64 `json:"capex"`
	LaunchCost            float64 `json:"launch_cost"`
	MaxPayloadMass        float64 `json:"max_payload_mass"` // kg
	MinAltitude           float64 `json:"min_altitude"`     // km
	MaxAltitude           float64 `json:"max_altitude"`     // km
	MaxDurationDays       int     `json:"max_duration_days"`
	AmortizationFlights   int     `json:"amortization_flights"`
	PowerAvailablePayload float64 `json:"power_available_payload"` // Watts
	BatteryCapacity       float64 `json:"battery_capacity"`        // Wh
}

// Payload is an instrument carried by a platform.
type Payload struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Capex            float64 `json:"capex"`
	Mass             float64 `json:"mass"`              // kg
	PowerConsumption float64 `json:"power_consumption"` // Watts
	ResolutionGSD    float64 `json:"resolution_gsd"`    // m
	FOV              float64 `json:"fov"`               // degrees
	DailyDataRateGB  float64 `json:"daily_data_rate_gb"`
}

// SimulationRequest is the wire shape of a simulate call. MarginPercent
// carries a fraction (0.30 for 30%) despite the name; the field name is
// fixed by the server contract.
type SimulationRequest struct {
	PlatformID     int64   `json:"platform_id"`
	PayloadID      int64   `json:"payload_id"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	Month          int     `json:"month"`
	DurationDays   int     `json:"duration_days"`
	TargetRadiusKm float64 `json:"target_radius_km"`
	MarginPercent  float64 `json:"margin_percent"`
}

// PowerAnalysis is the energy-balance result for the worst-case night
// of the requested month.
type PowerAnalysis struct {
	SurvivesNight     bool    `json:"survives_night"`
	DayHours          float64 `json:"day_hours"`
	NightHours        float64 `json:"night_hours"`
	NightEnergyNeeded float64 `json:"night_energy_needed_wh"`
	BatteryCapacityWh float64 `json:"battery_capacity_wh"`
	MarginWh          float64 `json:"margin_wh"`
	Status            string  `json:"status"`
}

// FlightAnalysis summarizes wind-driven station-keeping capability.
type FlightAnalysis struct {
	WindVolatilityScore    float64 `json:"wind_volatility_score"`
	StationKeepingProb     float64 `json:"station_keeping_prob"`
	OverprovisioningFactor float64 `json:"overprovisioning_factor"`
	DriftRisk              string  `json:"drift_risk"`
}

// QuoteBreakdown itemizes the mission cost by category.
type QuoteBreakdown struct {
	PlatformAmortized      float64 `json:"platform_amortized"`
	PayloadAmortized       float64 `json:"payload_amortized"`
	OpsCost                float64 `json:"ops_cost"`
	DataCost               float64 `json:"data_cost"`
	OverprovisioningFactor float64 `json:"overprovisioning_factor"`
}

// Quote is the priced mission. MarginPercent here is a percentage
// (30.0 for 30%), unlike the request field.
type Quote struct {
	Breakdown      QuoteBreakdown `json:"breakdown"`
	TotalCost      float64        `json:"total_cost"`
	PriceQuoted    float64        `json:"price_quoted"`
	MarginAbsolute float64        `json:"margin_absolute"`
	MarginPercent  float64        `json:"margin_percent"`
}

// SimulationResponse is the full simulate result.
type SimulationResponse struct {
	IsFeasible     bool           `json:"is_feasible"`
	Warnings       []string       `json:"warnings"`
	PowerAnalysis  PowerAnalysis  `json:"power_analysis"`
	FlightAnalysis FlightAnalysis `json:"flight_analysis"`
	Quote          Quote          `json:"quote"`
}
