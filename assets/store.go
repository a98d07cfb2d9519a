// Package assets serves the simulator collaborator API: the platform
// and payload catalog backed by sqlite, the simulate endpoint, and the
// quote history.
package assets

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/involve-space/stratosim-station/simapi"
)

var db *sql.DB

const schema = `
CREATE TABLE IF NOT EXISTS platform (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	capex REAL NOT NULL,
	launch_cost REAL NOT NULL,
	max_payload_mass REAL NOT NULL,
	min_altitude REAL NOT NULL,
	max_altitude REAL NOT NULL,
	max_duration_days INTEGER NOT NULL,
	amortization_flights INTEGER NOT NULL,
	power_available_payload REAL NOT NULL,
	battery_capacity REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS payload (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	capex REAL NOT NULL,
	mass REAL NOT NULL,
	power_consumption REAL NOT NULL,
	resolution_gsd REAL NOT NULL,
	fov REAL NOT NULL,
	daily_data_rate_gb REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS quote_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	platform_id INTEGER NOT NULL,
	payload_id INTEGER NOT NULL,
	is_feasible INTEGER NOT NULL,
	total_cost REAL NOT NULL,
	price_quoted REAL NOT NULL,
	margin_absolute REAL NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// InitDatabase opens (or creates) the asset database under dataDir,
// bootstraps the schema and seeds the catalog if empty.
func InitDatabase(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var err error
	db, err = sql.Open("sqlite3", filepath.Join(dataDir, "assets.db"))
	if err != nil {
		return fmt.Errorf("failed to open asset database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping asset database: %w", err)
	}

	if err := initSchemaAndSeed(db); err != nil {
		return err
	}

	log.Println("Asset database initialized successfully")
	return nil
}

func initSchemaAndSeed(conn *sql.DB) error {
	var count int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='platform'").Scan(&count)
	if err == nil && count > 0 {
		return seedIfEmpty(conn)
	}

	log.Println("Initializing asset database schema...")
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create asset schema: %w", err)
	}
	return seedIfEmpty(conn)
}

// CloseDatabase closes the asset database.
func CloseDatabase() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

func seedIfEmpty(conn *sql.DB) error {
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM platform").Scan(&count); err != nil {
		return fmt.Errorf("failed to count platforms: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding asset catalog...")

	platforms := []simapi.Platform{
		{
			Name:                  "SmartBalloon Mk1",
			Capex:                 15000.0,
			LaunchCost:            5000.0,
			MaxPayloadMass:        15.0,
			MinAltitude:           18.0,
			MaxAltitude:           25.0,
			MaxDurationDays:       100,
			AmortizationFlights:   3,
			PowerAvailablePayload: 150.0,
			BatteryCapacity:       2000.0,
		},
		{
			Name:                  "PseudoSat Alpha",
			Capex:                 45000.0,
			LaunchCost:            12000.0,
			MaxPayloadMass:        25.0,
			MinAltitude:           20.0,
			MaxAltitude:           30.0,
			MaxDurationDays:       180,
			AmortizationFlights:   5,
			PowerAvailablePayload: 300.0,
			BatteryCapacity:       5000.0,
		},
	}
	payloads := []simapi.Payload{
		{
			Name:             "Optical High-Res (EOS-1)",
			Capex:            25000.0,
			Mass:             5.0,
			PowerConsumption: 45.0,
			ResolutionGSD:    0.3,
			FOV:              15.0,
			DailyDataRateGB:  50.0,
		},
		{
			Name:             "SAR Radar (S-Band)",
			Capex:            85000.0,
			Mass:             12.0,
			PowerConsumption: 120.0,
			ResolutionGSD:    1.0,
			FOV:              25.0,
			DailyDataRateGB:  120.0,
		},
	}

	for _, p := range platforms {
		_, err := conn.Exec(`INSERT INTO platform
			(name, capex, launch_cost, max_payload_mass, min_altitude, max_altitude,
			 max_duration_days, amortization_flights, power_available_payload, battery_capacity)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Capex, p.LaunchCost, p.MaxPayloadMass, p.MinAltitude, p.MaxAltitude,
			p.MaxDurationDays, p.AmortizationFlights, p.PowerAvailablePayload, p.BatteryCapacity)
		if err != nil {
			return fmt.Errorf("failed to seed platform %q: %w", p.Name, err)
		}
	}
	for _, p := range payloads {
		_, err := conn.Exec(`INSERT INTO payload
			(name, capex, mass, power_consumption, resolution_gsd, fov, daily_data_rate_gb)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Capex, p.Mass, p.PowerConsumption, p.ResolutionGSD, p.FOV, p.DailyDataRateGB)
		if err != nil {
			return fmt.Errorf("failed to seed payload %q: %w", p.Name, err)
		}
	}
	return nil
}

// ListPlatforms returns all platforms in insertion order.
func ListPlatforms() ([]simapi.Platform, error) {
	rows, err := db.Query(`SELECT id, name, capex, launch_cost, max_payload_mass,
		min_altitude, max_altitude, max_duration_days, amortization_flights,
		power_available_payload, battery_capacity FROM platform ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query platforms: %w", err)
	}
	defer rows.Close()

	var platforms []simapi.Platform
	for rows.Next() {
		var p simapi.Platform
		if err := rows.Scan(&p.ID, &p.Name, &p.Capex, &p.LaunchCost, &p.MaxPayloadMass,
			&p.MinAltitude, &p.MaxAltitude, &p.MaxDurationDays, &p.AmortizationFlights,
			&p.PowerAvailablePayload, &p.BatteryCapacity); err != nil {
			return nil, fmt.Errorf("failed to scan platform: %w", err)
		}
		platforms = append(platforms, p)
	}
	return platforms, rows.Err()
}

// ListPayloads returns all payloads in insertion order.
func ListPayloads() ([]simapi.Payload, error) {
	rows, err := db.Query(`SELECT id, name, capex, mass, power_consumption,
		resolution_gsd, fov, daily_data_rate_gb FROM payload ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query payloads: %w", err)
	}
	defer rows.Close()

	var payloads []simapi.Payload
	for rows.Next() {
		var p simapi.Payload
		if err := rows.Scan(&p.ID, &p.Name, &p.Capex, &p.Mass, &p.PowerConsumption,
			&p.ResolutionGSD, &p.FOV, &p.DailyDataRateGB); err != nil {
			return nil, fmt.Errorf("failed to scan payload: %w", err)
		}
		payloads = append(payloads, p)
	}
	return payloads, rows.Err()
}

// GetPlatform returns a platform by id, or nil if not found.
func GetPlatform(id int64) (*simapi.Platform, error) {
	var p simapi.Platform
	err := db.QueryRow(`SELECT id, name, capex, launch_cost, max_payload_mass,
		min_altitude, max_altitude, max_duration_days, amortization_flights,
		power_available_payload, battery_capacity FROM platform WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Capex, &p.LaunchCost, &p.MaxPayloadMass,
			&p.MinAltitude, &p.MaxAltitude, &p.MaxDurationDays, &p.AmortizationFlights,
			&p.PowerAvailablePayload, &p.BatteryCapacity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get platform %d: %w", id, err)
	}
	return &p, nil
}

// GetPayload returns a payload by id, or nil if not found.
func GetPayload(id int64) (*simapi.Payload, error) {
	var p simapi.Payload
	err := db.QueryRow(`SELECT id, name, capex, mass, power_consumption,
		resolution_gsd, fov, daily_data_rate_gb FROM payload WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Capex, &p.Mass, &p.PowerConsumption,
			&p.ResolutionGSD, &p.FOV, &p.DailyDataRateGB)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payload %d: %w", id, err)
	}
	return &p, nil
}

// QuoteRecord is one row of simulate history.
type QuoteRecord struct {
	ID             int64     `json:"id"`
	PlatformID     int64     `json:"platform_id"`
	PayloadID      int64     `json:"payload_id"`
	IsFeasible     bool      `json:"is_feasible"`
	TotalCost      float64   `json:"total_cost"`
	PriceQuoted    float64   `json:"price_quoted"`
	MarginAbsolute float64   `json:"margin_absolute"`
	CreatedAt      time.Time `json:"created_at"`
}

// RecordQuote stores one simulate outcome in the history table.
func RecordQuote(req simapi.SimulationRequest, resp *simapi.SimulationResponse) error {
	_, err := db.Exec(`INSERT INTO quote_history
		(platform_id, payload_id, is_feasible, total_cost, price_quoted, margin_absolute, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.PlatformID, req.PayloadID, resp.IsFeasible,
		resp.Quote.TotalCost, resp.Quote.PriceQuoted, resp.Quote.MarginAbsolute, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record quote: %w", err)
	}
	return nil
}

// ListQuoteHistory returns the most recent quote records, newest first.
func ListQuoteHistory(limit int) ([]QuoteRecord, error) {
	rows, err := db.Query(`SELECT id, platform_id, payload_id, is_feasible,
		total_cost, price_quoted, margin_absolute, created_at
		FROM quote_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote history: %w", err)
	}
	defer rows.Close()

	var records []QuoteRecord
	for rows.Next() {
		var r QuoteRecord
		if err := rows.Scan(&r.ID, &r.PlatformID, &r.PayloadID, &r.IsFeasible,
			&r.TotalCost, &r.PriceQuoted, &r.MarginAbsolute, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
