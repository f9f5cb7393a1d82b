package repositories

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"fuel-route-service/internal/ports"
)

// Expected OPIS export column headers.
const (
	colStationID = "OPIS Truckstop ID"
	colName      = "Truckstop Name"
	colAddress   = "Address"
	colCity      = "City"
	colState     = "State"
	colRackID    = "Rack ID"
	colPrice     = "Retail Price"
)

type ImportStats struct {
	TotalRows int
	Imported  int
	Skipped   int
}

// ImportCSV performs the one-time bulk load: it reads the OPIS fuel price
// export, geocodes each station's city/state through the (cached) geocoder,
// and upserts the rows. Rows missing critical fields or failing geocoding
// are skipped and counted, never stored as partial entries.
func ImportCSV(
	ctx context.Context,
	db *sql.DB,
	csvPath string,
	geocoder ports.GeocodeProvider,
) (ImportStats, error) {
	var stats ImportStats

	if db == nil {
		return stats, errors.New("import csv: DB is nil")
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return stats, fmt.Errorf("import csv: open %q: %w", csvPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("import csv: read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colStationID, colCity, colState, colPrice} {
		if _, ok := col[required]; !ok {
			return stats, fmt.Errorf("import csv: missing column %q", required)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("import csv: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO fuel_stations (station_id, name, address, city, state, rack_id, price_per_gallon, lat, lon)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (station_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		rack_id = EXCLUDED.rack_id,
		price_per_gallon = EXCLUDED.price_per_gallon,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`)
	if err != nil {
		return stats, fmt.Errorf("import csv: prepare upsert: %w", err)
	}
	defer stmt.Close()

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("import csv: read row %d: %w", stats.TotalRows+1, err)
		}
		stats.TotalRows++

		stationID := field(record, colStationID)
		city := field(record, colCity)
		state := field(record, colState)
		priceStr := field(record, colPrice)

		if stationID == "" || city == "" || state == "" || priceStr == "" {
			log.Printf("import csv: skipping row %d: missing critical data", stats.TotalRows)
			stats.Skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			log.Printf("import csv: skipping row %d: bad price %q: %v", stats.TotalRows, priceStr, err)
			stats.Skipped++
			continue
		}

		location := fmt.Sprintf("%s, %s", city, state)
		coords, err := geocoder.Geocode(ctx, location)
		if err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				log.Printf("import csv: skipping row %d: no geocode result for %q", stats.TotalRows, location)
				stats.Skipped++
				continue
			}
			return stats, fmt.Errorf("import csv: geocode %q: %w", location, err)
		}

		_, err = stmt.ExecContext(ctx,
			stationID,
			field(record, colName),
			field(record, colAddress),
			city,
			state,
			field(record, colRackID),
			price,
			coords.Lat,
			coords.Lon,
		)
		if err != nil {
			return stats, fmt.Errorf("import csv: upsert station_id=%q: %w", stationID, err)
		}
		stats.Imported++
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("import csv: commit tx: %w", err)
	}

	return stats, nil
}
