package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// AlertLogEntry is one persisted alert, kept for the /verlauf command.
type AlertLogEntry struct {
	ID           int64
	Symbol       string
	CompanyName  string
	DeltaPct     float64
	Direction    string
	Price        float64
	Currency     string
	ThresholdAbs float64
	CreatedAt    string
}

// InsertAlertLog records an emitted alert.
func InsertAlertLog(e AlertLogEntry) error {
	query := `
	INSERT INTO alert_log (symbol, company_name, delta_pct, direction, price, currency, threshold_abs)
	VALUES (?, ?, ?, ?, ?, ?, ?);`

	_, err := DB.Exec(query, e.Symbol, e.CompanyName, e.DeltaPct, e.Direction, e.Price, e.Currency, e.ThresholdAbs)
	if err != nil {
		return fmt.Errorf("failed to insert alert log entry: %w", err)
	}

	log.Debugf("Alert logged: %s %s %.2f%%", e.Symbol, e.Direction, e.DeltaPct)
	return nil
}

// GetRecentAlerts fetches the newest alerts, newest first.
func GetRecentAlerts(limit int) ([]AlertLogEntry, error) {
	query := `
	SELECT id, symbol, company_name, delta_pct, direction, price, currency, threshold_abs, created_at
	FROM alert_log ORDER BY id DESC LIMIT ?;`

	rows, err := DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert log: %w", err)
	}
	defer rows.Close()

	var entries []AlertLogEntry
	for rows.Next() {
		var e AlertLogEntry
		if err := rows.Scan(&e.ID, &e.Symbol, &e.CompanyName, &e.DeltaPct, &e.Direction, &e.Price, &e.Currency, &e.ThresholdAbs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
