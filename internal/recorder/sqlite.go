package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"QuoteChart/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the API can read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quotes (
			symbol    TEXT    NOT NULL,
			date      TEXT    NOT NULL,
			timestamp INTEGER NOT NULL,
			exchange  TEXT,
			open      REAL,
			high      REAL,
			low       REAL,
			close     REAL,
			volume    INTEGER,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_ts ON quotes(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS chart_snapshots (
			id           TEXT PRIMARY KEY,
			symbol       TEXT    NOT NULL,
			time_window  TEXT    NOT NULL,
			generated_at INTEGER NOT NULL,
			points       INTEGER,
			last_close   REAL,
			price_min    REAL,
			price_max    REAL,
			volume_max   REAL,
			sma_period   INTEGER,
			last_sma     REAL,
			ema_period   INTEGER,
			last_ema     REAL,
			rsi_period   INTEGER,
			last_rsi     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol ON chart_snapshots(symbol, generated_at)`,

		`CREATE TABLE IF NOT EXISTS indicator_points (
			snapshot_id TEXT    NOT NULL,
			series      TEXT    NOT NULL,
			timestamp   INTEGER NOT NULL,
			value       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_points_snapshot ON indicator_points(snapshot_id, series)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordQuotes upserts quotes keyed by symbol and date. Quotes without a
// parseable date are skipped.
func (r *SQLiteRecorder) RecordQuotes(quotes []model.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO quotes
		(symbol, date, timestamp, exchange, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			exchange = excluded.exchange,
			open     = excluded.open,
			high     = excluded.high,
			low      = excluded.low,
			close    = excluded.close,
			volume   = excluded.volume`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, q := range quotes {
		if !q.HasTimestamp() {
			continue
		}
		var vol sql.NullInt64
		if q.Volume != nil {
			vol = sql.NullInt64{Int64: *q.Volume, Valid: true}
		}
		if _, err := stmt.Exec(strings.ToUpper(q.Symbol), q.Date, q.Timestamp().Unix(), q.Exchange,
			q.Open, q.High, q.Low, q.Close, vol); err != nil {
			return fmt.Errorf("upsert %s %s: %w", q.Symbol, q.Date, err)
		}
	}
	return tx.Commit()
}

// RecordSnapshot stores the snapshot summary and its indicator series.
func (r *SQLiteRecorder) RecordSnapshot(snap *model.ChartSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ind := snap.Indicators
	_, err = tx.Exec(`INSERT OR REPLACE INTO chart_snapshots
		(id, symbol, time_window, generated_at, points, last_close, price_min, price_max, volume_max,
		 sma_period, last_sma, ema_period, last_ema, rsi_period, last_rsi)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.ID, snap.Symbol, snap.Window.String(), snap.GeneratedAt.Unix(), len(snap.Quotes),
		snap.LastClose(), snap.PriceRange.Min, snap.PriceRange.Max, snap.VolumeRange.Max,
		ind.SMAPeriod, lastValue(ind.SMA), ind.EMAPeriod, lastValue(ind.EMA),
		ind.RSIPeriod, lastValue(ind.RSI),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM indicator_points WHERE snapshot_id = ?`, snap.ID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO indicator_points (snapshot_id, series, timestamp, value) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	series := []struct {
		name   string
		points []model.IndicatorPoint
	}{
		{"sma", ind.SMA},
		{"ema", ind.EMA},
		{"rsi", ind.RSI},
	}
	for _, s := range series {
		for _, p := range s.points {
			if _, err := stmt.Exec(snap.ID, s.name, p.Timestamp.Unix(), p.Value); err != nil {
				return fmt.Errorf("insert %s point: %w", s.name, err)
			}
		}
	}
	return tx.Commit()
}

// LatestSnapshot returns the most recently generated snapshot for symbol.
func (r *SQLiteRecorder) LatestSnapshot(symbol string) (*SnapshotRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rec SnapshotRecord
	var window string
	var generatedAt int64
	var lastSMA, lastEMA, lastRSI sql.NullFloat64
	err := r.db.QueryRow(`SELECT id, symbol, time_window, generated_at, points, last_close,
			price_min, price_max, volume_max, sma_period, last_sma, ema_period, last_ema, rsi_period, last_rsi
		FROM chart_snapshots WHERE symbol = ? ORDER BY generated_at DESC, rowid DESC LIMIT 1`,
		strings.ToUpper(symbol),
	).Scan(&rec.ID, &rec.Symbol, &window, &generatedAt, &rec.Points, &rec.LastClose,
		&rec.PriceRange.Min, &rec.PriceRange.Max, &rec.VolumeMax,
		&rec.SMAPeriod, &lastSMA, &rec.EMAPeriod, &lastEMA, &rec.RSIPeriod, &lastRSI)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}

	if rec.Window, err = model.ParseTimeWindow(window); err != nil {
		return nil, err
	}
	rec.GeneratedAt = time.Unix(generatedAt, 0).UTC()
	rec.LastSMA = nullable(lastSMA)
	rec.LastEMA = nullable(lastEMA)
	rec.LastRSI = nullable(lastRSI)
	return &rec, nil
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}

func lastValue(points []model.IndicatorPoint) sql.NullFloat64 {
	v, ok := model.Last(points)
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
