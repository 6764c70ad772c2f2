// Package persistence exports finished simulation runs to SQLite for
// reporting. Runs are written once and never loaded back into a simulation.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/tradewinds/internal/engine"
)

// DB wraps a SQLite connection for run exports.
type DB struct {
	conn *sqlx.DB
}

// RunInfo describes how a run was configured.
type RunInfo struct {
	Seed          int64
	Days          int
	PricePolicy   string
	WeatherPolicy string
}

// RunRecord is one row of the runs table.
type RunRecord struct {
	ID             string  `db:"id"`
	Seed           int64   `db:"seed"`
	Days           int     `db:"days"`
	PricePolicy    string  `db:"price_policy"`
	WeatherPolicy  string  `db:"weather_policy"`
	FinalDay       int     `db:"final_day"`
	TotalGold      float64 `db:"total_gold"`
	CurrencySupply float64 `db:"currency_supply"`
	CreatedAt      string  `db:"created_at"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		days INTEGER NOT NULL,
		price_policy TEXT NOT NULL,
		weather_policy TEXT NOT NULL,
		final_day INTEGER NOT NULL,
		total_gold REAL NOT NULL,
		currency_supply REAL NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS city_history (
		run_id TEXT NOT NULL,
		city TEXT NOT NULL,
		good TEXT NOT NULL,
		seq INTEGER NOT NULL,
		price REAL NOT NULL,
		inventory REAL NOT NULL,
		PRIMARY KEY (run_id, city, good, seq)
	);

	CREATE TABLE IF NOT EXISTS ships (
		run_id TEXT NOT NULL,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		gold REAL NOT NULL,
		location TEXT NOT NULL,
		destination TEXT NOT NULL,
		in_transit INTEGER NOT NULL,
		sailing_skill REAL NOT NULL,
		trading_skill REAL NOT NULL,
		preference TEXT NOT NULL,
		trade_history_json TEXT NOT NULL,
		route_costs_json TEXT NOT NULL,
		PRIMARY KEY (run_id, name)
	);

	CREATE TABLE IF NOT EXISTS ship_gold (
		run_id TEXT NOT NULL,
		ship TEXT NOT NULL,
		seq INTEGER NOT NULL,
		gold REAL NOT NULL,
		PRIMARY KEY (run_id, ship, seq)
	);

	CREATE TABLE IF NOT EXISTS routes (
		run_id TEXT NOT NULL,
		from_city TEXT NOT NULL,
		to_city TEXT NOT NULL,
		distance REAL NOT NULL,
		danger REAL NOT NULL,
		wind_advantage REAL NOT NULL,
		sea_state REAL NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS currency (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		supply REAL NOT NULL,
		inflation REAL NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run_day ON events(run_id, day);
	CREATE INDEX IF NOT EXISTS idx_routes_run ON routes(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun exports a snapshot under a fresh run ID and returns the ID. The
// whole export is one transaction, so a failed run leaves no rows behind.
func (db *DB) SaveRun(info RunInfo, snap engine.Snapshot) (string, error) {
	runID := uuid.NewString()
	slog.Info("exporting run", "run_id", runID, "events", len(snap.Events),
		"cities", len(snap.Cities), "ships", len(snap.Ships))

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, seed, days, price_policy, weather_policy, final_day, total_gold, currency_supply, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, info.Seed, info.Days, info.PricePolicy, info.WeatherPolicy,
		snap.Day, snap.Stats.TotalGold, lastOr(snap.CurrencyHistory, 0),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}

	if err := saveEvents(tx, runID, snap.Events); err != nil {
		return "", fmt.Errorf("save events: %w", err)
	}
	if err := saveCityHistory(tx, runID, snap.Cities); err != nil {
		return "", fmt.Errorf("save city history: %w", err)
	}
	if err := saveShips(tx, runID, snap.Ships); err != nil {
		return "", fmt.Errorf("save ships: %w", err)
	}
	if err := saveRoutes(tx, runID, snap); err != nil {
		return "", fmt.Errorf("save routes: %w", err)
	}
	if err := saveCurrency(tx, runID, snap.CurrencyHistory, snap.InflationHistory); err != nil {
		return "", fmt.Errorf("save currency: %w", err)
	}
	if _, err := tx.Exec("INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		"last_run", runID); err != nil {
		return "", fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit export: %w", err)
	}
	slog.Info("run exported", "run_id", runID)
	return runID, nil
}

func saveEvents(tx *sqlx.Tx, runID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	stmt, err := tx.Preparex("INSERT INTO events (run_id, day, category, description) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(runID, e.Day, e.Category, e.Description); err != nil {
			return err
		}
	}
	return nil
}

// saveCityHistory writes every city's price and inventory history.
func saveCityHistory(tx *sqlx.Tx, runID string, cities []engine.CitySnapshot) error {
	stmt, err := tx.Preparex(`INSERT INTO city_history
		(run_id, city, good, seq, price, inventory) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cities {
		for good, prices := range c.PriceHistory {
			inventory := c.InventoryHistory[good]
			for i, price := range prices {
				inv := 0.0
				if i < len(inventory) {
					inv = inventory[i]
				}
				if _, err := stmt.Exec(runID, c.Name, string(good), i, price, inv); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// saveShips writes each ship's final state and gold history.
func saveShips(tx *sqlx.Tx, runID string, ships []engine.ShipSnapshot) error {
	for _, s := range ships {
		tradesJSON, _ := json.Marshal(s.TradeHistory)
		costsJSON, _ := json.Marshal(s.RouteCosts)

		inTransit := 0
		if s.InTransit {
			inTransit = 1
		}

		_, err := tx.Exec(`INSERT INTO ships
			(run_id, id, name, gold, location, destination, in_transit,
			 sailing_skill, trading_skill, preference, trade_history_json, route_costs_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, s.ID, s.Name, s.Gold, s.Location, s.Destination, inTransit,
			s.SailingSkill, s.TradingSkill, s.Preference, string(tradesJSON), string(costsJSON),
		)
		if err != nil {
			return err
		}
		for i, gold := range s.GoldHistory {
			if _, err := tx.Exec("INSERT INTO ship_gold (run_id, ship, seq, gold) VALUES (?, ?, ?, ?)",
				runID, s.Name, i, gold); err != nil {
				return err
			}
		}
	}
	return nil
}

// saveRoutes writes the route table as it stood at the end of the run.
func saveRoutes(tx *sqlx.Tx, runID string, snap engine.Snapshot) error {
	for _, r := range snap.Routes {
		_, err := tx.Exec(`INSERT INTO routes
			(run_id, from_city, to_city, distance, danger, wind_advantage, sea_state, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, r.From, r.To, r.Distance,
			r.Conditions.Danger, r.Conditions.WindAdvantage, r.Conditions.SeaState, r.Description,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// saveCurrency writes the money supply and inflation histories side by side.
func saveCurrency(tx *sqlx.Tx, runID string, supply, inflation []float64) error {
	for i, v := range supply {
		rate := 0.0
		if i < len(inflation) {
			rate = inflation[i]
		}
		if _, err := tx.Exec("INSERT INTO currency (run_id, seq, supply, inflation) VALUES (?, ?, ?, ?)",
			runID, i, v, rate); err != nil {
			return err
		}
	}
	return nil
}

// SaveMeta stores a key-value pair in metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// Runs lists exported runs, newest first.
func (db *DB) Runs() ([]RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs, `SELECT id, seed, days, price_policy, weather_policy,
		final_day, total_gold, currency_supply, created_at FROM runs ORDER BY created_at DESC, id`)
	return runs, err
}

// RecentEvents returns a run's most recent N events, newest first.
func (db *DB) RecentEvents(runID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT day, category, description FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		runID, limit,
	)
	return events, err
}

// ShipGold returns a ship's exported gold history, oldest first.
func (db *DB) ShipGold(runID, ship string) ([]float64, error) {
	var gold []float64
	err := db.conn.Select(&gold,
		"SELECT gold FROM ship_gold WHERE run_id = ? AND ship = ? ORDER BY seq",
		runID, ship,
	)
	return gold, err
}

// PriceHistory returns a good's exported price history in one city.
func (db *DB) PriceHistory(runID, city, good string) ([]float64, error) {
	var prices []float64
	err := db.conn.Select(&prices,
		"SELECT price FROM city_history WHERE run_id = ? AND city = ? AND good = ? ORDER BY seq",
		runID, city, good,
	)
	return prices, err
}

func lastOr(values []float64, fallback float64) float64 {
	if len(values) == 0 {
		return fallback
	}
	return values[len(values)-1]
}
