// Package history persists finished hands and player balances in SQLite.
// It only records what the engine reports; nothing in the engine reads it.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vctt94/holdemengine/pkg/poker"
)

// ErrPlayerNotFound is returned for names with no stored balance.
var ErrPlayerNotFound = errors.New("player not found")

// DB is a hand-history store backed by SQLite.
type DB struct {
	*sql.DB
	log slog.Logger
}

// HandRecord is a stored hand.
type HandRecord struct {
	ID         int64
	HandNumber int
	Dealer     int
	Board      []poker.Card
	Payouts    []PayoutRecord
	CreatedAt  string
}

// PayoutRecord is one winner's share of one pot.
type PayoutRecord struct {
	PotIndex int
	PotSize  int64
	Player   string
	Amount   int64
	Category string
	Refund   bool
}

// Transaction is a change to a player's balance.
type Transaction struct {
	ID          int64
	Player      string
	Amount      int64
	Type        string
	Description string
	HandID      sql.NullInt64
	CreatedAt   string
}

// Transaction types.
const (
	TxSeat = "seat"
	TxHand = "hand"
)

// NewDB opens (creating if needed) the database at dbPath.
func NewDB(dbPath string, log slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Disabled
	}
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &DB{DB: db, log: log}, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			name TEXT PRIMARY KEY,
			balance INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS hands (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hand_number INTEGER NOT NULL,
			dealer INTEGER NOT NULL,
			board TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS payouts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hand_id INTEGER NOT NULL,
			pot_index INTEGER NOT NULL,
			pot_size INTEGER NOT NULL,
			player TEXT NOT NULL,
			amount INTEGER NOT NULL,
			category TEXT NOT NULL,
			refund INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (hand_id) REFERENCES hands(id)
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			amount INTEGER NOT NULL,
			type TEXT NOT NULL,
			description TEXT,
			hand_id INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (player) REFERENCES players(name)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeatPlayer records a player sitting down with chips. An existing player's
// balance is replaced and the difference recorded.
func (db *DB) SeatPlayer(name string, chips int64) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := setBalance(tx, name, chips, TxSeat, "seated", sql.NullInt64{}); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveHand stores a finished hand: the board, every payout share, and each
// player's new balance with the change as a transaction. It returns the
// stored hand ID.
func (db *DB) SaveHand(r poker.HandResult) (int64, error) {
	board, err := json.Marshal(r.Board)
	if err != nil {
		return 0, fmt.Errorf("failed to encode board: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO hands (hand_number, dealer, board) VALUES (?, ?, ?)`,
		r.HandNumber, r.Dealer, string(board))
	if err != nil {
		return 0, fmt.Errorf("failed to insert hand: %w", err)
	}
	handID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, p := range r.Payouts {
		for j, seat := range p.Winners {
			category := p.Hand.Category.String()
			if p.Refund {
				category = ""
			}
			_, err := tx.Exec(`
				INSERT INTO payouts (hand_id, pot_index, pot_size, player, amount, category, refund)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, handID, i, p.Pot.Amount, r.Players[seat].Name, p.Shares[j], category, p.Refund)
			if err != nil {
				return 0, fmt.Errorf("failed to insert payout: %w", err)
			}
		}
	}

	desc := fmt.Sprintf("hand %d", r.HandNumber)
	for _, p := range r.Players {
		if err := setBalance(tx, p.Name, p.Chips, TxHand, desc, sql.NullInt64{Int64: handID, Valid: true}); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	db.log.Debugf("Saved hand %d as #%d (%d payouts)", r.HandNumber, handID, len(r.Payouts))
	return handID, nil
}

// setBalance sets name's balance and records the change. No transaction is
// written when the balance is unchanged.
func setBalance(tx *sql.Tx, name string, balance int64, txType, desc string, handID sql.NullInt64) error {
	var prev int64
	err := tx.QueryRow("SELECT balance FROM players WHERE name = ?", name).Scan(&prev)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		prev = 0
	case err != nil:
		return fmt.Errorf("failed to get balance for %s: %w", name, err)
	}

	_, err = tx.Exec(`
		INSERT INTO players (name, balance) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET balance = excluded.balance
	`, name, balance)
	if err != nil {
		return fmt.Errorf("failed to update balance for %s: %w", name, err)
	}

	if delta := balance - prev; delta != 0 {
		_, err = tx.Exec(`
			INSERT INTO transactions (player, amount, type, description, hand_id)
			VALUES (?, ?, ?, ?, ?)
		`, name, delta, txType, desc, handID)
		if err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
	}
	return nil
}

// GetPlayerBalance returns the stored balance of a player.
func (db *DB) GetPlayerBalance(name string) (int64, error) {
	var balance int64
	err := db.QueryRow("SELECT balance FROM players WHERE name = ?", name).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPlayerNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get player balance: %w", err)
	}
	return balance, nil
}

// Balances returns every stored balance keyed by player name.
func (db *DB) Balances() (map[string]int64, error) {
	rows, err := db.Query("SELECT name, balance FROM players")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var name string
		var balance int64
		if err := rows.Scan(&name, &balance); err != nil {
			return nil, err
		}
		out[name] = balance
	}
	return out, rows.Err()
}

// Transactions returns a player's balance changes, oldest first.
func (db *DB) Transactions(name string) ([]Transaction, error) {
	rows, err := db.Query(`
		SELECT id, player, amount, type, COALESCE(description, ''), hand_id, created_at
		FROM transactions WHERE player = ? ORDER BY id
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Player, &t.Amount, &t.Type, &t.Description, &t.HandID, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetHand loads a stored hand with its payouts.
func (db *DB) GetHand(id int64) (*HandRecord, error) {
	h := &HandRecord{ID: id}
	var board string
	err := db.QueryRow("SELECT hand_number, dealer, board, created_at FROM hands WHERE id = ?", id).
		Scan(&h.HandNumber, &h.Dealer, &board, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("hand %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hand: %w", err)
	}
	if err := json.Unmarshal([]byte(board), &h.Board); err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}

	rows, err := db.Query(`
		SELECT pot_index, pot_size, player, amount, category, refund
		FROM payouts WHERE hand_id = ? ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p PayoutRecord
		if err := rows.Scan(&p.PotIndex, &p.PotSize, &p.Player, &p.Amount, &p.Category, &p.Refund); err != nil {
			return nil, err
		}
		h.Payouts = append(h.Payouts, p)
	}
	return h, rows.Err()
}

// HandCount returns the number of stored hands.
func (db *DB) HandCount() (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM hands").Scan(&n)
	return n, err
}

// Recorder returns a hand-complete callback that saves every hand. Storage
// failures are logged and never stop play.
func (db *DB) Recorder() func(poker.HandResult) {
	return func(r poker.HandResult) {
		if _, err := db.SaveHand(r); err != nil {
			db.log.Errorf("Failed to save hand %d: %v", r.HandNumber, err)
		}
	}
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
