package collection

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

const selectCardsQuery = `SELECT id, name, type, rarity, quantity, colors, cmc, set_code FROM cards ORDER BY id`

// SQLiteSource reads cards from the cards table of a SQLite database. The
// database is only queried, never written; colours are stored as a comma
// separated list. Cards are returned in id order.
type SQLiteSource struct {
	path string
}

// NewSQLiteSource returns a source reading the database at path.
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// Path returns the database file.
func (s *SQLiteSource) Path() string {
	return s.path
}

func (s *SQLiteSource) Describe() string {
	return "sqlite:" + s.path
}

// Load opens the database, reads every card and closes the connection.
func (s *SQLiteSource) Load(ctx context.Context) (cards []Card, err error) {
	// sql.Open would silently create an empty database.
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close database: %w", closeErr)
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	rows, err := db.QueryContext(ctx, selectCardsQuery)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			card    Card
			typ     sql.NullString
			rarity  sql.NullString
			colors  sql.NullString
			setCode sql.NullString
		)
		if err := rows.Scan(&card.ID, &card.Name, &typ, &rarity, &card.Quantity, &colors, &card.Cost, &setCode); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		card.Type = typ.String
		card.Rarity = rarity.String
		card.Set = setCode.String
		card.Colors = splitColors(colors.String)
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

func splitColors(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return strings.Split(value, ",")
}
