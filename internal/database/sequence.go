package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Document numbers are store-scoped and month-scoped: <prefix><yyyy><MM><nnnn>
// with a 4-digit zero-padded sequence. Fixed width keeps lexicographic and
// numeric ordering identical, so "greatest existing number" is a simple
// ORDER BY ... DESC LIMIT 1.

const sequenceWidth = 4

const maxSequence = 9999

// ErrSequenceExhausted is returned once a store has issued 9999 numbers for
// a prefix within one calendar month. Failing loudly beats emitting a
// 5-digit suffix that breaks the fixed-width ordering assumption.
var ErrSequenceExhausted = errors.New("document number sequence exhausted for this month")

// MonthPrefix builds the date-scoped prefix, e.g. MonthPrefix("PN", t) for a
// January 2024 t yields "PN202401".
func MonthPrefix(kind string, t time.Time) string {
	return kind + t.Format("200601")
}

// NextCode reserves the next document number for a store within the caller's
// transaction. table and column are trusted identifiers, never user input.
func NextCode(ctx context.Context, q Queryer, table, column string, storeID uuid.UUID, prefix string) (string, error) {
	var last string
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE store_id = $1 AND %s LIKE $2 ORDER BY %s DESC LIMIT 1`,
		column, table, column, column)
	err := sqlx.GetContext(ctx, q, &last, query, storeID, prefix+"%")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("fetch last %s number: %w", table, err)
	}

	seq, err := nextSequence(prefix, last)
	if err != nil {
		return "", err
	}
	return formatCode(prefix, seq), nil
}

// nextSequence parses the numeric suffix of the greatest existing code and
// returns the sequence to issue next. An empty last code starts the month
// at 1.
func nextSequence(prefix, last string) (int, error) {
	if last == "" {
		return 1, nil
	}
	suffix := strings.TrimPrefix(last, prefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("malformed document number %q: %w", last, err)
	}
	if n >= maxSequence {
		return 0, fmt.Errorf("%w: prefix %s", ErrSequenceExhausted, prefix)
	}
	return n + 1, nil
}

func formatCode(prefix string, seq int) string {
	return fmt.Sprintf("%s%0*d", prefix, sequenceWidth, seq)
}
