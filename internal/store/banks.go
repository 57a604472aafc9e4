package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/papergen/internal/bank"
)

// BankNotFoundError indicates a bank name with no stored rows.
type BankNotFoundError struct {
	Name string
}

func (e *BankNotFoundError) Error() string {
	return fmt.Sprintf("bank %q not found", e.Name)
}

// BankInfo summarizes one stored bank.
type BankInfo struct {
	Name      string
	Questions int
	UpdatedAt time.Time
}

// SaveBank stores questions under name, replacing any previous contents
// of that bank atomically.
func (s *Store) SaveBank(ctx context.Context, name string, qs []bank.Question) error {
	if name == "" {
		return fmt.Errorf("bank name must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	var bankID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO banks (name, updated_at) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET updated_at = excluded.updated_at
		 RETURNING id`, name, now).Scan(&bankID)
	if err != nil {
		return fmt.Errorf("upsert bank %q: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE bank_id = ?`, bankID); err != nil {
		return fmt.Errorf("clear bank %q: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (bank_id, id, text, topic, difficulty, type, keywords, marks, unit)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range qs {
		kw, err := json.Marshal(q.Keywords)
		if err != nil {
			return fmt.Errorf("encode keywords for %q: %w", q.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			bankID, q.ID, q.Text, q.Topic, string(q.Difficulty), string(q.Type),
			string(kw), q.Marks, q.Unit); err != nil {
			return fmt.Errorf("insert question %q: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadBank returns the questions stored under name, insertion order.
// Returns *BankNotFoundError for unknown names.
func (s *Store) LoadBank(ctx context.Context, name string) ([]bank.Question, error) {
	var bankID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM banks WHERE name = ?`, name).Scan(&bankID)
	if err == sql.ErrNoRows {
		return nil, &BankNotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("look up bank %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, topic, difficulty, type, keywords, marks, unit
		 FROM questions WHERE bank_id = ? ORDER BY rowid`, bankID)
	if err != nil {
		return nil, fmt.Errorf("load bank %q: %w", name, err)
	}
	defer rows.Close()

	var qs []bank.Question
	for rows.Next() {
		var q bank.Question
		var difficulty, typ, kw string
		if err := rows.Scan(&q.ID, &q.Text, &q.Topic, &difficulty, &typ, &kw, &q.Marks, &q.Unit); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Difficulty = bank.Difficulty(difficulty)
		q.Type = bank.Type(typ)
		if err := json.Unmarshal([]byte(kw), &q.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords for %q: %w", q.ID, err)
		}
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank %q: %w", name, err)
	}
	return qs, nil
}

// ListBanks returns all stored banks, alphabetical.
func (s *Store) ListBanks(ctx context.Context) ([]BankInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.name, COUNT(q.id), b.updated_at
		 FROM banks b LEFT JOIN questions q ON q.bank_id = b.id
		 GROUP BY b.id ORDER BY b.name`)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()

	var infos []BankInfo
	for rows.Next() {
		var info BankInfo
		var updated int64
		if err := rows.Scan(&info.Name, &info.Questions, &updated); err != nil {
			return nil, fmt.Errorf("scan bank info: %w", err)
		}
		info.UpdatedAt = time.Unix(updated, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteBank removes a stored bank and its questions. Deleting an
// unknown name returns *BankNotFoundError.
func (s *Store) DeleteBank(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM banks WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete bank %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bank %q: %w", name, err)
	}
	if n == 0 {
		return &BankNotFoundError{Name: name}
	}
	return nil
}
