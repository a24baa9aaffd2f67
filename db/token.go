package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	model "github.com/stenstromen/bioportal/model"
)

func (db *DB) InsertToken(ctx context.Context, label, sealed string) (int64, error) {
	res, err := db.Conn.ExecContext(ctx,
		"INSERT INTO user_tokens (label, token_enc, created_at) VALUES (?, ?, ?)",
		label, sealed, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert token: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert token: %w", err)
	}
	return id, nil
}

func (db *DB) GetToken(ctx context.Context, id int64) (model.Token, error) {
	var t model.Token
	err := db.Conn.QueryRowContext(ctx,
		"SELECT id, label, token_enc, created_at FROM user_tokens WHERE id = ?", id).
		Scan(&t.ID, &t.Label, &t.Sealed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Token{}, ErrNotFound
		}
		return model.Token{}, fmt.Errorf("database error: %w", err)
	}
	return t, nil
}

// DeleteToken returns the number of rows removed; deleting a missing id is not an error.
func (db *DB) DeleteToken(ctx context.Context, id int64) (int64, error) {
	res, err := db.Conn.ExecContext(ctx, "DELETE FROM user_tokens WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete token: %w", err)
	}
	return n, nil
}
