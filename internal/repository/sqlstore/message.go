package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ignite/social-api/internal/domain"
)

// MessageRepo implements message.Repository.
type MessageRepo struct{ db *sql.DB }

// NewMessageRepo creates a SQL-backed message repository.
func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

func (r *MessageRepo) GetByID(ctx context.Context, id int) (*domain.Message, error) {
	m := &domain.Message{}
	err := r.db.QueryRowContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message WHERE message_id = $1
	`, id).Scan(&m.MessageID, &m.PostedBy, &m.MessageText, &m.TimePostedEpoch)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fault(fmt.Sprintf("get message %d", id), err)
	}
	return m, nil
}

func (r *MessageRepo) GetAll(ctx context.Context) ([]domain.Message, error) {
	return r.list(ctx, "list messages", `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message ORDER BY message_id
	`)
}

func (r *MessageRepo) FindByPostedBy(ctx context.Context, accountID int) ([]domain.Message, error) {
	return r.list(ctx, fmt.Sprintf("list messages by account %d", accountID), `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message WHERE posted_by = $1 ORDER BY message_id
	`, accountID)
}

func (r *MessageRepo) Insert(ctx context.Context, m domain.Message) (*domain.Message, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO message (posted_by, message_text, time_posted_epoch) VALUES ($1, $2, $3)
		RETURNING message_id
	`, m.PostedBy, m.MessageText, m.TimePostedEpoch).Scan(&m.MessageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault("insert message: no id returned", nil)
	}
	if err != nil {
		return nil, fault("insert message", err)
	}
	return &m, nil
}

func (r *MessageRepo) Update(ctx context.Context, m domain.Message) (bool, error) {
	op := fmt.Sprintf("update message %d", m.MessageID)
	res, err := r.db.ExecContext(ctx, `
		UPDATE message SET posted_by = $1, message_text = $2, time_posted_epoch = $3
		WHERE message_id = $4
	`, m.PostedBy, m.MessageText, m.TimePostedEpoch, m.MessageID)
	if err != nil {
		return false, fault(op, err)
	}
	return rowsAffected(res, op)
}

func (r *MessageRepo) Delete(ctx context.Context, m domain.Message) (bool, error) {
	op := fmt.Sprintf("delete message %d", m.MessageID)
	res, err := r.db.ExecContext(ctx, `DELETE FROM message WHERE message_id = $1`, m.MessageID)
	if err != nil {
		return false, fault(op, err)
	}
	return rowsAffected(res, op)
}

func (r *MessageRepo) list(ctx context.Context, op, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault(op, err)
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.MessageID, &m.PostedBy, &m.MessageText, &m.TimePostedEpoch); err != nil {
			return nil, fault("scan message", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fault(op, err)
	}
	return out, nil
}
