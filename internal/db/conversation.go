package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const conversationColumns = `id, user_a, user_b, created_at, last_message_at`

func scanConversation(row interface{ Scan(dest ...interface{}) error }) (Conversation, error) {
	var i Conversation
	err := row.Scan(&i.ID, &i.UserA, &i.UserB, &i.CreatedAt, &i.LastMessageAt)
	return i, err
}

const createConversation = `
INSERT INTO conversations (user_a, user_b) VALUES ($1, $2)
RETURNING ` + conversationColumns

type CreateConversationParams struct {
	UserA string `json:"user_a"`
	UserB string `json:"user_b"`
}

func (q *Queries) CreateConversation(ctx context.Context, arg CreateConversationParams) (Conversation, error) {
	row := q.db.QueryRow(ctx, createConversation, arg.UserA, arg.UserB)
	return scanConversation(row)
}

const getConversationByID = `
SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

func (q *Queries) GetConversationByID(ctx context.Context, id string) (Conversation, error) {
	row := q.db.QueryRow(ctx, getConversationByID, id)
	return scanConversation(row)
}

const getConversationByUserPair = `
SELECT ` + conversationColumns + ` FROM conversations
WHERE least(user_a, user_b) = least($1, $2) AND greatest(user_a, user_b) = greatest($1, $2)
LIMIT 1`

type GetConversationByUserPairParams struct {
	UserA string `json:"user_a"`
	UserB string `json:"user_b"`
}

func (q *Queries) GetConversationByUserPair(ctx context.Context, arg GetConversationByUserPairParams) (Conversation, error) {
	row := q.db.QueryRow(ctx, getConversationByUserPair, arg.UserA, arg.UserB)
	return scanConversation(row)
}

// ConversationWithPeers carries a conversation with both participants' display data.
type ConversationWithPeers struct {
	Conversation
	UserAUsername string      `json:"user_a_username"`
	UserAPetName  pgtype.Text `json:"user_a_pet_name"`
	UserBUsername string      `json:"user_b_username"`
	UserBPetName  pgtype.Text `json:"user_b_pet_name"`
}

const listConversationsByUser = `
SELECT c.id, c.user_a, c.user_b, c.created_at, c.last_message_at,
       pa.username, pa.pet_name, pb.username, pb.pet_name
FROM conversations c
JOIN profiles pa ON pa.id = c.user_a
JOIN profiles pb ON pb.id = c.user_b
WHERE c.user_a = $1 OR c.user_b = $1
ORDER BY c.last_message_at DESC NULLS LAST, c.created_at DESC`

func (q *Queries) ListConversationsByUser(ctx context.Context, userID string) ([]ConversationWithPeers, error) {
	rows, err := q.db.Query(ctx, listConversationsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ConversationWithPeers{}
	for rows.Next() {
		var i ConversationWithPeers
		if err := rows.Scan(
			&i.ID,
			&i.UserA,
			&i.UserB,
			&i.CreatedAt,
			&i.LastMessageAt,
			&i.UserAUsername,
			&i.UserAPetName,
			&i.UserBUsername,
			&i.UserBPetName,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const touchConversation = `
UPDATE conversations SET last_message_at = now() WHERE id = $1`

func (q *Queries) TouchConversation(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, touchConversation, id)
	return err
}
