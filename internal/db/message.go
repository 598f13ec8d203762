package db

import (
	"context"
)

const createMessage = `
INSERT INTO messages (conversation_id, sender_id, content) VALUES ($1, $2, $3)
RETURNING id, conversation_id, sender_id, content, created_at`

type CreateMessageParams struct {
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Content        string `json:"content"`
}

func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error) {
	row := q.db.QueryRow(ctx, createMessage, arg.ConversationID, arg.SenderID, arg.Content)
	var i Message
	err := row.Scan(&i.ID, &i.ConversationID, &i.SenderID, &i.Content, &i.CreatedAt)
	return i, err
}

const listMessagesByConversation = `
SELECT id, conversation_id, sender_id, content, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY created_at ASC`

func (q *Queries) ListMessagesByConversation(ctx context.Context, conversationID string) ([]Message, error) {
	rows, err := q.db.Query(ctx, listMessagesByConversation, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Message{}
	for rows.Next() {
		var i Message
		if err := rows.Scan(&i.ID, &i.ConversationID, &i.SenderID, &i.Content, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
