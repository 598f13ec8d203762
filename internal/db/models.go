package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

type NotificationEvent string

const (
	NotificationEventPost    NotificationEvent = "post"
	NotificationEventMessage NotificationEvent = "message"
)

type Profile struct {
	ID             string        `json:"id"`
	Email          string        `json:"email"`
	Username       string        `json:"username"`
	HashedPassword string        `json:"-"`
	PostalCode     pgtype.Text   `json:"postal_code"`
	City           pgtype.Text   `json:"city"`
	Latitude       pgtype.Float8 `json:"latitude"`
	Longitude      pgtype.Float8 `json:"longitude"`
	PetName        pgtype.Text   `json:"pet_name"`
	PetType        pgtype.Text   `json:"pet_type"`
	PetGender      pgtype.Text   `json:"pet_gender"`
	AvatarURL      pgtype.Text   `json:"avatar_url"`
	Bio            pgtype.Text   `json:"bio"`
	Role           string        `json:"role"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type UserFollow struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Post struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Description   pgtype.Text `json:"description"`
	ImageURL      string      `json:"image_url"`
	LikesCount    int64       `json:"likes_count"`
	CommentsCount int64       `json:"comments_count"`
	CreatedAt     time.Time   `json:"created_at"`
}

type PostComment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Conversation struct {
	ID            string             `json:"id"`
	UserA         string             `json:"user_a"`
	UserB         string             `json:"user_b"`
	CreatedAt     time.Time          `json:"created_at"`
	LastMessageAt pgtype.Timestamptz `json:"last_message_at"`
}

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type Notification struct {
	ID             string             `json:"id"`
	ReceiverID     string             `json:"receiver_id"`
	AuthorID       string             `json:"author_id"`
	EventType      NotificationEvent  `json:"event_type"`
	PostID         pgtype.Text        `json:"post_id"`
	ConversationID pgtype.Text        `json:"conversation_id"`
	MessageID      pgtype.Text        `json:"message_id"`
	CreatedAt      time.Time          `json:"created_at"`
	ReadAt         pgtype.Timestamptz `json:"read_at"`
}
