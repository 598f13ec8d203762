package db

import (
	"context"
	"time"
)

type Querier interface {
	// Profiles
	CreateProfile(ctx context.Context, arg CreateProfileParams) (Profile, error)
	GetProfileByID(ctx context.Context, id string) (Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (Profile, error)
	UpdateProfile(ctx context.Context, arg UpdateProfileParams) (Profile, error)
	UpdateProfileAvatar(ctx context.Context, arg UpdateProfileAvatarParams) (Profile, error)
	UpdateProfileCoordinates(ctx context.Context, arg UpdateProfileCoordinatesParams) error
	ListProfileCoordinates(ctx context.Context) ([]ListProfileCoordinatesRow, error)
	ListProfilesByIDs(ctx context.Context, ids []string) ([]Profile, error)

	// Follow graph
	CreateFollow(ctx context.Context, arg CreateFollowParams) error
	DeleteFollow(ctx context.Context, arg DeleteFollowParams) (int64, error)
	GetFollowerIDs(ctx context.Context, followedID string) ([]string, error)

	// Posts
	CreatePost(ctx context.Context, arg CreatePostParams) (Post, error)
	GetPostByID(ctx context.Context, id string) (Post, error)
	ListPostsByUser(ctx context.Context, userID string) ([]Post, error)
	DeletePost(ctx context.Context, id string) (int64, error)
	IncrementPostLikes(ctx context.Context, id string) error
	DecrementPostLikes(ctx context.Context, id string) error
	IncrementPostComments(ctx context.Context, id string) error
	DecrementPostComments(ctx context.Context, id string) error

	// Likes
	CreatePostLike(ctx context.Context, arg CreatePostLikeParams) error
	DeletePostLike(ctx context.Context, arg DeletePostLikeParams) (int64, error)
	HasUserLikedPost(ctx context.Context, arg HasUserLikedPostParams) (bool, error)

	// Comments
	CreateComment(ctx context.Context, arg CreateCommentParams) (PostComment, error)
	GetCommentByID(ctx context.Context, id string) (PostComment, error)
	GetCommentWithAuthor(ctx context.Context, id string) (CommentWithAuthor, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]CommentWithAuthor, error)
	DeleteComment(ctx context.Context, id string) (int64, error)

	// Conversations and messages
	CreateConversation(ctx context.Context, arg CreateConversationParams) (Conversation, error)
	GetConversationByID(ctx context.Context, id string) (Conversation, error)
	GetConversationByUserPair(ctx context.Context, arg GetConversationByUserPairParams) (Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string) ([]ConversationWithPeers, error)
	TouchConversation(ctx context.Context, id string) error
	CreateMessage(ctx context.Context, arg CreateMessageParams) (Message, error)
	ListMessagesByConversation(ctx context.Context, conversationID string) ([]Message, error)

	// Notifications
	InsertNotifications(ctx context.Context, args []CreateNotificationParams) error
	ListNotificationsAfter(ctx context.Context, arg ListNotificationsAfterParams) ([]Notification, error)
	ListRecentNotifications(ctx context.Context, arg ListRecentNotificationsParams) ([]Notification, error)
	DeleteNotification(ctx context.Context, arg DeleteNotificationParams) (int64, error)
	DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Reports
	CreatePostReport(ctx context.Context, arg CreatePostReportParams) error
	CreateCommentReport(ctx context.Context, arg CreateCommentReportParams) error
}

var _ Querier = (*Queries)(nil)
