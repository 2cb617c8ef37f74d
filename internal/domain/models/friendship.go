// internal/domain/models/friendship.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friendship is a directed edge from UserID to FriendID. A mutual
// friendship is stored as two edges; nothing in the schema guarantees the
// reverse edge exists, so consumers must say which direction they read.
type Friendship struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	FriendID  primitive.ObjectID `bson:"friend_id" json:"friend_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Invitation grants the receiver visibility and join rights on sessions the
// sender creates under SessionID (the persistent session, not the live one).
type Invitation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	ReceiverID primitive.ObjectID `bson:"receiver_id" json:"receiver_id"`
	SessionID  primitive.ObjectID `bson:"session_id" json:"session_id"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
