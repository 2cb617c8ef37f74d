// internal/domain/models/broadcast.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IcecastServer is a broadcast server. ConfigUpdatedAt is the last time its
// mount configuration was pushed; a session's mount is only considered
// provisioned when the server config was refreshed after the session was
// created.
type IcecastServer struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Host            string             `bson:"host" json:"host"`
	Port            int                `bson:"port" json:"port"`
	ConfigUpdatedAt *time.Time         `bson:"config_updated_at,omitempty" json:"config_updated_at,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// IcecastMount is a broadcast mount point on a server, assigned to at most
// one active session at a time.
type IcecastMount struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServerID  primitive.ObjectID `bson:"server_id" json:"server_id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
