// internal/app/store/broadcast/broadcaststore.go
package broadcaststore

import (
	"context"
	"time"

	"github.com/openjam/jamcore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	servers *mongo.Collection
	mounts  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		servers: db.Collection("icecast_servers"),
		mounts:  db.Collection("icecast_mounts"),
	}
}

func (s *Store) CreateServer(ctx context.Context, host string, port int) (models.IcecastServer, error) {
	srv := models.IcecastServer{
		ID:        primitive.NewObjectID(),
		Host:      host,
		Port:      port,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.servers.InsertOne(ctx, srv); err != nil {
		return models.IcecastServer{}, err
	}
	return srv, nil
}

func (s *Store) CreateMount(ctx context.Context, serverID primitive.ObjectID, name string) (models.IcecastMount, error) {
	m := models.IcecastMount{
		ID:        primitive.NewObjectID(),
		ServerID:  serverID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.mounts.InsertOne(ctx, m); err != nil {
		return models.IcecastMount{}, err
	}
	return m, nil
}

// TouchServerConfig records that the server's mount configuration was
// pushed at the given instant. The fan-readiness check compares this
// against session creation times.
func (s *Store) TouchServerConfig(ctx context.Context, serverID primitive.ObjectID, at time.Time) error {
	_, err := s.servers.UpdateByID(ctx, serverID, bson.M{"$set": bson.M{"config_updated_at": at.UTC()}})
	return err
}

// MountReady reports whether the mount exists and its server's config was
// refreshed strictly after the given session creation time. A session
// created after the last config push has no mount entry on the broadcast
// server yet, so it is not fan-ready.
//
// A missing mount is degraded input, not an error.
func (s *Store) MountReady(ctx context.Context, mountID *primitive.ObjectID, sessionCreatedAt time.Time) (bool, error) {
	if mountID == nil {
		return false, nil
	}
	var m models.IcecastMount
	if err := s.mounts.FindOne(ctx, bson.M{"_id": *mountID}).Decode(&m); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	var srv models.IcecastServer
	if err := s.servers.FindOne(ctx, bson.M{"_id": m.ServerID}).Decode(&srv); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	if srv.ConfigUpdatedAt == nil {
		return false, nil
	}
	return srv.ConfigUpdatedAt.After(sessionCreatedAt), nil
}
