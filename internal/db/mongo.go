package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/fleet-care/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	EquipmentCollectionName   = "equipment"
	MaintenanceCollectionName = "maintenance"
	SupplierCollectionName    = "suppliers"
)

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store groups the collections the service reads.
type Store struct {
	Equipment   *MongoCollection
	Maintenance *MongoCollection
	Suppliers   *MongoCollection
}

// NewStore binds the store to the named database.
func NewStore(client *mongo.Client, dbName string) *Store {
	database := client.Database(dbName)
	return &Store{
		Equipment:   &MongoCollection{Collection: database.Collection(EquipmentCollectionName)},
		Maintenance: &MongoCollection{Collection: database.Collection(MaintenanceCollectionName)},
		Suppliers:   &MongoCollection{Collection: database.Collection(SupplierCollectionName)},
	}
}

// EnsureIndexes creates the unique tag index on the equipment collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if s.Equipment == nil || s.Equipment.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := s.Equipment.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tag", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create equipment tag index: %w", err)
	}
	return nil
}

// MongoCollection wraps a MongoDB collection.
type MongoCollection struct {
	Collection *mongo.Collection
}

// FindEquipment returns all equipment ordered by tag.
func (c *MongoCollection) FindEquipment(ctx context.Context) ([]models.Equipment, error) {
	var out []models.Equipment
	if err := c.findAll(ctx, bson.D{{Key: "tag", Value: 1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindEquipmentByTag finds one equipment by its tag.
func (c *MongoCollection) FindEquipmentByTag(ctx context.Context, tag string) (*models.Equipment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var eq models.Equipment
	err := c.Collection.FindOne(ctx, bson.M{"tag": tag}).Decode(&eq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// RecordReading stores a counter sync. Both the reading and the sync time only
// move forward, so late or duplicate syncs never rewind an equipment.
func (c *MongoCollection) RecordReading(ctx context.Context, tag string, reading float64, at time.Time) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx,
		bson.M{"tag": tag},
		bson.M{"$max": bson.M{"current_reading": reading, "last_sync_at": at.UTC()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

// UpdateInterval sets the maintenance interval. Zero clears it.
func (c *MongoCollection) UpdateInterval(ctx context.Context, tag string, interval float64) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"tag": tag}, bson.M{"$set": bson.M{"interval": interval}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrEquipmentNotFound
	}
	return nil
}

// FindMaintenance returns maintenance records, newest first.
func (c *MongoCollection) FindMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error) {
	var out []models.MaintenanceRecord
	if err := c.findAll(ctx, bson.D{{Key: "created_at", Value: -1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindSuppliers returns suppliers ordered by name.
func (c *MongoCollection) FindSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var out []models.Supplier
	if err := c.findAll(ctx, bson.D{{Key: "name", Value: 1}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MongoCollection) findAll(ctx context.Context, sort bson.D, out interface{}) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	cursor, err := c.Collection.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
