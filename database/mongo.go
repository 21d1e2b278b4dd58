package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pinkmint/config"
	"pinkmint/models"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

// MongoBookingRepo writes booking records to MongoDB. Firestore's nested
// per-user path flattens here into the appId/userId fields already carried by
// every record; the scope policy only decides whether those fields are indexed.
type MongoBookingRepo struct {
	Coll *mongo.Collection
}

// NewMongoBookingRepo builds a repository over the configured collection.
func NewMongoBookingRepo(client *mongo.Client, dbName, collection string) *MongoBookingRepo {
	return &MongoBookingRepo{Coll: client.Database(dbName).Collection(collection)}
}

// CreateBooking inserts the record.
func (r *MongoBookingRepo) CreateBooking(ctx context.Context, id models.Identity, rec *models.BookingRecord) error {
	if _, err := r.Coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("mongo: failed to insert booking: %w", err)
	}
	return nil
}
