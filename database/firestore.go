package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"

	"pinkmint/models"
)

// FirestoreBookingRepo writes booking records to Cloud Firestore.
type FirestoreBookingRepo struct {
	Client     *firestore.Client
	Scope      string
	AppID      string
	Collection string
}

// NewFirestoreBookingRepo opens a Firestore client from the shared Firebase app.
func NewFirestoreBookingRepo(ctx context.Context, app *firebase.App, scope, appID, collection string) (*FirestoreBookingRepo, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore: error getting client: %w", err)
	}
	return &FirestoreBookingRepo{
		Client:     client,
		Scope:      scope,
		AppID:      appID,
		Collection: collection,
	}, nil
}

// CreateBooking adds the record to the scoped bookings collection.
func (r *FirestoreBookingRepo) CreateBooking(ctx context.Context, id models.Identity, rec *models.BookingRecord) error {
	path := CollectionPath(r.Scope, r.AppID, r.Collection, id.UID)
	if _, err := r.Client.Collection(path).Doc(rec.ID).Create(ctx, rec); err != nil {
		return fmt.Errorf("firestore: failed to create booking: %w", err)
	}
	return nil
}

// Close releases the underlying Firestore client.
func (r *FirestoreBookingRepo) Close() error {
	return r.Client.Close()
}
