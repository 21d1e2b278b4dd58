package database

import (
	"context"
	"fmt"

	"pinkmint/models"
)

// Booking scope policies. ScopeUser nests each user's bookings under their
// own identity; ScopeShared writes everything to one flat collection.
const (
	ScopeUser   = "user"
	ScopeShared = "shared"
)

// BookingRepository is the persistence gateway bookings are written through.
// Write-once: the workflow never reads a booking back.
type BookingRepository interface {
	CreateBooking(ctx context.Context, id models.Identity, rec *models.BookingRecord) error
}

// CollectionPath derives the gateway path for one identity under the
// configured scope policy.
func CollectionPath(scope, appID, collection, uid string) string {
	if scope == ScopeUser {
		return fmt.Sprintf("artifacts/%s/users/%s/%s", appID, uid, collection)
	}
	return collection
}
