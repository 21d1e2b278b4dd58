package database

import "testing"

func TestCollectionPathUserScopeNestsUnderIdentity(t *testing.T) {
	got := CollectionPath(ScopeUser, "default-app-id", "bookings", "anon-1")
	want := "artifacts/default-app-id/users/anon-1/bookings"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestCollectionPathSharedScopeIsFlat(t *testing.T) {
	if got := CollectionPath(ScopeShared, "default-app-id", "bookings", "anon-1"); got != "bookings" {
		t.Fatalf("expected flat bookings collection, got %s", got)
	}
}

func TestCollectionPathUnknownScopeFallsBackToFlat(t *testing.T) {
	if got := CollectionPath("banana", "app", "bookings", "u"); got != "bookings" {
		t.Fatalf("expected flat fallback, got %s", got)
	}
}
