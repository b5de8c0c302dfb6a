package handlers

import (
	"net/http"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"propertypro/internal/models"
)

func TestBookingDenialForbidsSelfBooking(t *testing.T) {
	property := models.Property{ID: primitive.NewObjectID(), OwnerID: "owner1"}

	status, _ := bookingDenial(nil, property, "owner1")
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for an owner booking their own property, got %d", status)
	}

	// Unrelated booking history must not change the outcome.
	history := []models.Booking{{ID: "b1", PropertyID: primitive.NewObjectID().Hex()}}
	status, _ = bookingDenial(history, property, "owner1")
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 regardless of booking history, got %d", status)
	}
}

func TestBookingDenialConflictWinsOverSelfBooking(t *testing.T) {
	property := models.Property{ID: primitive.NewObjectID(), OwnerID: "owner1"}
	history := []models.Booking{{ID: "b1", PropertyID: property.ID.Hex(), Status: models.BookingCancelled}}

	status, _ := bookingDenial(history, property, "owner1")
	if status != http.StatusConflict {
		t.Fatalf("expected the duplicate check to run first, got %d", status)
	}
}

func TestBookingDenialAllowsFreshBooking(t *testing.T) {
	property := models.Property{ID: primitive.NewObjectID(), OwnerID: "owner1"}

	status, message := bookingDenial(nil, property, "visitor1")
	if status != 0 || message != "" {
		t.Fatalf("expected booking to be allowed, got %d %q", status, message)
	}
}

func TestHasBookingMatchesRegardlessOfStatus(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", PropertyID: "p1", Status: models.BookingCancelled},
		{ID: "b2", PropertyID: "p2", Status: models.BookingPending},
	}

	if !hasBooking(bookings, "p1") {
		t.Fatal("expected cancelled booking to still count as booked")
	}
	if !hasBooking(bookings, "p2") {
		t.Fatal("expected pending booking to count as booked")
	}
	if hasBooking(bookings, "p3") {
		t.Fatal("expected no booking for p3")
	}
}

func TestRemoveBookingRemovesFirstMatch(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", PropertyID: "p1"},
		{ID: "b2", PropertyID: "p2"},
	}

	updated, removed := removeBooking(bookings, "p1")
	if !removed {
		t.Fatal("expected booking to be removed")
	}
	if len(updated) != 1 || updated[0].ID != "b2" {
		t.Fatalf("unexpected bookings after removal: %+v", updated)
	}
}

func TestRemoveBookingNoMatchIsNotAnError(t *testing.T) {
	bookings := []models.Booking{{ID: "b1", PropertyID: "p1"}}

	updated, removed := removeBooking(bookings, "missing")
	if removed {
		t.Fatal("expected nothing to be removed")
	}
	if len(updated) != 1 {
		t.Fatalf("expected bookings to be unchanged, got %+v", updated)
	}
}

func TestFindBookingIndex(t *testing.T) {
	bookings := []models.Booking{
		{ID: "b1", PropertyID: "p1"},
		{ID: "b2", PropertyID: "p2"},
	}

	if got := findBookingIndex(bookings, "b2"); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}
	if got := findBookingIndex(bookings, "nope"); got != -1 {
		t.Fatalf("expected -1 for unknown id, got %d", got)
	}
}

func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	original := []string{"p1", "p2", "p3"}

	once, added := toggleFavorite(original, "p2")
	if added {
		t.Fatal("expected p2 to be removed on first toggle")
	}
	if !reflect.DeepEqual(once, []string{"p1", "p3"}) {
		t.Fatalf("unexpected favorites after removal: %v", once)
	}

	twice, added := toggleFavorite(once, "p2")
	if !added {
		t.Fatal("expected p2 to be re-added on second toggle")
	}
	if len(twice) != len(original) {
		t.Fatalf("expected favorites restored to %d entries, got %v", len(original), twice)
	}
	for _, id := range original {
		found := false
		for _, got := range twice {
			if got == id {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected %s in favorites after double toggle, got %v", id, twice)
		}
	}
}

func TestToggleFavoriteAppendsWhenAbsent(t *testing.T) {
	updated, added := toggleFavorite(nil, "p9")
	if !added {
		t.Fatal("expected p9 to be added")
	}
	if !reflect.DeepEqual(updated, []string{"p9"}) {
		t.Fatalf("unexpected favorites: %v", updated)
	}
}

func TestStatusEvent(t *testing.T) {
	if ev, ok := statusEvent(models.BookingConfirmed); !ok || ev != "confirmed" {
		t.Fatalf("unexpected event for confirmed: %v %v", ev, ok)
	}
	if ev, ok := statusEvent(models.BookingCancelled); !ok || ev != "cancelled" {
		t.Fatalf("unexpected event for cancelled: %v %v", ev, ok)
	}
	if _, ok := statusEvent(models.BookingPending); ok {
		t.Fatal("pending must not trigger a notification")
	}
}
