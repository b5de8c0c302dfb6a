package handlers

import (
	"testing"
	"time"

	"propertypro/internal/models"
)

func TestCollectOwnerBookingsFiltersByProperty(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	users := []models.User{
		{
			UID:   "u1",
			Email: "a@example.com",
			Name:  "A",
			Bookings: []models.Booking{
				{ID: "b1", PropertyID: "p1", CreatedAt: base},
				{ID: "b2", PropertyID: "other", CreatedAt: base.Add(time.Hour)},
			},
		},
		{
			UID:   "u2",
			Email: "b@example.com",
			Name:  "B",
			Bookings: []models.Booking{
				{ID: "b3", PropertyID: "p2", CreatedAt: base.Add(2 * time.Hour)},
			},
		},
		{UID: "u3", Email: "c@example.com"},
	}
	owned := map[string]struct{}{"p1": {}, "p2": {}}

	got := collectOwnerBookings(users, owned)
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(got))
	}
	for _, b := range got {
		if b.PropertyID == "other" {
			t.Fatal("booking for a foreign property leaked into the result")
		}
	}
}

func TestCollectOwnerBookingsSortsNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	users := []models.User{
		{UID: "u1", Bookings: []models.Booking{
			{ID: "old", PropertyID: "p1", CreatedAt: base},
		}},
		{UID: "u2", Bookings: []models.Booking{
			{ID: "new", PropertyID: "p1", CreatedAt: base.Add(time.Hour)},
		}},
	}
	owned := map[string]struct{}{"p1": {}}

	got := collectOwnerBookings(users, owned)
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(got))
	}
	if got[0].ID != "new" || got[1].ID != "old" {
		t.Fatalf("expected newest first, got %s then %s", got[0].ID, got[1].ID)
	}
}

func TestCollectOwnerBookingsAttachesVisitorDetails(t *testing.T) {
	users := []models.User{
		{UID: "u1", Email: "visitor@example.com", Name: "Visitor", Bookings: []models.Booking{
			{ID: "b1", PropertyID: "p1"},
		}},
	}
	owned := map[string]struct{}{"p1": {}}

	got := collectOwnerBookings(users, owned)
	if len(got) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(got))
	}
	if got[0].UserEmail != "visitor@example.com" || got[0].UserName != "Visitor" || got[0].UserID != "u1" {
		t.Fatalf("visitor details not attached: %+v", got[0])
	}
}

func TestCollectOwnerBookingsEmptyWhenNoProperties(t *testing.T) {
	users := []models.User{
		{UID: "u1", Bookings: []models.Booking{{ID: "b1", PropertyID: "p1"}}},
	}

	got := collectOwnerBookings(users, map[string]struct{}{})
	if len(got) != 0 {
		t.Fatalf("expected no bookings, got %d", len(got))
	}
}
