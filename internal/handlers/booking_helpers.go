package handlers

import (
	"net/http"

	"propertypro/internal/models"
)

// bookingDenial reports why a new booking for the property must be
// rejected, or 0 when it may proceed. The duplicate check runs before the
// owner check, so an owner re-booking their own listing still sees the
// conflict first.
func bookingDenial(bookings []models.Booking, property models.Property, uid string) (int, string) {
	if hasBooking(bookings, property.ID.Hex()) {
		return http.StatusConflict, "property already booked"
	}
	if property.OwnerID == uid {
		return http.StatusForbidden, "owners cannot book their own property"
	}
	return 0, ""
}

// hasBooking reports whether the user already holds a booking for the
// property, regardless of its status. "Already booked" is terminal; the
// visitor has to cancel before rebooking.
func hasBooking(bookings []models.Booking, propertyID string) bool {
	for _, b := range bookings {
		if b.PropertyID == propertyID {
			return true
		}
	}
	return false
}

// removeBooking drops the first booking matching propertyID. The second
// return value reports whether anything was removed.
func removeBooking(bookings []models.Booking, propertyID string) ([]models.Booking, bool) {
	updated := make([]models.Booking, 0, len(bookings))
	removed := false
	for _, b := range bookings {
		if !removed && b.PropertyID == propertyID {
			removed = true
			continue
		}
		updated = append(updated, b)
	}
	return updated, removed
}

// findBookingIndex locates a booking by its id, or returns -1.
func findBookingIndex(bookings []models.Booking, bookingID string) int {
	for i, b := range bookings {
		if b.ID == bookingID {
			return i
		}
	}
	return -1
}

// toggleFavorite removes the property id when present and appends it
// otherwise. Applying it twice restores the original sequence.
func toggleFavorite(favorites []string, propertyID string) ([]string, bool) {
	updated := make([]string, 0, len(favorites)+1)
	found := false
	for _, id := range favorites {
		if id == propertyID {
			found = true
			continue
		}
		updated = append(updated, id)
	}
	if found {
		return updated, false
	}
	return append(updated, propertyID), true
}
