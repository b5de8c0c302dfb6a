package models

import "time"

const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking is embedded in the user document. Title and address are copied
// from the property at booking time and are not kept in sync afterwards.
type Booking struct {
	ID              string     `bson:"id" json:"id"`
	PropertyID      string     `bson:"propertyId" json:"propertyId"`
	PropertyTitle   string     `bson:"propertyTitle" json:"propertyTitle"`
	PropertyAddress string     `bson:"propertyAddress,omitempty" json:"propertyAddress,omitempty"`
	Date            string     `bson:"date" json:"date"`
	Status          string     `bson:"status" json:"status"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// User is keyed by the auth uid. Bookings and favorites live inside the
// document rather than in their own collections.
type User struct {
	UID          string    `bson:"_id" json:"uid"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	Name         string    `bson:"name" json:"name"`
	Role         string    `bson:"role" json:"role"`
	Bookings     []Booking `bson:"bookings" json:"bookings"`
	Favorites    []string  `bson:"favorites" json:"favorites"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidBookingStatus reports whether s is one of the known booking states.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}
