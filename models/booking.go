package models

import "time"

// Package is a bookable service package defined by the catalog.
type Package struct {
	Name        string  `bson:"name" json:"name"`               // Unique display key (e.g., "Standard")
	Price       float64 `bson:"price" json:"price"`             // Non-negative base price
	Description string  `bson:"description" json:"description"` // Short marketing copy shown on the form
}

// AddOn is an optional extra booked alongside a package.
type AddOn struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// Selection holds what is currently chosen on the form: at most one package
// and an unordered set of add-ons keyed by name.
type Selection struct {
	Package *Package         `json:"package,omitempty"`
	AddOns  map[string]AddOn `json:"addOns,omitempty"`
}

// BookingDraft is the mutable, in-progress form state for one booking attempt.
// Total is derived from Selection and never set directly.
type BookingDraft struct {
	// Contact fields.
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	// Property fields.
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Zip           string `json:"zip,omitempty"`
	HomeType      string `json:"homeType"`
	FloorType     string `json:"floorType"`
	Bedrooms      string `json:"bedrooms"`
	Bathrooms     string `json:"bathrooms"`
	SquareFootage string `json:"squareFootage"`

	// Scheduling preference and free-text specifics.
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Specifics string `json:"specifics,omitempty"`

	Selection Selection `json:"selection"`
	Total     float64   `json:"total"`
}

// BookingRecord is the write-once document handed to the persistence gateway.
type BookingRecord struct {
	ID        string `bson:"id" firestore:"id" json:"id"`
	AppID     string `bson:"app_id" firestore:"appId" json:"appId"`
	UserID    string `bson:"user_id" firestore:"userId" json:"userId"`
	Anonymous bool   `bson:"anonymous" firestore:"anonymous" json:"anonymous"`

	Name  string `bson:"name" firestore:"name" json:"name"`
	Email string `bson:"email" firestore:"email" json:"email"`
	Phone string `bson:"phone" firestore:"phone" json:"phone"`

	Address       string `bson:"address,omitempty" firestore:"address,omitempty" json:"address,omitempty"`
	City          string `bson:"city,omitempty" firestore:"city,omitempty" json:"city,omitempty"`
	State         string `bson:"state,omitempty" firestore:"state,omitempty" json:"state,omitempty"`
	Zip           string `bson:"zip,omitempty" firestore:"zip,omitempty" json:"zip,omitempty"`
	HomeType      string `bson:"home_type" firestore:"homeType" json:"homeType"`
	FloorType     string `bson:"floor_type" firestore:"floorType" json:"floorType"`
	Bedrooms      string `bson:"bedrooms" firestore:"bedrooms" json:"bedrooms"`
	Bathrooms     string `bson:"bathrooms" firestore:"bathrooms" json:"bathrooms"`
	SquareFootage string `bson:"square_footage" firestore:"squareFootage" json:"squareFootage"`

	Date      string `bson:"date,omitempty" firestore:"date,omitempty" json:"date,omitempty"`
	Time      string `bson:"time,omitempty" firestore:"time,omitempty" json:"time,omitempty"`
	Specifics string `bson:"specifics,omitempty" firestore:"specifics,omitempty" json:"specifics,omitempty"`

	PackageName  string  `bson:"package_name" firestore:"packageName" json:"packageName"`
	PackagePrice float64 `bson:"package_price" firestore:"packagePrice" json:"packagePrice"`
	AddOns       []AddOn `bson:"add_ons,omitempty" firestore:"addOns,omitempty" json:"addOns,omitempty"`
	TotalPrice   float64 `bson:"total_price" firestore:"totalPrice" json:"totalPrice"`

	CreatedAt time.Time `bson:"created_at" firestore:"createdAt" json:"createdAt"`
}
