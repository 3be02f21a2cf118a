package models

import "time"

type Product struct {
	ID          string  `gorm:"primaryKey"  json:"id"`
	Name        string  `gorm:"not null"    json:"name"`
	Price       float64 `gorm:"not null"    json:"price"`
	Category    string  `json:"category,omitempty"`
	MetalType   string  `json:"metalType,omitempty"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Order keeps its line items as three parallel arrays: ProductIDs[i],
// Quantities[i] and Grams[i] describe one line. TotalAmount is a snapshot
// of the prices in effect when the order was created and is never
// recomputed afterwards.
type Order struct {
	ID          string    `gorm:"primaryKey"       json:"id"`
	UserID      string    `gorm:"index;not null"   json:"userId"`
	ProductIDs  []string  `gorm:"serializer:json"  json:"productIds"`
	Quantities  []int     `gorm:"serializer:json"  json:"quantities"`
	Grams       []float64 `gorm:"serializer:json"  json:"grams"`
	TotalAmount float64   `gorm:"not null"         json:"totalAmount"`
	CreatedAt   time.Time `gorm:"not null"         json:"createdAt"`
}
