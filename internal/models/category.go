package models

// Category is one of the fixed upload categories. The table is small and
// externally owned; rows are seeded at migration time and never mutated by
// request handlers.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"unique;not null" json:"name"`
}
