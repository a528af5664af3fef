package models

// Category rows are seed data; the API never writes them.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Type string `json:"type" gorm:"not null"`
}

// CategoryView is the wire shape of a category.
type CategoryView struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
}

func (c Category) Format() CategoryView {
	return CategoryView{ID: c.ID, Type: c.Type}
}
