package models

// разделы каталога, совпадают с именами страниц
const (
	SectionForHer = "forher"
	SectionForHim = "forhim"
	SectionSale   = "sale"
)

// UnitPrice в копейках.
type Product struct {
	Name      string `gorm:"primaryKey;size:255" bson:"_id" json:"name"`
	Section   string `gorm:"index;size:50" bson:"section" json:"section"`
	UnitPrice int64  `gorm:"not null" bson:"unitPrice" json:"unitPrice"`
}
