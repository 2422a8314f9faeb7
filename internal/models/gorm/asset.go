package gorm

// Asset is a branding blob (flags, emblem) stored as data-URI text and
// consumed by the card renderer. Writes are upserts keyed on Key.
type Asset struct {
	Key   string `gorm:"column:key;primaryKey" json:"key"`
	Value string `gorm:"column:value" json:"value"`
}

// TableName specifies the table name for GORM
func (Asset) TableName() string {
	return "assets"
}
