package gorm

// IDCounter is the single-row issuance counter. It only ever moves forward,
// so deleting the highest-numbered member can never cause a number to be
// handed out twice.
type IDCounter struct {
	ID    uint  `gorm:"column:id;primaryKey"`
	Value int64 `gorm:"column:value"`
}

// TableName specifies the table name for GORM
func (IDCounter) TableName() string {
	return "id_counter"
}
