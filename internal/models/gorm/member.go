package gorm

import "time"

// Member is one issued ID card. IDNumber is the public lookup key printed on
// the card; it is assigned once by the issuance service and never changes.
type Member struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	IDNumber string `gorm:"column:id_number;uniqueIndex" json:"id_number"`

	FullNameAm       string `gorm:"column:full_name_am" json:"full_name_am"`
	FullNameEn       string `gorm:"column:full_name_en" json:"full_name_en"`
	RankAm           string `gorm:"column:rank_am" json:"rank_am"`
	RankEn           string `gorm:"column:rank_en" json:"rank_en"`
	ResponsibilityAm string `gorm:"column:responsibility_am" json:"responsibility_am"`
	ResponsibilityEn string `gorm:"column:responsibility_en" json:"responsibility_en"`

	Phone                 string `gorm:"column:phone" json:"phone"`
	PhotoURL              string `gorm:"column:photo_url" json:"photo_url"`
	CommissionerSignature string `gorm:"column:commissioner_signature" json:"commissioner_signature"`

	BloodType             string `gorm:"column:blood_type" json:"blood_type"`
	BadgeNumber           string `gorm:"column:badge_number" json:"badge_number"`
	Gender                string `gorm:"column:gender" json:"gender"`
	Complexion            string `gorm:"column:complexion" json:"complexion"`
	Height                string `gorm:"column:height" json:"height"`
	EmergencyContactName  string `gorm:"column:emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone string `gorm:"column:emergency_contact_phone" json:"emergency_contact_phone"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Member) TableName() string {
	return "ids"
}
