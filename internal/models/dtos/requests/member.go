package requests

// MemberRequest carries the writable card fields. The surrogate id and the
// id_number are assigned server-side and ignored if present in the body.
type MemberRequest struct {
	FullNameAm       string `json:"full_name_am"`
	FullNameEn       string `json:"full_name_en"`
	RankAm           string `json:"rank_am"`
	RankEn           string `json:"rank_en"`
	ResponsibilityAm string `json:"responsibility_am"`
	ResponsibilityEn string `json:"responsibility_en"`

	Phone                 string `json:"phone"`
	PhotoURL              string `json:"photo_url"`
	CommissionerSignature string `json:"commissioner_signature"`

	BloodType             string `json:"blood_type"`
	BadgeNumber           string `json:"badge_number"`
	Gender                string `json:"gender"`
	Complexion            string `json:"complexion"`
	Height                string `json:"height"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}
