package entities

import "time"

// ScanEvent is an append-only audit row written whenever the public verify
// endpoint resolves an ID number. IDNumber is a loose reference: the member
// it points at may have been deleted since the scan.
type ScanEvent struct {
	ID        string    `db:"id" json:"id"`
	IDNumber  string    `db:"id_number" json:"id_number"`
	IPAddress string    `db:"ip_address" json:"ip_address"`
	UserAgent string    `db:"user_agent" json:"user_agent"`
	ScannedAt time.Time `db:"scanned_at" json:"scanned_at"`
}
