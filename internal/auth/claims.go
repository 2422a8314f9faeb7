package auth

import "benishangul-police/idregistry/internal/constants"

// Principal is the authenticated caller carried through the request context
// after the bearer token has been verified.
type Principal struct {
	AccountID uint
	Username  string
	Role      constants.Role
}

// Can reports whether the principal's role allows the operation.
func (p *Principal) Can(op constants.Operation) bool {
	if p == nil {
		return false
	}
	return p.Role.Allows(op)
}
