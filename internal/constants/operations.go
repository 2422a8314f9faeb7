package constants

// Operation names a role-gated action on the registry. Handlers declare the
// operation they implement and the middleware resolves it against the
// capability table exactly once per request.
type Operation string

const (
	OpMemberList    Operation = "member:list"
	OpMemberCreate  Operation = "member:create"
	OpMemberUpdate  Operation = "member:update"
	OpScanList      Operation = "scan:list"
	OpAssetRead     Operation = "asset:read"
	OpAssetWrite    Operation = "asset:write"
	OpAccountManage Operation = "account:manage"
	OpBackup        Operation = "backup:manage"
)

// capabilities is the closed role matrix. Missing entry means denied.
var capabilities = map[Role]map[Operation]bool{
	RoleAdministrator: {
		OpMemberList:    true,
		OpMemberCreate:  true,
		OpMemberUpdate:  true,
		OpScanList:      true,
		OpAssetRead:     true,
		OpAssetWrite:    true,
		OpAccountManage: true,
		OpBackup:        true,
	},
	RoleDataEntry: {
		OpMemberList:   true,
		OpMemberCreate: true,
		OpMemberUpdate: true,
		OpScanList:     true,
		OpAssetRead:    true,
	},
	RoleViewer: {
		OpMemberList: true,
		OpScanList:   true,
		OpAssetRead:  true,
	},
}

// Allows reports whether the role may invoke the operation.
func (r Role) Allows(op Operation) bool {
	return capabilities[r][op]
}
