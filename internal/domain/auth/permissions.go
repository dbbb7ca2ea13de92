package auth

import "context"

const (
	RoleAdmin             = "admin"
	RoleComplianceOfficer = "compliance_officer"
	RoleViewer            = "viewer"
)

const (
	PermControlsRead  = "controls.read"
	PermControlsWrite = "controls.write"
	PermRisksRead     = "risks.read"
	PermRisksWrite    = "risks.write"
	PermDSRRead       = "dsr.read"
	PermDSRWrite      = "dsr.write"
	PermDashboardRead = "dashboard.read"
	PermAuditRead     = "audit.read"
	PermSystemAdmin   = "admin.system"
)

var DefaultPermissions = []string{
	PermControlsRead,
	PermControlsWrite,
	PermRisksRead,
	PermRisksWrite,
	PermDSRRead,
	PermDSRWrite,
	PermDashboardRead,
	PermAuditRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleAdmin: DefaultPermissions,
	RoleComplianceOfficer: {
		PermControlsRead,
		PermControlsWrite,
		PermRisksRead,
		PermRisksWrite,
		PermDSRRead,
		PermDSRWrite,
		PermDashboardRead,
		PermAuditRead,
	},
	RoleViewer: {
		PermControlsRead,
		PermRisksRead,
		PermDSRRead,
		PermDashboardRead,
	},
}

// Permissions is a role-to-permission lookup satisfying the transport
// middleware's PermissionStore. Roles are a closed set baked into the
// binary; there is no per-role configuration at runtime.
type Permissions struct{}

func NewPermissions() *Permissions {
	return &Permissions{}
}

func (p *Permissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	for _, granted := range RolePermissions[role] {
		if granted == permission {
			return true, nil
		}
	}
	return false, nil
}
