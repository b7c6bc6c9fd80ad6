package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleOwner      = "owner"
	RoleViewer     = "viewer"
	RoleSuperAdmin = "super_admin"
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsKnownRole(role string) bool {
	switch role {
	case RoleOwner, RoleViewer, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
