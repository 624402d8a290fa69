package services

import "document-flow-api/models"

// Role names as stored in the roles table and carried in JWT claims.
const (
	RoleVanThu       = "ROLE_VAN_THU"        // clerk
	RoleChuyenVien   = "ROLE_CHUYEN_VIEN"    // specialist
	RoleTruongPhong  = "ROLE_TRUONG_PHONG"   // department head
	RolePhoPhong     = "ROLE_PHO_PHONG"      // deputy department head
	RoleTramTruong   = "ROLE_TRAM_TRUONG"    // station head
	RolePhoTramTruong = "ROLE_PHO_TRAM_TRUONG"
	RoleCumTruong    = "ROLE_CUM_TRUONG"     // cluster head
	RolePhoCumTruong = "ROLE_PHO_CUM_TRUONG"
	RoleCucTruong    = "ROLE_CUC_TRUONG"     // director
	RoleCucPho       = "ROLE_CUC_PHO"        // deputy director
	RoleChinhUy      = "ROLE_CHINH_UY"       // political commissar
	RolePhoChinhUy   = "ROLE_PHO_CHINH_UY"
	RoleAdmin        = "ROLE_ADMIN"
)

// RoleSet is a capability set: the roles authorized for a transition.
type RoleSet map[string]struct{}

// NewRoleSet builds a set from role names.
func NewRoleSet(names ...string) RoleSet {
	set := make(RoleSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Contains reports membership of a single role name.
func (s RoleSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Allows reports whether the actor carries at least one role in the set.
// A nil set means any authenticated actor is allowed.
func (s RoleSet) Allows(actor *models.User) bool {
	if s == nil {
		return actor != nil
	}
	if actor == nil {
		return false
	}
	for _, r := range actor.Roles {
		if _, ok := s[r.Name]; ok {
			return true
		}
	}
	return false
}

// Names returns the member role names. Order is unspecified.
func (s RoleSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	return out
}

// Capability sets used by the transition table.
var (
	clerkRoles = NewRoleSet(RoleVanThu)

	specialistRoles = NewRoleSet(RoleChuyenVien)

	// Unit commanders (chỉ huy đơn vị): heads and deputies of phòng/trạm/cụm.
	unitCommanderRoles = NewRoleSet(
		RoleTruongPhong, RolePhoPhong,
		RoleTramTruong, RolePhoTramTruong,
		RoleCumTruong, RolePhoCumTruong,
	)

	departmentHeadRoles = NewRoleSet(
		RoleTruongPhong, RolePhoPhong,
		RoleTramTruong, RolePhoTramTruong,
		RoleCumTruong, RolePhoCumTruong,
		RoleAdmin,
	)

	// Leadership tier for review and feedback.
	leaderRoles = NewRoleSet(RoleCucTruong, RoleCucPho, RoleChinhUy, RolePhoChinhUy)

	// Only the director tier may approve or attach feedback files.
	directorRoles = NewRoleSet(RoleCucTruong, RoleCucPho)

	distributorRoles = NewRoleSet(RoleVanThu, RoleCucTruong, RoleCucPho, RoleAdmin)
)

// IsChiHuyDonVi reports whether the user holds any unit-commander role.
func IsChiHuyDonVi(u *models.User) bool {
	return unitCommanderRoles.Allows(u)
}
