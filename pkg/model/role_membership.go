package model

// RoleMembership represents a principal-to-role grant
type RoleMembership struct {
	RoleID   string `gorm:"column:role_id;primaryKey"`
	MemberID string `gorm:"column:member_id;primaryKey"`
}

func (RoleMembership) TableName() string {
	return "role_memberships"
}
