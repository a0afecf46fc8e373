package models

// MemberGroup links a Member to a Group. It can be persisted empty first and
// linked later with AddMemberGroup.
type MemberGroup struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	MemberID  *uint64 `gorm:"index:uniq_member_group,priority:1,unique"`
	Member    *Member `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64 `gorm:"index:uniq_member_group,priority:2,unique;index:idx_group_member"`
	Group     *Group  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// AddMemberGroup sets both sides of the link and registers it with the group
// and the member, so either one can be traversed without reloading.
func (mg *MemberGroup) AddMemberGroup(group *Group, member *Member) {
	mg.Group = group
	mg.GroupID = &group.ID
	mg.Member = member
	mg.MemberID = &member.ID
	group.MemberGroups = append(group.MemberGroups, *mg)
	member.MemberGroups = append(member.MemberGroups, *mg)
}

func (mg *MemberGroup) IsLinked() bool {
	return mg.MemberID != nil && mg.GroupID != nil
}
