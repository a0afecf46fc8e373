package models

import "palette/dto"

type Group struct {
	ID                uint64 `gorm:"primaryKey"`
	CreatedAt         int64
	UpdatedAt         int64
	CreatedByID       *uint64
	CreatedBy         *Member       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	GroupName         string        `gorm:"type:varchar(300);unique"`
	GroupIntroduction string        `gorm:"type:text"`
	MemberGroups      []MemberGroup `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Budget            *Budget       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostGroups        []PostGroup   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func NewGroup(groupName, groupIntroduction string, createdBy *Member) Group {
	g := Group{
		GroupName:         groupName,
		GroupIntroduction: groupIntroduction,
	}
	if createdBy != nil && createdBy.ID != 0 {
		g.CreatedByID = &createdBy.ID
	}
	return g
}

func (g *Group) Update(r dto.GroupUpdateDto) {
	g.GroupName = r.GroupName
	g.GroupIntroduction = r.GroupIntroduction
}

func (g *Group) IsCreatedBy(memberID uint64) bool {
	return g.CreatedByID != nil && *g.CreatedByID == memberID
}

// Members returns the members reachable through loaded MemberGroups
func (g *Group) Members() []*Member {
	result := make([]*Member, 0, len(g.MemberGroups))
	for _, mg := range g.MemberGroups {
		if mg.Member != nil {
			result = append(result, mg.Member)
		}
	}
	return result
}
