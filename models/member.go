package models

type Member struct {
	ID              uint64 `gorm:"primaryKey"`
	CreatedAt       int64
	UpdatedAt       int64
	Email           string        `gorm:"type:varchar(150);index:uniq_member_email,unique"`
	Name            string        `gorm:"type:varchar(100);index"`
	Password        string        `gorm:"type:varchar(100)"` // bcrypt hash
	ProfileFileName string        `gorm:"type:varchar(300)"`
	TotpSecret      string        `gorm:"type:varchar(200)"` // Login requires a one-time code when set
	MemberGroups    []MemberGroup `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// NewMember expects an already hashed password
func NewMember(email, passwordHash, name, profileFileName string) Member {
	return Member{
		Email:           email,
		Password:        passwordHash,
		Name:            name,
		ProfileFileName: profileFileName,
	}
}

func (m *Member) HasTotp() bool {
	return m.TotpSecret != ""
}

// Groups returns the groups reachable through loaded MemberGroups
func (m *Member) Groups() []*Group {
	result := make([]*Group, 0, len(m.MemberGroups))
	for _, mg := range m.MemberGroups {
		if mg.Group != nil {
			result = append(result, mg.Group)
		}
	}
	return result
}
