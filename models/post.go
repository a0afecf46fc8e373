package models

import "palette/dto"

type Post struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64  `gorm:"index"`
	UpdatedAt   int64
	MemberID    uint64     `gorm:"not null;index"`
	Member      *Member    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostGroupID uint64     `gorm:"not null;index"`
	PostGroup   *PostGroup `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title       string     `gorm:"type:varchar(300);index"`
	Content     string     `gorm:"type:text"`
	Region      string     `gorm:"type:varchar(100);index"`
	Period      Period     `gorm:"embedded;embeddedPrefix:period_"`
	LikeCount   int64      `gorm:"not null;default:0"`
	Files       []MyFile   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// NewPost copies region and period from the post group the post is written in
func NewPost(title, content string, member *Member, postGroup *PostGroup) Post {
	return Post{
		Title:       title,
		Content:     content,
		MemberID:    member.ID,
		Member:      member,
		PostGroupID: postGroup.ID,
		Region:      postGroup.Region,
		Period:      postGroup.Period,
	}
}

func (p *Post) Update(r dto.PostRequestDto) {
	p.Title = r.Title
	p.Content = r.Content
}

func (p *Post) IsWrittenBy(memberID uint64) bool {
	return memberID != 0 && p.MemberID == memberID
}

// Thumbnail returns the first image attachment, nil when there is none
func (p *Post) Thumbnail() *MyFile {
	for i := range p.Files {
		if p.Files[i].IsImage() {
			return &p.Files[i]
		}
	}
	return nil
}
