package models

type PostLike struct {
	CreatedAt int64
	MemberID  uint64  `gorm:"primaryKey"`
	Member    *Member `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostID    uint64  `gorm:"primaryKey;index"`
	Post      *Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
