package models

import "strings"

// MyFile is an attachment of a Post, the content lives in the storage under StoreFileName
type MyFile struct {
	ID               uint64 `gorm:"primaryKey"`
	CreatedAt        int64
	PostID           uint64 `gorm:"not null;index"`
	Post             *Post  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	OriginalFileName string `gorm:"type:varchar(300)"`
	StoreFileName    string `gorm:"type:varchar(300);index:uniq_store_file,unique"`
	MimeType         string `gorm:"type:varchar(100)"`
	Size             int64
	ThumbFileName    string `gorm:"type:varchar(300)"` // filled in by background processing
}

func (f *MyFile) IsImage() bool {
	return strings.HasPrefix(f.MimeType, "image/")
}

// StoredPaths lists every object kept in the storage for this file
func (f *MyFile) StoredPaths() []string {
	paths := []string{f.StoreFileName}
	if f.ThumbFileName != "" {
		paths = append(paths, f.ThumbFileName)
	}
	return paths
}
