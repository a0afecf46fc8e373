package services

import (
	"context"
	"fmt"
	"strings"

	"palette/dto"
	"palette/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostGroupService struct {
	db *gorm.DB
}

func NewPostGroupService(db *gorm.DB) *PostGroupService {
	return &PostGroupService{db: db}
}

func (s *PostGroupService) FindByID(ctx context.Context, id uint64) (*models.PostGroup, error) {
	postGroup := models.PostGroup{}
	if err := s.db.WithContext(ctx).First(&postGroup, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("post group %d", id))
	}
	return &postGroup, nil
}

func (s *PostGroupService) Create(ctx context.Context, groupID uint64, member *models.Member, r dto.PostGroupRequest) (*models.PostGroup, error) {
	if err := requireGroupMember(ctx, s.db, groupID, member.ID); err != nil {
		return nil, err
	}
	period, err := models.ParsePeriod(r.PeriodStart, r.PeriodEnd)
	if err != nil {
		return nil, err
	}
	postGroup := models.NewPostGroup(groupID, strings.TrimSpace(r.Title), strings.TrimSpace(r.Region), period, r.GpsLat, r.GpsLong)
	if err = s.db.WithContext(ctx).Omit(clause.Associations).Create(&postGroup).Error; err != nil {
		return nil, err
	}
	log.Infof("Member %d created post group %d in group %d", member.ID, postGroup.ID, groupID)
	return &postGroup, nil
}

// ListByGroup returns the post groups of a group, latest trips first
func (s *PostGroupService) ListByGroup(ctx context.Context, groupID uint64, member *models.Member) (result []models.PostGroup, err error) {
	if err = requireGroupMember(ctx, s.db, groupID, member.ID); err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("period_start DESC, id DESC").
		Find(&result).Error
	return
}

// Delete removes the post group with its posts
func (s *PostGroupService) Delete(ctx context.Context, id uint64, member *models.Member) (*Removed, error) {
	postGroup, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = requireGroupMember(ctx, s.db, postGroup.GroupID, member.ID); err != nil {
		return nil, err
	}
	removed := &Removed{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).Where("post_group_id = ?", id).Pluck("id", &removed.PostIDs).Error
		if err != nil {
			return err
		}
		if removed.Files, err = deletePosts(tx, removed.PostIDs); err != nil {
			return err
		}
		return tx.Delete(postGroup).Error
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Member %d deleted post group %d", member.ID, id)
	return removed, nil
}
