package services

import (
	"context"
	"fmt"

	"palette/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func isGroupMember(ctx context.Context, tx *gorm.DB, groupID, memberID uint64) (bool, error) {
	if groupID == 0 || memberID == 0 {
		return false, nil
	}
	var count int64
	err := tx.WithContext(ctx).Model(&models.MemberGroup{}).
		Where("group_id = ? AND member_id = ?", groupID, memberID).
		Count(&count).Error
	return count > 0, err
}

func requireGroupMember(ctx context.Context, tx *gorm.DB, groupID, memberID uint64) error {
	ok, err := isGroupMember(ctx, tx, groupID, memberID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("group %d, member %d: %w", groupID, memberID, ErrNotGroupMember)
	}
	return nil
}

// joinGroup persists an empty MemberGroup and then links it to both sides
func joinGroup(tx *gorm.DB, group *models.Group, member *models.Member) error {
	memberGroup := models.MemberGroup{}
	if err := tx.Create(&memberGroup).Error; err != nil {
		return err
	}
	memberGroup.AddMemberGroup(group, member)
	return tx.Omit(clause.Associations).Save(&memberGroup).Error
}
