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

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// Create makes a new group, the creator joins it right away
func (s *GroupService) Create(ctx context.Context, creator *models.Member, r dto.GroupCreateRequest) (*models.Group, error) {
	name := strings.TrimSpace(r.GroupName)
	if err := s.checkNameFree(ctx, name, 0); err != nil {
		return nil, err
	}
	group := models.NewGroup(name, strings.TrimSpace(r.GroupIntroduction), creator)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&group).Error; err != nil {
			return err
		}
		return joinGroup(tx, &group, creator)
	})
	if err != nil {
		return nil, duplicate(err, ErrGroupNameTaken)
	}
	log.Infof("Member %d created group %d", creator.ID, group.ID)
	return &group, nil
}

func (s *GroupService) checkNameFree(ctx context.Context, name string, exceptID uint64) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Group{}).
		Where("group_name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGroupNameTaken
	}
	return nil
}

func (s *GroupService) FindByID(ctx context.Context, id uint64) (*models.Group, error) {
	group := models.Group{}
	if err := s.db.WithContext(ctx).Preload("MemberGroups").First(&group, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("group %d", id))
	}
	return &group, nil
}

// RequireMember returns ErrNotFound for unknown groups and ErrNotGroupMember for outsiders
func (s *GroupService) RequireMember(ctx context.Context, groupID, memberID uint64) (*models.Group, error) {
	group, err := s.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err = requireGroupMember(ctx, s.db, groupID, memberID); err != nil {
		return nil, err
	}
	return group, nil
}

// AddMember adds the member registered with the email, the requester must belong to the group
func (s *GroupService) AddMember(ctx context.Context, groupID uint64, requester *models.Member, email string) (*models.Member, error) {
	group, err := s.RequireMember(ctx, groupID, requester.ID)
	if err != nil {
		return nil, err
	}
	member := models.Member{}
	err = s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&member).Error
	if err != nil {
		return nil, notFound(err, "member "+email)
	}
	already, err := isGroupMember(ctx, s.db, groupID, member.ID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrAlreadyMember
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return joinGroup(tx, group, &member)
	})
	if err != nil {
		return nil, duplicate(err, ErrAlreadyMember)
	}
	log.Infof("Member %d added member %d to group %d", requester.ID, member.ID, groupID)
	return &member, nil
}

// ListForMember returns the groups the member belongs to, with their MemberGroups loaded
func (s *GroupService) ListForMember(ctx context.Context, memberID uint64) (groups []models.Group, err error) {
	err = s.db.WithContext(ctx).
		Joins("JOIN member_groups ON member_groups.group_id = groups.id").
		Where("member_groups.member_id = ?", memberID).
		Preload("MemberGroups").
		Order("groups.id").
		Find(&groups).Error
	return
}

func (s *GroupService) Members(ctx context.Context, groupID uint64) (members []models.Member, err error) {
	err = s.db.WithContext(ctx).
		Joins("JOIN member_groups ON member_groups.member_id = members.id").
		Where("member_groups.group_id = ?", groupID).
		Order("member_groups.id").
		Find(&members).Error
	return
}

func (s *GroupService) MemberIDs(ctx context.Context, groupID uint64) (ids []uint64, err error) {
	err = s.db.WithContext(ctx).Model(&models.MemberGroup{}).
		Where("group_id = ? AND member_id IS NOT NULL", groupID).
		Pluck("member_id", &ids).Error
	return
}

func (s *GroupService) Update(ctx context.Context, groupID uint64, member *models.Member, r dto.GroupUpdateDto) (*models.Group, error) {
	group, err := s.RequireMember(ctx, groupID, member.ID)
	if err != nil {
		return nil, err
	}
	r.GroupName = strings.TrimSpace(r.GroupName)
	r.GroupIntroduction = strings.TrimSpace(r.GroupIntroduction)
	if err = s.checkNameFree(ctx, r.GroupName, group.ID); err != nil {
		return nil, err
	}
	group.Update(r)
	if err = s.db.WithContext(ctx).Omit(clause.Associations).Save(group).Error; err != nil {
		return nil, duplicate(err, ErrGroupNameTaken)
	}
	return group, nil
}

// Delete removes the group with everything in it
func (s *GroupService) Delete(ctx context.Context, groupID uint64, member *models.Member) (*Removed, error) {
	group, err := s.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsCreatedBy(member.ID) {
		return nil, ErrNotGroupCreator
	}
	removed := &Removed{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		postGroups := tx.Model(&models.PostGroup{}).Select("id").Where("group_id = ?", groupID)
		err := tx.Model(&models.Post{}).Where("post_group_id IN (?)", postGroups).Pluck("id", &removed.PostIDs).Error
		if err != nil {
			return err
		}
		if removed.Files, err = deletePosts(tx, removed.PostIDs); err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.PostGroup{}).Error; err != nil {
			return err
		}
		budgets := tx.Model(&models.Budget{}).Select("id").Where("group_id = ?", groupID)
		if err := tx.Where("budget_id IN (?)", budgets).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.Budget{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.MemberGroup{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Member %d deleted group %d", member.ID, groupID)
	return removed, nil
}

// Removed lists the posts a delete took with it. The stored objects of
// Files are left for the caller to remove.
type Removed struct {
	PostIDs []uint64
	Files   []models.MyFile
}

// deletePosts removes the posts with their likes and attachment rows, and
// returns the attachments so their stored objects can be removed too
func deletePosts(tx *gorm.DB, postIDs []uint64) (files []models.MyFile, err error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	if err = tx.Where("post_id IN ?", postIDs).Find(&files).Error; err != nil {
		return nil, err
	}
	if err = tx.Where("post_id IN ?", postIDs).Delete(&models.MyFile{}).Error; err != nil {
		return nil, err
	}
	if err = tx.Where("post_id IN ?", postIDs).Delete(&models.PostLike{}).Error; err != nil {
		return nil, err
	}
	return files, tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error
}
