package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"palette/dto"
	"palette/models"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostService struct {
	db       *gorm.DB
	urls     URLResolver
	pageSize int
}

func NewPostService(db *gorm.DB, urls URLResolver, pageSize int) *PostService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &PostService{db: db, urls: urls, pageSize: pageSize}
}

// likeEscape works unquoted in every dialect, unlike a backslash
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// containsPattern matches value literally anywhere in a column
func containsPattern(value string) string {
	return "%" + likeReplacer.Replace(value) + "%"
}

func (s *PostService) storyQuery(ctx context.Context, cond dto.SearchCondition) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Post{}).
		Joins("JOIN members ON members.id = posts.member_id")
	if cond.Name != "" {
		q = q.Where("members.name LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(cond.Name))
	}
	if cond.Region != "" {
		q = q.Where("posts.region LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(cond.Region))
	}
	if cond.Title != "" {
		q = q.Where("posts.title LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(cond.Title))
	}
	return q
}

func preloadFiles(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// FindStoryList returns one page of posts matching the condition, newest first.
// Pages start at 1.
func (s *PostService) FindStoryList(ctx context.Context, cond dto.SearchCondition, page int) ([]dto.StoryListResponse, error) {
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt32/s.pageSize {
		// beyond any offset the databases accept
		return []dto.StoryListResponse{}, nil
	}
	var posts []models.Post
	err := s.storyQuery(ctx, cond).
		Select("posts.*").
		Preload("Member").
		Preload("Files", preloadFiles).
		Order("posts.created_at DESC, posts.id DESC").
		Offset((page - 1) * s.pageSize).
		Limit(s.pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return s.toStoryList(posts), nil
}

// FindStoryListByPostGroup returns every post of the post group, newest first
func (s *PostService) FindStoryListByPostGroup(ctx context.Context, postGroupID uint64) ([]dto.StoryListResponse, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("post_group_id = ?", postGroupID).
		Preload("Member").
		Preload("Files", preloadFiles).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return s.toStoryList(posts), nil
}

func (s *PostService) toStoryList(posts []models.Post) []dto.StoryListResponse {
	result := make([]dto.StoryListResponse, 0, len(posts))
	for i := range posts {
		result = append(result, s.toStoryListResponse(&posts[i]))
	}
	return result
}

// ListVersion identifies the content of a story list page, it changes with
// anything the page shows: titles, thumbnails, like counts, order
func ListVersion(stories []dto.StoryListResponse) (string, error) {
	data, err := json.Marshal(stories)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

func (s *PostService) FindByID(ctx context.Context, id uint64) (*models.Post, error) {
	post := models.Post{}
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("post %d", id))
	}
	return &post, nil
}

// FindSinglePost loads the post with its writer and files. Liked is only
// filled in for a logged in member, memberID 0 means nobody.
func (s *PostService) FindSinglePost(ctx context.Context, id, memberID uint64) (*dto.PostResponseDto, error) {
	post := models.Post{}
	err := s.db.WithContext(ctx).
		Preload("Member").
		Preload("Files", preloadFiles).
		First(&post, id).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("post %d", id))
	}
	liked := false
	if memberID != 0 {
		if liked, err = s.IsLiked(ctx, id, memberID); err != nil {
			return nil, err
		}
	}
	response := s.toPostResponse(&post, liked)
	return &response, nil
}

// IsAvailablePostOnPostGroup fails unless the member belongs to the group owning the post group
func (s *PostService) IsAvailablePostOnPostGroup(ctx context.Context, postGroup *models.PostGroup, memberID uint64) error {
	return requireGroupMember(ctx, s.db, postGroup.GroupID, memberID)
}

// IsAvailableUpdatePost fails unless the member wrote the post
func (s *PostService) IsAvailableUpdatePost(post *models.Post, member *models.Member) error {
	if !post.IsWrittenBy(member.ID) {
		return fmt.Errorf("post %d, member %d: %w", post.ID, member.ID, ErrNotPostOwner)
	}
	return nil
}

// Write persists the post in the post group together with its attachment rows
func (s *PostService) Write(ctx context.Context, post *models.Post, postGroup *models.PostGroup, files []models.MyFile) (*models.Post, error) {
	post.PostGroupID = postGroup.ID
	post.Files = files
	if err := s.db.WithContext(ctx).Omit("Member", "PostGroup").Create(post).Error; err != nil {
		return nil, err
	}
	log.Infof("Member %d wrote post %d in post group %d with %d files", post.MemberID, post.ID, postGroup.ID, len(files))
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id uint64, r dto.PostRequestDto) error {
	post, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	r.Title = strings.TrimSpace(r.Title)
	post.Update(r)
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}

// Delete removes the post and returns its attachments, their stored objects are left to the caller
func (s *PostService) Delete(ctx context.Context, id uint64) ([]models.MyFile, error) {
	var files []models.MyFile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		files, err = deletePosts(tx, []uint64{id})
		return err
	})
	return files, err
}

func (s *PostService) IsLiked(ctx context.Context, postID, memberID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.PostLike{}).
		Where("post_id = ? AND member_id = ?", postID, memberID).
		Count(&count).Error
	return count > 0, err
}

// Like is idempotent, liking twice counts once
func (s *PostService) Like(ctx context.Context, postID uint64, member *models.Member) error {
	if _, err := s.FindByID(ctx, postID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.PostLike{PostID: postID, MemberID: member.ID}
		result := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if result.Error != nil || result.RowsAffected == 0 {
			return result.Error
		}
		return tx.Model(&models.Post{ID: postID}).Update("like_count", gorm.Expr("like_count + 1")).Error
	})
}

func (s *PostService) Unlike(ctx context.Context, postID uint64, member *models.Member) error {
	if _, err := s.FindByID(ctx, postID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND member_id = ?", postID, member.ID).Delete(&models.PostLike{})
		if result.Error != nil || result.RowsAffected == 0 {
			return result.Error
		}
		return tx.Model(&models.Post{ID: postID}).
			Where("like_count > 0").
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
}
