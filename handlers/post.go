package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"palette/cache"
	"palette/dto"
	"palette/models"
	"palette/services"
	"palette/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	log "github.com/sirupsen/logrus"
)

const (
	postDataPart  = "data"
	postFilesPart = "files"
)

type PostHandler struct {
	posts      *services.PostService
	postGroups *services.PostGroupService
	uploader   *storage.Uploader
	cache      cache.Cache
	feed       *Feed
}

// GetPosts lists stories of every group, optionally filtered by writer name, region and title
func (h *PostHandler) GetPosts(c *gin.Context) {
	cond := h.searchCondition(c)
	page := 1
	if p := c.Query("page"); p != "" {
		var err error
		if page, err = strconv.Atoi(p); err != nil {
			c.JSON(http.StatusBadRequest, Response{"invalid page"})
			return
		}
	}
	storyList, err := h.posts.FindStoryList(c, cond, page)
	if err != nil {
		respondError(c, err)
		return
	}
	if version, err := services.ListVersion(storyList); err == nil {
		if isNotModified(c, version) {
			return
		}
	} else {
		log.Warnf("Story list version: %v", err)
	}
	c.JSON(http.StatusOK, GeneralResponse{Data: storyList})
}

func (h *PostHandler) searchCondition(c *gin.Context) (cond dto.SearchCondition) {
	if name, ok := c.GetQuery("name"); ok {
		log.Infof("Search condition name=%s added", name)
		cond.Name = name
	}
	if region, ok := c.GetQuery("region"); ok {
		log.Infof("Search condition region=%s added", region)
		cond.Region = region
	}
	if title, ok := c.GetQuery("title"); ok {
		log.Infof("Search condition title=%s added", title)
		cond.Title = title
	}
	return
}

// GetSinglePost is public, so the response is the same for everyone and can be cached
func (h *PostHandler) GetSinglePost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	key := cache.PostKey(id)
	cached := dto.PostResponseDto{}
	if found, err := h.cache.Get(c, key, &cached); err != nil {
		log.Warnf("Cache get %s: %v", key, err)
	} else if found {
		c.JSON(http.StatusOK, cached)
		return
	}
	post, err := h.posts.FindSinglePost(c, id, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if err = h.cache.Set(c, key, post); err != nil {
		log.Warnf("Cache set %s: %v", key, err)
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) CreatePost(c *gin.Context, member *models.Member) {
	postGroupID, ok := paramID(c, "postGroupId")
	if !ok {
		return
	}
	request := dto.PostRequestDto{}
	data, err := postData(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"missing " + postDataPart + " part"})
		return
	}
	if err = binding.JSON.BindBody(data, &request); err != nil {
		badRequest(c, &request, err)
		return
	}
	postGroup, err := h.postGroups.FindByID(c, postGroupID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err = h.posts.IsAvailablePostOnPostGroup(c, postGroup, member.ID); err != nil {
		respondError(c, err)
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{"invalid multipart form"})
		return
	}
	files, err := h.uploader.UploadFiles(c, form.File[postFilesPart])
	if err != nil {
		respondError(c, err)
		return
	}
	post := models.NewPost(request.Title, request.Content, member, postGroup)
	saved, err := h.posts.Write(c, &post, postGroup, files)
	if err != nil {
		h.uploader.DeleteFiles(context.WithoutCancel(c.Request.Context()), files)
		respondError(c, err)
		return
	}
	go h.feed.NotifyNewPost(context.WithoutCancel(c.Request.Context()), postGroup.GroupID, saved, member)
	c.JSON(http.StatusOK, saved.ID)
}

// postData reads the JSON part, sent either as a plain field or as a file part
func postData(c *gin.Context) ([]byte, error) {
	if value, ok := c.GetPostForm(postDataPart); ok {
		return []byte(value), nil
	}
	header, err := c.FormFile(postDataPart)
	if err != nil {
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (h *PostHandler) UpdatePost(c *gin.Context, member *models.Member) {
	request := dto.PostRequestDto{}
	if !bindJSON(c, &request) {
		return
	}
	post, ok := h.validateMemberCanUpdateOrDeletePost(c, member)
	if !ok {
		return
	}
	if err := h.posts.Update(c, post.ID, request); err != nil {
		respondError(c, err)
		return
	}
	h.forget(c, post.ID)
	c.Status(http.StatusOK)
}

// DeletePost ignores the request body
func (h *PostHandler) DeletePost(c *gin.Context, member *models.Member) {
	post, ok := h.validateMemberCanUpdateOrDeletePost(c, member)
	if !ok {
		return
	}
	files, err := h.posts.Delete(c, post.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.uploader.DeleteFiles(c, files)
	h.forget(c, post.ID)
	c.Status(http.StatusOK)
}

// validateMemberCanUpdateOrDeletePost loads the post of the path, the member
// must belong to the post group's group and must have written the post
func (h *PostHandler) validateMemberCanUpdateOrDeletePost(c *gin.Context, member *models.Member) (*models.Post, bool) {
	postGroupID, ok := paramID(c, "postGroupId")
	if !ok {
		return nil, false
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	postGroup, err := h.postGroups.FindByID(c, postGroupID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	post, err := h.posts.FindByID(c, postID)
	if err == nil && post.PostGroupID != postGroup.ID {
		err = services.ErrNotFound
	}
	if err == nil {
		err = h.posts.IsAvailablePostOnPostGroup(c, postGroup, member.ID)
	}
	if err == nil {
		err = h.posts.IsAvailableUpdatePost(post, member)
	}
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return post, true
}

func (h *PostHandler) Like(c *gin.Context, member *models.Member) {
	h.like(c, member, h.posts.Like)
}

func (h *PostHandler) Unlike(c *gin.Context, member *models.Member) {
	h.like(c, member, h.posts.Unlike)
}

func (h *PostHandler) like(c *gin.Context, member *models.Member, action func(context.Context, uint64, *models.Member) error) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := action(c, id, member); err != nil {
		respondError(c, err)
		return
	}
	h.forget(c, id)
	c.JSON(http.StatusOK, OKResponse)
}

// forget drops cached single post responses
func (h *PostHandler) forget(ctx context.Context, postIDs ...uint64) {
	if len(postIDs) == 0 {
		return
	}
	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = cache.PostKey(id)
	}
	if err := h.cache.Delete(ctx, keys...); err != nil {
		log.Warnf("Cache delete %v: %v", keys, err)
	}
}
