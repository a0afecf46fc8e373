package handlers

import (
	"context"

	"net/http"

	"palette/dto"
	"palette/models"
	"palette/services"
	"palette/storage"

	"github.com/gin-gonic/gin"
)

type PostGroupHandler struct {
	postGroups *services.PostGroupService
	posts      *services.PostService
	uploader   *storage.Uploader
	forget     func(context.Context, ...uint64)
}

func (h *PostGroupHandler) Create(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	request := dto.PostGroupRequest{}
	if !bindJSON(c, &request) {
		return
	}
	postGroup, err := h.postGroups.Create(c, groupID, member, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToPostGroupResponse(postGroup, nil))
}

func (h *PostGroupHandler) List(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	postGroups, err := h.postGroups.ListByGroup(c, groupID, member)
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]dto.PostGroupResponse, 0, len(postGroups))
	for i := range postGroups {
		result = append(result, services.ToPostGroupResponse(&postGroups[i], nil))
	}
	c.JSON(http.StatusOK, GeneralResponse{Data: result})
}

// Get returns the post group with all of its stories
func (h *PostGroupHandler) Get(c *gin.Context, member *models.Member) {
	id, ok := paramID(c, "postGroupId")
	if !ok {
		return
	}
	postGroup, err := h.postGroups.FindByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err = h.posts.IsAvailablePostOnPostGroup(c, postGroup, member.ID); err != nil {
		respondError(c, err)
		return
	}
	stories, err := h.posts.FindStoryListByPostGroup(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToPostGroupResponse(postGroup, stories))
}

func (h *PostGroupHandler) Delete(c *gin.Context, member *models.Member) {
	id, ok := paramID(c, "postGroupId")
	if !ok {
		return
	}
	removed, err := h.postGroups.Delete(c, id, member)
	if err != nil {
		respondError(c, err)
		return
	}
	h.uploader.DeleteFiles(c, removed.Files)
	h.forget(c, removed.PostIDs...)
	c.JSON(http.StatusOK, OKResponse)
}
