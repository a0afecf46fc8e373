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

type GroupHandler struct {
	groups   *services.GroupService
	uploader *storage.Uploader
	forget   func(context.Context, ...uint64)
}

// List returns the groups of the logged in member
func (h *GroupHandler) List(c *gin.Context, member *models.Member) {
	groups, err := h.groups.ListForMember(c, member.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, services.ToGroupResponse(&groups[i]))
	}
	c.JSON(http.StatusOK, GeneralResponse{Data: result})
}

func (h *GroupHandler) Create(c *gin.Context, member *models.Member) {
	request := dto.GroupCreateRequest{}
	if !bindJSON(c, &request) {
		return
	}
	group, err := h.groups.Create(c, member, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToGroupResponse(group))
}

func (h *GroupHandler) Update(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	request := dto.GroupUpdateDto{}
	if !bindJSON(c, &request) {
		return
	}
	group, err := h.groups.Update(c, groupID, member, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToGroupResponse(group))
}

func (h *GroupHandler) Delete(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	removed, err := h.groups.Delete(c, groupID, member)
	if err != nil {
		respondError(c, err)
		return
	}
	h.uploader.DeleteFiles(c, removed.Files)
	h.forget(c, removed.PostIDs...)
	c.JSON(http.StatusOK, OKResponse)
}

func (h *GroupHandler) Members(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	if _, err := h.groups.RequireMember(c, groupID, member.ID); err != nil {
		respondError(c, err)
		return
	}
	members, err := h.groups.Members(c, groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	result := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		result = append(result, services.ToMemberResponse(&members[i]))
	}
	c.JSON(http.StatusOK, GeneralResponse{Data: result})
}

func (h *GroupHandler) AddMember(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	request := dto.GroupMemberRequest{}
	if !bindJSON(c, &request) {
		return
	}
	added, err := h.groups.AddMember(c, groupID, member, request.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToMemberResponse(added))
}
