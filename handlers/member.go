package handlers

import (
	"net/http"
	"time"

	"palette/auth"
	"palette/dto"
	"palette/models"
	"palette/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type MemberHandler struct {
	members     *services.MemberService
	tokenSecret string
	tokenExpiry time.Duration
}

func meResponse(member *models.Member) dto.MemberResponse {
	r := services.ToMemberResponse(member)
	r.Email = member.Email
	return r
}

func (h *MemberHandler) SignUp(c *gin.Context) {
	request := dto.SignUpRequest{}
	if !bindJSON(c, &request) {
		return
	}
	member, err := h.members.SignUp(c, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meResponse(member))
}

// Login starts a cookie session and, when tokens are enabled, returns a bearer token
func (h *MemberHandler) Login(c *gin.Context) {
	request := dto.LoginRequest{}
	if !bindJSON(c, &request) {
		return
	}
	member, err := h.members.Login(c, request)
	if err != nil {
		respondError(c, err)
		return
	}
	if session := auth.LoadSession(c); session != nil {
		if err = session.LoginMember(member.ID); err != nil {
			log.Errorf("Cannot save session of member %d: %v", member.ID, err)
		}
	}
	response := dto.LoginResponse{Member: meResponse(member)}
	if h.tokenSecret != "" {
		if response.Token, err = auth.GenerateToken(h.tokenSecret, member, h.tokenExpiry); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Logout(c *gin.Context) {
	if session := auth.LoadSession(c); session != nil {
		_ = session.LogoutMember()
	}
	c.JSON(http.StatusOK, OKResponse)
}

func (h *MemberHandler) Me(c *gin.Context, member *models.Member) {
	c.JSON(http.StatusOK, meResponse(member))
}

// EnableTotp makes every later login require a one-time code
func (h *MemberHandler) EnableTotp(c *gin.Context, member *models.Member) {
	url, err := h.members.EnableTotp(c, member)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TotpResponse{URL: url})
}
