package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeol2/8-pumati-be/internal/agent"
	"github.com/yeol2/8-pumati-be/internal/config"
	"github.com/yeol2/8-pumati-be/internal/dto"
	"github.com/yeol2/8-pumati-be/internal/service"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
	"github.com/yeol2/8-pumati-be/pkg/response"
	"github.com/yeol2/8-pumati-be/pkg/validator"
)

type MemberHandler struct {
	memberService service.MemberService
	personas      agent.PersonaGenerator

	refreshCookieName   string
	refreshCookieMaxAge int
}

// personas may be nil; AI signups then require explicit name and nickname.
func NewMemberHandler(memberService service.MemberService, personas agent.PersonaGenerator, cfg *config.Config) *MemberHandler {
	return &MemberHandler{
		memberService:       memberService,
		personas:            personas,
		refreshCookieName:   cfg.RefreshCookieName,
		refreshCookieMaxAge: cfg.RefreshCookieMaxAge,
	}
}

func (h *MemberHandler) SignupOAuthMember(c *gin.Context) {
	var req dto.MemberOAuthSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, refreshToken, err := h.memberService.RegisterOAuthMember(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, refreshToken, h.refreshCookieMaxAge)
	c.JSON(http.StatusCreated, resp)
}

func (h *MemberHandler) SignupAiMember(c *gin.Context) {
	var req dto.AiMemberSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Nickname) == "" {
		if h.personas == nil {
			response.Error(c, apperror.ErrBadRequest)
			return
		}
		persona, err := h.personas.GeneratePersona(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			req.Name = persona.Name
		}
		if strings.TrimSpace(req.Nickname) == "" {
			req.Nickname = persona.Nickname
		}
	}

	id, err := h.memberService.RegisterAiMember(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AiMemberSignupResponse{
		ID:       id,
		Name:     req.Name,
		Nickname: req.Nickname,
	})
}

func (h *MemberHandler) GetCurrentMember(c *gin.Context) {
	member, err := h.memberService.GetByAuthHeader(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.ErrBadRequest)
		return
	}

	member, err := h.memberService.Get(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) GetTeamMembers(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("teamId"), 10, 64)
	if err != nil {
		response.Error(c, apperror.ErrBadRequest)
		return
	}

	members, err := h.memberService.GetAllByTeamID(c.Request.Context(), uint(teamID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *MemberHandler) UpdateCurrentMember(c *gin.Context) {
	var req dto.MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.memberService.Modify(c.Request.Context(), c.GetHeader("Authorization"), req); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MemberHandler) ToggleEmailConsent(c *gin.Context) {
	if err := h.memberService.ToggleEmailConsent(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MemberHandler) DeleteCurrentMember(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// setRefreshCookie scopes the cookie to the whole site; Secure mirrors whether
// the inbound request itself was secure.
func (h *MemberHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	secure := c.Request.TLS != nil
	c.SetCookie(h.refreshCookieName, value, maxAge, "/", "", secure, true)
}
