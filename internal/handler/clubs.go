package handler

import (
	"net/http"

	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ClubsHandler serves the club-switcher toolbar: which clubs the user may
// act on and which one is selected.
type ClubsHandler struct {
	acl  service.ACLService
	auth service.AuthService
}

func NewClubsHandler(acl service.ACLService, auth service.AuthService) *ClubsHandler {
	return &ClubsHandler{acl: acl, auth: auth}
}

// List godoc
// @Summary Клубы, доступные текущему пользователю
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ClubOption
// @Router /v1/clubs [get]
func (h *ClubsHandler) List(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubs, err := h.acl.AllowedClubs(c.Request.Context(), user)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	options := make([]dto.ClubOption, 0, len(clubs))
	for _, club := range clubs {
		opt := dto.ClubOption{ID: club.ID, Name: club.Name}
		if role, err := h.acl.RoleIn(c.Request.Context(), user.ID, club.ID); err == nil {
			opt.Role = role
		}
		options = append(options, opt)
	}
	c.JSON(http.StatusOK, options)
}

// Active godoc
// @Summary Текущий выбранный клуб
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ActiveClubResponse
// @Router /v1/clubs/active [get]
func (h *ClubsHandler) Active(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	club, err := h.acl.ActiveClub(c.Request.Context(), user)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := dto.ActiveClubResponse{}
	if club != nil {
		resp.ClubID = club.ID
	}
	c.JSON(http.StatusOK, resp)
}

// SetActive godoc
// @Summary Переключение активного клуба
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SetActiveClubRequest true "Клуб"
// @Success 200 {object} dto.ActiveClubResponse
// @Router /v1/clubs/active [post]
func (h *ClubsHandler) SetActive(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	var req dto.SetActiveClubRequest
	if !bindAndValidate(c, &req) {
		return
	}
	club, err := h.acl.SetActiveClub(c.Request.Context(), user, req.ClubID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp := dto.ActiveClubResponse{}
	if club != nil {
		resp.ClubID = club.ID
	}
	c.JSON(http.StatusOK, resp)
}
