package handler

import (
	"net/http"

	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/service"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	svc  service.ScheduleService
	acl  service.ACLService
	auth service.AuthService
}

func NewScheduleHandler(svc service.ScheduleService, acl service.ACLService, auth service.AuthService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, acl: acl, auth: auth}
}

// Month godoc
// @Summary График смен клуба за месяц
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param month query string true "Месяц YYYY-MM"
// @Success 200 {object} dto.ScheduleMonthResponse
// @Router /v1/schedule [get]
func (h *ScheduleHandler) Month(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	resp, err := h.svc.Month(c.Request.Context(), user, clubID, c.Query("month"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveShift godoc
// @Summary Сохранение одной ячейки графика
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param body body dto.SaveShiftRequest true "Ячейка"
// @Success 200 {object} dto.SaveResultResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/schedule/shift [post]
func (h *ScheduleHandler) SaveShift(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	var req dto.SaveShiftRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveShift(c.Request.Context(), user, clubID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveMonth godoc
// @Summary Массовое сохранение графика за месяц
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param body body dto.SaveMonthRequest true "Сетка месяца"
// @Success 200 {object} dto.SaveResultResponse
// @Router /v1/schedule/month [post]
func (h *ScheduleHandler) SaveMonth(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	var req dto.SaveMonthRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveMonth(c.Request.Context(), user, clubID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
