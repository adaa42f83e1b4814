package handler

import (
	"net/http"

	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/service"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	svc  service.PayrollService
	acl  service.ACLService
	auth service.AuthService
}

func NewPayrollHandler(svc service.PayrollService, acl service.ACLService, auth service.AuthService) *PayrollHandler {
	return &PayrollHandler{svc: svc, acl: acl, auth: auth}
}

// Hours godoc
// @Summary Отработанные часы клуба за месяц
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param month query string true "Месяц YYYY-MM"
// @Success 200 {object} dto.PayrollHoursResponse
// @Router /v1/payroll/hours [get]
func (h *PayrollHandler) Hours(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	resp, err := h.svc.Hours(c.Request.Context(), user, clubID, c.Query("month"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecalcHours godoc
// @Summary Пересчёт часов из графика смен
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param body body dto.RecalcHoursRequest true "Месяц"
// @Success 200 {object} dto.PayrollHoursResponse
// @Router /v1/payroll/hours/recalc [post]
func (h *PayrollHandler) RecalcHours(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	var req dto.RecalcHoursRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecalcHours(c.Request.Context(), user, clubID, req.Month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Entries godoc
// @Summary Зарплатные записи за месяц
// @Tags payroll
// @Produce json
// @Security BearerAuth
// @Param month query string true "Месяц YYYY-MM"
// @Success 200 {array} dto.PayrollEntryResponse
// @Router /v1/payroll/entries [get]
func (h *PayrollHandler) Entries(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	resp, err := h.svc.Entries(c.Request.Context(), user, c.Query("month"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveEntry godoc
// @Summary Создание или обновление зарплатной записи
// @Tags payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.PayrollEntryPayload true "Запись"
// @Success 200 {object} dto.PayrollEntryResponse
// @Router /v1/payroll/entries [post]
func (h *PayrollHandler) SaveEntry(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	var req dto.PayrollEntryPayload
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveEntry(c.Request.Context(), user, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
