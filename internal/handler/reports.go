package handler

import (
	"errors"
	"net/http"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/model"
	"github.com/Dignition/colizeum-api/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc  service.ReportService
	acl  service.ACLService
	auth service.AuthService
}

func NewReportsHandler(svc service.ReportService, acl service.ACLService, auth service.AuthService) *ReportsHandler {
	return &ReportsHandler{svc: svc, acl: acl, auth: auth}
}

// requestClub picks the club the call targets: an explicit club_id query
// parameter or the user's active club.
func requestClub(c *gin.Context, acl service.ACLService, user *model.User) (uint, bool) {
	if id := uintQuery(c, "club_id"); id != 0 {
		return id, true
	}
	club, err := acl.ActiveClub(c.Request.Context(), user)
	if err != nil || club == nil {
		c.JSON(http.StatusBadRequest, apierror.New("нет доступного клуба"))
		return 0, false
	}
	return club.ID, true
}

// Create godoc
// @Summary Создание отчёта кассира
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param body body dto.ReportPayload true "Отчёт"
// @Success 201 {object} dto.ReportResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/reports [post]
func (h *ReportsHandler) Create(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	var req dto.ReportPayload
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), user, clubID, req)
	if err != nil {
		var dup *service.ErrDuplicateReport
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, gin.H{
				"detail":    dup.Error(),
				"report_id": dup.ReportID,
			})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary Один отчёт
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID отчёта"
// @Success 200 {object} dto.ReportResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/reports/{id} [get]
func (h *ReportsHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), user, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Редактирование отчёта
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID отчёта"
// @Param body body dto.ReportPayload true "Отчёт"
// @Success 200 {object} dto.ReportResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/reports/{id} [put]
func (h *ReportsHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.ReportPayload
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), user, id, req)
	if err != nil {
		var dup *service.ErrDuplicateReport
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, gin.H{
				"detail":    dup.Error(),
				"report_id": dup.ReportID,
			})
			return
		}
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Month godoc
// @Summary Отчёты клуба за месяц с итогами
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param month query string true "Месяц YYYY-MM"
// @Success 200 {object} dto.ReportMonthResponse
// @Router /v1/reports/month [get]
func (h *ReportsHandler) Month(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	month := c.Query("month")
	resp, err := h.svc.Month(c.Request.Context(), user, clubID, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
