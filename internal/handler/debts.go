package handler

import (
	"net/http"

	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/service"

	"github.com/gin-gonic/gin"
)

type DebtsHandler struct {
	svc  service.DebtService
	acl  service.ACLService
	auth service.AuthService
}

func NewDebtsHandler(svc service.DebtService, acl service.ACLService, auth service.AuthService) *DebtsHandler {
	return &DebtsHandler{svc: svc, acl: acl, auth: auth}
}

// Index godoc
// @Summary Журнал операций клуба с итогами по сотрудникам
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param user_id query int false "Фильтр по сотруднику"
// @Success 200 {object} dto.DebtIndexResponse
// @Router /v1/debts [get]
func (h *DebtsHandler) Index(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	resp, err := h.svc.Index(c.Request.Context(), user, clubID, uintQuery(c, "user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Lookup godoc
// @Summary Поиск товара по штрихкоду
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param barcode path string true "Штрихкод"
// @Success 200 {object} dto.LookupResponse
// @Router /v1/debts/lookup/{barcode} [get]
func (h *DebtsHandler) Lookup(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	resp, err := h.svc.Lookup(c.Request.Context(), user, clubID, c.Param("barcode"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search godoc
// @Summary Поиск товаров клуба по названию или штрихкоду
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param q query string true "Строка поиска"
// @Success 200 {array} dto.SearchItem
// @Router /v1/debts/search [get]
func (h *DebtsHandler) Search(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), user, clubID, c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Charge godoc
// @Summary Запись товара на сотрудника
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param body body dto.ChargeRequest true "Операция"
// @Success 201 {object} dto.DebtOpResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/debts [post]
func (h *DebtsHandler) Charge(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	var req dto.ChargeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Charge(c.Request.Context(), user, clubID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Defect godoc
// @Summary Списание брака
// @Tags debts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param body body dto.ChargeRequest true "Операция (reason обязателен)"
// @Success 201 {object} dto.DebtOpResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/debts/defect [post]
func (h *DebtsHandler) Defect(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	var req dto.ChargeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Defect(c.Request.Context(), user, clubID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Delete godoc
// @Summary Удаление одной операции
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID операции"
// @Success 204
// @Router /v1/debts/{id} [delete]
func (h *DebtsHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteOp(c.Request.Context(), user, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResetAll godoc
// @Summary Обнуление долгов всего клуба
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Success 200 {object} map[string]int64
// @Router /v1/debts/reset [post]
func (h *DebtsHandler) ResetAll(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	deleted, err := h.svc.Reset(c.Request.Context(), user, clubID, 0)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Reset godoc
// @Summary Обнуление долга сотрудника
// @Tags debts
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param user_id path int true "ID сотрудника"
// @Success 200 {object} map[string]int64
// @Router /v1/debts/reset/{user_id} [post]
func (h *DebtsHandler) Reset(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	targetID, ok := uintParam(c, "user_id")
	if !ok {
		return
	}
	deleted, err := h.svc.Reset(c.Request.Context(), user, clubID, targetID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
