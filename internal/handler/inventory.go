package handler

import (
	"io"
	"net/http"

	"github.com/Dignition/colizeum-api/internal/apierror"
	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/service"

	"github.com/gin-gonic/gin"
)

// maxImportSize caps uploaded stock sheets at 10 MB.
const maxImportSize = 10 << 20

type InventoryHandler struct {
	svc  service.InventoryService
	acl  service.ACLService
	auth service.AuthService
}

func NewInventoryHandler(svc service.InventoryService, acl service.ACLService, auth service.AuthService) *InventoryHandler {
	return &InventoryHandler{svc: svc, acl: acl, auth: auth}
}

// View godoc
// @Summary Текущая инвентаризация клуба
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Success 200 {object} dto.InventoryViewResponse
// @Router /v1/inventory [get]
func (h *InventoryHandler) View(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	resp, err := h.svc.View(c.Request.Context(), user, clubID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Import godoc
// @Summary Загрузка остатков из выгрузки (xlsx или csv)
// @Tags inventory
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param file formData file true "Файл выгрузки"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/inventory/import [post]
func (h *InventoryHandler) Import(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("файл не передан"))
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, apierror.New("файл слишком большой"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("файл не читается"))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("файл не читается"))
		return
	}

	resp, err := h.svc.Import(c.Request.Context(), user, clubID, fileHeader.Filename, data)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveCounts godoc
// @Summary Сохранение подсчитанных остатков
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Param body body dto.SaveCountsRequest true "Подсчёт"
// @Success 200 {object} dto.SaveCountsResponse
// @Router /v1/inventory/counts [post]
func (h *InventoryHandler) SaveCounts(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	var req dto.SaveCountsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveCounts(c.Request.Context(), user, clubID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reset godoc
// @Summary Сброс подсчёта текущей инвентаризации
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Success 204
// @Router /v1/inventory/reset [post]
func (h *InventoryHandler) Reset(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	if err := h.svc.ResetSession(c.Request.Context(), user, clubID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Close godoc
// @Summary Закрытие инвентаризации со снимком остатков
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param club_id query int false "Клуб (по умолчанию активный)"
// @Success 204
// @Router /v1/inventory/close [post]
func (h *InventoryHandler) Close(c *gin.Context) {
	user, ok := currentUser(c, h.auth)
	if !ok {
		return
	}
	clubID, ok := requestClub(c, h.acl, user)
	if !ok {
		return
	}
	if err := h.svc.CloseSession(c.Request.Context(), user, clubID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
