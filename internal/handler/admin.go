package handler

import (
	"net/http"

	"github.com/Dignition/colizeum-api/internal/dto"
	"github.com/Dignition/colizeum-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the superadmin panel: clubs, accounts, memberships
// and the shared product catalog. Route-level role gates keep everyone
// else out.
type AdminHandler struct{ svc service.AdminService }

func NewAdminHandler(svc service.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

// ── Clubs ─────────────────────────────────────────────────────────────────────

// ListClubs godoc
// @Summary Все клубы
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ClubResponse
// @Router /v1/admin/clubs [get]
func (h *AdminHandler) ListClubs(c *gin.Context) {
	resp, err := h.svc.ListClubs(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateClub godoc
// @Summary Создание клуба
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClubPayload true "Клуб"
// @Success 201 {object} dto.ClubResponse
// @Router /v1/admin/clubs [post]
func (h *AdminHandler) CreateClub(c *gin.Context) {
	var req dto.ClubPayload
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateClub(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateClub godoc
// @Summary Изменение клуба
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клуба"
// @Param body body dto.ClubPayload true "Клуб"
// @Success 200 {object} dto.ClubResponse
// @Router /v1/admin/clubs/{id} [put]
func (h *AdminHandler) UpdateClub(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.ClubPayload
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateClub(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteClub godoc
// @Summary Удаление клуба (только без отчётов)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клуба"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/admin/clubs/{id} [delete]
func (h *AdminHandler) DeleteClub(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteClub(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Users ─────────────────────────────────────────────────────────────────────

// ListUsers godoc
// @Summary Все пользователи с членствами
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AdminUserResponse
// @Router /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	resp, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser godoc
// @Summary Создание пользователя с первым членством
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateUserRequest true "Пользователь"
// @Success 201 {object} dto.AdminUserResponse
// @Router /v1/admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateSuperadmin godoc
// @Summary Создание суперадмина
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateSuperadminRequest true "Суперадмин"
// @Success 201 {object} dto.AdminUserResponse
// @Router /v1/admin/superadmins [post]
func (h *AdminHandler) CreateSuperadmin(c *gin.Context) {
	var req dto.CreateSuperadminRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSuperadmin(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateUser godoc
// @Summary Изменение пользователя
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Param body body dto.UpdateUserRequest true "Изменения"
// @Success 200 {object} dto.AdminUserResponse
// @Router /v1/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary Удаление пользователя (только без отчётов)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID пользователя"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Memberships ───────────────────────────────────────────────────────────────

// ClubMembers godoc
// @Summary Состав клуба
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клуба"
// @Success 200 {array} dto.MembershipResponse
// @Router /v1/admin/clubs/{id}/members [get]
func (h *AdminHandler) ClubMembers(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ClubMembers(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GrantMembership godoc
// @Summary Привязка пользователя к клубу
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GrantMembershipRequest true "Членство"
// @Success 201 {object} dto.MembershipResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/admin/memberships [post]
func (h *AdminHandler) GrantMembership(c *gin.Context) {
	var req dto.GrantMembershipRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.GrantMembership(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RevokeMembership godoc
// @Summary Отвязка пользователя от клуба
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID членства"
// @Success 204
// @Router /v1/admin/memberships/{id} [delete]
func (h *AdminHandler) RevokeMembership(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RevokeMembership(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Catalog ───────────────────────────────────────────────────────────────────

// ListProducts godoc
// @Summary Общий каталог товаров
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProductResponse
// @Router /v1/admin/products [get]
func (h *AdminHandler) ListProducts(c *gin.Context) {
	resp, err := h.svc.ListProducts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateProduct godoc
// @Summary Создание товара
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ProductPayload true "Товар"
// @Success 201 {object} dto.ProductResponse
// @Router /v1/admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductPayload
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateProduct godoc
// @Summary Изменение товара
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Param body body dto.ProductPayload true "Товар"
// @Success 200 {object} dto.ProductResponse
// @Router /v1/admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.ProductPayload
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetClubBarcode godoc
// @Summary Привязка клубного штрихкода к товару
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID товара"
// @Param body body dto.ClubBarcodePayload true "Штрихкод"
// @Success 204
// @Router /v1/admin/products/{id}/barcodes [post]
func (h *AdminHandler) SetClubBarcode(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req dto.ClubBarcodePayload
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetClubBarcode(c.Request.Context(), id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteClubBarcode godoc
// @Summary Удаление клубного штрихкода
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID штрихкода"
// @Success 204
// @Router /v1/admin/barcodes/{id} [delete]
func (h *AdminHandler) DeleteClubBarcode(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteClubBarcode(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
