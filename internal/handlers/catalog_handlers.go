package handlers

import (
	"net/http"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/models"
	"plastwarehouse/internal/services"

	"github.com/labstack/echo/v4"
)

// CatalogHandlers serves the material catalog and registered bot users
type CatalogHandlers struct {
	catalogService services.CatalogService
	userService    services.UserService
}

func NewCatalogHandlers(catalogService services.CatalogService, userService services.UserService) *CatalogHandlers {
	return &CatalogHandlers{
		catalogService: catalogService,
		userService:    userService,
	}
}

// ListMaterials returns material types with their thicknesses and colors
// @Summary List plastic materials
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string][]models.MaterialType
// @Failure 503 {object} common.ErrorResponse
// @Router /api/materials [get]
func (h *CatalogHandlers) ListMaterials(c echo.Context) error {
	materials, err := h.catalogService.ListMaterials(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]*models.MaterialType{"data": materials})
}

// ListUsers returns registered bot users, newest first
// @Summary List bot users
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string][]models.BotUser
// @Router /api/users [get]
func (h *CatalogHandlers) ListUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]*models.BotUser{"users": users})
}
