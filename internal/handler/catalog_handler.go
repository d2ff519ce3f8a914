package handler

import (
	"net/url"

	"github.com/jinkisoma/web-manager/internal/apperr"
	"github.com/jinkisoma/web-manager/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.RecordService
}

func NewCatalogHandler(s service.RecordService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// Clients lists catalog clients merged with every client already on record.
func (h *CatalogHandler) Clients(c *fiber.Ctx) error {
	clients, err := h.service.Clients()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clients)
}

// WorkItems returns the work-type table for one client; unknown clients get
// an empty object, matching the lookup-table nature of the catalog.
func (h *CatalogHandler) WorkItems(c *fiber.Ctx) error {
	client, err := url.PathUnescape(c.Params("client"))
	if err != nil {
		return respondError(c, apperr.New(apperr.KindValidation, "invalid client name"))
	}
	return c.JSON(h.service.WorkItems(client))
}
