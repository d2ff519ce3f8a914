package handler

import (
	"fmt"
	"net/url"

	"github.com/jinkisoma/web-manager/internal/apperr"
	"github.com/jinkisoma/web-manager/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type AttachmentHandler struct {
	store *storage.AttachmentStore
}

func NewAttachmentHandler(store *storage.AttachmentStore) *AttachmentHandler {
	return &AttachmentHandler{store: store}
}

// Download streams a stored attachment back under its original filename.
func (h *AttachmentHandler) Download(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return respondError(c, apperr.New(apperr.KindValidation, "invalid attachment filename"))
	}
	path, err := h.store.Path(name)
	if err != nil {
		return respondError(c, err)
	}
	if !h.store.Exists(name) {
		return respondError(c, apperr.New(apperr.KindNotFound, "attachment not found"))
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	return c.SendFile(path)
}
