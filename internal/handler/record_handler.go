package handler

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jinkisoma/web-manager/internal/apperr"
	"github.com/jinkisoma/web-manager/internal/model"
	"github.com/jinkisoma/web-manager/internal/policy"
	"github.com/jinkisoma/web-manager/internal/repository"
	"github.com/jinkisoma/web-manager/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecordHandler struct {
	service service.RecordService
}

func NewRecordHandler(s service.RecordService) *RecordHandler {
	return &RecordHandler{service: s}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.KindValidation, "invalid record id")
	}
	return id, nil
}

func actorFrom(c *fiber.Ctx) policy.Actor {
	actor := policy.Actor{
		Author:   c.FormValue("current_author"),
		Override: c.FormValue("override_password"),
	}
	// state-changing requests without a body carry identity in the query
	if actor.Author == "" {
		actor.Author = c.Query("current_author")
	}
	if actor.Override == "" {
		actor.Override = c.Query("override_password")
	}
	return actor
}

func filterFrom(c *fiber.Ctx) repository.Filter {
	return repository.Filter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Author:    c.Query("author_filter"),
		Keyword:   c.Query("keyword"),
	}
}

// parseRecordForm reads the record fields out of a (multipart) form. The
// client/work-type/author "typed or picked" distinction is resolved by the
// frontend; by the time a request lands here they are plain strings.
func parseRecordForm(c *fiber.Ctx) (*model.Record, error) {
	rec := &model.Record{
		WorkDate:       c.FormValue("work_date"),
		Client:         c.FormValue("client"),
		Author:         c.FormValue("author"),
		ProductCode:    c.FormValue("product_code"),
		TrackingNumber: c.FormValue("tracking_number"),
		WorkType:       c.FormValue("work_type"),
		Content:        c.FormValue("content"),
		ProductName:    c.FormValue("product_name"),
		Remarks:        c.FormValue("remarks"),
	}

	var err error
	if rec.Quantity, err = intField(c.FormValue("quantity"), "quantity"); err != nil {
		return nil, err
	}
	if raw := c.FormValue("box_quantity"); raw != "" {
		n, err := intField(raw, "box_quantity")
		if err != nil {
			return nil, err
		}
		rec.BoxQuantity = &n
	}
	if raw := c.FormValue("unit_price"); raw != "" {
		rec.UnitPrice, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "unit_price is not a valid number")
		}
	}
	return rec, nil
}

func intField(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Newf(apperr.KindValidation, "%s is not a valid number", name)
	}
	return n, nil
}

func uploadFrom(c *fiber.Ctx) (*service.Upload, func(), error) {
	fh, err := c.FormFile("attachment")
	if err != nil || fh == nil || fh.Filename == "" {
		return nil, func() {}, nil
	}
	file, err := fh.Open()
	if err != nil {
		return nil, func() {}, apperr.Wrap(apperr.KindStorage, err, "failed to read uploaded file")
	}
	return &service.Upload{Name: filepath.Base(fh.Filename), Data: file}, func() { file.Close() }, nil
}

func (h *RecordHandler) List(c *fiber.Ctx) error {
	f := filterFrom(c).ApplyDefaults(time.Now())
	result, err := h.service.List(f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	rec, err := h.service.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

func (h *RecordHandler) Create(c *fiber.Ctx) error {
	rec, err := parseRecordForm(c)
	if err != nil {
		return respondError(c, err)
	}
	upload, closeUpload, err := uploadFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	defer closeUpload()

	created, err := h.service.Create(rec, upload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Record created", "data": created})
}

func (h *RecordHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	rec, err := parseRecordForm(c)
	if err != nil {
		return respondError(c, err)
	}
	upload, closeUpload, err := uploadFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	defer closeUpload()

	change := service.AttachmentChange{
		Delete: c.FormValue("delete_attachment") != "",
		Upload: upload,
	}
	updated, err := h.service.Update(id, rec, actorFrom(c), change)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Record updated", "data": updated})
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Delete(id, actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Record deleted"})
}

func (h *RecordHandler) Confirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.service.Confirm(id, actorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Record confirmed"})
}

func (h *RecordHandler) Unconfirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	passphrase := c.FormValue("password")
	if err := h.service.Unconfirm(id, actorFrom(c), passphrase); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Confirmation cancelled"})
}

type confirmAllRequest struct {
	IDs           []string `json:"ids" form:"ids"`
	CurrentAuthor string   `json:"current_author" form:"current_author"`
}

func (h *RecordHandler) ConfirmAll(c *fiber.Ctx) error {
	var req confirmAllRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.New(apperr.KindValidation, "invalid request body"))
	}
	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respondError(c, apperr.Newf(apperr.KindValidation, "invalid record id '%s'", raw))
		}
		ids = append(ids, id)
	}
	count, err := h.service.ConfirmAll(ids, req.CurrentAuthor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("%d records confirmed", count), "count": count})
}

func (h *RecordHandler) Export(c *fiber.Ctx) error {
	f := filterFrom(c).ApplyDefaults(time.Now())
	data, filename, err := h.service.Export(f, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	return c.Send(data)
}
