package service

import (
	"io"
	"sort"
	"time"

	"github.com/jinkisoma/web-manager/internal/apperr"
	"github.com/jinkisoma/web-manager/internal/catalog"
	"github.com/jinkisoma/web-manager/internal/export"
	"github.com/jinkisoma/web-manager/internal/model"
	"github.com/jinkisoma/web-manager/internal/policy"
	"github.com/jinkisoma/web-manager/internal/repository"
	"github.com/jinkisoma/web-manager/internal/storage"
	"github.com/jinkisoma/web-manager/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Upload is a pending attachment: the original filename plus its content.
type Upload struct {
	Name string
	Data io.Reader
}

// AttachmentChange describes what an update does to the record's attachment.
// A replacement upload wins over the delete flag.
type AttachmentChange struct {
	Delete bool
	Upload *Upload
}

// ListResult is the listing view plus the summary counts shown above it.
type ListResult struct {
	Records     []model.Record `json:"records"`
	Total       int            `json:"total"`
	Confirmed   int            `json:"confirmed"`
	Unconfirmed int            `json:"unconfirmed"`
}

type RecordService interface {
	Create(rec *model.Record, upload *Upload) (*model.Record, error)
	Get(id uuid.UUID) (*model.Record, error)
	List(f repository.Filter) (*ListResult, error)
	Update(id uuid.UUID, fields *model.Record, actor policy.Actor, change AttachmentChange) (*model.Record, error)
	Delete(id uuid.UUID, actor policy.Actor) error
	Confirm(id uuid.UUID, actor policy.Actor) error
	Unconfirm(id uuid.UUID, actor policy.Actor, passphrase string) error
	ConfirmAll(ids []uuid.UUID, author string) (int64, error)
	Export(f repository.Filter, now time.Time) ([]byte, string, error)
	Clients() ([]string, error)
	WorkItems(client string) map[string]catalog.WorkItem
}

type recordService struct {
	repo        repository.RecordRepository
	catalog     *catalog.Catalog
	policy      *policy.Policy
	attachments *storage.AttachmentStore
	exporter    *export.ExcelExporter
	log         *zap.Logger
}

func NewRecordService(
	repo repository.RecordRepository,
	cat *catalog.Catalog,
	pol *policy.Policy,
	attachments *storage.AttachmentStore,
	exporter *export.ExcelExporter,
	log *zap.Logger,
) RecordService {
	return &recordService{
		repo:        repo,
		catalog:     cat,
		policy:      pol,
		attachments: attachments,
		exporter:    exporter,
		log:         log,
	}
}

func validateRecord(rec *model.Record) error {
	if errs := validator.ValidateStruct(rec); len(errs) > 0 {
		first := errs[0]
		return apperr.Newf(apperr.KindValidation, "field '%s' failed on rule '%s'", first.FailedField, first.Tag)
	}
	if rec.UnitPrice.IsNegative() {
		return apperr.New(apperr.KindValidation, "unit price must not be negative")
	}
	return nil
}

// applyCatalogDefaults fills content and unit price from the catalog when the
// chosen work type is a catalog entry for the client and the caller left them
// empty. A zero unit price counts as "not supplied" here, matching the form
// behavior the catalog backs.
func (s *recordService) applyCatalogDefaults(rec *model.Record) {
	item, ok := s.catalog.Lookup(rec.Client, rec.WorkType)
	if !ok {
		return
	}
	if rec.Content == "" {
		rec.Content = item.Content
	}
	if rec.UnitPrice.IsZero() {
		rec.UnitPrice = item.Price
	}
}

func (s *recordService) Create(rec *model.Record, upload *Upload) (*model.Record, error) {
	rec.ID = uuid.Nil
	rec.Confirmed = false
	rec.Attachment = nil
	s.applyCatalogDefaults(rec)
	if err := validateRecord(rec); err != nil {
		return nil, err
	}
	rec.RecalculateTotal()

	if upload != nil {
		if err := s.attachments.Store(upload.Name, upload.Data); err != nil {
			return nil, err
		}
		name := upload.Name
		rec.Attachment = &name
	}

	if err := s.repo.Create(rec); err != nil {
		// the record never landed, so don't leave its file behind
		if rec.HasAttachment() {
			s.attachments.Remove(*rec.Attachment)
		}
		return nil, err
	}

	s.log.Info("record created",
		zap.String("id", rec.ID.String()),
		zap.String("author", rec.Author),
		zap.String("client", rec.Client),
	)
	return rec, nil
}

func (s *recordService) Get(id uuid.UUID) (*model.Record, error) {
	return s.repo.FindByID(id)
}

func (s *recordService) List(f repository.Filter) (*ListResult, error) {
	records, err := s.repo.FindAll(f, repository.OrderListing)
	if err != nil {
		return nil, err
	}
	res := &ListResult{Records: records, Total: len(records)}
	for i := range records {
		if records[i].Confirmed {
			res.Confirmed++
		}
	}
	res.Unconfirmed = res.Total - res.Confirmed
	return res, nil
}

func (s *recordService) Update(id uuid.UUID, fields *model.Record, actor policy.Actor, change AttachmentChange) (*model.Record, error) {
	var updated *model.Record
	err := s.repo.WithTx(func(tx repository.RecordRepository) error {
		rec, err := tx.FindByID(id)
		if err != nil {
			return err
		}
		if err := s.policy.AuthorizeUpdate(rec, actor); err != nil {
			return err
		}

		rec.WorkDate = fields.WorkDate
		rec.Client = fields.Client
		rec.Author = fields.Author
		rec.ProductCode = fields.ProductCode
		rec.TrackingNumber = fields.TrackingNumber
		rec.WorkType = fields.WorkType
		rec.Content = fields.Content
		rec.ProductName = fields.ProductName
		rec.Remarks = fields.Remarks
		rec.Quantity = fields.Quantity
		rec.BoxQuantity = fields.BoxQuantity
		rec.UnitPrice = fields.UnitPrice
		rec.RecalculateTotal()
		if err := validateRecord(rec); err != nil {
			return err
		}

		// Replacement sequencing: save the new file first, delete the old
		// one only after that succeeded, then move the reference.
		oldName := ""
		if rec.HasAttachment() {
			oldName = *rec.Attachment
		}
		switch {
		case change.Upload != nil:
			if err := s.attachments.Store(change.Upload.Name, change.Upload.Data); err != nil {
				return err
			}
			if oldName != "" && oldName != change.Upload.Name {
				if err := s.attachments.Remove(oldName); err != nil {
					return err
				}
			}
			name := change.Upload.Name
			rec.Attachment = &name
		case change.Delete && oldName != "":
			if err := s.attachments.Remove(oldName); err != nil {
				return err
			}
			rec.Attachment = nil
		}

		if err := tx.Update(rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("record updated", zap.String("id", id.String()), zap.String("by", actor.Author))
	return updated, nil
}

func (s *recordService) Delete(id uuid.UUID, actor policy.Actor) error {
	err := s.repo.WithTx(func(tx repository.RecordRepository) error {
		rec, err := tx.FindByID(id)
		if err != nil {
			return err
		}
		if err := s.policy.AuthorizeDelete(rec, actor); err != nil {
			return err
		}
		if err := tx.Delete(id); err != nil {
			return err
		}
		if rec.HasAttachment() {
			return s.attachments.Remove(*rec.Attachment)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("record deleted", zap.String("id", id.String()), zap.String("by", actor.Author))
	return nil
}

func (s *recordService) Confirm(id uuid.UUID, actor policy.Actor) error {
	return s.repo.WithTx(func(tx repository.RecordRepository) error {
		rec, err := tx.FindByID(id)
		if err != nil {
			return err
		}
		if err := s.policy.AuthorizeConfirm(rec, actor); err != nil {
			return err
		}
		return tx.SetConfirmed(id, true)
	})
}

func (s *recordService) Unconfirm(id uuid.UUID, actor policy.Actor, passphrase string) error {
	// wrong passphrase fails before the record is even looked at
	if err := s.policy.VerifyCancelPassphrase(passphrase); err != nil {
		return err
	}
	return s.repo.WithTx(func(tx repository.RecordRepository) error {
		rec, err := tx.FindByID(id)
		if err != nil {
			return err
		}
		if err := s.policy.AuthorizeUnconfirm(rec, actor, passphrase); err != nil {
			return err
		}
		return tx.SetConfirmed(id, false)
	})
}

func (s *recordService) ConfirmAll(ids []uuid.UUID, author string) (int64, error) {
	if author == "" {
		return 0, apperr.New(apperr.KindValidation, "author is required for bulk confirmation")
	}
	if len(ids) == 0 {
		return 0, apperr.New(apperr.KindValidation, "no records selected")
	}
	count, err := s.repo.ConfirmOwnedUnconfirmed(ids, author)
	if err != nil {
		return 0, err
	}
	s.log.Info("records bulk-confirmed", zap.String("author", author), zap.Int64("count", count))
	return count, nil
}

func (s *recordService) Export(f repository.Filter, now time.Time) ([]byte, string, error) {
	records, err := s.repo.FindAll(f, repository.OrderExport)
	if err != nil {
		return nil, "", err
	}
	data, err := s.exporter.Render(records)
	if err != nil {
		return nil, "", err
	}
	return data, export.Filename(now), nil
}

// Clients merges the catalog clients with every client already present in
// the store, deduplicated and sorted.
func (s *recordService) Clients() ([]string, error) {
	stored, err := s.repo.DistinctClients()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	merged := make([]string, 0, len(stored))
	for _, name := range append(s.catalog.Clients(), stored...) {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		merged = append(merged, name)
	}
	sort.Strings(merged)
	return merged, nil
}

func (s *recordService) WorkItems(client string) map[string]catalog.WorkItem {
	return s.catalog.WorkTypesFor(client)
}
