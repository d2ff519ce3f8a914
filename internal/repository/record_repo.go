package repository

import (
	"errors"

	"github.com/jinkisoma/web-manager/internal/apperr"
	"github.com/jinkisoma/web-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordRepository interface {
	Create(rec *model.Record) error
	FindByID(id uuid.UUID) (*model.Record, error)
	FindAll(f Filter, order Order) ([]model.Record, error)
	Update(rec *model.Record) error
	Delete(id uuid.UUID) error
	SetConfirmed(id uuid.UUID, confirmed bool) error
	// ConfirmOwnedUnconfirmed confirms the subset of ids owned by author and
	// still unconfirmed, in one conditional update. Returns the affected count.
	ConfirmOwnedUnconfirmed(ids []uuid.UUID, author string) (int64, error)
	DistinctClients() ([]string, error)
	// WithTx runs fn against a repository bound to one database transaction,
	// so check-then-act sequences are not racing concurrent mutations.
	WithTx(fn func(RecordRepository) error) error
}

type recordRepo struct {
	db *gorm.DB
}

func NewRecordRepo(db *gorm.DB) RecordRepository {
	return &recordRepo{db}
}

func (r *recordRepo) Create(rec *model.Record) error {
	if err := r.db.Create(rec).Error; err != nil {
		return apperr.Wrap(apperr.KindStorage, err, "failed to save record")
	}
	return nil
}

func (r *recordRepo) FindByID(id uuid.UUID) (*model.Record, error) {
	var rec model.Record
	err := r.db.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "record not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to load record")
	}
	return &rec, nil
}

func (r *recordRepo) FindAll(f Filter, order Order) ([]model.Record, error) {
	var records []model.Record
	err := f.scope(r.db.Model(&model.Record{})).Order(order.clause()).Find(&records).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to list records")
	}
	return records, nil
}

func (r *recordRepo) Update(rec *model.Record) error {
	if err := r.db.Save(rec).Error; err != nil {
		return apperr.Wrap(apperr.KindStorage, err, "failed to update record")
	}
	return nil
}

func (r *recordRepo) Delete(id uuid.UUID) error {
	res := r.db.Delete(&model.Record{}, "id = ?", id)
	if res.Error != nil {
		return apperr.Wrap(apperr.KindStorage, res.Error, "failed to delete record")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "record not found")
	}
	return nil
}

func (r *recordRepo) SetConfirmed(id uuid.UUID, confirmed bool) error {
	res := r.db.Model(&model.Record{}).Where("id = ?", id).Update("confirmed", confirmed)
	if res.Error != nil {
		return apperr.Wrap(apperr.KindStorage, res.Error, "failed to change confirmation")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "record not found")
	}
	return nil
}

func (r *recordRepo) ConfirmOwnedUnconfirmed(ids []uuid.UUID, author string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&model.Record{}).
		Where("id IN ? AND author = ? AND confirmed = ?", ids, author, false).
		Update("confirmed", true)
	if res.Error != nil {
		return 0, apperr.Wrap(apperr.KindStorage, res.Error, "failed to bulk-confirm records")
	}
	return res.RowsAffected, nil
}

func (r *recordRepo) DistinctClients() ([]string, error) {
	var clients []string
	err := r.db.Model(&model.Record{}).Distinct("client").Order("client ASC").Pluck("client", &clients).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorage, err, "failed to list clients")
	}
	return clients, nil
}

func (r *recordRepo) WithTx(fn func(RecordRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&recordRepo{tx})
	})
}
