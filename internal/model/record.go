package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Record is one unit of billable piecework awaiting settlement.
// Author doubles as the ownership credential: there is no account system,
// whoever typed the name owns the row.
type Record struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	WorkDate string `gorm:"type:varchar(10);not null;index" json:"work_date" validate:"required,datetime=2006-01-02"`
	Client   string `gorm:"type:varchar(255);not null" json:"client" validate:"required"`
	Author   string `gorm:"type:varchar(100);not null;index" json:"author" validate:"required"`

	ProductCode    string `gorm:"type:varchar(100)" json:"product_code"`
	TrackingNumber string `gorm:"type:varchar(100)" json:"tracking_number"`
	WorkType       string `gorm:"type:varchar(100)" json:"work_type"`
	Content        string `json:"content"`
	ProductName    string `gorm:"type:varchar(255)" json:"product_name"`
	Remarks        string `json:"remarks"`

	Quantity    int             `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	BoxQuantity *int            `json:"box_quantity,omitempty" validate:"omitempty,gte=0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_price"`
	// TotalAmount is always Quantity * UnitPrice at last write; never client-supplied.
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_amount"`

	// At most one stored file per record, keyed by original filename.
	Attachment *string `gorm:"type:varchar(255)" json:"attachment,omitempty"`

	Confirmed bool      `gorm:"not null;default:false;index" json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

// Hook to generate the UUID before insert
func (r *Record) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// RecalculateTotal rederives TotalAmount from the record's own fields.
func (r *Record) RecalculateTotal() {
	r.TotalAmount = r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// HasAttachment reports whether the record references a stored file.
func (r *Record) HasAttachment() bool {
	return r.Attachment != nil && *r.Attachment != ""
}
