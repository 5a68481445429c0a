package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusOnTransit ShipmentStatus = "on_transit"
	ShipmentStatusArrived   ShipmentStatus = "arrived"
	ShipmentStatusCompleted ShipmentStatus = "completed"
)

// Validはステータスが4値のどれかを確認する
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusOnTransit, ShipmentStatusArrived, ShipmentStatusCompleted:
		return true
	default:
		return false
	}
}

// 荷物。tracking_codeは作成後は変更しない。
// 送り主を削除すると荷物もカスケード削除される。
type Shipment struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingCode     string          `gorm:"type:varchar(8);not null;uniqueIndex" json:"tracking_code"`
	SenderID         int64           `gorm:"not null;index" json:"sender_id"`
	Sender           *User           `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	RecipientName    string          `gorm:"type:varchar(255);not null" json:"recipient_name"`
	RecipientAddress string          `gorm:"type:text;not null" json:"recipient_address"`
	Status           ShipmentStatus  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CurrentTerminal  *string         `gorm:"type:varchar(255)" json:"current_terminal"`
	ArrivalDate      *time.Time      `json:"arrival_date"`
	Weight           decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"weight"`
	Price            decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	CreatedAt        time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;autoUpdateTime;index" json:"updated_at"`
}
