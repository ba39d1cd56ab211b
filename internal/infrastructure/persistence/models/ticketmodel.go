package models

type TicketModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketNumber string `gorm:"uniqueIndex;size:50;not null"`
	Subject      string `gorm:"size:255;not null"`
	Category     string `gorm:"size:100;index"`
	Priority     string `gorm:"size:20;not null;index"`
	Status       string `gorm:"size:20;not null;index"`
	UserID       uint   `gorm:"not null;index"`
	UserEmail    string `gorm:"size:255;not null"`
	UserName     string `gorm:"size:100;not null"`
	UserRole     string `gorm:"size:20;not null"`
	AssignedTo   *uint  `gorm:"index"`
	AssignedAt   *int64
	ResolvedAt   *int64
	ClosedAt     *int64
	MessageCount int   `gorm:"not null;default:0"`
	CreatedAt    int64 `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt    int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
