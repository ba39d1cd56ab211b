package models

type MessageModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;index"`
	Message     string `gorm:"type:text;not null"`
	MessageType string `gorm:"size:20;not null"`
	SenderID    uint   `gorm:"not null;index"`
	SenderEmail string `gorm:"size:255;not null"`
	SenderName  string `gorm:"size:100;not null"`
	SenderRole  string `gorm:"size:20;not null"`
	IsInternal  bool   `gorm:"not null;default:false"`
	IsRead      bool   `gorm:"not null;default:false;index"`
	ReadAt      *int64
	ReadBy      *uint
	CreatedAt   int64 `gorm:"autoCreateTime:milli;not null;index"`
}

func (MessageModel) TableName() string {
	return "ticket_messages"
}
