package models

type AttachmentModel struct {
	ID         uint   `gorm:"primaryKey"`
	TicketID   uint   `gorm:"index"`
	MessageID  *uint  `gorm:"index"`
	FileName   string `gorm:"size:255;not null"`
	FilePath   string `gorm:"size:512;not null"`
	FileURL    string `gorm:"size:1024;not null"`
	FileSize   int64  `gorm:"not null"`
	FileType   string `gorm:"size:100"`
	UploadedBy uint   `gorm:"not null;index"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}
