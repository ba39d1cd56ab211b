package ticket

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

// Attachment is a file stored externally and referenced by URL. It is
// immutable after creation; the message reference may be filled in later
// when the file was uploaded before its message existed.
type Attachment struct {
	id         uint
	ticketID   uint
	messageID  *uint
	fileName   string
	filePath   string
	fileURL    string
	fileSize   int64
	fileType   string
	uploadedBy uint
	uploadedAt time.Time
}

func NewAttachment(
	ticketID uint,
	messageID *uint,
	fileName string,
	filePath string,
	fileURL string,
	fileSize int64,
	fileType string,
	uploadedBy uint,
) (*Attachment, error) {
	if len(fileName) == 0 {
		return nil, fmt.Errorf("file name is required")
	}
	if len(filePath) == 0 {
		return nil, fmt.Errorf("file path is required")
	}
	if len(fileURL) == 0 {
		return nil, fmt.Errorf("file URL is required")
	}
	if fileSize <= 0 {
		return nil, fmt.Errorf("file size must be positive")
	}
	if uploadedBy == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}

	return &Attachment{
		ticketID:   ticketID,
		messageID:  messageID,
		fileName:   fileName,
		filePath:   filePath,
		fileURL:    fileURL,
		fileSize:   fileSize,
		fileType:   fileType,
		uploadedBy: uploadedBy,
		uploadedAt: biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	ticketID uint,
	messageID *uint,
	fileName string,
	filePath string,
	fileURL string,
	fileSize int64,
	fileType string,
	uploadedBy uint,
	uploadedAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}

	return &Attachment{
		id:         id,
		ticketID:   ticketID,
		messageID:  messageID,
		fileName:   fileName,
		filePath:   filePath,
		fileURL:    fileURL,
		fileSize:   fileSize,
		fileType:   fileType,
		uploadedBy: uploadedBy,
		uploadedAt: uploadedAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) MessageID() *uint {
	return a.messageID
}

func (a *Attachment) FileName() string {
	return a.fileName
}

func (a *Attachment) FilePath() string {
	return a.filePath
}

func (a *Attachment) FileURL() string {
	return a.fileURL
}

func (a *Attachment) FileSize() int64 {
	return a.fileSize
}

func (a *Attachment) FileType() string {
	return a.fileType
}

func (a *Attachment) UploadedBy() uint {
	return a.uploadedBy
}

func (a *Attachment) UploadedAt() time.Time {
	return a.uploadedAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
