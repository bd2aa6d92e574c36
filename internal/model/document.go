package model

import (
	"time"
)

type DocumentStatus string

const (
	DocumentStatusProcessing DocumentStatus = "PROCESSING"
	DocumentStatusReady      DocumentStatus = "READY"
	DocumentStatusError      DocumentStatus = "ERROR"
)

// DocumentMetadata is the durable record for one uploaded file. The extracted
// content lives in vector records; this row only tracks the file and its
// processing lifecycle. Status moves PROCESSING -> READY or PROCESSING -> ERROR
// and never back.
type DocumentMetadata struct {
	BaseModel
	Filename     string         `gorm:"size:500;not null" json:"filename"`
	ContentType  string         `gorm:"size:100" json:"content_type"`
	Size         int64          `gorm:"not null" json:"size"`
	UploadDate   time.Time      `gorm:"not null" json:"upload_date"`
	Status       DocumentStatus `gorm:"size:50;not null;index" json:"status"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
}

func (DocumentMetadata) TableName() string {
	return "rag_documents"
}
