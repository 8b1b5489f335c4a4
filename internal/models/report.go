package models

import "time"

const (
	ContentNews          = "news"
	ContentSharedArticle = "shared_article"
	ContentComment       = "comment"
)

// ValidContentType reports whether t names a reportable content kind.
func ValidContentType(t string) bool {
	switch t {
	case ContentNews, ContentSharedArticle, ContentComment:
		return true
	}
	return false
}

type Report struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReporterID  uint      `json:"reporterId" gorm:"index"`
	ContentType string    `json:"contentType" gorm:"size:20;index"`
	ContentID   int64     `json:"contentId"`
	Reason      string    `json:"reason" gorm:"not null"`
	IsResolved  bool      `json:"isResolved" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
}

func (r *Report) OwnerID() uint { return r.ReporterID }

// ReportView adds a short preview of the reported content.
type ReportView struct {
	Report
	ReporterName string `json:"reporterName"`
	Preview      string `json:"preview,omitempty"`
}

type CreateReportRequest struct {
	ContentType string `json:"contentType" validate:"required"`
	ContentID   int64  `json:"contentId"`
	Reason      string `json:"reason" validate:"required,max=1000"`
}

type ResolveReportRequest struct {
	IsResolved *bool `json:"isResolved" validate:"required"`
}
