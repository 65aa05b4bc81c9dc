package models

import "time"

type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "pending"
	PhotoStatusApproved PhotoStatus = "approved"
	PhotoStatusRejected PhotoStatus = "rejected"
)

func (s PhotoStatus) Valid() bool {
	switch s {
	case PhotoStatusPending, PhotoStatusApproved, PhotoStatusRejected:
		return true
	}
	return false
}

// Photo is a gallery upload. ObjectKey points into object storage; URL is
// populated from the uploader's public base URL and never stored.
type Photo struct {
	ID          int         `json:"id"`
	UploaderID  int         `json:"uploader_id"`
	ObjectKey   string      `json:"-"`
	URL         string      `json:"url,omitempty"`
	ContentType string      `json:"content_type"`
	Status      PhotoStatus `json:"status"`
	ReviewedBy  *int        `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}
