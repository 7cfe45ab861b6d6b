package report

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusPublished ReportStatus = "published"
	ReportStatusArchived  ReportStatus = "archived"
)

// ReportRecord is one row of the report screen. Metric fields are
// pointers so a missing value can be told apart from a genuine zero.
type ReportRecord struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Status        string             `json:"status" bson:"status"`
	Department    string             `json:"department" bson:"department"`
	Priority      string             `json:"priority" bson:"priority"`
	Author        string             `json:"author" bson:"author"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
	RecordCount   *int64             `json:"record_count,omitempty" bson:"record_count,omitempty"`
	FileSize      *int64             `json:"file_size,omitempty" bson:"file_size,omitempty"`
	ExecutionTime *float64           `json:"execution_time,omitempty" bson:"execution_time,omitempty"`
}

// ListParams carries pagination and sorting for the report table
type ListParams struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"` // asc | desc
}

// Pagination is echoed back to the client alongside each page
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
