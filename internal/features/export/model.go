package export

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExportStatus string

const (
	ExportStatusSuccess ExportStatus = "success"
	ExportStatusFailed  ExportStatus = "failed"
)

// ExportHistory records one export attempt, successful or not
type ExportHistory struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Filename    string             `json:"filename" bson:"filename"`
	RowCount    int                `json:"row_count" bson:"row_count"`
	Status      ExportStatus       `json:"status" bson:"status"`
	Error       string             `json:"error,omitempty" bson:"error,omitempty"`
	RequestedBy string             `json:"requested_by" bson:"requested_by"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
