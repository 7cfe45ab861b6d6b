package report

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"reportdesk/internal/features/filters"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// exportFetchLimit caps how many rows a single export re-query pulls
const exportFetchLimit = 100000

const dateOnlyLayout = "2006-01-02"

// ErrInvalidFilter marks filter values the caller sent malformed, so the
// HTTP layer can answer 400 instead of treating them as server faults.
var ErrInvalidFilter = errors.New("invalid filter value")

// sortableColumns whitelists what the table widget may sort on
var sortableColumns = map[string]string{
	"title":          "title",
	"status":         "status",
	"department":     "department",
	"priority":       "priority",
	"author":         "author",
	"created_at":     "created_at",
	"updated_at":     "updated_at",
	"record_count":   "record_count",
	"file_size":      "file_size",
	"execution_time": "execution_time",
}

type ReportService interface {
	ListReports(ctx context.Context, f filters.FilterState, params ListParams) ([]ReportRecord, Pagination, error)
	FetchAll(ctx context.Context, f filters.FilterState, params ListParams) ([]ReportRecord, error)
	SeedReports(ctx context.Context, records []ReportRecord) error
}

type ReportServiceImpl struct {
	ReportRepo ReportRepository
}

func NewReportService(reportRepo ReportRepository) ReportService {
	return &ReportServiceImpl{ReportRepo: reportRepo}
}

func (s *ReportServiceImpl) ListReports(ctx context.Context, f filters.FilterState, params ListParams) ([]ReportRecord, Pagination, error) {
	query, err := BuildQuery(f)
	if err != nil {
		return nil, Pagination{}, err
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 200 {
		params.Limit = 20
	}
	sort := buildSort(params.SortBy, params.SortOrder)
	skip := int64(params.Page-1) * int64(params.Limit)

	records, err := s.ReportRepo.Find(ctx, query, sort, skip, int64(params.Limit))
	if err != nil {
		return nil, Pagination{}, err
	}

	total, err := s.ReportRepo.Count(ctx, query)
	if err != nil {
		return nil, Pagination{}, err
	}

	return records, Pagination{Page: params.Page, Limit: params.Limit, Total: total}, nil
}

// FetchAll returns every record matching the filters in the current sort
// order. Used by the export path, which snapshots the whole filtered set.
func (s *ReportServiceImpl) FetchAll(ctx context.Context, f filters.FilterState, params ListParams) ([]ReportRecord, error) {
	query, err := BuildQuery(f)
	if err != nil {
		return nil, err
	}
	sort := buildSort(params.SortBy, params.SortOrder)
	return s.ReportRepo.Find(ctx, query, sort, 0, exportFetchLimit)
}

func (s *ReportServiceImpl) SeedReports(ctx context.Context, records []ReportRecord) error {
	return s.ReportRepo.InsertMany(ctx, records)
}

// BuildQuery translates a FilterState into a Mongo query. Empty fields
// place no constraint; search matches title or author, case-insensitive.
func BuildQuery(f filters.FilterState) (bson.M, error) {
	query := bson.M{}

	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.Department != "" {
		query["department"] = f.Department
	}
	if f.Priority != "" {
		query["priority"] = f.Priority
	}

	createdRange := bson.M{}
	if f.DateFrom != "" {
		from, err := time.Parse(dateOnlyLayout, f.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("%w: dateFrom %q is not a YYYY-MM-DD date", ErrInvalidFilter, f.DateFrom)
		}
		createdRange["$gte"] = from
	}
	if f.DateTo != "" {
		to, err := time.Parse(dateOnlyLayout, f.DateTo)
		if err != nil {
			return nil, fmt.Errorf("%w: dateTo %q is not a YYYY-MM-DD date", ErrInvalidFilter, f.DateTo)
		}
		// Inclusive upper bound: anything created before the next day
		createdRange["$lt"] = to.AddDate(0, 0, 1)
	}
	if len(createdRange) > 0 {
		query["created_at"] = createdRange
	}

	if f.Search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": regex}},
			{"author": bson.M{"$regex": regex}},
		}
	}

	return query, nil
}

func buildSort(sortBy, sortOrder string) bson.D {
	column, ok := sortableColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := -1
	if sortOrder == "asc" {
		direction = 1
	}
	return bson.D{{Key: column, Value: direction}}
}
