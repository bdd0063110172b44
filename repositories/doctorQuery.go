package repositories

import (
	"CareConnect/apperr"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// DoctorPageSize is the fixed page size of the doctor listing.
const DoctorPageSize = 4

// FilterOp is one of the recognized comparison operators.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
)

// FilterClause is a single validated {field, operator, value} triple.
type FilterClause struct {
	Column string
	Op     FilterOp
	Value  interface{}
}

// DoctorQuery is the typed form of the listing query string.
type DoctorQuery struct {
	Filters         []FilterClause
	Keyword         string
	Specializations []string
	SortColumns     []string
	Page            int
}

// filterableFields maps query-string field names to their columns. Only
// these fields may be filtered or sorted on; anything else is rejected
// before it reaches the store.
var filterableFields = map[string]string{
	"consultationFee": "consultation_fee",
	"experienceYears": "experience_years",
	"averageRating":   "average_rating",
	"totalRatings":    "total_ratings",
	"gender":          "gender",
	"city":            "city",
	"firstName":       "first_name",
	"lastName":        "last_name",
	"createdAt":       "created_at",
}

var numericColumns = map[string]bool{
	"consultation_fee": true,
	"experience_years": true,
	"average_rating":   true,
	"total_ratings":    true,
}

// reserved query parameters that are not filters.
var reservedParams = map[string]bool{
	"page": true, "sort": true, "limit": true, "fields": true,
	"keyword": true, "specializations": true,
}

// ParseDoctorQuery turns raw query parameters into a DoctorQuery,
// validating every field and operator against the allow-list.
func ParseDoctorQuery(values url.Values) (*DoctorQuery, error) {
	q := &DoctorQuery{Page: 1}

	for rawKey, vals := range values {
		if len(vals) == 0 {
			continue
		}
		field, op := splitFilterKey(rawKey)
		if reservedParams[field] {
			continue
		}
		column, ok := filterableFields[field]
		if !ok {
			return nil, apperr.New(apperr.Validation, fmt.Sprintf("cannot filter on field %q", field))
		}
		value, err := coerceFilterValue(column, vals[0])
		if err != nil {
			return nil, err
		}
		q.Filters = append(q.Filters, FilterClause{Column: column, Op: op, Value: value})
	}

	q.Keyword = values.Get("keyword")

	if raw := values.Get("specializations"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				q.Specializations = append(q.Specializations, s)
			}
		}
	}

	if raw := values.Get("sort"); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			field = strings.TrimSpace(field)
			desc := strings.HasPrefix(field, "-")
			field = strings.TrimPrefix(field, "-")
			column, ok := filterableFields[field]
			if !ok {
				return nil, apperr.New(apperr.Validation, fmt.Sprintf("cannot sort on field %q", field))
			}
			if desc {
				column += " DESC"
			}
			q.SortColumns = append(q.SortColumns, column)
		}
	} else {
		q.SortColumns = []string{"created_at"}
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return nil, apperr.New(apperr.Validation, "page must be a positive integer")
		}
		q.Page = page
	}

	return q, nil
}

// splitFilterKey parses "fee[gte]" into ("fee", OpGte); a bare key is
// an equality filter.
func splitFilterKey(key string) (string, FilterOp) {
	open := strings.Index(key, "[")
	if open == -1 || !strings.HasSuffix(key, "]") {
		return key, OpEq
	}
	field := key[:open]
	switch FilterOp(key[open+1 : len(key)-1]) {
	case OpGt:
		return field, OpGt
	case OpGte:
		return field, OpGte
	case OpLt:
		return field, OpLt
	case OpLte:
		return field, OpLte
	default:
		return key, OpEq
	}
}

func coerceFilterValue(column, raw string) (interface{}, error) {
	if !numericColumns[column] {
		return raw, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.New(apperr.Validation, fmt.Sprintf("field %q requires a numeric value", column))
	}
	return value, nil
}

// apply translates the typed query into gorm conditions. Column names
// come from the allow-list, never from user input.
func (q *DoctorQuery) apply(db *gorm.DB) *gorm.DB {
	for _, f := range q.Filters {
		switch f.Op {
		case OpGt:
			db = db.Where(f.Column+" > ?", f.Value)
		case OpGte:
			db = db.Where(f.Column+" >= ?", f.Value)
		case OpLt:
			db = db.Where(f.Column+" < ?", f.Value)
		case OpLte:
			db = db.Where(f.Column+" <= ?", f.Value)
		default:
			db = db.Where(f.Column+" = ?", f.Value)
		}
	}
	if q.Keyword != "" {
		pattern := "%" + q.Keyword + "%"
		db = db.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}
	if len(q.Specializations) > 0 {
		db = db.Where("id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Table("specialization").
				Select("doctor_id").
				Where("name IN ?", q.Specializations))
	}
	return db
}
