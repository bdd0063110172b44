package repositories

import (
	"CareConnect/apperr"
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *DoctorQuery {
	t.Helper()
	values, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("ParseQuery(%q): %v", raw, err)
	}
	q, err := ParseDoctorQuery(values)
	if err != nil {
		t.Fatalf("ParseDoctorQuery(%q): %v", raw, err)
	}
	return q
}

func TestParseDoctorQueryOperators(t *testing.T) {
	q := mustParse(t, "consultationFee[gte]=50&experienceYears[lt]=10&gender=female")
	if len(q.Filters) != 3 {
		t.Fatalf("got %d filters, want 3", len(q.Filters))
	}
	byColumn := map[string]FilterClause{}
	for _, f := range q.Filters {
		byColumn[f.Column] = f
	}
	if f := byColumn["consultation_fee"]; f.Op != OpGte || f.Value != 50.0 {
		t.Errorf("consultation_fee clause = %+v", f)
	}
	if f := byColumn["experience_years"]; f.Op != OpLt || f.Value != 10.0 {
		t.Errorf("experience_years clause = %+v", f)
	}
	if f := byColumn["gender"]; f.Op != OpEq || f.Value != "female" {
		t.Errorf("gender clause = %+v", f)
	}
}

func TestParseDoctorQueryRejectsUnknownField(t *testing.T) {
	values := url.Values{"password[gte]": {"x"}}
	if _, err := ParseDoctorQuery(values); err == nil {
		t.Fatal("unknown field accepted")
	} else if apperr.KindOf(err) != apperr.Validation {
		t.Errorf("kind = %d, want Validation", apperr.KindOf(err))
	}
}

func TestParseDoctorQueryRejectsNonNumericValue(t *testing.T) {
	values := url.Values{"consultationFee[gt]": {"cheap"}}
	if _, err := ParseDoctorQuery(values); err == nil {
		t.Fatal("non-numeric value accepted for numeric column")
	}
}

func TestParseDoctorQueryReservedParams(t *testing.T) {
	q := mustParse(t, "page=2&limit=10&fields=name&keyword=jo")
	if len(q.Filters) != 0 {
		t.Errorf("reserved params produced filters: %+v", q.Filters)
	}
	if q.Page != 2 {
		t.Errorf("page = %d, want 2", q.Page)
	}
	if q.Keyword != "jo" {
		t.Errorf("keyword = %q, want %q", q.Keyword, "jo")
	}
}

func TestParseDoctorQuerySort(t *testing.T) {
	q := mustParse(t, "sort=-consultationFee,experienceYears")
	want := []string{"consultation_fee DESC", "experience_years"}
	if len(q.SortColumns) != len(want) {
		t.Fatalf("sort columns = %v, want %v", q.SortColumns, want)
	}
	for i := range want {
		if q.SortColumns[i] != want[i] {
			t.Errorf("sort[%d] = %q, want %q", i, q.SortColumns[i], want[i])
		}
	}
}

func TestParseDoctorQueryDefaultSort(t *testing.T) {
	q := mustParse(t, "")
	if len(q.SortColumns) != 1 || q.SortColumns[0] != "created_at" {
		t.Errorf("default sort = %v, want [created_at]", q.SortColumns)
	}
}

func TestParseDoctorQueryRejectsSortOnUnknownField(t *testing.T) {
	values := url.Values{"sort": {"password"}}
	if _, err := ParseDoctorQuery(values); err == nil {
		t.Fatal("sort on unknown field accepted")
	}
}

func TestParseDoctorQueryBadPage(t *testing.T) {
	for _, page := range []string{"0", "-1", "abc"} {
		values := url.Values{"page": {page}}
		if _, err := ParseDoctorQuery(values); err == nil {
			t.Errorf("page=%q accepted", page)
		}
	}
}

func TestParseDoctorQuerySpecializations(t *testing.T) {
	q := mustParse(t, "specializations=Surgeon,%20Neurologist,")
	want := []string{"Surgeon", "Neurologist"}
	if len(q.Specializations) != len(want) {
		t.Fatalf("specializations = %v, want %v", q.Specializations, want)
	}
	for i := range want {
		if q.Specializations[i] != want[i] {
			t.Errorf("specializations[%d] = %q, want %q", i, q.Specializations[i], want[i])
		}
	}
}

func TestSplitFilterKey(t *testing.T) {
	tests := []struct {
		key       string
		wantField string
		wantOp    FilterOp
	}{
		{"consultationFee[gte]", "consultationFee", OpGte},
		{"experienceYears[lt]", "experienceYears", OpLt},
		{"gender", "gender", OpEq},
		{"weird[unknown]", "weird[unknown]", OpEq},
		{"broken[gte", "broken[gte", OpEq},
	}
	for _, tt := range tests {
		field, op := splitFilterKey(tt.key)
		if field != tt.wantField || op != tt.wantOp {
			t.Errorf("splitFilterKey(%q) = (%q, %q), want (%q, %q)", tt.key, field, op, tt.wantField, tt.wantOp)
		}
	}
}
