package repositories

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dreamfactorysoftware/df-admin-api/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

var (
	identPattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	clausePattern = regexp.MustCompile(`(?i)^([a-z][a-z0-9_]*)\s*(!=|>=|<=|=|>|<|like)\s*(.+)$`)
)

// ListQuery is a compiled list request: a WHERE fragment with bind args,
// an ORDER BY fragment, and clamped paging values.
type ListQuery struct {
	Where  string
	Args   []any
	Order  string
	Limit  int
	Offset int
}

// BuildListQuery validates and compiles the filter/sort/paging params
// against the set of filterable columns for a resource. The filter
// grammar is deliberately restricted: `field op value` clauses joined
// by AND, ops = != > >= < <= like, values quoted strings, numbers, or
// true/false. Anything else is rejected before touching the database.
func BuildListQuery(p domain.ListParams, allowed map[string]bool) (ListQuery, error) {
	q := ListQuery{Limit: p.Limit, Offset: p.Offset}

	if q.Limit <= 0 {
		q.Limit = defaultListLimit
	}
	if q.Limit > maxListLimit {
		q.Limit = maxListLimit
	}
	if q.Offset < 0 {
		return q, domain.ValidationError{Field: "offset", Msg: "must be a non-negative integer"}
	}

	where, args, err := compileFilter(p.Filter, allowed)
	if err != nil {
		return q, err
	}
	q.Where = where
	q.Args = args

	order, err := compileSort(p.Sort, allowed)
	if err != nil {
		return q, err
	}
	q.Order = order

	return q, nil
}

func compileFilter(filter string, allowed map[string]bool) (string, []any, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return "", nil, nil
	}

	parts := []string{}
	args := []any{}

	for _, clause := range splitFilterClauses(filter) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		m := clausePattern.FindStringSubmatch(clause)
		if m == nil {
			return "", nil, domain.ValidationError{Field: "filter", Msg: fmt.Sprintf("unparsable clause %q", clause)}
		}
		field := strings.ToLower(m[1])
		op := strings.ToUpper(strings.TrimSpace(m[2]))
		if !identPattern.MatchString(field) || !allowed[field] {
			return "", nil, domain.ValidationError{Field: "filter", Msg: fmt.Sprintf("unknown field %q", field)}
		}
		val, err := parseFilterValue(strings.TrimSpace(m[3]))
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", field, op))
		args = append(args, val)
	}

	if len(parts) == 0 {
		return "", nil, nil
	}
	return strings.Join(parts, " AND "), args, nil
}

// splitFilterClauses breaks a filter expression on the AND keyword,
// but only outside quoted regions so string values may contain the
// word "and" themselves.
func splitFilterClauses(filter string) []string {
	parts := []string{}
	var b strings.Builder
	var quote byte

	i := 0
	for i < len(filter) {
		ch := filter[i]

		if quote != 0 {
			b.WriteByte(ch)
			if ch == quote {
				quote = 0
			}
			i++
			continue
		}

		switch {
		case ch == '\'' || ch == '"':
			quote = ch
			b.WriteByte(ch)
			i++
		case ch == ' ' || ch == '\t':
			j := i
			for j < len(filter) && (filter[j] == ' ' || filter[j] == '\t') {
				j++
			}
			// whitespace AND whitespace separates clauses
			if j+3 < len(filter) && strings.EqualFold(filter[j:j+3], "and") &&
				(filter[j+3] == ' ' || filter[j+3] == '\t') {
				parts = append(parts, b.String())
				b.Reset()
				i = j + 3
				continue
			}
			b.WriteByte(ch)
			i++
		default:
			b.WriteByte(ch)
			i++
		}
	}

	parts = append(parts, b.String())
	return parts
}

func parseFilterValue(raw string) (any, error) {
	if len(raw) >= 2 {
		if (raw[0] == '\'' && raw[len(raw)-1] == '\'') || (raw[0] == '"' && raw[len(raw)-1] == '"') {
			return raw[1 : len(raw)-1], nil
		}
	}
	switch strings.ToLower(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, nil
	}
	return nil, domain.ValidationError{Field: "filter", Msg: fmt.Sprintf("unparsable value %q", raw)}
}

// compileSort turns "name,-created_date" into "name ASC, created_date DESC".
func compileSort(sort string, allowed map[string]bool) (string, error) {
	sort = strings.TrimSpace(sort)
	if sort == "" {
		return "", nil
	}

	parts := []string{}
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = strings.TrimSpace(field[1:])
		}
		field = strings.ToLower(field)
		if !identPattern.MatchString(field) || !allowed[field] {
			return "", domain.ValidationError{Field: "sort", Msg: fmt.Sprintf("unknown field %q", field)}
		}
		parts = append(parts, field+" "+dir)
	}
	return strings.Join(parts, ", "), nil
}
