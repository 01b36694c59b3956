package client

import (
	"fmt"
	"strings"
)

// Filter builds a filter expression in the grammar the server accepts:
// `field op value` clauses joined by "and", with string values quoted.
// The filter param itself stays an opaque string on the wire, so
// hand-written expressions work the same as built ones.
type Filter struct {
	clauses []string
	err     error
}

func NewFilter() *Filter { return &Filter{} }

func (f *Filter) add(field, op string, v any) *Filter {
	quoted, err := quoteFilterValue(v)
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		return f
	}
	f.clauses = append(f.clauses, fmt.Sprintf("%s %s %s", field, op, quoted))
	return f
}

func (f *Filter) Eq(field string, v any) *Filter { return f.add(field, "=", v) }
func (f *Filter) Ne(field string, v any) *Filter { return f.add(field, "!=", v) }
func (f *Filter) Gt(field string, v any) *Filter { return f.add(field, ">", v) }
func (f *Filter) Ge(field string, v any) *Filter { return f.add(field, ">=", v) }
func (f *Filter) Lt(field string, v any) *Filter { return f.add(field, "<", v) }
func (f *Filter) Le(field string, v any) *Filter { return f.add(field, "<=", v) }
func (f *Filter) Like(field, pattern string) *Filter {
	return f.add(field, "like", pattern)
}

// Err reports the first value that could not be expressed in the
// grammar. Clauses added after a failed one are still kept.
func (f *Filter) Err() error { return f.err }

// String renders the expression, empty when no clause was added.
func (f *Filter) String() string {
	return strings.Join(f.clauses, " and ")
}

// quoteFilterValue renders a value as a grammar literal. Strings pick
// whichever quote character they do not contain; a string carrying
// both cannot be represented and is rejected rather than mangled.
func quoteFilterValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	case string:
		if !strings.Contains(val, `"`) {
			return `"` + val + `"`, nil
		}
		if !strings.Contains(val, "'") {
			return "'" + val + "'", nil
		}
		return "", fmt.Errorf("filter value %q contains both quote characters", val)
	default:
		return fmt.Sprintf("%v", val), nil
	}
}
