// Package query compiles untrusted list parameters (filters, search, sort,
// pagination) into parameterized SQL fragments for a single table. Column
// names are always developer-supplied constants; every user-controlled
// value travels as a bound argument, including LIMIT and OFFSET.
package query

import (
	"fmt"
	"strconv"
	"strings"
)

const maxLimit = 100

type equality struct {
	column string
	value  any
}

type search struct {
	columns []string
	term    string
}

// Spec is a filter/sort/paginate specification for one table.
type Spec struct {
	table     string
	sortable  map[string]bool
	equals    []equality
	search    *search
	sortField string
	sortOrder string
	limit     int
	offset    int
}

// Meta is the pagination block returned alongside list results.
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// New returns a Spec with the default sort (descending) and page size.
func New(table string, sortable map[string]bool, defaultSort string, defaultLimit int) *Spec {
	return &Spec{
		table:     table,
		sortable:  sortable,
		sortField: defaultSort,
		sortOrder: "DESC",
		limit:     defaultLimit,
	}
}

// Equal adds an AND-ed equality predicate with a bound value.
func (s *Spec) Equal(column string, value any) *Spec {
	s.equals = append(s.equals, equality{column: column, value: value})
	return s
}

// Contains adds a case-insensitive substring match OR-ed across columns.
// An empty term is a no-op.
func (s *Spec) Contains(term string, columns ...string) *Spec {
	if term != "" && len(columns) > 0 {
		s.search = &search{columns: columns, term: term}
	}
	return s
}

// Sort applies a requested sort field and order. Fields outside the
// whitelist silently fall back to the default; anything but "asc" sorts
// descending.
func (s *Spec) Sort(field, order string) *Spec {
	if s.sortable[field] {
		s.sortField = field
	}
	if strings.EqualFold(order, "ASC") {
		s.sortOrder = "ASC"
	} else {
		s.sortOrder = "DESC"
	}
	return s
}

// Paginate parses raw limit/offset values, falling back to the defaults on
// anything that is not a positive integer. Limit is capped at 100.
func (s *Spec) Paginate(limitRaw, offsetRaw string) *Spec {
	if n, err := strconv.Atoi(limitRaw); err == nil && n > 0 {
		if n > maxLimit {
			n = maxLimit
		}
		s.limit = n
	}
	if n, err := strconv.Atoi(offsetRaw); err == nil && n >= 0 {
		s.offset = n
	}
	return s
}

func (s *Spec) where() (string, []any) {
	var conds []string
	var args []any
	for _, e := range s.equals {
		args = append(args, e.value)
		conds = append(conds, fmt.Sprintf("%s = $%d", e.column, len(args)))
	}
	if s.search != nil {
		args = append(args, "%"+s.search.term+"%")
		n := len(args)
		ors := make([]string, 0, len(s.search.columns))
		for _, c := range s.search.columns {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", c, n))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Select builds the page query with bound limit/offset.
func (s *Spec) Select() (string, []any) {
	where, args := s.where()
	sql := fmt.Sprintf("SELECT * FROM %s%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		s.table, where, s.sortField, s.sortOrder, len(args)+1, len(args)+2)
	return sql, append(args, s.limit, s.offset)
}

// Count builds the total query sharing the same predicates.
func (s *Spec) Count() (string, []any) {
	where, args := s.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", s.table, where), args
}

// MetaFor derives pagination metadata from a total row count.
func (s *Spec) MetaFor(total int) Meta {
	return Meta{
		Total:   total,
		Limit:   s.limit,
		Offset:  s.offset,
		HasMore: s.offset+s.limit < total,
	}
}
