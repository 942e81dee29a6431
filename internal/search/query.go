package search

import (
	"fmt"
	"strings"
)

// Statement is SQL text plus its positional arguments.
type Statement struct {
	SQL  string
	Args []interface{}
}

// Query describes one search endpoint. From holds the joins needed to filter;
// Labels holds the localized pltab joins that only the page query needs and that
// may reference the leading arguments passed to Build.
type Query struct {
	Select  string
	From    string
	Labels  string
	Count   string
	OrderBy string
}

// Build renders the page and count statements for one filter. The page query
// binds lead first, then the filter, then LIMIT and OFFSET. The count query
// numbers its own placeholders from $1 and never sees limit or offset.
func (q Query) Build(f *Filter, lead []interface{}, page Page) (Statement, Statement) {
	where, args := f.Compile(len(lead) + 1)

	pageArgs := make([]interface{}, 0, len(lead)+len(args)+2)
	pageArgs = append(pageArgs, lead...)
	pageArgs = append(pageArgs, args...)
	next := len(pageArgs) + 1
	pageArgs = append(pageArgs, page.Limit, page.Offset)

	var sb strings.Builder
	sb.WriteString(q.Select)
	sb.WriteString(" ")
	sb.WriteString(q.From)
	if q.Labels != "" {
		sb.WriteString(" ")
		sb.WriteString(q.Labels)
	}
	sb.WriteString(" WHERE 1=1")
	sb.WriteString(where)
	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.OrderBy)
	}
	fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", next, next+1)

	countWhere, countArgs := f.Compile(1)
	count := Statement{
		SQL:  q.Count + " " + q.From + " WHERE 1=1" + countWhere,
		Args: countArgs,
	}

	return Statement{SQL: sb.String(), Args: pageArgs}, count
}
