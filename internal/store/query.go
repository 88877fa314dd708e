package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	OrderByPopularity = "popularity"
	OrderByDiscount   = "discount"
	OrderByPostedAt   = "posted_at"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	OrderByPopularity: "popularity_score DESC, posted_at DESC",
	OrderByDiscount:   "discount_rate DESC NULLS LAST, posted_at DESC",
	OrderByPostedAt:   "posted_at DESC",
}

const defaultOrderBy = "posted_at DESC"

const countDealsSelect = "SELECT COUNT(*) FROM deals"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a deal query.
// It returns two SQL strings (one for the data query, one for the count query)
// and the positional parameters.
func (q *DealQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Since != nil {
		conditions = append(conditions, fmt.Sprintf("posted_at >= $%d", paramIdx))
		args = append(args, *q.Since)
		paramIdx++
	}

	if q.Source != nil {
		conditions = append(conditions, fmt.Sprintf("source = $%d", paramIdx))
		args = append(args, *q.Source)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if col, ok := validOrderBy[q.OrderBy]; ok {
		orderClause = col
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		selectDeals, whereClause, orderClause, limit, offset,
	)

	countSQL = countDealsSelect + whereClause

	return dataSQL, countSQL, args
}
