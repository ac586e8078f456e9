package store

import sq "github.com/Masterminds/squirrel"

const (
	userTableName          = "users"
	accommodationTableName = "accommodations"
	leaseTableName         = "leases"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
