package postgres

import "github.com/Masterminds/squirrel"

// QueryBuilder is the shared squirrel builder with $n placeholders.
var QueryBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
