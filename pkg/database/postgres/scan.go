package postgres

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
)

var (
	structCache   = make(map[reflect.Type]*structInfo)
	structCacheMu sync.RWMutex
)

type structInfo struct {
	fields []fieldInfo
}

type fieldInfo struct {
	column string
	index  int
}

// getStructInfo maps struct fields to database columns via `db` tags,
// falling back to snake_case of the field name. Results are cached.
func getStructInfo(t reflect.Type) *structInfo {
	structCacheMu.RLock()
	info, ok := structCache[t]
	structCacheMu.RUnlock()
	if ok {
		return info
	}

	structCacheMu.Lock()
	defer structCacheMu.Unlock()
	if info, ok := structCache[t]; ok {
		return info
	}

	info = &structInfo{fields: make([]fieldInfo, 0, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}
		column := tag
		if column == "" {
			column = toSnakeCase(field.Name)
		}

		info.fields = append(info.fields, fieldInfo{column: column, index: i})
	}

	structCache[t] = info
	return info
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func scanOne[T any](rows pgx.Rows) (*T, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoRows
	}

	var result T
	if err := scanStruct(rows, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func scanAll[T any](rows pgx.Rows) ([]*T, error) {
	results := make([]*T, 0)
	for rows.Next() {
		var item T
		if err := scanStruct(rows, &item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// scanStruct scans the current row into dest by matching column names
// against the dest struct's mapped fields. Unmatched columns are ignored.
func scanStruct(rows pgx.Rows, dest any) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("dest must be a pointer to struct")
	}

	elem := v.Elem()
	info := getStructInfo(elem.Type())

	descs := rows.FieldDescriptions()
	targets := make([]any, len(descs))
	for i := range targets {
		targets[i] = new(any) // discard unmatched columns
	}

	for _, f := range info.fields {
		for i, fd := range descs {
			if string(fd.Name) == f.column {
				targets[i] = elem.Field(f.index).Addr().Interface()
				break
			}
		}
	}

	return rows.Scan(targets...)
}
