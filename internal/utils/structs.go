package utils

import (
	"fmt"
	"reflect"
)

// ColumnTag is the struct tag read for column names.
var ColumnTag = "db"

// eachColumn calls fn for every exported field of input carrying a column
// tag. input must be a struct or a pointer to one.
func eachColumn(input any, fn func(column string, value reflect.Value)) {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		column := field.Tag.Get(ColumnTag)
		if column == "" || column == "-" {
			continue
		}

		fn(column, v.Field(i))
	}
}

// StructTagValues lists the column names of input in field order.
func StructTagValues(input any) []string {
	var columns []string
	eachColumn(input, func(column string, _ reflect.Value) {
		columns = append(columns, column)
	})
	return columns
}

// StructToMap maps column names to field values, ready for an insert.
func StructToMap(input any) map[string]any {
	values := make(map[string]any)
	eachColumn(input, func(column string, value reflect.Value) {
		values[column] = value.Interface()
	})
	return values
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil || msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
