package httputil

import (
	"net/url"
	"reflect"
)

// GetURLFields returns the names of all fields of the filter struct that
// are set in the query string of the URL. Parameters are matched by the
// form tag of the field.
//
// This allows to filter for zero values, e.g. isPaid=false, without
// using pointer fields for binding.
func GetURLFields(url *url.URL, filter any) []string {
	query := url.Query()

	var setFields []string
	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		param := field.Tag.Get("form")

		if param != "" && query.Has(param) {
			setFields = append(setFields, field.Name)
		}
	}

	return setFields
}
