package validators

import (
	"reflect"
	"strings"
)

// jsonFieldName reports fields by their JSON name so errors match the request body
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
