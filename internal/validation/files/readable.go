// Package files checks catalog files on disk: JSON and JSONC documents,
// executable scripts and readable paths (also exposed as the path_read tag).
package files

import (
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// pathField returns the string a file tag is attached to. Tags on any other
// kind are a programming error.
func pathField(fl validator.FieldLevel) string {
	field := fl.Field()
	if field.Kind() != reflect.String {
		panic(fmt.Sprintf("input field name is not a string: %s", fl.FieldName()))
	}
	return field.String()
}

func IsReadable(fl validator.FieldLevel) bool {
	return CheckReadable(pathField(fl)) == nil
}

// CheckReadable reports whether path exists and can be opened.
func CheckReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
