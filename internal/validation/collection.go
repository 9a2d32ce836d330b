package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/devcat-io/devcat/internal/versions"
)

const minCollectionNameLength = 2

var (
	// CollectionNameRegex matches lowercase names made of letters, digits and
	// dashes that start with a letter and do not end with a dash.
	CollectionNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)
	// TagRegex matches lowercase dash-separated tokens such as "java" or "data-science".
	TagRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

func stringField(fl validator.FieldLevel) string {
	field := fl.Field()
	if field.Kind() != reflect.String {
		panic(fmt.Sprintf("input field name is not a string: %s", fl.FieldName()))
	}
	return field.String()
}

func isCollectionName(fl validator.FieldLevel) bool {
	return IsValidCollectionName(stringField(fl)) == nil
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(stringField(fl)) != ""
}

func isTagToken(fl validator.FieldLevel) bool {
	return TagRegex.MatchString(stringField(fl))
}

func isStrictSemver(fl validator.FieldLevel) bool {
	return versions.IsSemver(stringField(fl))
}

func isReleaseVersion(fl validator.FieldLevel) bool {
	return versions.IsRelease(stringField(fl))
}

func IsValidCollectionName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name can't be an empty string")
	}

	if len(name) < minCollectionNameLength {
		return fmt.Errorf("collection name is too short, minimum is %d characters", minCollectionNameLength)
	}

	if !CollectionNameRegex.MatchString(name) {
		return fmt.Errorf("collection name can only contain lowercase letters (a-z), numbers (0-9) and dashes (-), must start with a letter and must not end with a dash")
	}

	return nil
}
