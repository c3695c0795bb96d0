package web

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidRelations validates a comma separated list of relation names.
//
// Only the shape is checked here, the vocabulary belongs to the entity and is checked by the services.
var ValidRelations validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, name := range SplitList(s) {
		if !isName(name) {
			return false
		}
	}

	return true
}

// SplitList splits a comma separated query value. An empty value gives no items.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}

	items := strings.Split(s, ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}

	return items
}

func isName(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}
