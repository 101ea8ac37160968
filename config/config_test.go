package config

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

func TestDefaultIsFresh(t *testing.T) {
	a, b := Default(), Default()
	a.Static.Root = "/srv"
	require.Equal(t, "./static", b.Static.Root)
	require.Equal(t, '/', rune(b.Static.Prefix[0]))
	require.Equal(t, '/', rune(b.Static.Prefix[len(b.Static.Prefix)-1]))
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}
