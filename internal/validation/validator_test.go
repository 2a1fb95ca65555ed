package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Age    int      `json:"age" validate:"min=6,max=15"`
	Limit  int      `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
	Topics []string `json:"topics" validate:"dive,oneof=patterns algorithms"`
	Name   string   `validate:"required"`
}

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(sample{Age: 9, Topics: []string{"patterns"}, Name: "x"}))
	assert.NoError(t, Struct(sample{Age: 6, Limit: 50, Name: "x"}))
}

func TestStruct_FieldErrorsUseJSONNames(t *testing.T) {
	err := Struct(sample{Age: 3, Limit: -1, Topics: []string{"patterns", "loops"}})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))

	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	assert.Equal(t, "age must be at least 6", fields["age"])
	assert.Equal(t, "limit must be at least 1", fields["limit"])
	assert.Equal(t, "topics[1] must be one of: patterns, algorithms (got loops)", fields["topics[1]"])
	assert.Equal(t, "Name is required", fields["Name"])
	assert.Contains(t, err.Error(), "; ")
}
