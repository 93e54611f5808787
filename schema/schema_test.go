package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"type": "object",
		"properties": {
			"answer": {"type": "string", "description": "The answer text"},
			"score": {"type": "number"},
			"tags": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["answer"]
	}`)

	s, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, TypeObject, s.Type)
	assert.Len(t, s.Properties, 3)
	assert.True(t, s.IsRequired("answer"))
	assert.False(t, s.IsRequired("score"))

	answer := s.GetProperty("answer")
	require.NotNil(t, answer)
	assert.Equal(t, TypeString, answer.Type)
	assert.Equal(t, "The answer text", answer.Description)

	tags := s.GetProperty("tags")
	require.NotNil(t, tags)
	require.NotNil(t, tags.Items)
	assert.Equal(t, TypeString, tags.Items.Type)
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte(`{"type": `))
	assert.Error(t, err)
}

func TestBuilders(t *testing.T) {
	s := NewObjectSchema().
		AddProperty("name", NewStringSchema().WithDescription("user name")).
		AddProperty("age", NewIntegerSchema().WithExamples(30, 42)).
		AddProperty("active", NewBooleanSchema()).
		AddRequired("name", "age")

	assert.Equal(t, TypeObject, s.Type)
	assert.True(t, s.HasProperty("name"))
	assert.True(t, s.HasProperty("age"))
	assert.False(t, s.HasProperty("missing"))
	assert.Nil(t, s.GetProperty("missing"))
	assert.True(t, s.IsRequired("name"))
	assert.False(t, s.IsRequired("active"))
	assert.Len(t, s.GetProperty("age").Examples, 2)
}

func TestToJSON_RoundTrip(t *testing.T) {
	s := NewObjectSchema().
		AddProperty("items", NewArraySchema(NewNumberSchema())).
		AddRequired("items").
		WithTitle("Output")

	data, err := s.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "Output", back.Title)
	assert.Equal(t, TypeArray, back.GetProperty("items").Type)
	assert.Equal(t, TypeNumber, back.GetProperty("items").Items.Type)
}
