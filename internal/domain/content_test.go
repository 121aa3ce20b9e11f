package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeys(t *testing.T) {
	assert.Nil(t, ParseKeys(""))
	assert.Equal(t, []string{"a", "b"}, ParseKeys("a, b,,"))
	assert.Equal(t, []string{"active_volunteers"}, ParseKeys(" active_volunteers "))
}

func TestCreateContentRequest_Validate(t *testing.T) {
	value := "100"
	empty := ""

	tests := []struct {
		name    string
		req     CreateContentRequest
		wantErr string
	}{
		{"missing page", CreateContentRequest{Section: "s", Key: "k", Value: &value}, "Missing required field: page"},
		{"missing section", CreateContentRequest{Page: "p", Key: "k", Value: &value}, "Missing required field: section"},
		{"missing key", CreateContentRequest{Page: "p", Section: "s", Value: &value}, "Missing required field: key"},
		{"missing value", CreateContentRequest{Page: "p", Section: "s", Key: "k"}, "Missing required field: value"},
		{"empty value allowed", CreateContentRequest{Page: "p", Section: "s", Key: "k", Value: &empty}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, DefaultLanguageCode, tt.req.LanguageCode)
				return
			}
			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantErr, ve.Message)
		})
	}
}

func TestCreateContentRequest_KeepsLanguage(t *testing.T) {
	value := "Bienvenidos"
	req := CreateContentRequest{Page: "homepage", Section: "hero", Key: "title", Value: &value, LanguageCode: "es"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "es", req.LanguageCode)
}

func TestUpdateContentRequest_Validate(t *testing.T) {
	value := "new"
	assert.NoError(t, (&UpdateContentRequest{ID: "id-1", Value: &value}).Validate())

	for _, req := range []UpdateContentRequest{{ID: "id-1"}, {Value: &value}} {
		var ve ValidationError
		require.ErrorAs(t, req.Validate(), &ve)
		assert.Equal(t, "Missing required fields: id and value", ve.Message)
	}
}
