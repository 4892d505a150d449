package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-microblog/models"
	"github.com/stretchr/testify/assert"
)

func TestPostValidator(t *testing.T) {
	tests := []struct {
		name   string
		post   models.Post
		fields []string
	}{
		{name: "valid", post: models.Post{UserID: 1, Content: "Lorem ipsum"}},
		{name: "exactly 140", post: models.Post{UserID: 1, Content: strings.Repeat("a", 140)}},
		{name: "missing owner", post: models.Post{Content: "Lorem ipsum"}, fields: []string{FieldUserID}},
		{name: "blank content", post: models.Post{UserID: 1, Content: "   "}, fields: []string{FieldContent}},
		{name: "141 chars", post: models.Post{UserID: 1, Content: strings.Repeat("a", 141)}, fields: []string{FieldContent}},
		{name: "multibyte 140", post: models.Post{UserID: 1, Content: strings.Repeat("é", 140)}},
	}

	v := NewPostValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.post)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.Equal(t, tt.fields, fieldsOf(t, err))
		})
	}
}

func TestPostValidator_Request(t *testing.T) {
	v := NewPostValidator()

	assert.NoError(t, v.Validate(context.Background(), models.PostRequest{Content: "hi"}))
	err := v.Validate(context.Background(), &models.PostRequest{Content: ""})
	assert.Equal(t, []string{FieldContent}, fieldsOf(t, err))

	assert.ErrorIs(t, v.Validate(context.Background(), "text"), ErrUnsupportedType)
}
