package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeParseCreateBlog(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSuccess bool
		wantTitle   string
		wantContent string
	}{
		{"valid", `{"title":"T","content":"C"}`, true, "T", "C"},
		{"empty strings are strings", `{"title":"","content":""}`, true, "", ""},
		{"unknown fields ignored", `{"title":"T","content":"C","published":true}`, true, "T", "C"},
		{"missing title", `{"content":"C"}`, false, "", ""},
		{"missing content", `{"title":"T"}`, false, "", ""},
		{"null title", `{"title":null,"content":"C"}`, false, "", ""},
		{"numeric title", `{"title":5,"content":"C"}`, false, "", ""},
		{"array body", `[]`, false, "", ""},
		{"malformed json", `{"title":`, false, "", ""},
		{"empty body", ``, false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SafeParseCreateBlog([]byte(tt.body))

			assert.Equal(t, tt.wantSuccess, res.Success)
			if !tt.wantSuccess {
				assert.Error(t, res.Err)
				return
			}
			require.NoError(t, res.Err)
			require.NotNil(t, res.Data.Title)
			require.NotNil(t, res.Data.Content)
			assert.Equal(t, tt.wantTitle, *res.Data.Title)
			assert.Equal(t, tt.wantContent, *res.Data.Content)
		})
	}
}

func TestSafeParseUpdateBlog(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSuccess bool
		wantID      float64
	}{
		{"valid", `{"id":5,"title":"T2","content":"C2"}`, true, 5},
		{"zero id is present", `{"id":0,"title":"T","content":"C"}`, true, 0},
		{"integral float id", `{"id":5.0,"title":"T","content":"C"}`, true, 5},
		{"exponent id", `{"id":1e1,"title":"T","content":"C"}`, true, 10},
		{"fractional id is still a number", `{"id":5.5,"title":"T","content":"C"}`, true, 5.5},
		{"id beyond int32 is still a number", `{"id":3000000000,"title":"T","content":"C"}`, true, 3000000000},
		{"missing id", `{"title":"T","content":"C"}`, false, 0},
		{"string id", `{"id":"5","title":"T","content":"C"}`, false, 0},
		{"null id", `{"id":null,"title":"T","content":"C"}`, false, 0},
		{"missing title", `{"id":5,"content":"C"}`, false, 0},
		{"missing content", `{"id":5,"title":"T"}`, false, 0},
		{"empty object", `{}`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := SafeParseUpdateBlog([]byte(tt.body))

			assert.Equal(t, tt.wantSuccess, res.Success)
			if !tt.wantSuccess {
				assert.Error(t, res.Err)
				return
			}
			require.NotNil(t, res.Data.ID)
			assert.Equal(t, tt.wantID, *res.Data.ID)
		})
	}
}

func TestSafeParseEmptyBody(t *testing.T) {
	res := SafeParseUpdateBlog(nil)

	assert.False(t, res.Success)
	assert.ErrorIs(t, res.Err, ErrEmptyBody)
}
