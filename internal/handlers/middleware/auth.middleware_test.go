package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc.def", token: "abc.def", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "  Bearer   abc  ", token: "abc", ok: true},
		{header: "Basic abc"},
		{header: "Bearer"},
		{header: "Bearer "},
		{header: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestValidTraceID(t *testing.T) {
	assert.True(t, validTraceID("client-trace-1"))
	assert.True(t, validTraceID("6f1c2a1e-6a53-4d7e-9b7a-2f7a1c0d9e11"))
	assert.False(t, validTraceID(""))
	assert.False(t, validTraceID("has space"))
	assert.False(t, validTraceID("line\nbreak"))
	assert.False(t, validTraceID(strings.Repeat("a", MAX_TRACE_ID_LENGTH+1)))
}
