package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		transport string
		want      string
	}{
		{
			name:   "message field wins",
			status: 404,
			body:   `{"message":"customer 9 not found","error":"ignored"}`,
			want:   "customer 9 not found",
		},
		{
			name:   "error field when no message",
			status: 400,
			body:   `{"error":"missing customer id"}`,
			want:   "missing customer id",
		},
		{
			name:   "plain json string body",
			status: 409,
			body:   `"code already in use"`,
			want:   "code already in use",
		},
		{
			name:   "raw text body",
			status: 503,
			body:   "maintenance in progress",
			want:   "maintenance in progress",
		},
		{
			name:   "empty body falls back to status message",
			status: 422,
			want:   statusMessages[422],
		},
		{
			name:   "json body without recognised fields falls back",
			status: 500,
			body:   `{"trace_id":"abc123"}`,
			want:   statusMessages[500],
		},
		{
			name:   "html error page never shown",
			status: 502,
			body:   "<html><body>Bad Gateway</body></html>",
			want:   statusMessages[502],
		},
		{
			name:      "unmapped status uses transport text",
			status:    418,
			transport: "i/o timeout",
			want:      "i/o timeout",
		},
		{
			name:   "nothing at all yields the generic fallback",
			status: 418,
			want:   genericMessage,
		},
		{
			name:      "transport failure without response",
			status:    0,
			transport: "dial tcp: connection refused",
			want:      "dial tcp: connection refused",
		},
		{
			name:   "null body tolerated",
			status: 400,
			body:   `null`,
			want:   statusMessages[400],
		},
		{
			name:   "array body tolerated",
			status: 400,
			body:   `[1,2,3]`,
			want:   statusMessages[400],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractMessage(tt.status, []byte(tt.body), tt.transport)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorUnwrapsUnauthorized(t *testing.T) {
	err := &Error{Status: 401, Message: statusMessages[401]}
	assert.ErrorIs(t, err, ErrUnauthorized)

	other := &Error{Status: 404, Message: statusMessages[404]}
	assert.NotErrorIs(t, other, ErrUnauthorized)
}
