package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	securedOps := map[string]bool{}
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			if op.Security != nil && len(*op.Security) > 0 {
				securedOps[method+" "+path] = true
			}
		}
	}

	assert.True(t, securedOps[http.MethodPost+" /bookings"])
	assert.True(t, securedOps[http.MethodDelete+" /bookings/{bookingId}"])
	assert.True(t, securedOps[http.MethodPost+" /showings"])
	assert.False(t, securedOps[http.MethodGet+" /showings/{showingId}/seats"])
	assert.False(t, securedOps[http.MethodGet+" /health"])
}
