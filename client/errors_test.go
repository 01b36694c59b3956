package client

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusBadRequest, KindValidation},
		{http.StatusUnauthorized, KindAuthentication},
		{http.StatusForbidden, KindAuthorization},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindUnknown},
		{http.StatusTooManyRequests, KindUnknown},
		{http.StatusInternalServerError, KindServer},
		{http.StatusBadGateway, KindServer},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, classifyStatus(tc.status), "status %d", tc.status)
	}
}

func TestOnlyNetworkAndServerRetryable(t *testing.T) {
	for _, kind := range []Kind{KindNetwork, KindServer} {
		assert.True(t, (&APIError{Kind: kind}).Retryable(), string(kind))
	}
	for _, kind := range []Kind{KindAuthentication, KindAuthorization, KindNotFound, KindValidation, KindUnknown} {
		assert.False(t, (&APIError{Kind: kind}).Retryable(), string(kind))
	}
}
