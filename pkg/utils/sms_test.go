package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMSClient_SendLoginCode(t *testing.T) {
	var gotKey, gotTo, gotMsg string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotKey = r.Header.Get("apiKey")
		gotTo = r.PostForm.Get("to")
		gotMsg = r.PostForm.Get("message")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := &SMSClient{Username: "sandbox", APIKey: "k", BaseURL: srv.URL}
	require.NoError(t, c.SendLoginCode(context.Background(), "+254700000000", "123456"))

	assert.Equal(t, "k", gotKey)
	assert.Equal(t, "+254700000000", gotTo)
	assert.Contains(t, gotMsg, "123456")
}

func TestSMSClient_RejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &SMSClient{Username: "sandbox", APIKey: "k", BaseURL: srv.URL}
	assert.Error(t, c.SendLoginCode(context.Background(), "+254700000000", "123456"))
}

func TestSMSClient_RequiresCredentials(t *testing.T) {
	c := &SMSClient{}
	assert.False(t, c.Configured())
	assert.Error(t, c.SendLoginCode(context.Background(), "+1", "123456"))
}
