package builtin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/checkflow/pkg/provider"
)

func TestHTTPProviderGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	p := NewHTTPProvider()
	result, err := p.Execute(context.Background(), provider.Input{
		Config: map[string]any{"method": "GET", "url": srv.URL},
	})
	require.NoError(t, err)
	out := result.Output.(map[string]any)
	assert.EqualValues(t, 200, out["status"])
	assert.Empty(t, result.Issues)
}

func TestHTTPProviderErrorStatusRecordsIssue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	p := NewHTTPProvider()
	result, err := p.Execute(context.Background(), provider.Input{
		Config: map[string]any{"method": "GET", "url": srv.URL},
	})
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
}

func TestHTTPProviderValidateConfig(t *testing.T) {
	p := NewHTTPProvider()
	assert.Error(t, p.ValidateConfig(map[string]any{}))
	assert.Error(t, p.ValidateConfig(map[string]any{"method": "GET"}))
	assert.NoError(t, p.ValidateConfig(map[string]any{"method": "GET", "url": "http://x"}))
}
