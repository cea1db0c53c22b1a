package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engmarket/orchestrator/pkg/models"
)

func TestHTTPInvoker_Invoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tools/cost-estimator", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req invokeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "execute", req.Action)
		assert.Equal(t, "sess-1", req.SessionID)
		assert.Equal(t, "Riyadh Tower", req.Inputs["project_name"])

		json.NewEncoder(w).Encode(Result{
			Outputs:    map[string]interface{}{"estimate": 125000.0},
			TokensUsed: 420,
			CostUSD:    0.02,
		})
	}))
	defer srv.Close()

	invoker := NewHTTPInvoker(srv.URL, nil)
	result, err := invoker.Invoke(context.Background(), &Invocation{
		Tool:      &models.Tool{ID: "cost-estimator", Endpoint: "/tools/cost-estimator"},
		Action:    "execute",
		Inputs:    map[string]interface{}{"project_name": "Riyadh Tower"},
		SessionID: "sess-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 125000.0, result.Outputs["estimate"])
	assert.Equal(t, 420, result.TokensUsed)
	assert.Equal(t, 0.02, result.CostUSD)
}

func TestHTTPInvoker_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	invoker := NewHTTPInvoker(srv.URL, nil)
	_, err := invoker.Invoke(context.Background(), &Invocation{
		Tool:   &models.Tool{ID: "wbs-builder", Endpoint: "/tools/wbs-builder"},
		Action: "execute",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPInvoker_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	invoker := NewHTTPInvoker(srv.URL, nil)
	_, err := invoker.Invoke(ctx, &Invocation{
		Tool:   &models.Tool{ID: "wbs-builder", Endpoint: "/tools/wbs-builder"},
		Action: "execute",
	})
	require.Error(t, err)
}
