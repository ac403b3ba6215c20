package feishu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient("app-id", "app-secret", "app-token")
	c.SetBaseURL(srv.URL)
	return c
}

func TestAuthenticate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/open-apis/auth/v3/tenant_access_token/internal", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "app-id", body["app_id"])
		assert.Equal(t, "app-secret", body["app_secret"])

		json.NewEncoder(w).Encode(map[string]any{
			"code": 0, "msg": "ok",
			"tenant_access_token": "t-token", "expire": 7200,
		})
	})
	mux.HandleFunc("/open-apis/bitable/v1/apps/app-token/tables", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer t-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"data": map[string]any{
				"items": []map[string]string{
					{"table_id": "tbl1", "name": "校招"},
					{"table_id": "tbl2", "name": "备份"},
				},
			},
		})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	require.NoError(t, c.Authenticate(ctx))

	tableID, err := c.FirstTableID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tbl1", tableID)
}

func TestAuthenticateRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/open-apis/auth/v3/tenant_access_token/internal", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 99991663, "msg": "app secret invalid",
		})
	})

	c := newTestClient(t, mux)

	err := c.Authenticate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "99991663")
}

func TestListRecordIDsFollowsPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/open-apis/bitable/v1/apps/app-token/tables/tbl1/records", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "500", r.URL.Query().Get("page_size"))

		if r.URL.Query().Get("page_token") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"code": 0,
				"data": map[string]any{
					"items": []map[string]string{
						{"record_id": "recA"}, {"record_id": "recB"},
					},
					"has_more": true, "page_token": "p2",
				},
			})
			return
		}

		assert.Equal(t, "p2", r.URL.Query().Get("page_token"))
		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"data": map[string]any{
				"items":    []map[string]string{{"record_id": "recC"}},
				"has_more": false,
			},
		})
	})

	c := newTestClient(t, mux)

	ids, err := c.ListRecordIDs(context.Background(), "tbl1")
	require.NoError(t, err)
	assert.Equal(t, []string{"recA", "recB", "recC"}, ids)
}

func TestDeleteAndCreateRecords(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/open-apis/bitable/v1/apps/app-token/tables/tbl1/records/batch_delete", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Records []string `json:"records"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"recA", "recB"}, body.Records)
		json.NewEncoder(w).Encode(map[string]any{"code": 0})
	})
	mux.HandleFunc("/open-apis/bitable/v1/apps/app-token/tables/tbl1/records/batch_create", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Records []struct {
				Fields map[string]any `json:"fields"`
			} `json:"records"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Records, 1)
		assert.Equal(t, "Acme Corp", body.Records[0].Fields[ColCompany])
		json.NewEncoder(w).Encode(map[string]any{"code": 0})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	require.NoError(t, c.DeleteRecords(ctx, "tbl1", []string{"recA", "recB"}))
	require.NoError(t, c.CreateRecords(ctx, "tbl1", []map[string]any{
		{ColCompany: "Acme Corp", ColPosition: "Backend Intern"},
	}))
}

func TestCreateRecordsRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/open-apis/bitable/v1/apps/app-token/tables/tbl1/records/batch_create", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code": 1254045, "msg": "field validation failed",
		})
	})

	c := newTestClient(t, mux)

	err := c.CreateRecords(context.Background(), "tbl1", []map[string]any{{ColCompany: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1254045")
}
