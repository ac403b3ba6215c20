// Feishu bitable client: tenant token auth, table listing, paginated
// record listing, batch delete/create. Only what the sync engine needs.

package feishu

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://open.feishu.cn"

// Bitable column names, matching the remote table schema.
const (
	ColCompany      = "公司"
	ColPosition     = "岗位"
	ColCompanyType  = "公司类型"
	ColIndustry     = "行业"
	ColLocation     = "地点"
	ColTargetClass  = "届别"
	ColApplyLink    = "网申链接"
	ColAnnounceLink = "公告链接"
	ColDeadline     = "截止时间"
	ColUpdated      = "更新日期"
)

// ListPageSize is the bitable list-records maximum.
const ListPageSize = 500

type Client struct {
	http      *resty.Client
	appID     string
	appSecret string
	appToken  string
}

func NewClient(appID, appSecret, appToken string) *Client {
	http := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})

	return &Client{
		http:      http,
		appID:     appID,
		appSecret: appSecret,
		appToken:  appToken,
	}
}

// SetBaseURL points the client at a different endpoint (tests).
func (c *Client) SetBaseURL(baseURL string) {
	c.http.SetBaseURL(baseURL)
}

type apiEnvelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type tokenResponse struct {
	apiEnvelope
	TenantAccessToken string `json:"tenant_access_token"`
	Expire            int    `json:"expire"`
}

// Authenticate obtains a tenant access token for the rest of the run.
// Failure here is fatal for the run: nothing can be synced without it.
func (c *Client) Authenticate(ctx context.Context) error {
	var res tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"app_id":     c.appID,
			"app_secret": c.appSecret,
		}).
		SetResult(&res).
		Post("/open-apis/auth/v3/tenant_access_token/internal")
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	if resp.IsError() || res.Code != 0 {
		return fmt.Errorf("token request rejected: code=%d msg=%s", res.Code, res.Msg)
	}

	c.http.SetAuthToken(res.TenantAccessToken)
	return nil
}

type tablesResponse struct {
	apiEnvelope
	Data struct {
		Items []struct {
			TableID string `json:"table_id"`
			Name    string `json:"name"`
		} `json:"items"`
	} `json:"data"`
}

// FirstTableID returns the id of the first table in the bitable app.
func (c *Client) FirstTableID(ctx context.Context) (string, error) {
	var res tablesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("page_size", "100").
		SetResult(&res).
		Get(fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables", c.appToken))
	if err != nil {
		return "", fmt.Errorf("list tables failed: %w", err)
	}
	if resp.IsError() || res.Code != 0 {
		return "", fmt.Errorf("list tables rejected: code=%d msg=%s", res.Code, res.Msg)
	}
	if len(res.Data.Items) == 0 {
		return "", fmt.Errorf("bitable app %s has no tables", c.appToken)
	}
	return res.Data.Items[0].TableID, nil
}

type recordsResponse struct {
	apiEnvelope
	Data struct {
		Items []struct {
			RecordID string `json:"record_id"`
		} `json:"items"`
		HasMore   bool   `json:"has_more"`
		PageToken string `json:"page_token"`
	} `json:"data"`
}

// ListRecordIDs follows the pagination cursor to exhaustion and returns
// every record id currently in the table.
func (c *Client) ListRecordIDs(ctx context.Context, tableID string) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		req := c.http.R().
			SetContext(ctx).
			SetQueryParam("page_size", fmt.Sprintf("%d", ListPageSize))
		if pageToken != "" {
			req.SetQueryParam("page_token", pageToken)
		}

		var res recordsResponse
		resp, err := req.
			SetResult(&res).
			Get(fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records", c.appToken, tableID))
		if err != nil {
			return nil, fmt.Errorf("list records failed: %w", err)
		}
		if resp.IsError() || res.Code != 0 {
			return nil, fmt.Errorf("list records rejected: code=%d msg=%s", res.Code, res.Msg)
		}

		for _, item := range res.Data.Items {
			ids = append(ids, item.RecordID)
		}
		if !res.Data.HasMore || res.Data.PageToken == "" {
			return ids, nil
		}
		pageToken = res.Data.PageToken
	}
}

// DeleteRecords removes one batch of records. Callers must respect the
// 500-id batch limit.
func (c *Client) DeleteRecords(ctx context.Context, tableID string, recordIDs []string) error {
	var res apiEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"records": recordIDs}).
		SetResult(&res).
		Post(fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records/batch_delete", c.appToken, tableID))
	if err != nil {
		return fmt.Errorf("batch delete failed: %w", err)
	}
	if resp.IsError() || res.Code != 0 {
		return fmt.Errorf("batch delete rejected: code=%d msg=%s", res.Code, res.Msg)
	}
	return nil
}

// CreateRecords inserts one batch of rows, each a column→value map.
// Callers must respect the 100-row batch limit.
func (c *Client) CreateRecords(ctx context.Context, tableID string, rows []map[string]any) error {
	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		records = append(records, map[string]any{"fields": row})
	}

	var res apiEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"records": records}).
		SetResult(&res).
		Post(fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records/batch_create", c.appToken, tableID))
	if err != nil {
		return fmt.Errorf("batch create failed: %w", err)
	}
	if resp.IsError() || res.Code != 0 {
		return fmt.Errorf("batch create rejected: code=%d msg=%s", res.Code, res.Msg)
	}
	return nil
}
