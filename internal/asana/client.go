package asana

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"church-calendar/config"
	apperrors "church-calendar/pkg/app_errors"
	"church-calendar/pkg/logger"

	"go.uber.org/zap"
)

const optFields = "name,projects.gid,projects.name,custom_fields.gid,custom_fields.name,custom_fields.display_value,due_on"

// Task is the subset of an Asana task the sync pipeline consumes.
type Task struct {
	GID          string        `json:"gid"`
	Name         string        `json:"name"`
	DueOn        string        `json:"due_on"`
	CustomFields []CustomField `json:"custom_fields"`
}

type CustomField struct {
	GID          string `json:"gid"`
	Name         string `json:"name"`
	DisplayValue string `json:"display_value"`
}

// CustomFieldValue returns the display value of the named custom field,
// or "" when the task does not carry it.
func (t Task) CustomFieldValue(name string) string {
	for _, cf := range t.CustomFields {
		if cf.Name == name {
			return cf.DisplayValue
		}
	}
	return ""
}

type taskPage struct {
	Data     []Task `json:"data"`
	NextPage *struct {
		Offset string `json:"offset"`
	} `json:"next_page"`
}

type Client struct {
	client     *http.Client
	baseURL    string
	token      string
	projectGID string
	log        *zap.Logger
}

func NewClient(cfg config.AsanaConfig) *Client {
	return &Client{
		client:     &http.Client{Timeout: 15 * time.Second},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		projectGID: cfg.ProjectGID,
		log:        logger.WithComponent("asana"),
	}
}

// Configured reports whether both the bearer token and project GID are
// set. Sync short-circuits when they are not.
func (c *Client) Configured() bool {
	return c.token != "" && c.projectGID != ""
}

// FetchProjectTasks pulls every task in the configured project, following
// next_page offsets until the API stops returning one.
func (c *Client) FetchProjectTasks(ctx context.Context) ([]Task, error) {
	if !c.Configured() {
		return nil, apperrors.ErrMissingAsanaAuth
	}

	endpoint := fmt.Sprintf("%s/projects/%s/tasks", c.baseURL, c.projectGID)
	offset := ""
	all := make([]Task, 0)

	for {
		page, err := c.fetchPage(ctx, endpoint, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)

		if page.NextPage == nil || page.NextPage.Offset == "" {
			break
		}
		offset = page.NextPage.Offset
	}

	c.log.Info("fetched asana tasks", zap.Int("count", len(all)))
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint, offset string) (*taskPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("limit", "100")
	q.Set("opt_fields", optFields)
	if offset != "" {
		q.Set("offset", offset)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asana: unexpected status %s", resp.Status)
	}

	var page taskPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}
