package asana

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"church-calendar/config"
	apperrors "church-calendar/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchProjectTasks_Paginates(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("offset") == "" {
			fmt.Fprint(w, `{
				"data": [{"gid": "1", "name": "First"}, {"gid": "2", "name": "Second"}],
				"next_page": {"offset": "page2"}
			}`)
			return
		}
		fmt.Fprint(w, `{"data": [{"gid": "3", "name": "Third", "due_on": "2024-05-01"}]}`)
	}))
	defer srv.Close()

	client := NewClient(config.AsanaConfig{
		Token:      "secret",
		ProjectGID: "777",
		BaseURL:    srv.URL,
	})

	tasks, err := client.FetchProjectTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Bearer secret", authHeader)
	assert.Equal(t, "3", tasks[2].GID)
	assert.Equal(t, "2024-05-01", tasks[2].DueOn)
}

func TestClient_FetchProjectTasks_MissingCredentials(t *testing.T) {
	client := NewClient(config.AsanaConfig{BaseURL: "https://app.asana.com/api/1.0"})

	_, err := client.FetchProjectTasks(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrMissingAsanaAuth)
	assert.False(t, client.Configured())
}

func TestClient_FetchProjectTasks_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(config.AsanaConfig{Token: "t", ProjectGID: "p", BaseURL: srv.URL})

	_, err := client.FetchProjectTasks(context.Background())
	assert.Error(t, err)
}

func TestTask_CustomFieldValue(t *testing.T) {
	task := Task{CustomFields: []CustomField{
		{Name: "Ministry", DisplayValue: "Music"},
		{Name: "Content", DisplayValue: ""},
	}}

	assert.Equal(t, "Music", task.CustomFieldValue("Ministry"))
	assert.Equal(t, "", task.CustomFieldValue("Content"))
	assert.Equal(t, "", task.CustomFieldValue("Nope"))
}

func TestFieldMap_Validate(t *testing.T) {
	assert.NoError(t, DefaultFieldMap().Validate())

	missing := DefaultFieldMap()
	missing.Graphics = ""
	assert.Error(t, missing.Validate())

	duplicated := DefaultFieldMap()
	duplicated.Content = duplicated.Ministry
	assert.Error(t, duplicated.Validate())
}
