package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMessages_ParsesActionsFromLinks(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{
			name: "snake_case_array",
			body: `{
				"messages": [{"id": 1, "offer_id": 5, "author_login": "supplier", "text": "Добрый день", "status": "send"}],
				"_links": {"available_actions": [{"href": "/api/v1/offers/5/messages", "method": "POST"}]}
			}`,
		},
		{
			name: "camel_case_array",
			body: `{
				"messages": [{"id": 1, "offer_id": 5, "author_login": "supplier", "text": "Добрый день", "status": "send"}],
				"_links": {"availableActions": [{"href": "/api/v1/offers/5/messages", "method": "POST"}]}
			}`,
		},
		{
			name: "single_object",
			body: `{
				"messages": [{"id": 1, "offer_id": 5, "author_login": "supplier", "text": "Добрый день", "status": "send"}],
				"_links": {"available_action": {"href": "/api/v1/offers/5/messages", "method": "POST"}}
			}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/offers/5/messages", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			c := newTestClient(t, srv)

			page, err := ListMessages(context.Background(), c, 5)
			require.NoError(t, err)
			require.Len(t, page.Messages, 1)
			assert.Equal(t, "Добрый день", page.Messages[0].Text)
			require.Len(t, page.Actions, 1)
			assert.Equal(t, "/api/v1/offers/5/messages", page.Actions[0].Href)
			assert.Equal(t, "POST", page.Actions[0].Method)
		})
	}
}

func TestListMessages_NoLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages": []}`))
	}))
	c := newTestClient(t, srv)

	page, err := ListMessages(context.Background(), c, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
	assert.Empty(t, page.Actions)
}

func TestMarkMessagesReceived_SendsIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/offers/5/messages/received", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message_ids": [10, 11]}`, string(body))
	}))
	c := newTestClient(t, srv)

	err := MarkMessagesReceived(context.Background(), c, 5, []int64{10, 11})
	assert.NoError(t, err)
}

func TestMarkMessagesStatus_EmptyListSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	c := newTestClient(t, srv)

	require.NoError(t, MarkMessagesReceived(context.Background(), c, 5, nil))
	require.NoError(t, MarkMessagesRead(context.Background(), c, 5, []int64{}))
	assert.Zero(t, calls.Load())
}

func TestSendMessage_PostsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/offers/5/messages", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"text": "Уточните срок поставки"}`, string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	c := newTestClient(t, srv)

	err := SendMessage(context.Background(), c, 5, "Уточните срок поставки")
	assert.NoError(t, err)
}
