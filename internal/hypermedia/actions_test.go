package hypermedia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHas_MatchesPathAndMethod(t *testing.T) {
	actions := []Action{
		{Href: "/api/v1/offers/7/messages", Method: "POST"},
		{Href: "/api/v1/offers/7/status", Method: "PATCH"},
	}

	assert.True(t, Has(actions, "/api/v1/offers/7/messages", "POST"))
	assert.True(t, Has(actions, "/api/v1/offers/7/messages", "post"))
	assert.True(t, Has(actions, "/api/v1/offers/7/messages", " POST "))
	assert.False(t, Has(actions, "/api/v1/offers/7/messages", "PATCH"))
	assert.False(t, Has(actions, "/api/v1/offers/8/messages", "POST"))
}

func TestHas_IgnoresTrailingSlashQueryAndHost(t *testing.T) {
	actions := []Action{
		{Href: "https://backend.example.com/api/v1/requests/", Method: "GET"},
	}

	assert.True(t, Has(actions, "/api/v1/requests", "GET"))
	assert.True(t, Has(actions, "/api/v1/requests?page=2#top", "GET"))
	assert.True(t, Has(actions, "http://other.host/api/v1/requests/", "GET"))
	assert.False(t, Has(actions, "/api/v1/requests/open", "GET"))
}

func TestHas_TemplateSegments(t *testing.T) {
	actions := []Action{
		{Href: "/api/v1/offers/{id}/files/{file_id}", Method: "DELETE"},
	}

	// Шаблон со стороны сервера совпадает с конкретным путём и наоборот.
	assert.True(t, Has(actions, "/api/v1/offers/12/files/34", "DELETE"))
	assert.True(t, Has(actions, "/api/v1/offers/{id}/files/{file_id}", "DELETE"))

	concrete := []Action{{Href: "/api/v1/offers/12/files/34", Method: "DELETE"}}
	assert.True(t, Has(concrete, "/api/v1/offers/{id}/files/{file_id}", "DELETE"))

	// Шаблон не покрывает пути другой длины.
	assert.False(t, Has(actions, "/api/v1/offers/12/files", "DELETE"))
	assert.False(t, Has(actions, "/api/v1/offers/12/files/34/extra", "DELETE"))
}

func TestFind_ReturnsMatchedAction(t *testing.T) {
	actions := []Action{
		{Href: "/api/v1/requests/5/offers", Method: "POST"},
	}

	found := Find(actions, "/api/v1/requests/5/offers/", "post")
	require.NotNil(t, found)
	assert.Equal(t, "/api/v1/requests/5/offers", found.Href)

	assert.Nil(t, Find(nil, "/api/v1/requests/5/offers", "POST"))
}

func TestInstantiate(t *testing.T) {
	assert.Equal(t, "/api/v1/requests/5/offers", Instantiate("/api/v1/requests/{id}/offers", "5"))
	assert.Equal(t, "/api/v1/offers/1/files/2", Instantiate("/api/v1/offers/{id}/files/{file_id}", "1", "2"))
	// Конкретный href остаётся без изменений.
	assert.Equal(t, "/api/v1/requests/5/offers", Instantiate("/api/v1/requests/5/offers", "9"))
}

func TestPath(t *testing.T) {
	// Относительный href не меняется, абсолютный сводится к пути.
	assert.Equal(t, "/api/v1/requests/5/offers", Path("/api/v1/requests/5/offers"))
	assert.Equal(t, "/api/v1/requests/5/offers", Path("https://backend.example.com/api/v1/requests/5/offers"))
	assert.Equal(t, "/api/v1/requests?page=2", Path("http://backend.example.com/api/v1/requests?page=2#top"))
	assert.Equal(t, "/", Path("https://backend.example.com"))
}

func TestLinks_Unmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Links
	}{
		{
			name: "single_object",
			raw:  `{"available_action": {"href": "/api/v1/requests", "method": "GET"}}`,
			want: Links{{Href: "/api/v1/requests", Method: "GET"}},
		},
		{
			name: "array_snake",
			raw:  `{"available_actions": [{"href": "/a", "method": "GET"}, {"href": "/b", "method": "POST"}]}`,
			want: Links{{Href: "/a", Method: "GET"}, {Href: "/b", Method: "POST"}},
		},
		{
			name: "array_camel",
			raw:  `{"availableActions": [{"href": "/c", "method": "PATCH"}]}`,
			want: Links{{Href: "/c", Method: "PATCH"}},
		},
		{
			name: "snake_wins_over_camel",
			raw:  `{"available_action": {"href": "/a", "method": "GET"}, "availableActions": [{"href": "/b", "method": "GET"}]}`,
			want: Links{{Href: "/a", Method: "GET"}},
		},
		{
			name: "empty",
			raw:  `{}`,
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var links Links
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &links))
			assert.Equal(t, tc.want, links)
		})
	}
}
