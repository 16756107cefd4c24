package trackvia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_Paginated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openapi/users", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("start"))
		assert.Equal(t, "10", r.URL.Query().Get("max"))

		_, _ = w.Write([]byte(`{
			"data": [{"id":1,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","status":"ACTIVE"}],
			"totalCount": 1
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	seedTokens(client, "tok-1", "refresh-1")

	users, err := client.Users(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0].FirstName)
	assert.Equal(t, "ada@example.com", users[0].Email)
}

func TestCreateUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "grace@example.com", q.Get("email"))
		assert.Equal(t, "Grace", q.Get("firstName"))
		assert.Equal(t, "Hopper", q.Get("lastName"))
		assert.Equal(t, "America/Denver", q.Get("timeZone"))

		_, _ = w.Write([]byte(`{
			"data": [{"id":9,"firstName":"Grace","lastName":"Hopper","email":"grace@example.com","status":"PENDING"}],
			"totalCount": 1
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	seedTokens(client, "tok-1", "refresh-1")

	u, err := client.CreateUser(context.Background(), "grace@example.com", "Grace", "Hopper", "America/Denver")
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)
	assert.Equal(t, "PENDING", u.Status)
}

func TestCreateUser_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[],"totalCount":0}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	seedTokens(client, "tok-1", "refresh-1")

	_, err := client.CreateUser(context.Background(), "x@example.com", "X", "Y", "UTC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user")
}
