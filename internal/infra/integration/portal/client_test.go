package portal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// portalStub sobe um Portal fake com auth e handlers configuráveis
func portalStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(map[string]any{"token": "fake-token", "expires_in": 3600})
	})
	mux.HandleFunc("/", handler)
	return httptest.NewServer(mux)
}

func TestPing(t *testing.T) {
	t.Run("Portal no ar", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/health", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(server.URL, "id", "secret")
		assert.True(t, client.Ping(context.Background()))
	})

	t.Run("Portal fora", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(server.URL, "id", "secret")
		assert.False(t, client.Ping(context.Background()))
	})

	t.Run("Endereço inalcançável", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", "id", "secret")
		assert.False(t, client.Ping(context.Background()))
	})
}

func TestCreateMember(t *testing.T) {
	input := MemberInput{Name: "Briane Doe", Email: "briane@example.com", ExternalRef: "101"}

	t.Run("Criação nova", func(t *testing.T) {
		server := portalStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/members", r.URL.Path)
			assert.Equal(t, "Bearer fake-token", r.Header.Get("Authorization"))

			var got MemberInput
			json.NewDecoder(r.Body).Decode(&got)
			assert.Equal(t, "101", got.ExternalRef)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "member-9"})
		})
		defer server.Close()

		client := NewClient(server.URL, "id", "secret")
		memberID, err := client.CreateMember(context.Background(), input)

		assert.NoError(t, err)
		assert.Equal(t, "member-9", memberID)
	})

	t.Run("409 reaproveita o membro existente", func(t *testing.T) {
		server := portalStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{
				"error":     "member already exists",
				"member_id": "member-9",
			})
		})
		defer server.Close()

		client := NewClient(server.URL, "id", "secret")
		memberID, err := client.CreateMember(context.Background(), input)

		assert.NoError(t, err)
		assert.Equal(t, "member-9", memberID)
	})

	t.Run("409 sem member_id é erro", func(t *testing.T) {
		server := portalStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"conflict"}`))
		})
		defer server.Close()

		client := NewClient(server.URL, "id", "secret")
		_, err := client.CreateMember(context.Background(), input)

		assert.Error(t, err)
	})
}

func TestUpdateMember(t *testing.T) {
	input := MemberInput{Name: "Briane Doe", Email: "briane@example.com", ExternalRef: "101"}

	t.Run("Atualização normal", func(t *testing.T) {
		server := portalStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/members/member-9", r.URL.Path)

			json.NewEncoder(w).Encode(map[string]string{"id": "member-9"})
		})
		defer server.Close()

		client := NewClient(server.URL, "id", "secret")
		memberID, err := client.UpdateMember(context.Background(), "member-9", input)

		assert.NoError(t, err)
		assert.Equal(t, "member-9", memberID)
	})

	t.Run("404 recria o membro", func(t *testing.T) {
		server := portalStub(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPut {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			// Fallback de criação
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/members", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "member-10"})
		})
		defer server.Close()

		client := NewClient(server.URL, "id", "secret")
		memberID, err := client.UpdateMember(context.Background(), "member-9", input)

		assert.NoError(t, err)
		assert.Equal(t, "member-10", memberID)
	})
}

func TestTokenIsReusedWhileValid(t *testing.T) {
	authCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		authCalls++
		json.NewEncoder(w).Encode(map[string]any{"token": "fake-token", "expires_in": 3600})
	})
	mux.HandleFunc("/members", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "member-1"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, "id", "secret")
	input := MemberInput{Name: "Briane", Email: "briane@example.com", ExternalRef: "101"}

	_, err := client.CreateMember(context.Background(), input)
	assert.NoError(t, err)
	_, err = client.CreateMember(context.Background(), input)
	assert.NoError(t, err)

	assert.Equal(t, 1, authCalls)
}
