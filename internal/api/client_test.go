package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"omenu/internal/menu"
)

func TestFetchMenuBooks(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/menu-books" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `[{"id": "w1", "status": "ready"}, {"id": "w2", "status": "ready"}]`)
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		books, err := client.FetchMenuBooks(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(books) != 2 || books[0].ID != "w1" {
			t.Fatalf("Unexpected books: %v", books)
		}
	})

	t.Run("ServerErrorMessageExtraction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprintln(w, `{"detail": {"message": "generation backend down"}}`)
		}))
		defer server.Close()

		client := NewClient(server.URL, "")
		_, err := client.FetchMenuBooks(context.Background())
		var serverErr *ServerError
		if !errors.As(err, &serverErr) {
			t.Fatalf("Expected ServerError, got %v", err)
		}
		if serverErr.Status != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", serverErr.Status)
		}
		if !strings.Contains(serverErr.Message, "generation backend down") {
			t.Errorf("Expected extracted message, got %q", serverErr.Message)
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		// A closed server makes the transport fail outright.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(server.URL, "")
		_, err := client.FetchMenuBooks(context.Background())
		if !IsUnreachable(err) {
			t.Fatalf("Expected UnreachableError, got %v", err)
		}
		if IsTimeout(err) {
			t.Error("Unreachable error misclassified as timeout")
		}
	})
}

func TestBearerTokenAttached(t *testing.T) {
	secret := "test-secret"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			t.Errorf("Expected bearer token, got %q", header)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithAudience(tokenAudience))
		if err != nil || !token.Valid {
			t.Errorf("Invalid token: %v", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `{"currentWeekId": "", "currentDayIndex": 0, "isMenuOpen": true}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, secret)
	state, err := client.FetchUIState(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !state.IsMenuOpen {
		t.Error("Unexpected UI state payload")
	}
}

func TestGenerateTimeoutClassification(t *testing.T) {
	if !IsTimeout(classifyTransportError("http://x", context.DeadlineExceeded)) {
		t.Error("DeadlineExceeded not classified as timeout")
	}
	if IsTimeout(classifyTransportError("http://x", errors.New("connection refused"))) {
		t.Error("Plain transport error misclassified as timeout")
	}
}

func TestErrorMessageShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"Message", `{"message": "nope"}`, "nope"},
		{"DetailString", `{"detail": "bad request"}`, "bad request"},
		{"DetailObject", `{"detail": {"message": "inner"}}`, "inner"},
		{"Garbage", `not json`, "fallback"},
		{"Empty", `{}`, "fallback"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorMessage([]byte(tc.body), "fallback"); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSaveAndFetchExtrasEnvelope(t *testing.T) {
	var saved menu.MenuExtras
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{"extras": {}}`)
		default:
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{"extras": null}`)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if err := client.SaveMenuExtras(context.Background(), saved); err != nil {
		t.Fatalf("SaveMenuExtras failed: %v", err)
	}
	extras, err := client.FetchMenuExtras(context.Background())
	if err != nil {
		t.Fatalf("FetchMenuExtras failed: %v", err)
	}
	if extras == nil {
		t.Error("Expected null extras to normalize to an empty map")
	}
}
