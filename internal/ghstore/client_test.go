package ghstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetFile(t *testing.T) {
	content := `{"MSFT.O": {"name": "Microsoft", "data": {}}}`
	// The API emits base64 with embedded newlines.
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	wrapped := encoded[:10] + "\n" + encoded[10:] + "\n"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/someone/market-data/contents/market_data/US_Stocks.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "token secret" {
			t.Errorf("Authorization = %q, want %q", got, "token secret")
		}
		json.NewEncoder(w).Encode(map[string]string{
			"content": wrapped,
			"sha":     "abc123",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "someone/market-data", "secret", 5*time.Second)

	got, sha, err := client.GetFile(context.Background(), "market_data/US_Stocks.json")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}
	if sha != "abc123" {
		t.Errorf("sha = %q, want abc123", sha)
	}
}

func TestGetFileNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, "someone/market-data", "secret", 5*time.Second)

	_, _, err := client.GetFile(context.Background(), "market_data/FX.json")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPutFileCreate(t *testing.T) {
	var putBody putRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &putBody); err != nil {
				t.Errorf("bad PUT body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{}`)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, "someone/market-data", "secret", 5*time.Second)

	content := []byte(`{"GCc1": {"name": "Gold", "data": {}}}`)
	err := client.PutFile(context.Background(), "market_data/Commodity.json", content, "Update Commodity data - 2023-05-01")
	if err != nil {
		t.Fatalf("PutFile: %v", err)
	}

	if putBody.Message != "Update Commodity data - 2023-05-01" {
		t.Errorf("message = %q", putBody.Message)
	}
	if putBody.SHA != "" {
		t.Errorf("sha = %q, want empty on create", putBody.SHA)
	}
	decoded, err := base64.StdEncoding.DecodeString(putBody.Content)
	if err != nil {
		t.Fatalf("content not valid base64: %v", err)
	}
	if string(decoded) != string(content) {
		t.Errorf("decoded content = %q, want %q", decoded, content)
	}
}

func TestPutFileUpdateSendsSHA(t *testing.T) {
	var putBody putRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]string{
				"content": base64.StdEncoding.EncodeToString([]byte("{}")),
				"sha":     "oldsha",
			})
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &putBody)
			fmt.Fprint(w, `{}`)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, "someone/market-data", "secret", 5*time.Second)

	err := client.PutFile(context.Background(), "market_data/FX.json", []byte("{}"), "Update FX data - 2023-05-01")
	if err != nil {
		t.Fatalf("PutFile: %v", err)
	}
	if putBody.SHA != "oldsha" {
		t.Errorf("sha = %q, want oldsha (required for updates)", putBody.SHA)
	}
}

func TestPutFileUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"message": "Validation Failed"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := New(srv.URL, "someone/market-data", "secret", 5*time.Second)

	err := client.PutFile(context.Background(), "market_data/FX.json", []byte("{}"), "msg")
	if err == nil {
		t.Error("expected error for failed upload")
	}
}
