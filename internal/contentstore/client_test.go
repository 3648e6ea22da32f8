package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPut(t *testing.T) {
	var gotAuth string
	var gotData []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/v1/blobs" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatal(err)
		}
		gotData, _ = io.ReadAll(file)

		json.NewEncoder(w).Encode(map[string]string{"locator": "bafyabc"})
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithAuthToken("jwt-token"))
	if err != nil {
		t.Fatal(err)
	}

	locator, err := c.Put(context.Background(), []byte("encrypted bytes"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if locator != "bafyabc" {
		t.Errorf("locator = %q, want %q", locator, "bafyabc")
	}
	if gotAuth != "Bearer jwt-token" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if !bytes.Equal(gotData, []byte("encrypted bytes")) {
		t.Error("uploaded bytes do not match")
	}
}

func TestPut_MissingLocator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	if _, err := c.Put(context.Background(), []byte("x")); !errors.Is(err, ErrMissingLocator) {
		t.Errorf("expected ErrMissingLocator, got %v", err)
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/blobs/bafyabc":
			w.Write([]byte("ciphertext"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, _ := New(srv.URL)

	data, err := c.Get(context.Background(), "bafyabc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(data, []byte("ciphertext")) {
		t.Errorf("data = %q", data)
	}

	if _, err := c.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/blobs/bafyabc" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := New(srv.URL)

	ok, err := c.Available(context.Background(), "bafyabc")
	if err != nil || !ok {
		t.Errorf("Available(existing) = %v, %v", ok, err)
	}
	ok, err = c.Available(context.Background(), "missing")
	if err != nil || ok {
		t.Errorf("Available(missing) = %v, %v", ok, err)
	}
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("pinning backend down"))
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Get(context.Background(), "bafyabc")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", se.StatusCode)
	}
}
