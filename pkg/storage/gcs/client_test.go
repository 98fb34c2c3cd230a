package gcs

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func staticTokenClient(rt roundTripFunc) *Client {
	return &Client{
		defaultBucket: "bucket",
		tokenSource: &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
			return "token", time.Now().Add(time.Hour), nil
		}},
		httpClient: &http.Client{Transport: rt},
	}
}

func TestUploadSuccess(t *testing.T) {
	t.Parallel()

	var gotBody string
	client := staticTokenClient(func(req *http.Request) *http.Response {
		if req.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", req.Method)
		}
		if req.Header.Get("Authorization") != "Bearer token" {
			t.Fatalf("unexpected auth %s", req.Header.Get("Authorization"))
		}
		if req.Header.Get("Content-Type") != "image/png" {
			t.Fatalf("unexpected content type %s", req.Header.Get("Content-Type"))
		}
		if !strings.Contains(req.URL.RawQuery, "name=media%2Fproduct%2Ffile.png") {
			t.Fatalf("object name missing from query: %s", req.URL.RawQuery)
		}
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{}")),
			Header:     http.Header{},
		}
	})

	err := client.Upload(context.Background(), "media/product/file.png", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotBody != "png-bytes" {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestUploadRequiresKey(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(func(req *http.Request) *http.Response {
		t.Fatal("no request expected")
		return nil
	})
	if err := client.Upload(context.Background(), "", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestDeleteSuccess(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(func(req *http.Request) *http.Response {
		if req.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", req.Method)
		}
		if req.Header.Get("Authorization") != "Bearer token" {
			t.Fatalf("unexpected auth %s", req.Header.Get("Authorization"))
		}
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     http.Header{},
		}
	})

	if err := client.Delete(context.Background(), "media/file.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	t.Parallel()

	client := staticTokenClient(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     http.Header{},
		}
	})

	if err := client.Delete(context.Background(), "media/file.png"); err != nil {
		t.Fatalf("Delete of missing object should succeed: %v", err)
	}
}

func TestObjectURL(t *testing.T) {
	t.Parallel()

	client := &Client{defaultBucket: "bucket"}
	if got := client.ObjectURL("media/file.png"); got != "https://storage.googleapis.com/bucket/media/file.png" {
		t.Fatalf("unexpected url %s", got)
	}
	if got := client.ObjectURL(""); got != "" {
		t.Fatalf("expected empty url for empty key, got %s", got)
	}
}
