package assets

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.mesh")
	if err := os.WriteFile(path, []byte("1.0 2.0 3.0 0.0 0.0\n"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	l := NewLoader()
	data, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "1.0 2.0 3.0 0.0 0.0\n" {
		t.Errorf("unexpected data: %q", data)
	}
}

func TestLoadFileMissing(t *testing.T) {
	l := NewLoader()
	if _, err := l.Load(filepath.Join(t.TempDir(), "nope.mesh")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	l := NewLoader()
	data, err := l.Load(srv.URL + "/world.mesh")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("unexpected data: %q", data)
	}
}

func TestLoadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	l := NewLoader()
	if _, err := l.Load(srv.URL + "/missing"); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestLoadAsyncDeliversExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	ch := make(chan Result, 2)
	l := NewLoader()
	l.LoadAsync(KindTexture, path, ch)

	select {
	case res := <-ch:
		if res.Kind != KindTexture {
			t.Errorf("kind = %v, want texture", res.Kind)
		}
		if res.Err != nil {
			t.Errorf("unexpected error: %v", res.Err)
		}
		if len(res.Data) != 3 {
			t.Errorf("data length = %d, want 3", len(res.Data))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for async result")
	}

	// No second delivery.
	select {
	case res := <-ch:
		t.Errorf("unexpected extra result: %+v", res)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLoadAsyncFailure(t *testing.T) {
	ch := make(chan Result, 1)
	l := NewLoader()
	l.LoadAsync(KindMesh, filepath.Join(t.TempDir(), "absent"), ch)

	res := <-ch
	if res.Err == nil {
		t.Error("expected error result for missing asset")
	}
	if res.Kind != KindMesh {
		t.Errorf("kind = %v, want mesh", res.Kind)
	}
}
