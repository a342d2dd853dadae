// Package assets loads the viewer's mesh and texture payloads.
package assets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Kind identifies which asset a load result belongs to.
type Kind int

const (
	KindMesh Kind = iota
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// Result is the completion of one asynchronous load. Exactly one Result is
// delivered per request, carrying either the payload or the error.
type Result struct {
	Kind Kind
	Data []byte
	Err  error
}

// Loader fetches assets from local paths or http(s) URLs.
type Loader struct {
	client *http.Client
}

// NewLoader creates a new loader.
func NewLoader() *Loader {
	// No request timeout: a fetch either completes or the asset simply
	// stays at its placeholder, which is a valid state for the viewer.
	return &Loader{client: &http.Client{}}
}

// Load fetches the asset at path, which is either a filesystem path or an
// http(s) URL.
func (l *Loader) Load(path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return l.loadHTTP(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) loadHTTP(url string) ([]byte, error) {
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, nil
}

// LoadAsync starts a fire-and-forget fetch and delivers its Result on ch.
// There is no cancellation: an in-flight fetch always runs to completion and
// its result is delivered even if it is stale by then.
func (l *Loader) LoadAsync(kind Kind, path string, ch chan<- Result) {
	go func() {
		data, err := l.Load(path)
		ch <- Result{Kind: kind, Data: data, Err: err}
	}()
}
