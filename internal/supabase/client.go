// Package supabase wires the PostgREST and Storage clients for one hosted project.
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
	storage_go "github.com/supabase-community/storage-go"
)

const (
	defaultTimeout = 30 * time.Second
	defaultSchema  = "public"
)

type Config struct {
	ProjectURL string
	ServiceKey string
	// Timeout bounds the wait for PostgREST response headers; zero means 30s.
	Timeout time.Duration
}

// Client authenticates every call with the service role key.
type Client struct {
	storageURL string
	key        string
	rest       *postgrest.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	base := strings.TrimRight(cfg.ProjectURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid project URL %q", cfg.ProjectURL)
	}

	rest := postgrest.NewClient(base+"/rest/v1", defaultSchema, map[string]string{
		"apikey":        cfg.ServiceKey,
		"Authorization": "Bearer " + cfg.ServiceKey,
	})
	if rest.ClientError != nil {
		return nil, fmt.Errorf("postgrest client: %w", rest.ClientError)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.ResponseHeaderTimeout = timeout
	rest.Transport.Parent = tr

	return &Client{
		storageURL: base + "/storage/v1",
		key:        cfg.ServiceKey,
		rest:       rest,
	}, nil
}

// From starts a PostgREST query on table.
func (c *Client) From(table string) *postgrest.QueryBuilder {
	return c.rest.From(table)
}

// Storage returns a new storage client. Upload options are kept on the
// client's headers, so a client must not be shared between uploads.
func (c *Client) Storage() *storage_go.Client {
	return storage_go.NewClient(c.storageURL, c.key, map[string]string{"apikey": c.key})
}

// DecodeRows decodes a PostgREST JSON array into dest. Numbers stay json.Number
// so bigint ids keep every digit.
func DecodeRows(body []byte, dest any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}
