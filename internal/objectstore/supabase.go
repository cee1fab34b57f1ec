package objectstore

import (
	"bytes"
	"context"
	"fmt"

	storage_go "github.com/supabase-community/storage-go"

	"homeservices/internal/supabase"
)

// Supabase stores objects in a Supabase Storage bucket.
type Supabase struct {
	client *supabase.Client
	bucket string
}

func NewSupabase(client *supabase.Client, bucket string) *Supabase {
	return &Supabase{client: client, bucket: bucket}
}

// Upload never overwrites an existing object.
func (s *Supabase) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	upsert := false
	_, err := s.client.Storage().UploadFile(s.bucket, escapePath(path), bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", s.bucket, path, err)
	}
	return nil
}

func (s *Supabase) PublicURL(path string) string {
	return s.client.Storage().GetPublicUrl(s.bucket, escapePath(path)).SignedURL
}
