package storage

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloudflareR2UploaderRequiresFields(t *testing.T) {
	valid := CloudflareR2UploaderConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "boards",
		PublicBaseURL:   "https://cdn.example.com",
	}

	tests := []struct {
		name   string
		mutate func(c *CloudflareR2UploaderConfig)
	}{
		{"no account", func(c *CloudflareR2UploaderConfig) { c.AccountID = "" }},
		{"no bucket", func(c *CloudflareR2UploaderConfig) { c.BucketName = "" }},
		{"no public url", func(c *CloudflareR2UploaderConfig) { c.PublicBaseURL = "" }},
		{"no access key", func(c *CloudflareR2UploaderConfig) { c.AccessKeyID = "" }},
		{"no secret", func(c *CloudflareR2UploaderConfig) { c.SecretAccessKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			_, err := NewCloudflareR2Uploader(context.Background(), cfg)
			assert.ErrorContains(t, err, "invalid Cloudflare R2 configuration")
		})
	}
}

func TestPublicURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base, err := url.Parse("https://cdn.example.com/public/")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/public/leaderboards/cup/latest.json",
		publicURL(base, "/leaderboards/cup/latest.json", logger))
	assert.Equal(t, "", publicURL(base, "", logger))
	assert.Equal(t, "", publicURL(nil, "a.json", logger))
}

func TestCacheControlFor(t *testing.T) {
	assert.Equal(t, "no-cache, max-age=0", cacheControlFor("leaderboards/cup/latest.json"))
	assert.Contains(t, cacheControlFor("leaderboards/cup/archive/123.json"), "immutable")
}
