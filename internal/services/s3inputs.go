package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

// S3Location is a parsed s3://bucket/key uri
type S3Location struct {
	Bucket string
	Key    string
}

// ParseS3URI splits an s3:// uri into bucket and key
func ParseS3URI(uri string) (S3Location, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return S3Location{}, fmt.Errorf("not an s3 uri: %q", uri)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return S3Location{}, fmt.Errorf("s3 uri has no bucket: %q", uri)
	}
	return S3Location{Bucket: bucket, Key: key}, nil
}

// StaticPrefix returns the part of a key pattern before its first wildcard
func StaticPrefix(pattern string) string {
	if i := strings.IndexAny(pattern, "*?[{"); i >= 0 {
		return pattern[:i]
	}
	return pattern
}

// InputChecker verifies that input state files exist before a launch
type InputChecker struct {
	client s3.ListObjectsV2APIClient
}

func NewInputChecker(client s3.ListObjectsV2APIClient) *InputChecker {
	return &InputChecker{client: client}
}

// CountStates lists the objects matching an s3:// glob. `*` stays within one
// path segment, `**` spans segments.
func (c *InputChecker) CountStates(ctx context.Context, uri string) (int, error) {
	logger := zerolog.Ctx(ctx)

	loc, err := ParseS3URI(uri)
	if err != nil {
		return 0, err
	}

	matcher, err := glob.Compile(loc.Key, '/')
	if err != nil {
		return 0, fmt.Errorf("invalid input glob %q: %w", loc.Key, err)
	}

	prefix := StaticPrefix(loc.Key)
	logger.Debug().Str("bucket", loc.Bucket).Str("prefix", prefix).Msg("Listing input states")

	count := 0
	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(loc.Bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			var noBucket *types.NoSuchBucket
			if errors.As(err, &noBucket) {
				return 0, fmt.Errorf("bucket %s does not exist: %w", loc.Bucket, err)
			}

			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				return 0, fmt.Errorf("failed to list s3://%s/%s (%s): %w", loc.Bucket, prefix, apiErr.ErrorCode(), err)
			}
			return 0, fmt.Errorf("failed to list s3://%s/%s: %w", loc.Bucket, prefix, err)
		}

		for _, obj := range page.Contents {
			if obj.Key != nil && matcher.Match(*obj.Key) {
				count++
			}
		}
	}

	return count, nil
}
