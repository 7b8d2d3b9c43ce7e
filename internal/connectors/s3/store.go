// Package s3 implements the object-store seam for the s3 and s3a schemes
// using the AWS SDK. Listing semantics and path mapping live in the generic
// objstore connector; this package is SDK glue only.
package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// Options hold S3 access parameters. Zero values fall back to the default
// AWS credential chain and endpoints.
type Options struct {
	// Region overrides the resolved AWS region.
	Region string

	// Endpoint points at an S3-compatible server (MinIO, localstack).
	// Path-style addressing is enabled when set.
	Endpoint string

	// AccessKeyID / SecretAccessKey / SessionToken configure static
	// credentials when AccessKeyID is non-empty.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// Anonymous disables request signing for public buckets.
	Anonymous bool
}

// Store is an ObjectStore backed by S3.
type Store struct {
	client *awss3.Client
}

// New builds an S3 store from options and the ambient AWS configuration.
func New(ctx context.Context, opts Options) (*Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Anonymous {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}))
	} else if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, opts.SessionToken)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Store{client: client}, nil
}

// Ls lists the direct children of path. Subdirectory prefixes are reported
// as zero-size entries, matching how cloud stores expose placeholders.
func (s *Store) Ls(ctx context.Context, path string) ([]driven.ObjectInfo, error) {
	bucket, key := splitBucketKey(path)

	prefix := key
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	infos, err := s.list(ctx, bucket, prefix, true)
	if err != nil {
		return nil, err
	}
	if len(infos) > 0 || key == "" {
		return infos, nil
	}

	// The location may denote a single object rather than a prefix.
	exact, err := s.list(ctx, bucket, key, true)
	if err != nil {
		return nil, err
	}
	matched := exact[:0]
	for _, info := range exact {
		if info.Path == bucket+"/"+key {
			matched = append(matched, info)
		}
	}
	return matched, nil
}

// Find walks the subtree under path recursively.
func (s *Store) Find(ctx context.Context, path string) ([]driven.ObjectInfo, error) {
	bucket, key := splitBucketKey(path)

	infos, err := s.list(ctx, bucket, key, false)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return infos, nil
	}

	// Keep the exact object and the subtree, not sibling prefixes that
	// merely share the key as a string prefix ("docs" vs "docs2").
	matched := infos[:0]
	for _, info := range infos {
		rel := strings.TrimPrefix(info.Path, bucket+"/")
		if rel == key || strings.HasPrefix(rel, key+"/") {
			matched = append(matched, info)
		}
	}
	return matched, nil
}

// Get downloads the object at remotePath into localPath.
func (s *Store) Get(ctx context.Context, remotePath, localPath string) error {
	bucket, key := splitBucketKey(remotePath)

	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	f, err := os.Create(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return fmt.Errorf("writing %s: %w", localPath, err)
	}
	return nil
}

// Put uploads the local file at localPath to remotePath.
func (s *Store) Put(ctx context.Context, localPath, remotePath string) error {
	bucket, key := splitBucketKey(remotePath)

	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// list pages through ListObjectsV2 results under prefix.
func (s *Store) list(ctx context.Context, bucket, prefix string, shallow bool) ([]driven.ObjectInfo, error) {
	input := &awss3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}
	if shallow {
		input.Delimiter = aws.String("/")
	}

	var infos []driven.ObjectInfo
	paginator := awss3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			infos = append(infos, driven.ObjectInfo{
				Path: bucket + "/" + aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
			})
		}
		for _, cp := range page.CommonPrefixes {
			infos = append(infos, driven.ObjectInfo{
				Path: bucket + "/" + aws.ToString(cp.Prefix),
				Size: 0,
			})
		}
	}
	return infos, nil
}

// splitBucketKey splits "bucket/key/parts" into bucket and key.
func splitBucketKey(path string) (bucket, key string) {
	bucket, key, _ = strings.Cut(path, "/")
	return bucket, key
}
