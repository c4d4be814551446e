/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps tournament documents in Amazon S3. A Store doubles as
 * an httpcache.Cache so that remote documents fetched over http can be cached
 * in the same bucket.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const cachePrefix = "httpcache"

var ErrNotFound = errors.New("object not found")

// API is the subset of the S3 client a Store uses; *s3.Client satisfies it.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Store struct {
	// Client is initialized by Init() from the default AWS configuration.
	// Callers may set their own client instead of calling Init().
	Client API

	bucketName string

	// gzip compresses cache entries; their keys get a ".gz" suffix
	gzip      bool
	logErrors bool

	// ctx is used for the httpcache.Cache methods, which take no context
	ctx context.Context
}

// New returns a Store for bucketName. Call Init() (or set Client) before use.
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool,
	logErrorsIn bool) *Store {

	return &Store{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
	}
}

// Open returns an initialized Store for bucketName.
func Open(ctx context.Context, bucketName string) (*Store, error) {
	s := New(ctx, bucketName, false, true)
	if err := s.Init(); err != nil {
		return nil, err
	}

	return s, nil
}

// Init loads the default AWS configuration (environment, then shared config
// and credentials files) and checks that the bucket can be read and listed.
func (s *Store) Init() error {
	cfg, err := config.LoadDefaultConfig(s.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	s.Client = s3.NewFromConfig(cfg)

	return s.Check()
}

// Check verifies that the bucket exists and that its objects can be listed.
func (s *Store) Check() error {
	if _, err := s.Client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.check: head bucket failed for %s: %w",
			s.bucketName, err)
	}
	if _, err := s.Client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.check: list objects failed for %s: %w",
			s.bucketName, err)
	}

	return nil
}

func (s *Store) Bucket() string {
	return s.bucketName
}

// ReadObject returns the contents of key. A missing key yields an error
// wrapping ErrNotFound.
func (s *Store) ReadObject(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("s3store.read: s3://%v/%v: %w", s.bucketName,
				key, ErrNotFound)
		}
		return nil, fmt.Errorf("s3store.read: s3://%v/%v: %w", s.bucketName,
			key, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if aws.ToString(resp.ContentEncoding) == "gzip" {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("s3store.read: s3://%v/%v: %w",
				s.bucketName, key, err)
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("s3store.read: s3://%v/%v: %w", s.bucketName,
			key, err)
	}

	return data, nil
}

// WriteObject stores data under key, replacing any previous contents.
func (s *Store) WriteObject(ctx context.Context, key string, data []byte,
	contentType string) error {

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3store.write: s3://%v/%v: %w", s.bucketName, key,
			err)
	}

	return nil
}

// Get implements httpcache.Cache.
func (s *Store) Get(key string) ([]byte, bool) {
	objKey := s.cacheKeyToObjectKey(key)
	resp, err := s.Client.GetObject(s.ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objKey),
	})
	if err != nil {
		// no such key is just a cache miss
		if s.logErrors && !isNoSuchKey(err) {
			log.Printf("s3store.get: failed to get object %v/%v: %v",
				s.bucketName, objKey, err)
		}
		return []byte{}, false
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if s.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			if s.logErrors {
				log.Printf("s3store.get: failed to open compressed object %v/%v: %v",
					s.bucketName, objKey, err)
			}
			return nil, false
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil && s.logErrors {
		log.Printf("s3store.get: failed to read object %v/%v: %v",
			s.bucketName, objKey, err)
	}

	return data, err == nil
}

// Set implements httpcache.Cache.
func (s *Store) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.cacheKeyToObjectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			if s.logErrors {
				log.Printf("s3store.set: failed to gzip data for %v: %v",
					*input.Key, err)
			}
			return
		}
		if err := gw.Close(); err != nil {
			if s.logErrors {
				log.Printf("s3store.set: failed to close gzip writer for %v: %v",
					*input.Key, err)
			}
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(s.ctx, input); err != nil && s.logErrors {
		log.Printf("s3store.set: put failed for %v/%v: %v", s.bucketName,
			*input.Key, err)
	}
}

// Delete implements httpcache.Cache.
func (s *Store) Delete(key string) {
	_, err := s.Client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.cacheKeyToObjectKey(key)),
	})
	if err != nil && s.logErrors {
		log.Printf("s3store.delete: delete failed: %v", err)
	}
}

func (s *Store) cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("%v/%v", cachePrefix, hex.EncodeToString(h.Sum(nil)))
	if s.gzip {
		objKey += ".gz"
	}

	return objKey
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

// ParseLocation splits an s3://bucket/key location. ok is false when loc is
// not an S3 location or lacks a key.
func ParseLocation(loc string) (bucket string, key string, ok bool) {
	rest, found := strings.CutPrefix(loc, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}

	return bucket, key, true
}
