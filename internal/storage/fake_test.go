package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeObject struct {
	body        []byte
	contentType string
	acl         s3types.ObjectCannedACL
	modified    time.Time
}

// fakeS3 is an in-memory bucket that records every call it receives.
type fakeS3 struct {
	objects  map[string]*fakeObject
	pageSize int
	calls    []string

	listErr   error
	putErr    error
	aclErr    error
	headErr   error
	deleteErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]*fakeObject), pageSize: 1000}
}

func (f *fakeS3) count(op string) int {
	n := 0
	for _, call := range f.calls {
		if call == op {
			n++
		}
	}
	return n
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}

	prefix := aws.ToString(params.Prefix)
	delimiter := aws.ToString(params.Delimiter)

	keys := make([]string, 0)
	for key := range f.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if delimiter != "" && strings.Contains(strings.TrimPrefix(key, prefix), delimiter) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	start := 0
	if params.ContinuationToken != nil {
		start, _ = strconv.Atoi(*params.ContinuationToken)
	}

	limit := f.pageSize
	if params.MaxKeys != nil {
		limit = int(*params.MaxKeys)
	}

	end := start + limit
	if end > len(keys) {
		end = len(keys)
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, key := range keys[start:end] {
		out.Contents = append(out.Contents, s3types.Object{
			Key:          aws.String(key),
			LastModified: aws.Time(f.objects[key].modified),
			Size:         aws.Int64(int64(len(f.objects[key].body))),
		})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}

	return out, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls = append(f.calls, "put")
	if f.putErr != nil && aws.ToString(params.ContentType) == ContentTypePDF {
		return nil, f.putErr
	}

	var body []byte
	if params.Body != nil {
		b, err := io.ReadAll(params.Body)
		if err != nil {
			return nil, err
		}
		body = b
	}

	f.objects[aws.ToString(params.Key)] = &fakeObject{
		body:        body,
		contentType: aws.ToString(params.ContentType),
		modified:    time.Date(2024, time.May, 3, 10, 0, 0, 0, time.UTC),
	}

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) PutObjectAcl(ctx context.Context, params *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error) {
	f.calls = append(f.calls, "acl")
	if f.aclErr != nil {
		return nil, f.aclErr
	}

	object, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	object.acl = params.ACL

	return &s3.PutObjectAclOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.calls = append(f.calls, "head")
	if f.headErr != nil {
		return nil, f.headErr
	}

	object, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &s3types.NotFound{}
	}

	return &s3.HeadObjectOutput{
		ContentType:   aws.String(object.contentType),
		ContentLength: aws.Int64(int64(len(object.body))),
	}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.calls = append(f.calls, "delete")
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}

	delete(f.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) seed(keys ...string) {
	for i, key := range keys {
		f.objects[key] = &fakeObject{
			body:     bytes.Repeat([]byte("x"), i+1),
			modified: time.Date(2024, time.April, i+1, 0, 0, 0, 0, time.UTC),
		}
	}
}

type fakePresigner struct {
	ttls []time.Duration
	err  error
}

func (p *fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if p.err != nil {
		return nil, p.err
	}

	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	p.ttls = append(p.ttls, opts.Expires)

	return &v4.PresignedHTTPRequest{
		Method: "GET",
		URL: fmt.Sprintf("https://signed.test/%s/%s?X-Amz-Expires=%d",
			aws.ToString(params.Bucket), aws.ToString(params.Key), int(opts.Expires.Seconds())),
	}, nil
}
