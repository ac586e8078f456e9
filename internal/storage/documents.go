package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"rentreceipt/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
)

const (
	ContentTypePDF = "application/pdf"

	DefaultFolder = "document"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type Options struct {
	// Folder is the sub path under each user prefix. Empty stores documents
	// directly under the user prefix.
	Folder        string
	Policy        types.URLPolicy
	PublicBaseURL string
	SignedURLTTL  time.Duration
}

// Documents names, places, lists and removes receipts under per user prefixes
// of the form <userId>/<folder>/.
type Documents struct {
	objects *ObjectStore
	opts    Options

	Now func() time.Time
}

func NewDocuments(objects *ObjectStore, opts Options) (*Documents, error) {
	switch opts.Policy {
	case types.URLPolicyPublic:
		if opts.PublicBaseURL == "" {
			return nil, fmt.Errorf("public url policy requires a public base url")
		}
		opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	case types.URLPolicySigned:
		if opts.SignedURLTTL <= 0 {
			return nil, fmt.Errorf("signed url policy requires a positive ttl")
		}
	default:
		return nil, fmt.Errorf("unknown url policy %q", opts.Policy)
	}

	opts.Folder = strings.Trim(opts.Folder, "/")

	return &Documents{
		objects: objects,
		opts:    opts,
		Now:     time.Now,
	}, nil
}

func (d *Documents) Bucket() string {
	return d.objects.Bucket()
}

// Place stores body under the user's folder and returns the stored document
// with its URL. An empty filename yields a generated name. A placeholder is
// written at the bare user prefix the first time a user stores anything; it is
// left in place if a later step fails.
func (d *Documents) Place(ctx context.Context, userID, leaseID int64, filename string, body []byte) (*types.StoredDocument, error) {
	prefix := userPrefix(userID)

	empty, err := d.objects.IsEmpty(ctx, prefix)
	if err != nil {
		return nil, err
	}

	if empty {
		err = d.objects.Put(ctx, prefix, "application/x-directory", nil)
		if err != nil {
			return nil, err
		}
	}

	now := d.Now()
	name := GeneratedName(leaseID, now)
	if filename != "" {
		name = ClientName(filename, leaseID, now)
	}

	key := d.key(userID, name)

	err = d.objects.Put(ctx, key, ContentTypePDF, body)
	if err != nil {
		return nil, err
	}

	if d.opts.Policy == types.URLPolicyPublic {
		err = d.objects.MakePublic(ctx, key)
		if err != nil {
			return nil, err
		}
	}

	url, err := d.url(ctx, key)
	if err != nil {
		return nil, err
	}

	return &types.StoredDocument{
		Key:     key,
		Name:    name,
		URL:     url,
		Created: now,
	}, nil
}

// List returns every document in the user's folder. Folder placeholders are
// skipped. The result is never nil.
func (d *Documents) List(ctx context.Context, userID int64) ([]*types.StoredDocument, error) {
	objects, err := d.objects.List(ctx, d.folderPrefix(userID))
	if err != nil {
		return nil, err
	}

	documents := make([]*types.StoredDocument, 0, len(objects))
	for _, object := range objects {
		key := aws.ToString(object.Key)
		if key == "" || strings.HasSuffix(key, "/") {
			continue
		}

		url, err := d.url(ctx, key)
		if err != nil {
			return nil, err
		}

		documents = append(documents, &types.StoredDocument{
			Key:     key,
			Name:    path.Base(key),
			URL:     url,
			Created: aws.ToTime(object.LastModified),
		})
	}

	return documents, nil
}

// Delete removes filename from the user's folder. types.ErrNotFound is
// returned, and nothing is deleted, when the object does not exist.
func (d *Documents) Delete(ctx context.Context, userID int64, filename string) error {
	err := ValidateFilename(filename)
	if err != nil {
		return err
	}

	key := d.key(userID, filename)

	exists, err := d.objects.Exists(ctx, key)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("document %q: %w", filename, types.ErrNotFound)
	}

	return d.objects.Delete(ctx, key)
}

func (d *Documents) url(ctx context.Context, key string) (string, error) {
	if d.opts.Policy == types.URLPolicyPublic {
		return d.opts.PublicBaseURL + "/" + key, nil
	}

	return d.objects.PresignGet(ctx, key, d.opts.SignedURLTTL)
}

func (d *Documents) folderPrefix(userID int64) string {
	if d.opts.Folder == "" {
		return userPrefix(userID)
	}
	return userPrefix(userID) + d.opts.Folder + "/"
}

func (d *Documents) key(userID int64, name string) string {
	return d.folderPrefix(userID) + name
}

func userPrefix(userID int64) string {
	return fmt.Sprintf("%d/", userID)
}

// GeneratedName is <unixMillis>_receipt_<leaseId>_<uuid>.pdf.
func GeneratedName(leaseID int64, now time.Time) string {
	return fmt.Sprintf("%d_receipt_%d_%s.pdf", now.UnixMilli(), leaseID, uuid.NewString())
}

// ClientName reduces a caller supplied name to a safe base name and appends a
// random suffix so the key is always fresh. Names with nothing usable left
// fall back to GeneratedName.
func ClientName(filename string, leaseID int64, now time.Time) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if ext := path.Ext(base); strings.EqualFold(ext, ".pdf") {
		base = strings.TrimSuffix(base, ext)
	}

	base = unsafeNameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._-")
	if base == "" {
		return GeneratedName(leaseID, now)
	}

	return fmt.Sprintf("%s_%s.pdf", base, uuid.NewString())
}

// ValidateFilename rejects names that could address anything outside the
// user's folder.
func ValidateFilename(filename string) error {
	switch {
	case strings.TrimSpace(filename) == "":
		return fmt.Errorf("filename is required: %w", types.ErrValidation)
	case strings.ContainsAny(filename, `/\`), strings.Contains(filename, ".."):
		return fmt.Errorf("filename %q is not a plain file name: %w", filename, types.ErrValidation)
	}

	return nil
}
