package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvData = "algorithm,case,n,time_sec,comparisons,swaps,status,notes\nMerge Sort,Best Case,100,0.000010,356,0,OK,\n"

func TestDigest(t *testing.T) {
	id := Digest([]byte(csvData))
	require.True(t, strings.HasPrefix(id, "sha256:"))
	require.Len(t, id, len("sha256:")+64)
	require.Equal(t, id, Digest([]byte(csvData)))

	raw, err := parseDigest(id)
	require.NoError(t, err)
	require.Equal(t, id[7:], raw)

	for _, bad := range []string{"", "md5:abc", "sha256:xyz", "sha256:" + strings.Repeat("g", 64), "sha256:abcd"} {
		_, err := parseDigest(bad)
		require.ErrorIs(t, err, ErrInvalidDigest, bad)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "archive"))
	require.NoError(t, err)
	ctx := context.Background()

	id, err := store.Store(ctx, []byte(csvData))
	require.NoError(t, err)

	again, err := store.Store(ctx, []byte(csvData))
	require.NoError(t, err)
	require.Equal(t, id, again)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, csvData, string(got))

	ok, err := store.Exists(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Delete(ctx, id))
	require.NoError(t, store.Delete(ctx, id))

	ok, err = store.Exists(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = store.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_InvalidDigest(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Get(ctx, "../results.csv")
	require.ErrorIs(t, err, ErrInvalidDigest)
	_, err = store.Exists(ctx, "sha256:nothex")
	require.ErrorIs(t, err, ErrInvalidDigest)
	require.ErrorIs(t, store.Delete(ctx, "nope"), ErrInvalidDigest)
}

func TestSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(filepath.Join(dir, "archive"))
	require.NoError(t, err)

	path := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o600))

	id, err := SnapshotFile(context.Background(), store, path)
	require.NoError(t, err)
	require.Equal(t, Digest([]byte(csvData)), id)

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = SnapshotFile(context.Background(), store, empty)
	require.ErrorContains(t, err, "empty")

	_, err = SnapshotFile(context.Background(), store, filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

type fakeS3 struct {
	objects map[string][]byte
	puts    int
	failPut error
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.puts++
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	fake := newFakeS3()
	store := &S3Store{client: fake, bucket: "bench", prefix: "snapshots/"}
	ctx := context.Background()

	id, err := store.Store(ctx, []byte(csvData))
	require.NoError(t, err)
	_, err = store.Store(ctx, []byte(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, fake.puts)
	assert.Contains(t, fake.objects, "snapshots/"+id[7:]+".csv")

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, csvData, string(got))

	ok, err := store.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, id))
	ok, err = store.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	fake.failPut = errors.New("access denied")
	_, err = store.Store(ctx, []byte("other"))
	require.ErrorContains(t, err, "access denied")
}

func TestNewStoreFromEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	t.Setenv("SORTBENCH_ARCHIVE_TYPE", "")
	t.Setenv("SORTBENCH_ARCHIVE_DIR", dir)

	store, err := NewStoreFromEnv(context.Background())
	require.NoError(t, err)
	fs, ok := store.(*FileStore)
	require.True(t, ok)
	require.Equal(t, dir, fs.Dir())
}

func TestNewStoreFromEnv_S3MissingBucket(t *testing.T) {
	t.Setenv("SORTBENCH_ARCHIVE_TYPE", "s3")
	t.Setenv("SORTBENCH_S3_BUCKET", "")

	_, err := NewStoreFromEnv(context.Background())
	require.ErrorContains(t, err, "SORTBENCH_S3_BUCKET is required")
}

func TestNewStoreFromEnv_GCSMissingBucket(t *testing.T) {
	t.Setenv("SORTBENCH_ARCHIVE_TYPE", "gcs")
	t.Setenv("SORTBENCH_GCS_BUCKET", "")

	_, err := NewStoreFromEnv(context.Background())
	require.Error(t, err)
	// Builds without the gcp tag report the backend as disabled instead.
	if !strings.Contains(err.Error(), "not enabled in this build") {
		require.ErrorContains(t, err, "SORTBENCH_GCS_BUCKET is required")
	}
}

func TestNewStoreFromEnv_Unsupported(t *testing.T) {
	t.Setenv("SORTBENCH_ARCHIVE_TYPE", "azure")
	_, err := NewStoreFromEnv(context.Background())
	require.ErrorContains(t, err, "unsupported archive type")
}
