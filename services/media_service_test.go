package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"undangan.digital/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore keeps blobs in a map so tests never touch the disk.
type memoryStore struct {
	blobs map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{blobs: map[string][]byte{}}
}

func (s *memoryStore) Put(storedName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.blobs[storedName] = data
	return "http://test/media/" + storedName, nil
}

func (s *memoryStore) Remove(storedName string) error {
	delete(s.blobs, storedName)
	return nil
}

func uploadInput(name string, size int64) UploadMediaInput {
	return UploadMediaInput{
		MediaType: models.MediaTypePhoto,
		FileName:  name,
		MimeType:  "image/jpeg",
		SizeBytes: size,
		Body:      strings.NewReader("fake image bytes"),
	}
}

func TestUploadMediaStoresBlobAndRow(t *testing.T) {
	db := setupTestDB(t)
	store := newMemoryStore()
	svc := NewMediaService(store)
	ctx := context.Background()

	client := seedClient(t, db, "owner", "owner")

	media, err := svc.UploadMedia(ctx, client.ID, uploadInput("prewedding.JPG", 1024))
	require.NoError(t, err)
	assert.Equal(t, "prewedding.JPG", media.FileName)
	assert.True(t, strings.HasSuffix(media.StoredName, ".jpg"))
	assert.Equal(t, "http://test/media/"+media.StoredName, media.URL)
	assert.Len(t, store.blobs, 1)

	rows, err := svc.ListMedia(ctx, client.ID, models.MediaTypePhoto)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestUploadMediaQuota(t *testing.T) {
	db := setupTestDB(t)
	store := newMemoryStore()
	svc := NewMediaService(store)
	ctx := context.Background()

	client := seedClient(t, db, "owner", "owner")
	require.NoError(t, db.Model(client).Update("photo_quota", 2).Error)

	for i := 0; i < 2; i++ {
		_, err := svc.UploadMedia(ctx, client.ID, uploadInput(fmt.Sprintf("photo-%d.jpg", i), 1024))
		require.NoError(t, err)
	}

	_, err := svc.UploadMedia(ctx, client.ID, uploadInput("photo-over.jpg", 1024))
	assert.ErrorIs(t, err, ErrMediaQuotaExceeded)
	// the rejected upload left no blob behind
	assert.Len(t, store.blobs, 2)

	// each type draws from its own quota
	music := uploadInput("song.mp3", 1024)
	music.MediaType = models.MediaTypeMusic
	_, err = svc.UploadMedia(ctx, client.ID, music)
	assert.NoError(t, err)
}

func TestUploadMediaValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMediaService(newMemoryStore())
	ctx := context.Background()

	client := seedClient(t, db, "owner", "owner")

	bad := uploadInput("x.gif", 1024)
	bad.MediaType = "gif"
	_, err := svc.UploadMedia(ctx, client.ID, bad)
	assert.ErrorIs(t, err, ErrMediaInvalidInput)

	_, err = svc.UploadMedia(ctx, client.ID, uploadInput("huge.jpg", MaxUploadBytes+1))
	assert.ErrorIs(t, err, ErrMediaInvalidInput)
	_, err = svc.UploadMedia(ctx, client.ID, uploadInput("empty.jpg", 0))
	assert.ErrorIs(t, err, ErrMediaInvalidInput)

	noFile := uploadInput("", 1024)
	_, err = svc.UploadMedia(ctx, client.ID, noFile)
	assert.ErrorIs(t, err, ErrMediaInvalidInput)
}

func TestDeleteMediaScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	store := newMemoryStore()
	svc := NewMediaService(store)
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	intruder := seedClient(t, db, "intruder", "intruder")

	media, err := svc.UploadMedia(ctx, owner.ID, uploadInput("photo.jpg", 1024))
	require.NoError(t, err)

	err = svc.DeleteMedia(ctx, intruder.ID, media.ID)
	assert.ErrorIs(t, err, ErrMediaNotFound)
	assert.Len(t, store.blobs, 1)

	require.NoError(t, svc.DeleteMedia(ctx, owner.ID, media.ID))
	assert.Empty(t, store.blobs)

	err = svc.DeleteMedia(ctx, owner.ID, media.ID)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}
