package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh-gopisetti/Pixperfect-backend/internal/usecase"
)

func solidPNG(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExtractColors(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	out, err := usecase.ExtractColors(bytes.NewReader(solidPNG(t, red)))
	require.NoError(t, err)

	var colors map[int][4]uint8
	require.NoError(t, json.Unmarshal(out, &colors))
	require.NotEmpty(t, colors)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, colors[0])
}

func TestExtractColorsUndecodable(t *testing.T) {
	_, err := usecase.ExtractColors(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestProcessImageColors(t *testing.T) {
	uc, repo, _, _ := newTestUsecase(t)
	owner := uuid.New()

	created, err := uc.CreateImage(ctxFor(owner), usecase.CreateImageOption{
		Name: "img.png",
		Data: solidPNG(t, color.NRGBA{B: 255, A: 255}),
	})
	require.NoError(t, err)

	require.NoError(t, uc.ProcessImageColors(ctxFor(owner), created.ID, owner))

	stored := repo.images[created.ID]
	require.NotEmpty(t, stored.Colors)
	var colors map[int][4]uint8
	require.NoError(t, json.Unmarshal(stored.Colors, &colors))
	assert.Equal(t, [4]uint8{0, 0, 255, 255}, colors[0])
}

// streamingStorage hands out readers that fail once their context is
// done, the way the remote drivers' bodies do.
type streamingStorage struct{ *fakeStorage }

func (s streamingStorage) GetReader(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.fakeStorage.GetReader(ctx, key)
	if err != nil {
		return nil, err
	}
	return &ctxReadCloser{ctx: ctx, rc: rc}, nil
}

type ctxReadCloser struct {
	ctx context.Context
	rc  io.ReadCloser
}

func (r *ctxReadCloser) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.rc.Read(p)
}

func (r *ctxReadCloser) Close() error { return r.rc.Close() }

func TestProcessImageColorsStreamingReader(t *testing.T) {
	repo := newFakeRepo()
	store := newFakeStorage()
	uc := usecase.New(repo, streamingStorage{store}, &fakeQueue{},
		slog.New(slog.DiscardHandler), []byte("test-secret"), time.Hour)
	owner := uuid.New()

	created, err := uc.CreateImage(ctxFor(owner), usecase.CreateImageOption{
		Name: "img.png",
		Data: solidPNG(t, color.NRGBA{G: 255, A: 255}),
	})
	require.NoError(t, err)

	require.NoError(t, uc.ProcessImageColors(ctxFor(owner), created.ID, owner))
	require.NotEmpty(t, repo.images[created.ID].Colors)

	var colors map[int][4]uint8
	require.NoError(t, json.Unmarshal(repo.images[created.ID].Colors, &colors))
	assert.Equal(t, [4]uint8{0, 255, 0, 255}, colors[0])
}

func TestProcessImageColorsVanishedImage(t *testing.T) {
	uc, _, _, _ := newTestUsecase(t)

	// Image deleted between enqueue and processing: the task is dropped,
	// never retried.
	err := uc.ProcessImageColors(ctxFor(uuid.New()), uuid.New(), uuid.New())
	assert.NoError(t, err)
}

func TestProcessImageColorsUndecodableBlob(t *testing.T) {
	uc, repo, _, _ := newTestUsecase(t)
	owner := uuid.New()

	created, err := uc.CreateImage(ctxFor(owner), usecase.CreateImageOption{
		Name: "img.bin",
		Data: []byte("not an image"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.ProcessImageColors(ctxFor(owner), created.ID, owner))
	assert.Empty(t, repo.images[created.ID].Colors)
}
