package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (p *recordingPutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	p.body = body
	return &s3.PutObjectOutput{}, nil
}

func snapshot() *domain.TournamentSnapshot {
	return &domain.TournamentSnapshot{
		Tournament:   &domain.Tournament{ID: "t-1", Name: "Sunday Squads", Status: domain.StatusCancelled},
		Participants: []*domain.Participant{{TournamentID: "t-1", AuthUID: "player-1", Position: 1}},
		ArchivedAt:   time.Date(2026, 10, 14, 19, 0, 0, 0, time.UTC),
	}
}

func TestArchiveUploadsSnapshot(t *testing.T) {
	putter := &recordingPutter{}
	archiver := NewS3Archiver(putter, "ffarena-archive", "tournaments", logger.NewLogger("test", "debug"))

	require.NoError(t, archiver.Archive(context.Background(), snapshot()))

	assert.Equal(t, "ffarena-archive", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "tournaments/t-1.json", aws.ToString(putter.input.Key))
	assert.Equal(t, "application/json", aws.ToString(putter.input.ContentType))

	var decoded domain.TournamentSnapshot
	require.NoError(t, json.Unmarshal(putter.body, &decoded))
	assert.Equal(t, "t-1", decoded.Tournament.ID)
	assert.Len(t, decoded.Participants, 1)
}

func TestArchiveWrapsStorageErrors(t *testing.T) {
	putter := &recordingPutter{err: errors.New("access denied")}
	archiver := NewS3Archiver(putter, "ffarena-archive", "", logger.NewLogger("test", "debug"))

	err := archiver.Archive(context.Background(), snapshot())
	require.Error(t, err)
	_, ok := domain.IsAppError(err)
	assert.True(t, ok)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "t-1.json", ObjectKey("", "t-1"))
	assert.Equal(t, "archive/tournaments/t-1.json", ObjectKey("archive/tournaments/", "t-1"))
}

func TestNoopArchiver(t *testing.T) {
	assert.NoError(t, NewNoopArchiver(logger.NewLogger("test", "debug")).Archive(context.Background(), snapshot()))
}
