package parser

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickbook/tickbook/internal/model"
)

func validFile(name string) File {
	return File{
		Path:    name,
		Content: "---\nstartTime: \"9:00\"\nendTime: \"10:00\"\n---\n",
	}
}

func TestParseBatchPartitionsRecordsAndErrors(t *testing.T) {
	files := []File{
		validFile("2024-03-04 Alpha - Beta.md"),
		{Path: "randomfile.md", Content: "---\na: 1\n---\n"},
		validFile("2024-03-05 Alpha - Gamma.md"),
		{Path: "2024-03-06 Alpha - Delta.md", Content: "no front matter"},
	}

	result := ParseBatch(context.Background(), files)

	require.Len(t, result.Records, 2)
	require.Len(t, result.Errors, 2)

	// One file's failure never suppresses the others.
	assert.Equal(t, "2024-03-04 Alpha - Beta.md", result.Records[0].Path)
	assert.Equal(t, "2024-03-05 Alpha - Gamma.md", result.Records[1].Path)
	assert.Equal(t, model.ReasonBadMetadata, result.Errors[0].Reason)
	assert.Equal(t, model.ReasonFilenameMismatch, result.Errors[1].Reason)
}

func TestParseBatchEmpty(t *testing.T) {
	result := ParseBatch(context.Background(), nil)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Errors)
}

func TestParseBatchLargeFanOut(t *testing.T) {
	var files []File
	for i := 0; i < 500; i++ {
		files = append(files, validFile(fmt.Sprintf("2024-03-04 Alpha - Task %d.md", i)))
	}

	result := ParseBatch(context.Background(), files)
	assert.Len(t, result.Records, 500)
	assert.Empty(t, result.Errors)
}

func TestParseBatchProgressCallback(t *testing.T) {
	files := []File{
		validFile("2024-03-04 Alpha - Beta.md"),
		validFile("2024-03-05 Alpha - Gamma.md"),
		{Path: "randomfile.md", Content: ""},
	}

	var mu sync.Mutex
	calls := 0
	ParseBatchProgress(context.Background(), files, func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	assert.Equal(t, len(files), calls)
}

func TestBatcherDiscardsStaleGeneration(t *testing.T) {
	b := NewBatcher()

	older := ParseBatch(context.Background(), []File{validFile("2024-03-04 Alpha - Old.md")})
	newer := ParseBatch(context.Background(), []File{validFile("2024-03-05 Alpha - New.md")})

	// Claim two generations the way two overlapping Submits would, then
	// complete them out of order.
	gen1 := b.generation.Add(1)
	gen2 := b.generation.Add(1)

	assert.True(t, b.commit(gen2, newer))
	assert.False(t, b.commit(gen1, older), "stale batch must not overwrite a newer one")

	latest := b.Latest()
	require.NotNil(t, latest)
	require.Len(t, latest.Records, 1)
	assert.Equal(t, "2024-03-05 Alpha - New.md", latest.Records[0].Path)
}

func TestBatcherSubmitSequential(t *testing.T) {
	b := NewBatcher()

	_, current := b.Submit(context.Background(), []File{validFile("2024-03-04 Alpha - First.md")})
	assert.True(t, current)

	result, current := b.Submit(context.Background(), []File{validFile("2024-03-05 Alpha - Second.md")})
	assert.True(t, current)
	require.Len(t, result.Records, 1)

	latest := b.Latest()
	require.NotNil(t, latest)
	assert.Equal(t, "2024-03-05 Alpha - Second.md", latest.Records[0].Path)
}

func TestBatcherNoBatchYet(t *testing.T) {
	assert.Nil(t, NewBatcher().Latest())
}
