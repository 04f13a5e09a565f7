package serviceImp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrow/database"
	"agrow/pkg/kb/repositoryImp"
	"agrow/pkg/kb/service"
)

func newSvc(t *testing.T) *Svc {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "kb.db"))
	require.NoError(t, err)
	return New(repositoryImp.New(db))
}

func TestChunkText(t *testing.T) {
	assert.Empty(t, chunkText("  \n ", 10))
	assert.Equal(t, []string{"short"}, chunkText("short", 10))

	text := strings.Repeat("a", 12) + "\n" + strings.Repeat("b", 3) + "\n" + "tail"
	assert.Equal(t, []string{strings.Repeat("a", 12), "bbb\ntail"}, chunkText(text, 10))
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"urea", "dose", "rice", "2024"}, terms("What is the UREA dose for rice, 2024?"))
	assert.Empty(t, terms("how to a"))
}

func TestUpsertValidation(t *testing.T) {
	s := newSvc(t)
	_, _, err := s.UpsertDocument(context.Background(), " ", "", "text", "")
	assert.ErrorIs(t, err, service.ErrMissingField)
	_, _, err = s.UpsertDocument(context.Background(), "Title", "", "   ", "")
	assert.ErrorIs(t, err, service.ErrMissingField)
}

func TestSearchRanksByOverlap(t *testing.T) {
	s := newSvc(t)
	ctx := context.Background()

	d1, n, err := s.UpsertDocument(ctx, "Nitrogen management in rice", "rice,fertilizer",
		"Split urea into three doses for paddy rice.", "https://agri.example/urea")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, _, err = s.UpsertDocument(ctx, "Drip irrigation basics", "water",
		"Drip lines save water in cotton and vegetables.", "")
	require.NoError(t, err)
	_, _, err = s.UpsertDocument(ctx, "Rice blast", "disease",
		"Blast lesions appear on rice leaves in humid weather.", "")
	require.NoError(t, err)

	hits, err := s.Search(ctx, "urea for rice", 6)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, d1.DocID, hits[0].DocID)
	assert.Equal(t, "Nitrogen management in rice", hits[0].DocTitle)
	assert.Equal(t, "https://agri.example/urea", hits[0].SourceURL)
	assert.InDelta(t, 2.5, hits[0].Score, 1e-9) // urea, rice, rice in title
	assert.Equal(t, "Rice blast", hits[1].DocTitle)
	assert.InDelta(t, 1.5, hits[1].Score, 1e-9)

	hits, err = s.Search(ctx, "urea for rice", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = s.Search(ctx, "the and of", 6)
	require.NoError(t, err)
	assert.Empty(t, hits)

	titles, err := s.Titles(ctx, "rice", 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Nitrogen management in rice", "Rice blast"}, titles)

	docs, err := s.ListDocs(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}
