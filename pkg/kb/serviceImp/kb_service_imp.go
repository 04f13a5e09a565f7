package serviceImp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"agrow/entities"
	"agrow/pkg/kb/repository"
	"agrow/pkg/kb/service"
)

const chunkRunes = 1000

type Svc struct{ r repository.KBRepository }

func New(r repository.KBRepository) *Svc { return &Svc{r: r} }

// chunkText cuts text at the first newline after maxRunes runes.
func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = chunkRunes
	}
	parts := []string{}
	cur := strings.Builder{}
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				parts = append(parts, s)
			}
			cur.Reset()
			count = 0
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "how": true, "what": true, "when": true,
	"which": true, "are": true, "is": true, "my": true, "to": true, "of": true, "in": true, "on": true,
	"a": true, "an": true, "do": true, "i": true, "can": true, "should": true, "it": true,
}

// terms lowercases s and drops punctuation, stopwords and one-letter tokens.
func terms(s string) []string {
	fs := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r > 127)
	})
	out := fs[:0]
	for _, f := range fs {
		if len(f) > 1 && !stopwords[f] {
			out = append(out, f)
		}
	}
	return out
}

func (s *Svc) UpsertDocument(ctx context.Context, title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, 0, fmt.Errorf("%w: title", service.ErrMissingField)
	}
	chs := chunkText(text, chunkRunes)
	if len(chs) == 0 {
		return nil, 0, fmt.Errorf("%w: text", service.ErrMissingField)
	}
	d := &entities.KBDocument{Title: title, Tags: strings.TrimSpace(tags), SourceURL: sourceURL}
	rows := make([]entities.KBChunk, len(chs))
	for i := range chs {
		rows[i] = entities.KBChunk{Ord: i, Text: chs[i]}
	}
	if err := s.r.CreateDoc(ctx, d, rows); err != nil {
		return nil, 0, fmt.Errorf("store document: %w", err)
	}
	return d, len(rows), nil
}

// Search ranks chunks by how many distinct query terms they contain. A term
// that appears in the document title or tags counts half again.
func (s *Svc) Search(ctx context.Context, query string, k int) ([]service.Hit, error) {
	qt := terms(query)
	if len(qt) == 0 || k <= 0 {
		return []service.Hit{}, nil
	}
	chunks, err := s.r.AllChunks(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := s.r.ListDocs(ctx)
	if err != nil {
		return nil, err
	}
	meta := make(map[uint]entities.KBDocument, len(docs))
	for _, d := range docs {
		meta[d.DocID] = d
	}

	hits := []service.Hit{}
	for _, ch := range chunks {
		have := map[string]bool{}
		for _, t := range terms(ch.Text) {
			have[t] = true
		}
		d := meta[ch.DocID]
		head := map[string]bool{}
		for _, t := range terms(d.Title + " " + d.Tags) {
			head[t] = true
		}
		score := 0.0
		for _, t := range dedupe(qt) {
			if have[t] {
				score++
			}
			if head[t] {
				score += 0.5
			}
		}
		if score == 0 {
			continue
		}
		hits = append(hits, service.Hit{
			ChunkID: ch.ChunkID, DocID: ch.DocID, Ord: ch.Ord, Text: ch.Text,
			Score: score, DocTitle: d.Title, SourceURL: d.SourceURL,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (s *Svc) Titles(ctx context.Context, query string, k int) ([]string, error) {
	hits, err := s.Search(ctx, query, k*3)
	if err != nil {
		return nil, err
	}
	seen := map[uint]bool{}
	out := []string{}
	for _, h := range hits {
		if seen[h.DocID] || h.DocTitle == "" {
			continue
		}
		seen[h.DocID] = true
		out = append(out, h.DocTitle)
		if len(out) == k {
			break
		}
	}
	return out, nil
}

func (s *Svc) ListDocs(ctx context.Context) ([]entities.KBDocument, error) {
	return s.r.ListDocs(ctx)
}

func dedupe(ts []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
