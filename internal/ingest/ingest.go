package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/luminastudy/studygen/internal/docformat"
	"github.com/luminastudy/studygen/internal/extract"
	"github.com/luminastudy/studygen/internal/fetch"
)

// contentIDLen is the display length of the truncated content hash. The
// id is an idempotency handle for identical bytes, not a security digest.
const contentIDLen = 12

// DefaultMinTextChars is the minimum usable normalized-text length below
// which a document is not worth generating artifacts for.
const DefaultMinTextChars = 100

// ErrInsufficientContent marks a document whose extracted text is too
// short to be usable. It is a content-quality gate, not a failure: the
// caller skips the document without marking it failed.
var ErrInsufficientContent = errors.New("insufficient text content")

// AcquisitionError is fatal for one document: the fetch failed or the
// matching extractor hit a structural failure. No other extractor is
// tried; format misdetection is the detector's problem, not a reason to
// fall back here.
type AcquisitionError struct {
	URL string
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.URL, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Source is the immutable result of acquiring one document.
type Source struct {
	URL          string
	DeclaredName string
	Format       docformat.Format
	ContentID    string
	Size         int
	Text         string
}

// Coordinator fetches a document and runs detection, extraction and
// normalization in sequence.
type Coordinator struct {
	Client *fetch.Client
	// MinTextChars overrides DefaultMinTextChars when positive.
	MinTextChars int
}

// Acquire runs the full acquisition pipeline for one URI. It returns
// *AcquisitionError for fetch or extraction failures and
// ErrInsufficientContent (wrapped) when the normalized text is too short.
func (c *Coordinator) Acquire(ctx context.Context, uri string) (*Source, error) {
	res, err := c.Client.Get(ctx, uri)
	if err != nil {
		return nil, &AcquisitionError{URL: uri, Err: err}
	}

	sum := sha256.Sum256(res.Body)
	id := hex.EncodeToString(sum[:])[:contentIDLen]

	format := docformat.Detect(res.DeclaredName, res.Body)
	log.Debug().Str("url", uri).Str("name", res.DeclaredName).
		Stringer("format", format).Int("size", len(res.Body)).Msg("detected format")

	raw, err := extract.ForFormat(format)(res.Body)
	if err != nil {
		return nil, &AcquisitionError{URL: uri, Err: err}
	}
	text := extract.Normalize(raw)

	src := &Source{
		URL:          uri,
		DeclaredName: res.DeclaredName,
		Format:       format,
		ContentID:    id,
		Size:         len(res.Body),
		Text:         text,
	}
	if len(strings.TrimSpace(text)) < c.minChars() {
		return src, fmt.Errorf("%w: %d chars from %s", ErrInsufficientContent, len(text), res.DeclaredName)
	}
	return src, nil
}

func (c *Coordinator) minChars() int {
	if c.MinTextChars > 0 {
		return c.MinTextChars
	}
	return DefaultMinTextChars
}
