package sozluk

import (
	"context"
	"sync"
)

var (
	defaultOnce   sync.Once
	defaultClient *Client
)

// Default returns the client used by the package-level functions. It is
// built on first use with the default configuration.
func Default() *Client {
	defaultOnce.Do(func() {
		defaultClient = New(nil, nil, nil)
	})
	return defaultClient
}

func SearchCurrentTurkish(ctx context.Context, term string, opts ...Option) (*CurrentTurkish, error) {
	return Default().SearchCurrentTurkish(ctx, term, opts...)
}

func PronunciationAudio(ctx context.Context, term string, opts ...Option) (*string, error) {
	return Default().PronunciationAudio(ctx, term, opts...)
}

func SearchProverbs(ctx context.Context, term string, opts ...Option) ([]Proverb, error) {
	return Default().SearchProverbs(ctx, term, opts...)
}

func SearchForeignWords(ctx context.Context, term string, opts ...Option) ([]ForeignWord, error) {
	return Default().SearchForeignWords(ctx, term, opts...)
}

func SearchEtymologyETMS(ctx context.Context, term string, opts ...Option) (*ETMSEntry, error) {
	return Default().SearchEtymologyETMS(ctx, term, opts...)
}

func SearchEtymology(ctx context.Context, term string, opts ...Option) (*EtymologyEntry, error) {
	return Default().SearchEtymology(ctx, term, opts...)
}

func SearchTurkicDialects(ctx context.Context, term string, opts ...Option) ([]DialectEntry, error) {
	return Default().SearchTurkicDialects(ctx, term, opts...)
}

func SearchMetrology(ctx context.Context, term string, opts ...Option) ([]MetrologyTerm, error) {
	return Default().SearchMetrology(ctx, term, opts...)
}

func SearchWesternOrigin(ctx context.Context, term string, opts ...Option) (RawEntry, error) {
	return Default().SearchWesternOrigin(ctx, term, opts...)
}

func SearchScanning(ctx context.Context, term string, opts ...Option) (RawEntry, error) {
	return Default().SearchScanning(ctx, term, opts...)
}

func SearchCompilation(ctx context.Context, term string, opts ...Option) (RawEntry, error) {
	return Default().SearchCompilation(ctx, term, opts...)
}

func SearchAll(ctx context.Context, term string, opts ...Option) ([]Result, error) {
	return Default().SearchAll(ctx, term, opts...)
}
