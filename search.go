package sozluk

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/clydeofficial/tdk-sozluk/pkg/dicterr"
	"github.com/clydeofficial/tdk-sozluk/pkg/normalize"
	"github.com/clydeofficial/tdk-sozluk/pkg/validate"
)

const termField = "term"

// lookup runs the flow shared by all dictionaries: validate the term, fetch
// the endpoint and normalize the body. Errors are returned unchanged.
func lookup[T any](ctx context.Context, c *Client, d Dictionary, term string, o SearchOptions, mapper func(json.RawMessage, normalize.Query) (T, error)) (T, error) {
	var zero T
	term, err := validate.Word(term, termField)
	if err != nil {
		return zero, err
	}
	raw, err := c.fetch(ctx, d, term, o)
	if err != nil {
		return zero, err
	}
	return mapper(raw, d.query(term))
}

func (c *Client) fetch(ctx context.Context, d Dictionary, term string, o SearchOptions) (json.RawMessage, error) {
	return c.fetcher.FetchWithRetry(ctx, c.urls.Search(d.endpoint, term, d.params), o.request())
}

func (d Dictionary) query(term string) normalize.Query {
	return normalize.Query{Term: term, Dictionary: d.name}
}

// SearchCurrentTurkish looks term up in the Current Turkish Dictionary. The
// pronunciation recording is fetched too; failing to get it only leaves
// AudioURL nil.
func (c *Client) SearchCurrentTurkish(ctx context.Context, term string, opts ...Option) (*CurrentTurkish, error) {
	o := c.options(opts)
	term, err := validate.Word(term, termField)
	if err != nil {
		return nil, err
	}
	raw, err := c.fetch(ctx, CurrentTurkishDictionary, term, o)
	if err != nil {
		return nil, err
	}
	sections := normalize.Sections{
		Compounds: o.IncludeCompounds,
		Proverbs:  o.IncludeProverbs,
	}
	result, audioTerm, err := normalize.GTS(raw, CurrentTurkishDictionary.query(term), sections)
	if err != nil {
		return nil, err
	}
	if audioTerm != "" {
		if audio, err := c.pronunciation(ctx, audioTerm, o); err == nil {
			result.AudioURL = audio
		}
	}
	if o.IncludeSignLanguage {
		result.SignLanguageGIFs = c.signLanguageGIFs(result.Word)
	}
	return result, nil
}

// PronunciationAudio returns the URL of the recording of term, or nil when
// there is none.
func (c *Client) PronunciationAudio(ctx context.Context, term string, opts ...Option) (*string, error) {
	audio, err := c.pronunciation(ctx, term, c.options(opts))
	if dicterr.Is(err, dicterr.CodeNotFound) {
		return nil, nil
	}
	return audio, err
}

func (c *Client) pronunciation(ctx context.Context, term string, o SearchOptions) (*string, error) {
	code, err := lookup(ctx, c, PronunciationDictionary, term, o, func(raw json.RawMessage, q normalize.Query) (string, error) {
		return normalize.SoundCode(raw, q), nil
	})
	if err != nil || code == "" {
		return nil, err
	}
	audio := c.urls.Asset("ses", code+".wav")
	return &audio, nil
}

func (c *Client) signLanguageGIFs(word string) []string {
	letters := normalize.SignLetters(word)
	gifs := make([]string, 0, len(letters))
	for _, letter := range letters {
		gifs = append(gifs, c.urls.Asset("assets", "img", "isaret", letter+".gif"))
	}
	return gifs
}

// SearchProverbs finds proverbs and idioms matching term.
func (c *Client) SearchProverbs(ctx context.Context, term string, opts ...Option) ([]Proverb, error) {
	return lookup(ctx, c, ProverbsDictionary, term, c.options(opts), normalize.Proverbs)
}

// SearchForeignWords finds Turkish equivalents of a foreign word.
func (c *Client) SearchForeignWords(ctx context.Context, term string, opts ...Option) ([]ForeignWord, error) {
	return lookup(ctx, c, ForeignWordsGuide, term, c.options(opts), normalize.ForeignWords)
}

func (c *Client) SearchEtymologyETMS(ctx context.Context, term string, opts ...Option) (*ETMSEntry, error) {
	return lookup(ctx, c, ETMSDictionary, term, c.options(opts), normalize.ETMS)
}

func (c *Client) SearchEtymology(ctx context.Context, term string, opts ...Option) (*EtymologyEntry, error) {
	return lookup(ctx, c, EtymologyDictionary, term, c.options(opts), normalize.Etymology)
}

// SearchTurkicDialects compares term across Turkic languages.
func (c *Client) SearchTurkicDialects(ctx context.Context, term string, opts ...Option) ([]DialectEntry, error) {
	return lookup(ctx, c, TurkicDialectsDictionary, term, c.options(opts), normalize.TurkicDialects)
}

func (c *Client) SearchMetrology(ctx context.Context, term string, opts ...Option) ([]MetrologyTerm, error) {
	return lookup(ctx, c, MetrologyDictionary, term, c.options(opts), normalize.Metrology)
}

func (c *Client) SearchWesternOrigin(ctx context.Context, term string, opts ...Option) (RawEntry, error) {
	return lookup(ctx, c, WesternOriginDictionary, term, c.options(opts), normalize.FirstEntry)
}

func (c *Client) SearchScanning(ctx context.Context, term string, opts ...Option) (RawEntry, error) {
	return lookup(ctx, c, ScanningDictionary, term, c.options(opts), normalize.FirstEntry)
}

func (c *Client) SearchCompilation(ctx context.Context, term string, opts ...Option) (RawEntry, error) {
	return lookup(ctx, c, CompilationDictionary, term, c.options(opts), normalize.Compilation)
}

// IsNotFound reports whether err means the dictionary has no entry.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
