package sozluk

import (
	"context"
	"net/url"
)

// Dictionary describes one dictionary of the service.
type Dictionary struct {
	name     string
	endpoint string
	params   url.Values
}

func (d Dictionary) Name() string     { return d.name }
func (d Dictionary) Endpoint() string { return d.endpoint }

func (d Dictionary) String() string {
	return d.name + " (" + d.endpoint + ")"
}

var (
	CurrentTurkishDictionary = Dictionary{name: "Current Turkish Dictionary", endpoint: "gts"}
	PronunciationDictionary  = Dictionary{name: "Pronunciation Dictionary", endpoint: "yazim"}
	ProverbsDictionary       = Dictionary{name: "Proverbs and Idioms Dictionary", endpoint: "atasozu"}
	ForeignWordsGuide        = Dictionary{name: "Foreign Words Guide", endpoint: "kilavuz", params: url.Values{"prm": {"ysk"}}}
	ETMSDictionary           = Dictionary{name: "ETMS Etymology Dictionary", endpoint: "etms"}
	EtymologyDictionary      = Dictionary{name: "Etymology Dictionary", endpoint: "etimoloji"}
	TurkicDialectsDictionary = Dictionary{name: "Turkic Dialects Dictionary", endpoint: "lehceler"}
	MetrologyDictionary      = Dictionary{name: "International Metrology Dictionary", endpoint: "metroloji"}
	WesternOriginDictionary  = Dictionary{name: "Western Origin Dictionary", endpoint: "bati"}
	ScanningDictionary       = Dictionary{name: "Scanning Dictionary", endpoint: "tarama"}
	CompilationDictionary    = Dictionary{name: "Compilation Dictionary", endpoint: "derleme"}
)

// Searchable is a dictionary bound to a client.
type Searchable interface {
	Name() string
	Endpoint() string
	Search(ctx context.Context, term string, opts ...Option) (any, error)
}

type boundDictionary struct {
	Dictionary
	search func(ctx context.Context, term string, opts ...Option) (any, error)
}

func (b boundDictionary) Search(ctx context.Context, term string, opts ...Option) (any, error) {
	return b.search(ctx, term, opts...)
}

func bind[T any](d Dictionary, search func(context.Context, string, ...Option) (T, error)) Searchable {
	return boundDictionary{
		Dictionary: d,
		search: func(ctx context.Context, term string, opts ...Option) (any, error) {
			return search(ctx, term, opts...)
		},
	}
}

// Dictionaries returns every dictionary of the service bound to c, in a
// fixed order.
func (c *Client) Dictionaries() []Searchable {
	return []Searchable{
		bind(CurrentTurkishDictionary, c.SearchCurrentTurkish),
		bind(PronunciationDictionary, c.PronunciationAudio),
		bind(ProverbsDictionary, c.SearchProverbs),
		bind(ForeignWordsGuide, c.SearchForeignWords),
		bind(ETMSDictionary, c.SearchEtymologyETMS),
		bind(EtymologyDictionary, c.SearchEtymology),
		bind(TurkicDialectsDictionary, c.SearchTurkicDialects),
		bind(MetrologyDictionary, c.SearchMetrology),
		bind(WesternOriginDictionary, c.SearchWesternOrigin),
		bind(ScanningDictionary, c.SearchScanning),
		bind(CompilationDictionary, c.SearchCompilation),
	}
}

// Lookup returns the dictionary served at endpoint, e.g. "gts".
func (c *Client) Lookup(endpoint string) (Searchable, bool) {
	for _, d := range c.Dictionaries() {
		if d.Endpoint() == endpoint {
			return d, true
		}
	}
	return nil, false
}

var dictionaries = []Dictionary{
	CurrentTurkishDictionary,
	PronunciationDictionary,
	ProverbsDictionary,
	ForeignWordsGuide,
	ETMSDictionary,
	EtymologyDictionary,
	TurkicDialectsDictionary,
	MetrologyDictionary,
	WesternOriginDictionary,
	ScanningDictionary,
	CompilationDictionary,
}

// Catalog returns every dictionary of the service, in the order of
// Dictionaries.
func Catalog() []Dictionary {
	return append([]Dictionary(nil), dictionaries...)
}

// Endpoints lists the endpoint of every dictionary, in the order of
// Dictionaries.
func Endpoints() []string {
	endpoints := make([]string, len(dictionaries))
	for i, d := range dictionaries {
		endpoints[i] = d.endpoint
	}
	return endpoints
}
