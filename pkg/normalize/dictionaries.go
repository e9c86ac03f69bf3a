package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type proverbEntry struct {
	Phrase   Text            `json:"sozum"`
	Meaning  Text            `json:"anlami"`
	Keywords json.RawMessage `json:"anahtar"`
	Type     Text            `json:"turu"`
	Type2    Text            `json:"turu2"`
}

func Proverbs(raw json.RawMessage, q Query) ([]Proverb, error) {
	entries, err := objects[proverbEntry](q, raw)
	if err != nil {
		return nil, err
	}
	proverbs := make([]Proverb, 0, len(entries))
	for _, e := range entries {
		proverbs = append(proverbs, Proverb{
			Proverb:  e.Phrase.String(),
			Meaning:  e.Meaning.String(),
			Keywords: words(e.Keywords),
			Type:     e.Type2.Or(e.Type).Ptr(),
		})
	}
	return proverbs, nil
}

type foreignWordEntry struct {
	Word       Text `json:"kkelime"`
	Origin     Text `json:"kkoken"`
	Equivalent Text `json:"kkarsilik"`
	Meaning    Text `json:"anlam"`
}

func ForeignWords(raw json.RawMessage, q Query) ([]ForeignWord, error) {
	entries, err := objects[foreignWordEntry](q, raw)
	if err != nil {
		return nil, err
	}
	result := make([]ForeignWord, 0, len(entries))
	for _, e := range entries {
		result = append(result, ForeignWord{
			Word:       e.Word.String(),
			Origin:     e.Origin.String(),
			Equivalent: e.Equivalent.Map(stripItalics),
			Meaning:    e.Meaning.Ptr(),
		})
	}
	return result, nil
}

const (
	etmsMeaningFields = 8
	etmsSeeAlsoFields = 4
)

// ETMS maps the first entry of the etymological dictionary. Numbered senses
// (anlam1..anlam8) and cross references (bk1..bk4) of older records are kept
// in order.
func ETMS(raw json.RawMessage, q Query) (*ETMSEntry, error) {
	fields, err := first[map[string]Text](q, raw)
	if err != nil {
		return nil, err
	}
	entry := &ETMSEntry{
		Word:        fields["madde"].Or(fields["kelime"]).String(),
		Meaning:     fields["anlam"].Map(StripTags),
		Etymology:   fields["etimoloji"].Map(StripTags),
		Description: fields["aciklama"].Map(stripItalics),
		Source:      fields["kaynak"].Ptr(),
		Kind:        fields["tur"].Ptr(),
	}
	entry.Meanings = numbered(fields, "anlam", etmsMeaningFields, StripTags)
	entry.SeeAlso = numbered(fields, "bk", etmsSeeAlsoFields, strings.TrimSpace)
	return entry, nil
}

type etymologyEntry struct {
	Word       Text `json:"word"`
	Headword   Text `json:"madde"`
	Meaning    Text `json:"meaning"`
	Etymology  Text `json:"etimology"`
	Structure  Text `json:"structure"`
	References Text `json:"referances"`
}

func Etymology(raw json.RawMessage, q Query) (*EtymologyEntry, error) {
	e, err := first[etymologyEntry](q, raw)
	if err != nil {
		return nil, err
	}
	return &EtymologyEntry{
		Word:       e.Word.Or(e.Headword).String(),
		Meaning:    e.Meaning.Ptr(),
		Etymology:  e.Etymology.Map(StripTags),
		Structure:  e.Structure.Ptr(),
		References: e.References.Map(StripTags),
	}, nil
}

const dialectFields = 4

// dialectColumns maps the service's field prefixes to Dialects fields.
var dialectColumns = []struct {
	prefix string
	field  func(*Dialects) *[]string
}{
	{"azerice", func(d *Dialects) *[]string { return &d.Azerbaijani }},
	{"baskurtca", func(d *Dialects) *[]string { return &d.Bashkir }},
	{"kazakca", func(d *Dialects) *[]string { return &d.Kazakh }},
	{"kirgizca", func(d *Dialects) *[]string { return &d.Kyrgyz }},
	{"ozbekce", func(d *Dialects) *[]string { return &d.Uzbek }},
	{"tatarca", func(d *Dialects) *[]string { return &d.Tatar }},
	{"turkmence", func(d *Dialects) *[]string { return &d.Turkmen }},
	{"uygurca", func(d *Dialects) *[]string { return &d.Uyghur }},
	{"rusca", func(d *Dialects) *[]string { return &d.Russian }},
}

func TurkicDialects(raw json.RawMessage, q Query) ([]DialectEntry, error) {
	entries, err := objects[map[string]Text](q, raw)
	if err != nil {
		return nil, err
	}
	result := make([]DialectEntry, 0, len(entries))
	for _, fields := range entries {
		entry := DialectEntry{
			DialectID:    fields["lehce_id"].Ptr(),
			OriginalWord: fields["asil"].String(),
			Turkish:      fields["turkce"].String(),
		}
		for _, column := range dialectColumns {
			*column.field(&entry.Dialects) = numbered(fields, column.prefix, dialectFields, strings.TrimSpace)
		}
		result = append(result, entry)
	}
	return result, nil
}

type metrologyEntry struct {
	ID         Text `json:"soz_id"`
	AltID      Text `json:"id"`
	Term       Text `json:"terim"`
	AltTerm    Text `json:"term"`
	Definition Text `json:"tanim"`
}

var (
	noteRegexp    = regexp.MustCompile(`\s*NOT\s+(\d+):`)
	exampleRegexp = regexp.MustCompile(`\s*ÖRNEK:`)
)

func Metrology(raw json.RawMessage, q Query) ([]MetrologyTerm, error) {
	entries, err := objects[metrologyEntry](q, raw)
	if err != nil {
		return nil, err
	}
	result := make([]MetrologyTerm, 0, len(entries))
	for _, e := range entries {
		term := MetrologyTerm{
			TermID: e.ID.Or(e.AltID).Ptr(),
			Term:   e.Term.Or(e.AltTerm).String(),
		}
		if e.Definition != "" {
			term.Definition = FormatDefinition(e.Definition.String())
		}
		result = append(result, term)
	}
	return result, nil
}

// FormatDefinition cleans a metrology definition and starts every numbered
// note and every example on a paragraph of its own.
func FormatDefinition(s string) string {
	s = CleanBlocks(s)
	s = noteRegexp.ReplaceAllString(s, "\n\nNOT $1:")
	s = exampleRegexp.ReplaceAllString(s, "\n\nÖRNEK:")
	return strings.TrimSpace(s)
}

// FirstEntry returns the first entry unchanged, for dictionaries whose
// records have no stable shape. Numbers keep their original text.
func FirstEntry(raw json.RawMessage, q Query) (RawEntry, error) {
	entries, err := q.Entries(raw)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		decoder := json.NewDecoder(bytes.NewReader(e))
		decoder.UseNumber()
		var entry RawEntry
		if err := decoder.Decode(&entry); err != nil || entry == nil {
			continue
		}
		return entry, nil
	}
	return nil, q.notFound()
}

// Compilation is FirstEntry with bold markup removed from the city field.
func Compilation(raw json.RawMessage, q Query) (RawEntry, error) {
	entry, err := FirstEntry(raw, q)
	if err != nil {
		return nil, err
	}
	if city, ok := entry["sehir"].(string); ok {
		entry["sehir"] = StripNamedTags(city, "b")
	}
	return entry, nil
}

func stripItalics(s string) string {
	return StripNamedTags(s, "i")
}

// numbered collects prefix1..prefixN in order, skipping empty values.
func numbered(fields map[string]Text, prefix string, n int, clean func(string) string) []string {
	values := []string{}
	for i := 1; i <= n; i++ {
		value := fields[fmt.Sprintf("%s%d", prefix, i)]
		if value == "" {
			continue
		}
		if cleaned := clean(value.String()); cleaned != "" {
			values = append(values, cleaned)
		}
	}
	return values
}

func words(raw json.RawMessage) []string {
	var w Words
	if err := json.Unmarshal(raw, &w); err != nil || w == nil {
		return []string{}
	}
	return w
}
