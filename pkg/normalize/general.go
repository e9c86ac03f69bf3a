package normalize

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type gtsEntry struct {
	Word          Text             `json:"madde"`
	Pronunciation Text             `json:"telaffuz"`
	Meanings      List[gtsMeaning] `json:"anlamlarListe"`
	Compounds     json.RawMessage  `json:"birlesikler"`
	Proverbs      List[gtsProverb] `json:"atasozu"`
}

type gtsMeaning struct {
	Definition    Text              `json:"anlam"`
	Properties    List[gtsProperty] `json:"ozelliklerListe"`
	Examples      List[gtsExample]  `json:"orneklerListe"`
	Pronunciation Text              `json:"telaffuz"`
}

type gtsProperty struct {
	FullName  Text `json:"tam_adi"`
	ShortName Text `json:"kisa_adi"`
}

type gtsExample struct {
	Example Text `json:"ornek"`
}

type gtsProverb struct {
	Phrase Text `json:"madde"`
}

// Sections selects the optional parts of a Current Turkish entry.
type Sections struct {
	Compounds bool
	Proverbs  bool
}

// GTS maps the first entry of the current Turkish dictionary. The returned lookup is the word to
// ask the pronunciation dictionary for, empty when the entry has neither a
// headword nor a pronunciation.
func GTS(raw json.RawMessage, q Query, sections Sections) (*CurrentTurkish, string, error) {
	entry, err := first[gtsEntry](q, raw)
	if err != nil {
		return nil, "", err
	}

	result := &CurrentTurkish{
		Word:     entry.Word.String(),
		Meanings: make([]Meaning, 0, len(entry.Meanings)),
	}
	for _, m := range entry.Meanings {
		meaning := Meaning{
			Definition:    m.Definition.String(),
			Properties:    []string{},
			Examples:      []string{},
			Pronunciation: m.Pronunciation.Ptr(),
		}
		for _, p := range m.Properties {
			if name := p.FullName.Or(p.ShortName); name != "" {
				meaning.Properties = append(meaning.Properties, name.String())
			}
		}
		for _, e := range m.Examples {
			if e.Example != "" {
				meaning.Examples = append(meaning.Examples, e.Example.String())
			}
		}
		result.Meanings = append(result.Meanings, meaning)
	}

	if sections.Compounds && present(entry.Compounds) {
		var compounds Words
		_ = json.Unmarshal(entry.Compounds, &compounds)
		result.Compounds = compounds
	}
	if sections.Proverbs && entry.Proverbs != nil {
		result.Proverbs = []string{}
		for _, p := range entry.Proverbs {
			if p.Phrase != "" {
				result.Proverbs = append(result.Proverbs, p.Phrase.String())
			}
		}
	}

	var lookup string
	if entry.Word != "" || entry.Pronunciation != "" {
		lookup = entry.Word.Or(Text(q.Term)).String()
	}
	return result, lookup, nil
}

type pronunciationEntry struct {
	SoundCode Text `json:"seskod"`
}

// SoundCode returns the recording code of the first pronunciation entry, or
// "" when the word has no recording.
func SoundCode(raw json.RawMessage, q Query) string {
	entry, err := first[pronunciationEntry](q, raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(entry.SoundCode.String())
}

// SignLetters returns the letters of word that have a sign-language image,
// lowercased with Turkish rules: I becomes ı and İ becomes i.
func SignLetters(word string) []string {
	letters := []string{}
	for _, r := range cases.Lower(language.Turkish).String(word) {
		if isSignLetter(r) {
			letters = append(letters, string(r))
		}
	}
	return letters
}

func isSignLetter(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	return strings.ContainsRune("çğıöşü", r)
}
