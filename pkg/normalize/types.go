package normalize

// CurrentTurkish is an entry of the Current Turkish Dictionary (GTS).
type CurrentTurkish struct {
	Word      string    `json:"word"`
	Meanings  []Meaning `json:"meanings"`
	Compounds []string  `json:"compounds,omitempty"`
	Proverbs  []string  `json:"proverbs,omitempty"`
	// AudioURL is nil when the word has no recording
	AudioURL         *string  `json:"audioUrl,omitempty"`
	SignLanguageGIFs []string `json:"signLanguageGifs,omitempty"`
}

type Meaning struct {
	Definition    string   `json:"definition"`
	Properties    []string `json:"properties"`
	Examples      []string `json:"examples"`
	Pronunciation *string  `json:"pronunciation"`
}

type Proverb struct {
	Proverb  string   `json:"proverb"`
	Meaning  string   `json:"meaning"`
	Keywords []string `json:"keywords"`
	Type     *string  `json:"type"`
}

type ForeignWord struct {
	Word       string  `json:"word"`
	Origin     string  `json:"origin"`
	Equivalent *string `json:"equivalent"`
	Meaning    *string `json:"meaning"`
}

type ETMSEntry struct {
	Word      string  `json:"word"`
	Meaning   *string `json:"meaning"`
	Etymology *string `json:"etymology"`
	// numbered senses, in order
	Meanings    []string `json:"meanings,omitempty"`
	Description *string  `json:"description,omitempty"`
	Source      *string  `json:"source,omitempty"`
	Kind        *string  `json:"kind,omitempty"`
	SeeAlso     []string `json:"seeAlso,omitempty"`
}

type EtymologyEntry struct {
	Word       string  `json:"word"`
	Meaning    *string `json:"meaning"`
	Etymology  *string `json:"etymology"`
	Structure  *string `json:"structure"`
	References *string `json:"references"`
}

type DialectEntry struct {
	DialectID    *string  `json:"dialectId"`
	OriginalWord string   `json:"originalWord"`
	Turkish      string   `json:"turkish"`
	Dialects     Dialects `json:"dialects"`
}

// Dialects holds the forms of a word in each Turkic language, plus Russian.
type Dialects struct {
	Azerbaijani []string `json:"azerbaijani"`
	Bashkir     []string `json:"bashkir"`
	Kazakh      []string `json:"kazakh"`
	Kyrgyz      []string `json:"kyrgyz"`
	Uzbek       []string `json:"uzbek"`
	Tatar       []string `json:"tatar"`
	Turkmen     []string `json:"turkmen"`
	Uyghur      []string `json:"uyghur"`
	Russian     []string `json:"russian"`
}

type MetrologyTerm struct {
	TermID     *string `json:"termId"`
	Term       string  `json:"term"`
	Definition string  `json:"definition"`
}

// RawEntry is an entry passed through as the service sent it.
type RawEntry map[string]any
