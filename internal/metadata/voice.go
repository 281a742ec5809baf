package metadata

import "fmt"

// DefaultVoice is assumed when the record does not name one.
const DefaultVoice = "girl"

// defaultVoices maps the recognized generic voice names to their pitch ids.
var defaultVoices = map[string]string{
	"deep":   "e3",
	"male":   "g3",
	"tomboy": "g4",
	"woman":  "a#4",
	"girl":   "c5",
	"child":  "e5",
}

// VoiceTable resolves voice names to pitch ids. The zero value is unusable;
// build one with NewVoiceTable.
type VoiceTable map[string]string

// NewVoiceTable returns the built-in voice table extended (or overridden) by
// the given entries.
func NewVoiceTable(overrides map[string]string) VoiceTable {
	t := make(VoiceTable, len(defaultVoices)+len(overrides))
	for name, pitch := range defaultVoices {
		t[name] = pitch
	}
	for name, pitch := range overrides {
		t[name] = pitch
	}
	return t
}

// Resolve maps a voice name to its pitch id. Voice names are a closed
// enumeration; an unknown name is an authoring error, not a default.
func (t VoiceTable) Resolve(name string) (string, error) {
	pitch, ok := t[name]
	if !ok {
		return "", fmt.Errorf("can't parse %q into a known voice", name)
	}
	return pitch, nil
}
