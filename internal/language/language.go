// Package language defines the languages the translator supports.
package language

// Code is an ISO 639-1 language code accepted by the translation service.
type Code string

// Supported language codes.
const (
	English    Code = "en"
	Spanish    Code = "es"
	French     Code = "fr"
	German     Code = "de"
	Italian    Code = "it"
	Portuguese Code = "pt"
	Russian    Code = "ru"
	Japanese   Code = "ja"
	Korean     Code = "ko"
	Chinese    Code = "zh"
	Arabic     Code = "ar"
	Hindi      Code = "hi"
	Tamil      Code = "ta"
	Kannada    Code = "kn"
	Telugu     Code = "te"
)

// Display labels that are not languages but appear in the Message.Language
// slot.
const (
	LabelOriginal = "Original"
	LabelError    = "Error"
)

// DefaultLocale is used for speech output when a display name has no
// locale mapping.
const DefaultLocale = "en-US"

// Language describes one supported language.
type Language struct {
	Code Code
	Name string
	// Locale is the speech synthesis locale tag for this language.
	Locale string
}

// languages is the canonical ordered table. Order matters: it drives the
// target-language picker.
var languages = []Language{
	{English, "English", "en-IN"},
	{Spanish, "Spanish", "es-ES"},
	{French, "French", "fr-FR"},
	{German, "German", "de-DE"},
	{Italian, "Italian", "it-IT"},
	{Portuguese, "Portuguese", "pt-PT"},
	{Russian, "Russian", "ru-RU"},
	{Japanese, "Japanese", "ja-JP"},
	{Korean, "Korean", "ko-KR"},
	{Chinese, "Chinese", "zh-CN"},
	{Arabic, "Arabic", "ar-SA"},
	{Hindi, "Hindi", "hi-IN"},
	{Tamil, "Tamil", "ta-IN"},
	{Kannada, "Kannada", "kn-IN"},
	{Telugu, "Telugu", "te-IN"},
}

// All returns the supported languages in picker order.
func All() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Supported reports whether code is a language the service accepts.
func Supported(code Code) bool {
	for _, l := range languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable name for a code, or the code
// itself when unknown.
func DisplayName(code Code) string {
	for _, l := range languages {
		if l.Code == code {
			return l.Name
		}
	}
	return string(code)
}

// LocaleForName resolves a display name to its speech locale tag.
// Unmapped names fall back to DefaultLocale.
func LocaleForName(name string) string {
	for _, l := range languages {
		if l.Name == name {
			return l.Locale
		}
	}
	return DefaultLocale
}
