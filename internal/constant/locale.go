package constant

const (
	// PrimaryLocale is the locale the local game data sheets are extracted
	// in. Display names fall back along PrimaryLocale -> ja -> en ->
	// NamePlaceholder unless a table documents a different chain.
	PrimaryLocale = "ko"

	// NamePlaceholder stands in for a name no locale could resolve.
	NamePlaceholder = "???"
)
