package messages

// Extras messages.
const (
	// ExtrasInvalidNameFmt formats a bundle name that pip would reject.
	ExtrasInvalidNameFmt = "invalid extra %q: names use letters, digits, '.', '_' or '-' and start and end with a letter or digit"
)
