package interfaces

// Translator localizes message keys. Admin clients use it to translate
// domain error messages before showing them next to form fields.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}
