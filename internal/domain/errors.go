package domain

import "errors"

// Domain errors.
var (
	ErrBlankMessageKey       = errors.New("message key cannot be blank")
	ErrBlankLanguage         = errors.New("locale language cannot be blank")
	ErrBlankBundleID         = errors.New("message bundle id cannot be blank")
	ErrInvariantViolation    = errors.New("invariant violation")
	ErrMessageKeyNotInBundle = errors.New("message key does not exist in bundle")
	ErrDuplicateBundle       = errors.New("more than one bundle for locale")
	ErrBundleNotFound        = errors.New("message bundle not found")
	ErrMessageNotFound       = errors.New("message not found")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrBlankMessageKey, "blank_message_key"},
	{ErrBlankLanguage, "blank_language"},
	{ErrBlankBundleID, "blank_bundle_id"},
	{ErrMessageKeyNotInBundle, "message_key_not_in_bundle"},
	{ErrInvariantViolation, "invariant_violation"},
	{ErrDuplicateBundle, "duplicate_bundle"},
	{ErrBundleNotFound, "bundle_not_found"},
	{ErrMessageNotFound, "message_not_found"},
}

// Code returns the stable code of the first domain error found in err's chain,
// or "" when err carries none.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
