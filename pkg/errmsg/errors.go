// Package errmsg turns domain errors into user-facing text.
package errmsg

import (
	"polyglot/internal/domain"
	"polyglot/internal/ports/output"
)

// FallbackKey is rendered for errors that carry no domain code.
const FallbackKey = "error.server.internal"

var codeKeys = map[string]string{
	"blank_message_key":         "error.validation.required",
	"blank_language":            "error.validation.required",
	"blank_bundle_id":           "error.validation.required",
	"message_key_not_in_bundle": "error.server.not_found",
	"invariant_violation":       "error.server.internal",
	"duplicate_bundle":          "error.server.internal",
	"bundle_not_found":          "error.server.not_found",
	"message_not_found":         "error.server.not_found",
}

// KeyForCode maps a domain error code to the message key describing it.
func KeyForCode(code string) string {
	if key, ok := codeKeys[code]; ok {
		return key
	}
	return FallbackKey
}

// TranslateDomainError renders the message for code in locale.
func TranslateDomainError(t output.T, locale, code string) string {
	return t.T(locale, KeyForCode(code), nil)
}

// DomainErrorMessage extracts the domain error code of err and resolves it
// to a user-facing message. It returns "" for a nil error.
func DomainErrorMessage(t output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	return TranslateDomainError(t, locale, domain.Code(err))
}
