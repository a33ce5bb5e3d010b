package valueobject

import (
	"fmt"
	"strings"

	"polyglot/internal/domain"
)

// MessageKey identifies a message slot, conventionally dot-segmented
// (e.g. "error.validation.required").
type MessageKey struct {
	key string
}

// Well-known message keys.
var (
	KeyWelcome                         = MessageKey{"welcome"}
	KeyGreeting                        = MessageKey{"greeting"}
	KeyUserCreated                     = MessageKey{"user.created"}
	KeyUserUpdated                     = MessageKey{"user.updated"}
	KeyUserDeleted                     = MessageKey{"user.deleted"}
	KeyUserNotFound                    = MessageKey{"user.not_found"}
	KeyUserAlreadyExists               = MessageKey{"user.already_exists"}
	KeyErrorValidationRequired         = MessageKey{"error.validation.required"}
	KeyErrorValidationInvalidEmail     = MessageKey{"error.validation.invalid_email"}
	KeyErrorValidationPasswordTooShort = MessageKey{"error.validation.password_too_short"}
	KeyErrorValidationPasswordMismatch = MessageKey{"error.validation.password_mismatch"}
	KeyErrorServerInternal             = MessageKey{"error.server.internal"}
	KeyErrorServerUnauthorized         = MessageKey{"error.server.unauthorized"}
	KeyErrorServerForbidden            = MessageKey{"error.server.forbidden"}
	KeyErrorServerNotFound             = MessageKey{"error.server.not_found"}
	KeySuccessOperationCompleted       = MessageKey{"success.operation_completed"}
	KeySuccessDataSaved                = MessageKey{"success.data_saved"}
	KeySuccessDataDeleted              = MessageKey{"success.data_deleted"}
)

// requiredKeys must be kept in sync with the well-known keys above by hand.
var requiredKeys = []MessageKey{
	KeyWelcome,
	KeyGreeting,
	KeyUserCreated,
	KeyUserUpdated,
	KeyUserDeleted,
	KeyUserNotFound,
	KeyUserAlreadyExists,
	KeyErrorValidationRequired,
	KeyErrorValidationInvalidEmail,
	KeyErrorValidationPasswordTooShort,
	KeyErrorValidationPasswordMismatch,
	KeyErrorServerInternal,
	KeyErrorServerUnauthorized,
	KeyErrorServerForbidden,
	KeyErrorServerNotFound,
	KeySuccessOperationCompleted,
	KeySuccessDataSaved,
	KeySuccessDataDeleted,
}

// RequiredKeys returns every well-known key in declaration order.
// Every supported locale is expected to provide all of them.
func RequiredKeys() []MessageKey {
	out := make([]MessageKey, len(requiredKeys))
	copy(out, requiredKeys)
	return out
}

// NewMessageKey trims key and rejects blank input.
func NewMessageKey(key string) (MessageKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return MessageKey{}, domain.ErrBlankMessageKey
	}
	return MessageKey{key: key}, nil
}

// MustMessageKey is like NewMessageKey but panics on error.
func MustMessageKey(key string) MessageKey {
	k, err := NewMessageKey(key)
	if err != nil {
		panic(fmt.Sprintf("valueobject: message key %q: %v", key, err))
	}
	return k
}

// IsZero reports whether k was never initialized.
func (k MessageKey) IsZero() bool {
	return k.key == ""
}

func (k MessageKey) String() string {
	return k.key
}
