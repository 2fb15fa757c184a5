package domain

// Identity-provider error codes. The set mirrors the provider's vocabulary;
// anything outside it is treated as CodeUnknown.
const (
	CodeEmailInUse          = "auth/email-already-in-use"
	CodeInvalidEmail        = "auth/invalid-email"
	CodeOperationNotAllowed = "auth/operation-not-allowed"
	CodeWeakPassword        = "auth/weak-password"
	CodeUserDisabled        = "auth/user-disabled"
	CodeUserNotFound        = "auth/user-not-found"
	CodeWrongPassword       = "auth/wrong-password"
	CodeInvalidCredential   = "auth/invalid-credential"
	CodePopupClosed         = "auth/popup-closed-by-user"
	CodePopupCancelled      = "auth/cancelled-popup-request"
	CodeInProgress          = "auth/in-progress"
	CodeUnknown             = "unknown"
)

// AuthField names the form field an auth error should render against.
type AuthField string

const (
	FieldEmail       AuthField = "email"
	FieldPassword    AuthField = "password"
	FieldDisplayName AuthField = "displayName"
	FieldGeneral     AuthField = "general"
)

// AuthError is a field-scoped authentication error.
type AuthError struct {
	Code  string    `json:"code"`
	Field AuthField `json:"field"`
}

func (e *AuthError) Error() string { return e.Code }

// FieldForCode maps a provider error code to the form field it concerns. The
// mapping is total: every code resolves to exactly one field, with general as
// the default arm. Ambiguous credential errors stay general on purpose --
// pinning them to a field would leak which half of the credential was wrong.
func FieldForCode(code string) AuthField {
	switch code {
	case CodeInvalidEmail, CodeUserNotFound, CodeEmailInUse:
		return FieldEmail
	case CodeWrongPassword, CodeWeakPassword:
		return FieldPassword
	default:
		return FieldGeneral
	}
}

// NewAuthError builds a field-scoped error from a provider code.
func NewAuthError(code string) *AuthError {
	return &AuthError{Code: code, Field: FieldForCode(code)}
}

// AuthOutcome is the uniform result shape for auth state-machine operations.
// Operations never propagate raw provider errors across this boundary.
type AuthOutcome struct {
	Success bool         `json:"success"`
	Error   *AuthError   `json:"error,omitempty"`
	User    *UserProfile `json:"user,omitempty"`
}

// Failure builds a failed outcome from a provider code.
func Failure(code string) AuthOutcome {
	return AuthOutcome{Success: false, Error: NewAuthError(code)}
}
