package errors

import "fmt"

var (
	// Credential issuance.
	ErrCredentialUnavailable = fmt.Errorf("credential issuer unavailable")
	ErrInvalidRequest        = fmt.Errorf("invalid request")

	// Connection lifecycle.
	ErrTransportDisconnected = fmt.Errorf("transport disconnected")
	ErrAuthRejected          = fmt.Errorf("authentication rejected")
	ErrConnectionClosed      = fmt.Errorf("connection closed")

	// Per-message publish outcomes.
	ErrPublishTimeout  = fmt.Errorf("publish acknowledgement timeout")
	ErrPublishRejected = fmt.Errorf("publish rejected")

	// Inbound pipeline. Both are discard reasons, never fatal.
	ErrMalformedEnvelope   = fmt.Errorf("malformed envelope")
	ErrUnknownEnvelopeKind = fmt.Errorf("unknown envelope kind")

	// Domain validation.
	ErrEmptyMessage = fmt.Errorf("message has neither text nor media")

	// Directory.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
)
