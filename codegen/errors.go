package codegen

import (
	"errors"
	"fmt"
)

// ErrNoSignature is returned by Recover when the script carries no signature.
var ErrNoSignature = errors.New("codegen: script has no builder signature")

// SignatureError reports a signature that was found but could not be decoded
// into a namespace.
type SignatureError struct {
	Err error
}

func (e SignatureError) Error() string {
	return fmt.Sprintf("codegen: decode signature: %v", e.Err)
}

func (e SignatureError) Unwrap() error {
	return e.Err
}

// InvalidNamespaceError reports a decoded namespace that fails basic checks.
type InvalidNamespaceError struct {
	Reason string
}

func (e InvalidNamespaceError) Error() string {
	return "codegen: invalid namespace: " + e.Reason
}
