package dom

import "errors"

// Errors are named after the DOMException names a browser would raise.
var (
	ErrInvalidCharacter      = errors.New("InvalidCharacterError: invalid name")
	ErrHierarchyRequest      = errors.New("HierarchyRequestError: node cannot be inserted here")
	ErrNotFound              = errors.New("NotFoundError: node is not a child")
	ErrNotSupported          = errors.New("NotSupportedError: operation not supported")
	ErrNoModificationAllowed = errors.New("NoModificationAllowedError: node has no element parent")
	ErrSyntax                = errors.New("SyntaxError: invalid argument")
)
