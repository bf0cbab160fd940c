package registry

import "errors"

// Errors of registry operations. Operations wrap them into a *DefinitionError,
// use errors.Is to test for them.
var (
	ErrDuplicateDefinition = errors.New("tag has already been defined in this registry")
	ErrIllegalConstructor  = errors.New("illegal constructor")
	ErrNoValidScope        = errors.New("element has no valid scope")
	ErrInvalidName         = errors.New("not a valid custom element name")
	ErrNotSupported        = errors.New("customized built-in elements are not supported")
	ErrInvalidClass        = errors.New("invalid element class")
	ErrBadConstructor      = errors.New("constructor did not return the element under construction")
)

// DefinitionError records a failed registry operation for a tag.
type DefinitionError struct {
	Op   string // operation, e.g. "define", "construct", "upgrade"
	Name string // tag name
	Err  error  // underlying error
}

func (e *DefinitionError) Error() string {
	return "registry: " + e.Op + " <" + e.Name + ">: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Err
}

func failure(op, tag string, err error) error {
	return &DefinitionError{Op: op, Name: tag, Err: err}
}
