package metadata

import "errors"

// Result taxonomy. Every fallible backend operation reports failure with
// exactly one of these sentinels, optionally annotated with fmt.Errorf and
// %w. Classify with errors.Is; the renderer layer forwards backend errors
// without translation.
var (
	// ErrInvalidArgument reports a null or malformed input. A caller bug.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfMemory reports a host allocation failure.
	ErrOutOfMemory = errors.New("out of memory")
	// ErrBackendNotSupported reports a missing backend, GPU or driver.
	ErrBackendNotSupported = errors.New("backend not supported")
	// ErrDeviceLost reports a GPU reset or removal. Fatal to the Device:
	// the caller must recreate it. Every other error is scoped to the
	// single failed call.
	ErrDeviceLost = errors.New("device lost")
	// ErrShaderCompilation reports bad shader source or entry point.
	ErrShaderCompilation = errors.New("shader compilation failed")
	// ErrResourceCreation reports that the native API rejected a
	// resource creation call.
	ErrResourceCreation = errors.New("resource creation failed")
	// ErrUnknown is the catch-all.
	ErrUnknown = errors.New("unknown error")
)

// IsFatal reports whether err ends the useful life of the Device.
func IsFatal(err error) bool {
	return errors.Is(err, ErrDeviceLost)
}
