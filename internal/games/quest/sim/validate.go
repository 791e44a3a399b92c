package sim

import "fmt"

// Validation error codes.
const (
	CodeNoPlatforms = "NO_PLATFORMS"
	CodeNoFragments = "NO_FRAGMENTS"
	CodeBadPlatform = "BAD_PLATFORM"
	CodeBadParams   = "BAD_PARAMS"
)

// ValidationError describes a malformed level descriptor or parameter set.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks that a descriptor can be played: it needs a first
// platform to spawn on, at least one fragment to be winnable, and
// platforms with a positive size.
func (d Descriptor) Validate() error {
	if len(d.Platforms) == 0 {
		return ValidationError{
			Code:    CodeNoPlatforms,
			Message: "level has no platforms, spawn point is undefined",
		}
	}
	if len(d.Fragments) == 0 {
		return ValidationError{
			Code:    CodeNoFragments,
			Message: "level has no fragments and can never be completed",
		}
	}
	for i, p := range d.Platforms {
		if p.W <= 0 || p.H <= 0 {
			return ValidationError{
				Code:    CodeBadPlatform,
				Message: fmt.Sprintf("platform %d has non-positive size %gx%g", i, p.W, p.H),
			}
		}
	}
	return nil
}

// Validate checks that the parameters describe a usable playfield.
func (p Params) Validate() error {
	switch {
	case p.Gravity <= 0:
		return ValidationError{Code: CodeBadParams, Message: fmt.Sprintf("gravity must be positive, got %g", p.Gravity)}
	case p.PlayfieldW <= 0 || p.PlayfieldH <= 0:
		return ValidationError{Code: CodeBadParams, Message: fmt.Sprintf("playfield must be positive, got %gx%g", p.PlayfieldW, p.PlayfieldH)}
	case p.PlayerW <= 0 || p.PlayerH <= 0:
		return ValidationError{Code: CodeBadParams, Message: fmt.Sprintf("player size must be positive, got %gx%g", p.PlayerW, p.PlayerH)}
	case p.FragmentSize <= 0:
		return ValidationError{Code: CodeBadParams, Message: fmt.Sprintf("fragment size must be positive, got %g", p.FragmentSize)}
	}
	return nil
}
