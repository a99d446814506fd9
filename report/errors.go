package report

import (
	"errors"
	"fmt"
)

// ErrUnknownProperty is wrapped by errors reporting property names no element
// class declares.
var ErrUnknownProperty = errors.New("unrecognized property")

// ConfigError is a fatal problem with the form itself. Where names the
// element path, for example "Detail/Objects[2](String)".
type ConfigError struct {
	Where string
	Prop  string
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Where != "" && e.Prop != "":
		return fmt.Sprintf("%s: property %q: %v", e.Where, e.Prop, e.Err)
	case e.Where != "":
		return fmt.Sprintf("%s: %v", e.Where, e.Err)
	case e.Prop != "":
		return fmt.Sprintf("property %q: %v", e.Prop, e.Err)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
