package internal

import "errors"

// Warning is an error that terminates a command without signaling failure.
// The pipeline uses it for benign outcomes such as a diff-only run that
// found nothing to publish.
type Warning string

func (warning Warning) Error() string { return string(warning) }

func (Warning) Is(err error) bool {
	_, ok := err.(Warning)
	return ok
}

func IsWarning(err error) bool {
	return errors.Is(err, Warning(""))
}
