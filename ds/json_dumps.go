package ds

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// DumpJSON is meant for error messages and debug logs, so a failure is rendered in place of the
// value instead of being returned.
func DumpJSON[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return errors.Wrapf(err, "DumpJSON error with %T", t).Error()
	}

	return string(tBytes)
}

func DumpIndentedJSON[T any](t T) ([]byte, error) {
	tBytes, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "DumpIndentedJSON error with %T", t)
	}
	return tBytes, nil
}
