package validation

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// ToDetails summarises why a request body could not be decoded, for logging.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return map[string]string{"payload": "empty body"}
	}

	var se *json.SyntaxError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json", "offset": strconv.FormatInt(se.Offset, 10)}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return map[string]string{"payload": "invalid json"}
	}

	// e.g. an array or a string where an object was expected
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return map[string]string{"payload": "expected a JSON object, got " + ute.Value}
	}

	return map[string]string{"payload": "invalid payload"}
}
