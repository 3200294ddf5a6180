package pypkg

import "errors"

// ErrMalformed marks input that prevents a check from even being attempted:
// unreadable files, unparsable metadata, bad version strings. Callers that
// know how to convert it into a CRITICAL Issue catch it with errors.Is;
// everywhere else it propagates and aborts the validation run.
var ErrMalformed = errors.New("malformed input")
