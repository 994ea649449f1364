package track

import "errors"

var (
	// ErrEmptyTrack is returned when a GPX document contains no trackpoints
	ErrEmptyTrack = errors.New("no trackpoints found in GPX file")

	// ErrMalformedTrack is returned when the document is not valid GPX XML,
	// or when none of its trackpoints carry a usable position and time
	ErrMalformedTrack = errors.New("malformed GPX track")
)
