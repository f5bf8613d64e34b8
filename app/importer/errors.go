package importer

import "errors"

var (
	// ErrEmptyFile means the upload parsed but produced zero data rows.
	ErrEmptyFile = errors.New("empty file or no valid data rows")
	// ErrUnreadableFile means the payload could not be decoded at all.
	ErrUnreadableFile = errors.New("could not process file")
	// ErrUnsupportedExtension means the file type is not .csv/.xls/.xlsx.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	// ErrNoValidRecords means every row was dropped during normalization.
	ErrNoValidRecords = errors.New("no valid records found")
	// ErrInvalidTransition means a session method was called in the wrong state.
	ErrInvalidTransition = errors.New("invalid import session transition")
)
