package errors

import "errors"

var (
	ErrNotRepository     = errors.New("not inside a git repository")
	ErrLauncherNotFound  = errors.New("launcher binary not found on PATH")
	ErrInvalidRenameRule = errors.New("invalid rename rule")
	ErrInvalidParams     = errors.New("invalid launch parameters")
	ErrNoInputStates     = errors.New("no input states matched")
	ErrSecretEmpty       = errors.New("secret has no string value")
)
