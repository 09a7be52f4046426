package models

import "errors"

var (
	ErrSourceMissing      = errors.New("source path does not exist")
	ErrSamePath           = errors.New("source and destination are the same")
	ErrDestinationExists  = errors.New("destination already exists")
	ErrMoveIntoSelf       = errors.New("cannot move a directory inside itself")
	ErrDigestMismatch     = errors.New("destination content does not match source")
	ErrTransformNotFound  = errors.New("codemod transform not found")
	ErrSourceRootNotFound = errors.New("source root does not exist")
	ErrNoSourceFiles      = errors.New("directory contains no source files")
)
