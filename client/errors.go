package client

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned by UpdateBio and DeleteToken before a token was saved.
var ErrNoSession = errors.New("no token saved in this session")

// ApplicationError is a reply with ok=false. Message is the reply's error
// field, or the raw body when the backend sent none.
type ApplicationError struct {
	Op      string
	Message string
	Body    []byte
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// TransportError means the request did not complete or the reply was not JSON.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
