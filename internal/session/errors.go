package session

import "errors"

var errNoSaver = errors.New("no snapshot store configured")
