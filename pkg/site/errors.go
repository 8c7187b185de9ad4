package site

import "errors"

// ErrUnknownSite is a protocol error: fail/recover named a site id
// outside [1, NumSites].
var ErrUnknownSite = errors.New("unknown site id")

// ErrUnknownVariable is a protocol error: a read/write named a
// variable not hosted anywhere (outside [1, NumVariables], or a
// malformed name).
var ErrUnknownVariable = errors.New("unknown variable")
