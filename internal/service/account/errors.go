package account

import "errors"

// ErrInvalidCredentials is returned by Login for an unknown username or a
// wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")
