package inquiry

import "errors"

var errTest = errors.New("connection refused")
