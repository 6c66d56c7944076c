package revalidate

import "errors"

var errTagStoreMissing = errors.New("no tag store configured")
