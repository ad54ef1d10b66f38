package notify

import "errors"

var errNoSender = errors.New("no sender configured for channel")
