package errors

import (
	"errors"
	"strings"
)

var (
	ErrEmptyAuth       = errors.New("missing authorization")
	ErrEmptySubject    = errors.New("missing subject")
	ErrTokenInvalid    = errors.New("invalid token")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOutOfStock      = errors.New("product is out of stock")
)

const MsgCartUnavailable = "unable to load cart"

var transportMarkers = []string{
	"<html",
	"<!doctype",
	"bad gateway",
	"service unavailable",
	"gateway timeout",
	"502",
	"503",
	"504",
	"connection refused",
	"connection reset",
	"i/o timeout",
	"context deadline exceeded",
	"eof",
}

// IsTransportError reports whether err looks like a transport or proxy
// failure rather than a domain error. The check is by message content
// because the underlying store returns raw HTML or status text on 5xx.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transportMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// CartMessage maps err to the message surfaced to the shopper: the generic
// fallback for transport failures, the raw message otherwise.
func CartMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsTransportError(err) {
		return MsgCartUnavailable
	}
	return err.Error()
}
