// Package quote defines the price quote exchanged between shops and the
// discount stage, and its textual wire format "<shop>:<price>:<CODE>".
package quote

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedQuote is matched by every error returned from Parse.
var ErrMalformedQuote = errors.New("malformed quote")

const separator = ":"

// Quote is a shop's price for a product together with the discount the shop grants.
type Quote struct {
	Shop  string
	Price float64
	Code  DiscountCode
}

// String encodes q in wire format, with the price at two decimals.
func (q Quote) String() string {
	return Encode(q)
}

// Encode returns the wire form of q, for example "BestPrice:123.26:GOLD".
func Encode(q Quote) string {
	return fmt.Sprintf("%s%s%.2f%s%s", q.Shop, separator, q.Price, separator, q.Code)
}

// ParseError describes why a wire string could not be decoded.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed quote %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedQuote
}

// Parse decodes a wire string. It requires exactly three fields, a
// finite, non-negative decimal price and an exact discount code name.
func Parse(s string) (Quote, error) {
	fields := strings.Split(s, separator)
	if len(fields) != 3 {
		return Quote{}, &ParseError{Input: s, Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields))}
	}

	price, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Quote{}, &ParseError{Input: s, Reason: fmt.Sprintf("invalid price %q", fields[1])}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Quote{}, &ParseError{Input: s, Reason: fmt.Sprintf("invalid price %q", fields[1])}
	}
	if price < 0 {
		return Quote{}, &ParseError{Input: s, Reason: "negative price"}
	}

	code, ok := ParseDiscountCode(fields[2])
	if !ok {
		return Quote{}, &ParseError{Input: s, Reason: fmt.Sprintf("unknown discount code %q", fields[2])}
	}

	return Quote{Shop: fields[0], Price: price, Code: code}, nil
}
