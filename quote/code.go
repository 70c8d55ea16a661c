package quote

import "fmt"

// DiscountCode is a shop-assigned discount tier.
type DiscountCode int

const (
	None DiscountCode = iota
	Silver
	Gold
	Platinum
	Diamond
)

var codeNames = [...]string{
	None:     "NONE",
	Silver:   "SILVER",
	Gold:     "GOLD",
	Platinum: "PLATINUM",
	Diamond:  "DIAMOND",
}

var codePercentages = [...]int{
	None:     0,
	Silver:   5,
	Gold:     10,
	Platinum: 15,
	Diamond:  20,
}

// DiscountCodes returns every code in declaration order.
func DiscountCodes() []DiscountCode {
	return []DiscountCode{None, Silver, Gold, Platinum, Diamond}
}

// Percentage returns the discount in percent (0, 5, 10, 15 or 20).
func (c DiscountCode) Percentage() int {
	if !c.Valid() {
		return 0
	}
	return codePercentages[c]
}

// Valid reports whether c is one of the declared codes.
func (c DiscountCode) Valid() bool {
	return c >= None && c <= Diamond
}

// String returns the wire name of the code, e.g. "GOLD".
func (c DiscountCode) String() string {
	if !c.Valid() {
		return fmt.Sprintf("DiscountCode(%d)", int(c))
	}
	return codeNames[c]
}

// ParseDiscountCode matches name exactly against the wire names.
func ParseDiscountCode(name string) (DiscountCode, bool) {
	for i, n := range codeNames {
		if n == name {
			return DiscountCode(i), true
		}
	}
	return None, false
}
