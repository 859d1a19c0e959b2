// Package contact defines the Contact record kept in the directory.
package contact

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sex is the enumerated sex of a contact. The zero value is not valid.
type Sex int

const (
	Male   Sex = 1
	Female Sex = 2
)

// ErrInvalidSexCode indicates a sex code other than 1 or 2.
var ErrInvalidSexCode = errors.New("contact: invalid sex code")

// ParseSex parses the numeric code typed at the input boundary.
// Only "1" (Male) and "2" (Female) are accepted.
func ParseSex(text string) (Sex, error) {
	code, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSexCode, text)
	}
	s := Sex(code)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSexCode, code)
	}
	return s, nil
}

// Valid reports whether s is one of the two accepted variants.
func (s Sex) Valid() bool {
	return s == Male || s == Female
}

func (s Sex) String() string {
	switch s {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return fmt.Sprintf("Sex(%d)", int(s))
	}
}

// Contact is one person in the directory. Name is the lookup key and is
// not required to be unique.
type Contact struct {
	Name    string
	Age     int
	Sex     Sex
	Phone   string
	Address string
}

// String renders the contact as a single display line.
func (c Contact) String() string {
	return fmt.Sprintf("Name: %s, Age: %d, Sex: %s, Phone: %s, Address: %s",
		c.Name, c.Age, c.Sex, c.Phone, c.Address)
}
