package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhoneNumber normalizes a phone number to E.164 format.
// defaultRegion is the ISO country code assumed when the number carries no
// country prefix.
func NormalizePhoneNumber(phone, defaultRegion string) (string, error) {
	phone = strings.TrimSpace(phone)

	num, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil {
		return "", err
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
