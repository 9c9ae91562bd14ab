package validator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 8
	maxPasswordLength = 128
	maxTitleLength    = 255
	maxNameLength     = 255
	maxSerialLength   = 64
	minScore          = 0
	maxScore          = 10
	asciiControlStart = 32
	asciiDelete       = 127

	errUsernameEmptyFmt      = "username cannot be empty"
	errUsernameLengthFmt     = "username must be between %d and %d characters"
	errUsernameCharsFmt      = "username may only contain letters, digits, dots, dashes and underscores"
	errPasswordMinLengthFmt  = "password must be at least %d characters"
	errPasswordMaxLengthFmt  = "password must not exceed %d characters"
	errTitleEmptyFmt         = "title cannot be empty"
	errTitleMaxLengthFmt     = "title must not exceed %d characters"
	errTitleControlCharsFmt  = "title cannot contain control characters"
	errNameEmptyFmt          = "name cannot be empty"
	errNameMaxLengthFmt      = "name must not exceed %d characters"
	errManufacturerEmptyFmt  = "manufacturer cannot be empty"
	errPlatformEmptyFmt      = "platform cannot be empty"
	errModelEmptyFmt         = "model cannot be empty"
	errConditionEmptyFmt     = "condition cannot be empty"
	errReleaseDateEmptyFmt   = "release date cannot be empty"
	errSerialEmptyFmt        = "serial number cannot be empty"
	errSerialMaxLengthFmt    = "serial number must not exceed %d characters"
	errScoreRangeFmt         = "score must be between %d and %d"
	errInventoryNegativeFmt  = "inventory cannot be negative"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

func Username(username string) error {
	if username == "" {
		return fmt.Errorf(errUsernameEmptyFmt)
	}

	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf(errUsernameLengthFmt, minUsernameLength, maxUsernameLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf(errUsernameCharsFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf(errTitleEmptyFmt)
	}

	if len(title) > maxTitleLength {
		return fmt.Errorf(errTitleMaxLengthFmt, maxTitleLength)
	}

	for _, char := range title {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errTitleControlCharsFmt)
		}
	}

	return nil
}

func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errNameEmptyFmt)
	}

	if len(name) > maxNameLength {
		return fmt.Errorf(errNameMaxLengthFmt, maxNameLength)
	}

	return nil
}

func Manufacturer(manufacturer string) error {
	if strings.TrimSpace(manufacturer) == "" {
		return fmt.Errorf(errManufacturerEmptyFmt)
	}
	return nil
}

func Platform(platform string) error {
	if strings.TrimSpace(platform) == "" {
		return fmt.Errorf(errPlatformEmptyFmt)
	}
	return nil
}

func Model(model string) error {
	if strings.TrimSpace(model) == "" {
		return fmt.Errorf(errModelEmptyFmt)
	}
	return nil
}

func Condition(condition string) error {
	if strings.TrimSpace(condition) == "" {
		return fmt.Errorf(errConditionEmptyFmt)
	}
	return nil
}

func ReleaseDate(date string) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf(errReleaseDateEmptyFmt)
	}
	return nil
}

func SerialNumber(serial string) error {
	if strings.TrimSpace(serial) == "" {
		return fmt.Errorf(errSerialEmptyFmt)
	}

	if len(serial) > maxSerialLength {
		return fmt.Errorf(errSerialMaxLengthFmt, maxSerialLength)
	}

	return nil
}

func Score(score int) error {
	if score < minScore || score > maxScore {
		return fmt.Errorf(errScoreRangeFmt, minScore, maxScore)
	}
	return nil
}

func Inventory(inventory int) error {
	if inventory < 0 {
		return fmt.Errorf(errInventoryNegativeFmt)
	}
	return nil
}
