package bot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxFileNameLen = 128
	maxAddressLen  = 300
	maxCount       = 10000
)

func ValidateFileName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("file name is empty")
	}
	if utf8.RuneCountInString(name) > maxFileNameLen {
		return "", fmt.Errorf("file name is longer than %d characters", maxFileNameLen)
	}
	return name, nil
}

// ValidateCount accepts a whole number between 1 and maxCount.
func ValidateCount(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", text)
	}
	if n < 1 || n > maxCount {
		return 0, fmt.Errorf("enter a number from 1 to %d", maxCount)
	}
	return n, nil
}

func ValidateAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if utf8.RuneCountInString(addr) < 5 {
		return "", fmt.Errorf("address is too short")
	}
	if utf8.RuneCountInString(addr) > maxAddressLen {
		return "", fmt.Errorf("address is longer than %d characters", maxAddressLen)
	}
	return addr, nil
}
