package utils

import "regexp"

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// ValidUsername reports whether a username is 3-20 characters of
// letters, digits and underscores.
func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}
