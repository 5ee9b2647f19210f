// Package platform guesses the client operating system from a User-Agent string.
package platform

import (
	"regexp"
	"strings"
)

// OS is a coarse operating system family.
type OS string

// Operating system families reported by Detect.
const (
	MacOS   OS = "macos"
	IOS     OS = "ios"
	Windows OS = "windows"
	Android OS = "android"
	Linux   OS = "linux"
	Unknown OS = "unknown"
)

// Checked in order; the first family whose pattern matches wins. macOS comes before
// iOS, so iPad user agents that report "Macintosh" classify as macOS.
var families = []struct {
	os      OS
	pattern *regexp.Regexp
}{
	{MacOS, regexp.MustCompile(`macintosh|macintel|macppc|mac68k|macos`)},
	{IOS, regexp.MustCompile(`iphone|ipad|ipod`)},
	{Windows, regexp.MustCompile(`win32|win64|windows|wince`)},
	{Android, regexp.MustCompile(`android`)},
	{Linux, regexp.MustCompile(`linux`)},
}

// Detect classifies userAgent into an OS family, or Unknown when nothing matches.
func Detect(userAgent string) OS {
	ua := strings.ToLower(userAgent)
	for _, f := range families {
		if f.pattern.MatchString(ua) {
			return f.os
		}
	}

	return Unknown
}
