// Package naming maps uploaded file names to stored names and back.
//
// The mapping is a pair of pure functions. AssignStoredName appends the upload
// time in milliseconds to the base name; RecoverOriginalName strips that suffix
// for display. The pair is only a best-effort inverse:
//
//   - two uploads of the same name in the same millisecond get the same stored
//     name, and the later write replaces the earlier one without an error;
//   - a name that was never assigned but happens to contain "_" before its
//     extension (for example "final_v2.pdf") is shortened on recovery;
//   - names without an extension are not recovered at all.
package naming

import (
	"strconv"
	"strings"
)

const (
	// TimestampSeparator joins the base name and the upload timestamp.
	TimestampSeparator = "_"
	// ExtensionSeparator starts a file extension.
	ExtensionSeparator = "."
)

// SplitExt splits name at its last extension separator. A leading dot does not
// start an extension, so ".env" has base ".env" and no extension.
func SplitExt(name string) (base, ext string) {
	i := strings.LastIndex(name, ExtensionSeparator)
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// AssignStoredName returns base + "_" + nowMillis + ext for originalName.
// It does not check for existing names.
func AssignStoredName(originalName string, nowMillis int64) string {
	base, ext := SplitExt(originalName)
	return base + TimestampSeparator + strconv.FormatInt(nowMillis, 10) + ext
}

// RecoverOriginalName removes the segment between the last "_" and the last "."
// of storedName. If there is no such underscore before the final dot, or the
// underscore is the first character, storedName is returned unchanged.
func RecoverOriginalName(storedName string) string {
	u := strings.LastIndex(storedName, TimestampSeparator)
	d := strings.LastIndex(storedName, ExtensionSeparator)
	if u > 0 && d > u {
		return storedName[:u] + storedName[d:]
	}
	return storedName
}

// ValidStoredName reports whether name can be used as a flat key in the storage
// namespace. Path separators, "." and ".." are rejected.
func ValidStoredName(name string) bool {
	if name == "" || name == "." || name == ".." || len(name) > 255 {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}
