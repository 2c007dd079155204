package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a strict major.minor.patch triple. Only the exact textual
// form "<uint>.<uint>.<uint>" parses; prefixes, pre-release tags, and
// shortened forms are rejected.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// ParseVersion parses a version string of the exact form "1.2.3".
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected 'major.minor.patch'", s)
	}

	nums := make([]uint64, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: expected 'major.minor.patch'", s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String renders the version back into its canonical "1.2.3" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// UnmarshalText implements encoding.TextUnmarshaler so decoders that honor
// it (e.g. the TOML loader) apply the same strict parse.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
