package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var ErrCannotParseVersion = errors.New("cannot parse starknet protocol version")

// StarknetVersion is the protocol version stamped in a block header as four raw bytes.
type StarknetVersion [4]byte

// String renders the version as dotted decimals. The fourth component is only
// shown when it is set.
func (v StarknetVersion) String() string {
	parts := []string{
		strconv.Itoa(int(v[0])),
		strconv.Itoa(int(v[1])),
		strconv.Itoa(int(v[2])),
	}
	if v[3] != 0 {
		parts = append(parts, strconv.Itoa(int(v[3])))
	}
	return strings.Join(parts, ".")
}

func (v StarknetVersion) IsZero() bool {
	return v == StarknetVersion{}
}

func (v StarknetVersion) Semver() *semver.Version {
	// three small decimals always form a valid version
	ver, _ := ParseBlockVersion(v.String())
	return ver
}

// AtLeast reports whether v is minimum or newer. A zero version is unknown and
// matches any minimum.
func (v StarknetVersion) AtLeast(minimum *semver.Version) bool {
	return v.IsZero() || !v.Semver().LessThan(minimum)
}

func (v StarknetVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ParseBlockVersion computes the block version, defaulting to "0.0.0" for empty strings
func ParseBlockVersion(protocolVersion string) (*semver.Version, error) {
	if protocolVersion == "" {
		return semver.NewVersion("0.0.0")
	}

	sep := "."
	digits := strings.Split(protocolVersion, sep)
	// pad with 3 zeros in case version has less than 3 digits
	digits = append(digits, []string{"0", "0", "0"}...)

	// get first 3 digits only
	ver, err := semver.NewVersion(strings.Join(digits[:3], sep))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrCannotParseVersion, protocolVersion, err)
	}
	return ver, nil
}
