package core_test

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/makimono/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockVersion(t *testing.T) {
	versions := []struct {
		version  string
		expected *semver.Version
	}{
		{"0.13.1", semver.MustParse("0.13.1")},
		{"0.13.1.1", semver.MustParse("0.13.1")},
		{"0.14", semver.MustParse("0.14.0")},
		{"14", semver.MustParse("14.0.0")},
		{"", semver.MustParse("0.0.0")},
	}

	for _, test := range versions {
		t.Run("block version: "+test.version, func(t *testing.T) {
			version, err := core.ParseBlockVersion(test.version)
			require.NoError(t, err)
			assert.Equal(t, test.expected, version)
		})
	}
}

func TestCannotParseBlockVersion(t *testing.T) {
	version, err := core.ParseBlockVersion("a.b.c")
	require.Nil(t, version)
	require.ErrorIs(t, err, core.ErrCannotParseVersion)
}

func TestStarknetVersion(t *testing.T) {
	versions := []struct {
		raw  core.StarknetVersion
		want string
	}{
		{core.StarknetVersion{0, 13, 2, 0}, "0.13.2"},
		{core.StarknetVersion{0, 13, 1, 1}, "0.13.1.1"},
		{core.StarknetVersion{}, "0.0.0"},
	}

	for _, test := range versions {
		t.Run(test.want, func(t *testing.T) {
			assert.Equal(t, test.want, test.raw.String())
			text, err := test.raw.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, test.want, string(text))
		})
	}

	assert.True(t, core.StarknetVersion{0, 13, 1, 1}.Semver().Equal(semver.MustParse("0.13.1")))
	assert.True(t, core.StarknetVersion{}.IsZero())
}

func TestStarknetVersionAtLeast(t *testing.T) {
	minimum := semver.MustParse("0.13.1")
	tests := map[string]struct {
		version core.StarknetVersion
		want    bool
	}{
		"older":       {core.StarknetVersion{0, 13, 0, 0}, false},
		"equal":       {core.StarknetVersion{0, 13, 1, 0}, true},
		"patch build": {core.StarknetVersion{0, 13, 1, 1}, true},
		"newer minor": {core.StarknetVersion{0, 14, 0, 0}, true},
		"zero":        {core.StarknetVersion{}, true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.want, test.version.AtLeast(minimum))
		})
	}
}
