// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the versions parsing which is required before
// the actual configuration settings are decoded. The configuration
// file format version is tracked here, so a file written for another
// (incompatible) format can be rejected with a clear error instead of
// being decoded partially.
package vers

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SemVer represents a released semantic version, consisting of the
// major, minor, and patch components. Incrementing the major version
// represents backward-incompatible changes, the minor version
// represents backward compatible additions, and the patch version
// represents invisible changes.
type SemVer [3]uint

// UnmarshalText deserializes text byte slice as a string consisting of
// one to three dot-separated numbers and fills the sv SemVer instance.
// Missing components are taken as zero. In case of errors, sv will be
// left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) (err error) {
	p := strings.Split(string(text), ".")
	l := len(p)
	if l > 3 {
		return fmt.Errorf("the %q has wrong number of components", text)
	}
	var v [3]uint64
	for i := 0; i < l; i++ {
		v[i], err = strconv.ParseUint(p[i], 10, 32)
		if err != nil {
			return fmt.Errorf("the %q component is not numeric", p[i])
		}
	}
	*sv = SemVer{uint(v[0]), uint(v[1]), uint(v[2])}
	return nil
}

// MarshalText serializes `sv` as its string representation.
func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns the sv semantic version as a dot-separated string
// like major.minor.patch.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// Config contains the version of the configuration file format. It is
// embedded inline in the config.Config struct.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file format version.
type Versions struct {
	Config SemVer `yaml:"config"`
}

// Load deserializes the data byte slice into a new instance of Config
// struct. Of course, data may contain extra fields which will be
// ignored.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// MismatchingSemVerError indicates that a configuration file has an
// unsupported format version.
type MismatchingSemVerError struct {
	Expected SemVer
	Actual   SemVer
}

// Error implements the error interface.
func (e *MismatchingSemVerError) Error() string {
	return fmt.Sprintf(
		"version %s is not compatible with %s", e.Actual, e.Expected,
	)
}

// Validate returns an error if the configuration file version which
// is stored in the `vc` Config instance is not supported by the
// latest known version. That is, the stored major version must match
// and the stored minor version must not be newer than latest.
func (vc *Config) Validate(latest SemVer) error {
	v := vc.Versions.Config
	if v[0] != latest[0] || v[1] > latest[1] {
		return &MismatchingSemVerError{Expected: latest, Actual: v}
	}
	return nil
}
