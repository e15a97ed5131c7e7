// Copyright 2024 The Kiproto Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates the ways the config tree can fail, ported from
// original_source/ki/config.py's ConfigError enum.
type ErrorKind int

const (
	Internal ErrorKind = iota
	FileError
	InvalidDataType
	InvalidData
	MissingData
	InvalidChild
	InvalidPath
)

var sentinels = [...]error{
	Internal:        errors.New("internal configuration error"),
	FileError:       errors.New("failed to read configuration file"),
	InvalidDataType: errors.New("default value does not match variable type"),
	InvalidData:     errors.New("value failed its constraint"),
	MissingData:     errors.New("required configuration data is missing"),
	InvalidChild:    errors.New("a child node cannot be defined without a name"),
	InvalidPath:     errors.New("no variable or category exists at this path"),
}

// Error reports a failure building, loading, or querying a config tree.
type Error struct {
	Kind  ErrorKind
	Path  string
	Cause error
}

func (e *Error) Unwrap() error { return sentinels[e.Kind] }

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Unwrap())
	}
	if e.Cause != nil {
		return fmt.Sprintf("config: %v: %s: %v", e.Unwrap(), e.Path, e.Cause)
	}
	return fmt.Sprintf("config: %v: %s", e.Unwrap(), e.Path)
}
