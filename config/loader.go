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
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAMLFile reads filename and merges it into c via [Category.LoadMap],
// the way ConfigCategory.load_yaml_file does in
// original_source/ki/config.py (there, via ruamel.yaml; here, via the
// teacher's own gopkg.in/yaml.v3 dependency).
func (c *Category) LoadYAMLFile(filename string) ([]string, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, &Error{Kind: FileError, Path: filename, Cause: err}
	}
	return c.LoadYAMLBytes(raw)
}

// LoadYAMLBytes merges the YAML document in data into c via
// [Category.LoadMap].
func (c *Category) LoadYAMLBytes(data []byte) ([]string, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &Error{Kind: InvalidData, Cause: err}
	}
	return c.LoadMap(m), nil
}
