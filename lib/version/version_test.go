// Copyright 2026 The Fourline Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoIncludesBuildFields(t *testing.T) {
	info := Info()
	for _, field := range []string{Version, GitCommit, BuildTime} {
		if !strings.Contains(info, field) {
			t.Errorf("Info() = %q, missing %q", info, field)
		}
	}
}
