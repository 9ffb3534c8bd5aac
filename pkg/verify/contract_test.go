// Copyright the go-cella authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package verify

import (
	"os"
	"path/filepath"
	"testing"
)

// Whole-file contracts drawn from testdata.

func Test_Contract_01(t *testing.T) {
	checkContract(t, "bank.cella",
		StatusVerified, StatusVerified, StatusVerified)
}

func Test_Contract_02(t *testing.T) {
	checkContract(t, "overdraft.cella",
		StatusViolated, StatusViolated)
}

func Test_Contract_03(t *testing.T) {
	checkContract(t, "branch.cella",
		StatusVerified, StatusVerified)
}

func checkContract(t *testing.T, name string, expected ...Status) {
	t.Helper()
	//
	bytes, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("reading contract: %v", err)
	}
	//
	results := verifySource(t, string(bytes))
	//
	checkStatuses(t, results, expected...)
}
