// Copyright 2024 The ncdf3 Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ncdf3

import "github.com/sirupsen/logrus"

// log is the package-level logger used to report survivable header
// anomalies (out-of-order tagged lists, an indeterminate numrecs that
// had to be inferred from file size). It defaults to logrus's standard
// logger; override it with SetLogger in applications that want the
// records routed elsewhere.
var log logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the logger used for header-anomaly diagnostics.
// Passing nil restores the default (logrus's standard logger).
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	log = l
}
