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

// Package ncdf3 reads and writes files in the NetCDF-3 "classic" and
// 64-bit offset binary formats.  NetCDF-4 (the HDF5 based format) is
// not supported.
//
// The classic file format is documented at
//	https://docs.unidata.ucar.edu/nug/current/file_format_specifications.html
//
// A data set is built up by mutating a Dataset: add dimensions,
// global attributes and variables, then write it out:
//
//	ds := ncdf3.NewDataset()
//	x, _ := ds.AddFixedDimension("x", 3)
//	ds.AddVariable("v", []*ncdf3.Dimension{x}, ncdf3.F32)
//	w, _ := ncdf3.Create("/path/to/file.nc", ds, ncdf3.Classic)
//	w.WriteVar("v", ncdf3.NewF32Value([]float32{1, 2, 3}))
//	w.Close()
//
// To read an existing file:
//
//	r, _ := ncdf3.Open("/path/to/file.nc")
//	val, _ := r.ReadVar("v")
//	ds, _ := r.Close()
//
// The returned Dataset is populated but its variable payloads are not
// read eagerly; ReadVar and ReadAllVars drive the actual I/O.
package ncdf3
