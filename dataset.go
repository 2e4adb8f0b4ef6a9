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

// This file contains the Dataset model: dimensions, global and
// per-variable attributes, and variables, along with the mutation
// operations that keep the three namespaces and the variable/dimension
// graph mutually consistent. Every mutation either succeeds or leaves
// the Dataset exactly as it was.

package ncdf3

// MaxDimSize is the largest size a fixed (non-unlimited) dimension may
// declare.
const MaxDimSize = 2_147_483_644

// MaxVarDims is the largest number of dimensions a single variable may
// reference.
const MaxVarDims = 1024

// Version selects the on-disk width of the begin_offset field (and
// hence the maximum representable file size).
type Version int

const (
	// Classic uses 4-byte variable offsets.
	Classic Version = iota + 1
	// Offset64Bit uses 8-byte variable offsets.
	Offset64Bit
)

func (v Version) String() string {
	switch v {
	case Classic:
		return "Classic"
	case Offset64Bit:
		return "Offset64Bit"
	default:
		return "Invalid"
	}
}

// Dimension is a named axis length. A Dimension obtained from a
// Dataset is a stable handle: renaming it does not invalidate
// Variables that reference it.
type Dimension struct {
	name      string
	size      int32 // 0 means unlimited
	unlimited bool
	owner     *Dataset
}

// Name returns d's current name.
func (d *Dimension) Name() string { return d.name }

// IsUnlimited reports whether d is the dataset's record dimension.
func (d *Dimension) IsUnlimited() bool { return d.unlimited }

// Size returns d's length: its fixed size, or, for the unlimited
// dimension, the owning Dataset's current record count.
func (d *Dimension) Size() int {
	if d.unlimited {
		if d.owner == nil {
			return 0
		}
		return d.owner.recordCount
	}
	return int(d.size)
}

// Attribute is a named, typed value attached either to a Dataset
// (global) or to a Variable.
type Attribute struct {
	name  string
	value Value
}

// Name returns a's current name.
func (a *Attribute) Name() string { return a.name }

// Value returns a's value.
func (a *Attribute) Value() Value { return a.value }

// Variable is a named array: an ordered list of dimension references,
// an element type, and its own attributes.
type Variable struct {
	name       string
	dims       []*Dimension
	dtype      ElementType
	attrs      []*Attribute
	attrByName map[string]*Attribute
	owner      *Dataset
}

// Name returns v's current name.
func (v *Variable) Name() string { return v.name }

// Dimensions returns v's dimension references, in declaration order.
func (v *Variable) Dimensions() []*Dimension {
	out := make([]*Dimension, len(v.dims))
	copy(out, v.dims)
	return out
}

// Type returns v's element type.
func (v *Variable) Type() ElementType { return v.dtype }

// IsRecordVariable reports whether v's first dimension is the
// dataset's unlimited dimension.
func (v *Variable) IsRecordVariable() bool {
	return len(v.dims) > 0 && v.dims[0].unlimited
}

// Attributes returns v's attributes, in declaration order.
func (v *Variable) Attributes() []*Attribute {
	out := make([]*Attribute, len(v.attrs))
	copy(out, v.attrs)
	return out
}

// Attribute returns the attribute named name on v, or nil if there is
// none.
func (v *Variable) Attribute(name string) *Attribute { return v.attrByName[name] }

// Shape returns the length of each of v's dimensions, in order. The
// unlimited dimension, if present, reports the dataset's current
// record count.
func (v *Variable) Shape() []int {
	out := make([]int, len(v.dims))
	for i, d := range v.dims {
		out[i] = d.Size()
	}
	return out
}

// Dataset owns all dimensions, global attributes and variables of a
// NetCDF-3 data set, and enforces the invariants that keep them
// mutually consistent as the caller mutates it.
type Dataset struct {
	dims       []*Dimension
	dimByName  map[string]*Dimension
	unlimited  *Dimension
	gatts      []*Attribute
	gattByName map[string]*Attribute
	vars       []*Variable
	varByName  map[string]*Variable

	recordCount int
}

// NewDataset returns an empty, mutable Dataset.
func NewDataset() *Dataset {
	return &Dataset{
		dimByName:  make(map[string]*Dimension),
		gattByName: make(map[string]*Attribute),
		varByName:  make(map[string]*Variable),
	}
}

// Dimensions returns the dataset's dimensions, in insertion order.
func (d *Dataset) Dimensions() []*Dimension {
	out := make([]*Dimension, len(d.dims))
	copy(out, d.dims)
	return out
}

// Dimension returns the dimension named name, or nil.
func (d *Dataset) Dimension(name string) *Dimension { return d.dimByName[name] }

// UnlimitedDimension returns the dataset's unlimited dimension, or nil
// if it has none.
func (d *Dataset) UnlimitedDimension() *Dimension { return d.unlimited }

// GlobalAttributes returns the dataset's global attributes, in
// insertion order.
func (d *Dataset) GlobalAttributes() []*Attribute {
	out := make([]*Attribute, len(d.gatts))
	copy(out, d.gatts)
	return out
}

// GlobalAttribute returns the global attribute named name, or nil.
func (d *Dataset) GlobalAttribute(name string) *Attribute { return d.gattByName[name] }

// Variables returns the dataset's variables, in insertion order.
func (d *Dataset) Variables() []*Variable {
	out := make([]*Variable, len(d.vars))
	copy(out, d.vars)
	return out
}

// Variable returns the variable named name, or nil.
func (d *Dataset) Variable(name string) *Variable { return d.varByName[name] }

// RecordCount returns the dataset's current count of records along
// the unlimited dimension (0 if it has none, or none have been set
// yet).
func (d *Dataset) RecordCount() int { return d.recordCount }

// setRecordCount is called by the reader (from the parsed or inferred
// numrecs) and by the writer (from the lengths of the record-variable
// values it was given).
func (d *Dataset) setRecordCount(n int) { d.recordCount = n }

// --- dimensions ---

// AddFixedDimension adds a dimension of the given positive size.
//
// May fail with InvalidName, NameAlreadyUsed, or
// DimensionSizeOutOfRange.
func (d *Dataset) AddFixedDimension(name string, size int) (*Dimension, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, used := d.dimByName[name]; used {
		return nil, newErr(ErrKindNameAlreadyUsed, name)
	}
	if size < 1 || size > MaxDimSize {
		return nil, newErr(ErrKindDimensionSizeOutOfRange, name)
	}
	dim := &Dimension{name: name, size: int32(size), owner: d}
	d.dims = append(d.dims, dim)
	d.dimByName[name] = dim
	return dim, nil
}

// AddUnlimitedDimension adds the dataset's (unique) unlimited
// dimension.
//
// May fail with InvalidName, NameAlreadyUsed, or
// UnlimitedAlreadyExists.
func (d *Dataset) AddUnlimitedDimension(name string) (*Dimension, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, used := d.dimByName[name]; used {
		return nil, newErr(ErrKindNameAlreadyUsed, name)
	}
	if d.unlimited != nil {
		return nil, newErr(ErrKindUnlimitedAlreadyExists, name)
	}
	dim := &Dimension{name: name, unlimited: true, owner: d}
	d.dims = append(d.dims, dim)
	d.dimByName[name] = dim
	d.unlimited = dim
	return dim, nil
}

// RenameDimension renames dim to newName. Variables referencing dim
// see the new name immediately, since references are by handle.
//
// May fail with DimensionNotDefined (dim is not owned by d),
// InvalidName, or NameAlreadyUsed.
func (d *Dataset) RenameDimension(dim *Dimension, newName string) error {
	if dim == nil || dim.owner != d {
		return newErr(ErrKindDimensionNotDefined, newName)
	}
	if err := ValidateName(newName); err != nil {
		return err
	}
	if existing, used := d.dimByName[newName]; used && existing != dim {
		return newErr(ErrKindNameAlreadyUsed, newName)
	}
	delete(d.dimByName, dim.name)
	dim.name = newName
	d.dimByName[newName] = dim
	return nil
}

// RemoveDimension removes dim from the dataset.
//
// May fail with DimensionNotDefined, or DimensionInUse if any variable
// still references it.
func (d *Dataset) RemoveDimension(dim *Dimension) error {
	if dim == nil || dim.owner != d {
		return newErr(ErrKindDimensionNotDefined, "")
	}
	for _, v := range d.vars {
		for _, vd := range v.dims {
			if vd == dim {
				return newErr(ErrKindDimensionInUse, dim.name)
			}
		}
	}
	idx := indexOfDim(d.dims, dim)
	d.dims = append(d.dims[:idx], d.dims[idx+1:]...)
	delete(d.dimByName, dim.name)
	if d.unlimited == dim {
		d.unlimited = nil
	}
	dim.owner = nil
	return nil
}

func indexOfDim(dims []*Dimension, d *Dimension) int {
	for i, x := range dims {
		if x == d {
			return i
		}
	}
	return -1
}

// --- global attributes ---

// AddGlobalAttribute adds a global attribute named name with value v.
//
// May fail with InvalidName or NameAlreadyUsed.
func (d *Dataset) AddGlobalAttribute(name string, v Value) (*Attribute, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, used := d.gattByName[name]; used {
		return nil, newErr(ErrKindNameAlreadyUsed, name)
	}
	a := &Attribute{name: name, value: v}
	d.gatts = append(d.gatts, a)
	d.gattByName[name] = a
	return a, nil
}

// RenameGlobalAttribute renames a to newName.
//
// May fail with GlobalAttributeNotDefined, InvalidName, or
// NameAlreadyUsed.
func (d *Dataset) RenameGlobalAttribute(a *Attribute, newName string) error {
	if a == nil || d.gattByName[a.name] != a {
		return newErr(ErrKindGlobalAttributeNotDefined, newName)
	}
	if err := ValidateName(newName); err != nil {
		return err
	}
	if existing, used := d.gattByName[newName]; used && existing != a {
		return newErr(ErrKindNameAlreadyUsed, newName)
	}
	delete(d.gattByName, a.name)
	a.name = newName
	d.gattByName[newName] = a
	return nil
}

// RemoveGlobalAttribute removes a from the dataset.
//
// May fail with GlobalAttributeNotDefined.
func (d *Dataset) RemoveGlobalAttribute(a *Attribute) error {
	if a == nil || d.gattByName[a.name] != a {
		return newErr(ErrKindGlobalAttributeNotDefined, "")
	}
	idx := indexOfAttr(d.gatts, a)
	d.gatts = append(d.gatts[:idx], d.gatts[idx+1:]...)
	delete(d.gattByName, a.name)
	return nil
}

func indexOfAttr(attrs []*Attribute, a *Attribute) int {
	for i, x := range attrs {
		if x == a {
			return i
		}
	}
	return -1
}

// --- variables ---

// AddVariable adds a variable named name of type dtype over the given
// ordered dimensions.
//
// May fail with InvalidName, NameAlreadyUsed, UndefinedDimension (a
// dimension not owned by d), UnlimitedDimensionMustBeFirst (the
// unlimited dimension appears anywhere but first),
// DuplicatedDimensionReferences (the same dimension twice), or
// TooManyDimensions (more than MaxVarDims).
func (d *Dataset) AddVariable(name string, dims []*Dimension, dtype ElementType) (*Variable, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, used := d.varByName[name]; used {
		return nil, newErr(ErrKindNameAlreadyUsed, name)
	}
	if len(dims) > MaxVarDims {
		return nil, newErr(ErrKindTooManyDimensions, name)
	}
	seen := make(map[*Dimension]bool, len(dims))
	for i, dim := range dims {
		if dim == nil || dim.owner != d {
			return nil, newErr(ErrKindUndefinedDimension, name)
		}
		if dim.unlimited && i != 0 {
			return nil, newErr(ErrKindUnlimitedDimensionMustBeFirst, name)
		}
		if seen[dim] {
			return nil, newErr(ErrKindDuplicatedDimensionReferences, name)
		}
		seen[dim] = true
	}
	own := make([]*Dimension, len(dims))
	copy(own, dims)
	v := &Variable{
		name:       name,
		dims:       own,
		dtype:      dtype,
		attrByName: make(map[string]*Attribute),
		owner:      d,
	}
	d.vars = append(d.vars, v)
	d.varByName[name] = v
	return v, nil
}

// RenameVariable renames v to newName.
//
// May fail with VariableNotDefined, InvalidName, or NameAlreadyUsed.
func (d *Dataset) RenameVariable(v *Variable, newName string) error {
	if v == nil || v.owner != d {
		return newErr(ErrKindVariableNotDefined, newName)
	}
	if err := ValidateName(newName); err != nil {
		return err
	}
	if existing, used := d.varByName[newName]; used && existing != v {
		return newErr(ErrKindNameAlreadyUsed, newName)
	}
	delete(d.varByName, v.name)
	v.name = newName
	d.varByName[newName] = v
	return nil
}

// RemoveVariable removes v from the dataset.
//
// May fail with VariableNotDefined.
func (d *Dataset) RemoveVariable(v *Variable) error {
	if v == nil || v.owner != d {
		return newErr(ErrKindVariableNotDefined, "")
	}
	idx := indexOfVar(d.vars, v)
	d.vars = append(d.vars[:idx], d.vars[idx+1:]...)
	delete(d.varByName, v.name)
	v.owner = nil
	return nil
}

func indexOfVar(vars []*Variable, v *Variable) int {
	for i, x := range vars {
		if x == v {
			return i
		}
	}
	return -1
}

// --- per-variable attributes ---

// AddVariableAttribute adds an attribute named name with value val to
// v.
//
// May fail with VariableNotDefined, InvalidName, or NameAlreadyUsed.
func (d *Dataset) AddVariableAttribute(v *Variable, name string, val Value) (*Attribute, error) {
	if v == nil || v.owner != d {
		return nil, newErr(ErrKindVariableNotDefined, name)
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if _, used := v.attrByName[name]; used {
		return nil, newErr(ErrKindNameAlreadyUsed, name)
	}
	a := &Attribute{name: name, value: val}
	v.attrs = append(v.attrs, a)
	v.attrByName[name] = a
	return a, nil
}

// RenameVariableAttribute renames a (owned by v) to newName.
//
// May fail with VariableAttributeNotDefined, InvalidName, or
// NameAlreadyUsed.
func (d *Dataset) RenameVariableAttribute(v *Variable, a *Attribute, newName string) error {
	if v == nil || v.owner != d || a == nil || v.attrByName[a.name] != a {
		return newErr(ErrKindVariableAttributeNotDefined, newName)
	}
	if err := ValidateName(newName); err != nil {
		return err
	}
	if existing, used := v.attrByName[newName]; used && existing != a {
		return newErr(ErrKindNameAlreadyUsed, newName)
	}
	delete(v.attrByName, a.name)
	a.name = newName
	v.attrByName[newName] = a
	return nil
}

// RemoveVariableAttribute removes a from v.
//
// May fail with VariableAttributeNotDefined.
func (d *Dataset) RemoveVariableAttribute(v *Variable, a *Attribute) error {
	if v == nil || v.owner != d || a == nil || v.attrByName[a.name] != a {
		return newErr(ErrKindVariableAttributeNotDefined, "")
	}
	idx := indexOfAttr(v.attrs, a)
	v.attrs = append(v.attrs[:idx], v.attrs[idx+1:]...)
	delete(v.attrByName, a.name)
	return nil
}
