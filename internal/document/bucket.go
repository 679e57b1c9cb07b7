package document

import (
	"fmt"

	"github.com/Gerhatlevi/project-factory/internal/validate"
)

// StorageClass is a bucket storage class.
type StorageClass string

const (
	// StorageStandard is the default class for frequently accessed data.
	StorageStandard StorageClass = "STANDARD"
	// StorageNearline is for data accessed less than once a month.
	StorageNearline StorageClass = "NEARLINE"
	// StorageColdline is for data accessed less than once a quarter.
	StorageColdline StorageClass = "COLDLINE"
	// StorageArchive is for long-term archival.
	StorageArchive StorageClass = "ARCHIVE"
)

// ValidStorageClasses returns all valid storage classes.
func ValidStorageClasses() []StorageClass {
	return []StorageClass{StorageStandard, StorageNearline, StorageColdline, StorageArchive}
}

// IsValid reports whether the storage class is one of the known values.
func (s StorageClass) IsValid() bool {
	switch s {
	case StorageStandard, StorageNearline, StorageColdline, StorageArchive:
		return true
	default:
		return false
	}
}

// Bucket describes one storage bucket with its labels, IAM role map and
// binding sets. Removing a bucket removes all of its nested state as a
// unit.
type Bucket struct {
	description   string
	location      string
	prefix        string
	storageClass  StorageClass
	uniformAccess bool
	versioning    bool

	labels   *LabelMap
	iam      *RoleMap
	bindings *BindingSet
	additive *AdditiveBindingSet
}

// NewBucket returns a bucket with creation defaults: STANDARD storage
// class, uniform access and versioning off, empty sub-collections.
func NewBucket() *Bucket {
	iam := NewRoleMap()
	return &Bucket{
		storageClass: StorageStandard,
		labels:       NewLabelMap(),
		iam:          iam,
		bindings:     NewBindingSet(iam),
		additive:     NewAdditiveBindingSet(iam),
	}
}

// SetDescription sets the free-form description.
func (b *Bucket) SetDescription(v string) { b.description = v }

// SetLocation sets the bucket location.
func (b *Bucket) SetLocation(v string) { b.location = v }

// SetPrefix sets the name prefix.
func (b *Bucket) SetPrefix(v string) { b.prefix = v }

// SetStorageClass sets the storage class, rejecting unknown values.
func (b *Bucket) SetStorageClass(sc StorageClass) error {
	if !sc.IsValid() {
		return fmt.Errorf("%w: storage class %q (must be one of %v)", ErrInvalidFormat, sc, ValidStorageClasses())
	}
	b.storageClass = sc
	return nil
}

// SetUniformAccess toggles uniform bucket-level access.
func (b *Bucket) SetUniformAccess(v bool) { b.uniformAccess = v }

// SetVersioning toggles object versioning.
func (b *Bucket) SetVersioning(v bool) { b.versioning = v }

// Description returns the description.
func (b *Bucket) Description() string { return b.description }

// Location returns the location.
func (b *Bucket) Location() string { return b.location }

// Prefix returns the name prefix.
func (b *Bucket) Prefix() string { return b.prefix }

// StorageClass returns the storage class.
func (b *Bucket) StorageClass() StorageClass { return b.storageClass }

// UniformAccess reports whether uniform bucket-level access is on.
func (b *Bucket) UniformAccess() bool { return b.uniformAccess }

// Versioning reports whether versioning is on.
func (b *Bucket) Versioning() bool { return b.versioning }

// Labels returns the bucket's label map.
func (b *Bucket) Labels() *LabelMap { return b.labels }

// IAM returns the bucket's role map.
func (b *Bucket) IAM() *RoleMap { return b.iam }

// Bindings returns the standard binding set.
func (b *Bucket) Bindings() *BindingSet { return b.bindings }

// AdditiveBindings returns the additive binding set.
func (b *Bucket) AdditiveBindings() *AdditiveBindingSet { return b.additive }

// BucketSet is the keyed collection of user buckets. Names are slugs,
// unique within the set.
type BucketSet struct {
	inner *collection[*Bucket]
}

// NewBucketSet returns an empty bucket set.
func NewBucketSet() *BucketSet {
	return &BucketSet{inner: newCollection[*Bucket]()}
}

// Add creates a bucket under name and returns it for in-place editing.
func (s *BucketSet) Add(name string) (*Bucket, error) {
	if !validate.IsSlug(name) {
		return nil, fmt.Errorf("%w: bucket name %q (lowercase letters, numbers and hyphens only)", ErrInvalidFormat, name)
	}
	b := NewBucket()
	if err := s.inner.insert(name, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Remove deletes the bucket and cascades: its labels, role map and
// binding sets go with it.
func (s *BucketSet) Remove(name string) error {
	if err := s.inner.remove(name); err != nil {
		return fmt.Errorf("bucket %w", err)
	}
	return nil
}

// Get returns the bucket under name.
func (s *BucketSet) Get(name string) (*Bucket, bool) { return s.inner.at(name) }

// Names returns the bucket names in insertion order.
func (s *BucketSet) Names() []string { return s.inner.ids() }

// Len returns the number of buckets.
func (s *BucketSet) Len() int { return s.inner.size() }
