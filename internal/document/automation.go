package document

// Automation is the automation block: an enable flag, the automation
// project name, the distinguished automation bucket and the
// automation-owned service accounts. The bucket's lifecycle is tied to
// the flag, unlike the arbitrary user buckets in the top-level set.
type Automation struct {
	enabled         bool
	project         string
	bucket          *Bucket
	serviceAccounts *AccountSet
}

// NewAutomation returns a disabled automation block with an empty
// bucket and account set.
func NewAutomation() *Automation {
	return &Automation{
		bucket:          NewBucket(),
		serviceAccounts: NewAccountSet(true),
	}
}

// SetEnabled toggles automation generation. Disabling discards the
// project name, the bucket state and the automation service accounts.
func (a *Automation) SetEnabled(v bool) {
	a.enabled = v
	if !v {
		a.project = ""
		a.bucket = NewBucket()
		a.serviceAccounts = NewAccountSet(true)
	}
}

// Enabled reports whether automation generation is on.
func (a *Automation) Enabled() bool { return a.enabled }

// SetProject sets the automation project name. Emptiness is tolerated
// here and rejected by the save gate while automation is enabled.
func (a *Automation) SetProject(v string) { a.project = v }

// Project returns the automation project name.
func (a *Automation) Project() string { return a.project }

// Bucket returns the distinguished automation bucket.
func (a *Automation) Bucket() *Bucket { return a.bucket }

// ServiceAccounts returns the automation-owned account set.
func (a *Automation) ServiceAccounts() *AccountSet { return a.serviceAccounts }
