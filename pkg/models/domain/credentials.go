package domain

// Credentials holds AWS credentials for the deploy, import, and
// apply-policies operations. They live in process memory only and are never
// written to persistent storage.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Region          string
}

// Empty reports whether no key material is present.
func (c Credentials) Empty() bool {
	return c.AccessKeyID == "" && c.SecretAccessKey == ""
}

// CredentialCheck is the advisory result of validating credentials against
// the generator. Validation never gates a deploy.
type CredentialCheck struct {
	Valid     bool
	AccountID string
	Error     string
}
