package domain

import "time"

// Reserved field names merged into document bodies on read and stripped on write.
// They mirror the meta fields clients already rely on.
const (
	FieldKey = "_key"
	FieldRev = "_rev"
)

// Document is a schemaless record in one of the named collections.
// Key and Rev are system-assigned; Fields carries whatever the client stored.
type Document struct {
	Collection string
	Key        string
	Rev        string
	Fields     map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WithMeta returns the body fields with _key and _rev merged in,
// which is the shape handed back to HTTP clients.
func (d Document) WithMeta() map[string]any {
	out := make(map[string]any, len(d.Fields)+2)
	for k, v := range d.Fields {
		out[k] = v
	}
	out[FieldKey] = d.Key
	out[FieldRev] = d.Rev
	return out
}

// Collection names provisioned by the service.
const (
	CollectionBusiness   = "business"
	CollectionJobs       = "jobs"
	CollectionCategories = "categories"
	CollectionUsers      = "users"
	CollectionAuths      = "auths"
)

// Session links a cookie-held token to a user key. It lives in the session
// store under a TTL; an expired session is indistinguishable from an absent one.
type Session struct {
	ID           string
	UID          string
	CreatedAt    time.Time
	LastAccessAt time.Time
}
