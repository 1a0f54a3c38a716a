// Package dto holds the typed request bodies for every resource. Fields are
// pointers so an update can tell "not sent" from "sent empty".
package dto

import (
	"mime/multipart"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
)

type Op int

const (
	Create Op = iota
	Update
)

// Files are the multipart parts of a request, by form key.
type Files map[string][]*multipart.FileHeader

// Has reports whether key carries at least one non-empty file.
func (f Files) Has(key string) bool {
	for _, fh := range f[key] {
		if fh != nil && fh.Size > 0 {
			return true
		}
	}
	return false
}

// Uploaded are the asset URLs produced for each form key, in order.
type Uploaded map[string][]string

func (u Uploaded) First(key string) string {
	if v := u[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Input is implemented by every resource DTO.
type Input[T any] interface {
	// Validate runs before any upload. files tells which file parts are
	// present so image requirements can be checked early.
	Validate(op Op, files Files) error
	// Apply copies the supplied fields onto doc.
	Apply(doc *T, uploaded Uploaded) error
}

type field struct {
	name string
	ok   bool
	sent bool
}

func str(name string, v *string) field {
	return field{name: name, ok: v != nil && strings.TrimSpace(*v) != "", sent: v != nil}
}

// given reports whether an optional choice was sent with a value. A blank
// form field counts as not sent.
func given(v *string) bool { return v != nil && strings.TrimSpace(*v) != "" }

func set[V any](name string, v *V) field {
	return field{name: name, ok: v != nil, sent: v != nil}
}

// oneOf is satisfied when any of the alternatives is. It is only enforced on
// create.
func oneOf(name string, alts ...field) field {
	for _, a := range alts {
		if a.ok {
			return field{name: name, ok: true}
		}
	}
	return field{name: name}
}

// need applies the required-field rule: on create every field must be
// present, on update a field that was sent must not be blank.
func need(op Op, fields ...field) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{}
	for _, f := range fields {
		switch {
		case f.ok:
		case op == Create:
			verr.Add(f.name, f.name+" is required")
		case f.sent:
			verr.Add(f.name, f.name+" cannot be empty")
		}
	}
	return verr
}

func finish(verr *apperrors.ValidationError) error {
	if verr == nil || len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

func assign[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

func trimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// firstURL returns the first non-blank candidate.
func firstURL(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// ParseID converts a hex id from a path or body into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("id", "invalid id")
	}
	return id, nil
}
