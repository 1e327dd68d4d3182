package user

import (
	"context"

	"github.com/khoahotran/rentredi/internal/domain/location"
	"github.com/khoahotran/rentredi/pkg/apperror"
)

// User is a person record enriched with the location derived from its zip code.
// Latitude, Longitude and Timezone stay nil when the weather provider omitted them.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ZipCode   string   `json:"zipCode"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timezone  *int     `json:"timezone,omitempty"`
}

// Draft is a user that has not been assigned an id yet.
type Draft struct {
	Name     string
	ZipCode  string
	Location location.Location
}

// Patch lists the fields to overwrite; nil fields are retained. A non-nil Location
// replaces all three derived fields at once, absent values included.
type Patch struct {
	Name     *string
	ZipCode  *string
	Location *location.Location
}

type Repository interface {
	Create(ctx context.Context, d Draft) (User, error)
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (User, bool, error)
	Update(ctx context.Context, id string, p Patch) (User, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ValidateDraft checks mandatory fields in fixed order: name, then zipCode.
func ValidateDraft(name, zipCode string) error {
	if name == "" {
		return apperror.NewRequiredField("name")
	}
	if zipCode == "" {
		return apperror.NewRequiredField("zipCode")
	}
	return nil
}

func (d Draft) WithID(id string) User {
	u := User{ID: id, Name: d.Name, ZipCode: d.ZipCode}
	return u.withLocation(d.Location)
}

func (u User) Location() location.Location {
	return location.Location{
		Latitude:       u.Latitude,
		Longitude:      u.Longitude,
		TimezoneOffset: u.Timezone,
	}
}

func (u User) withLocation(l location.Location) User {
	u.Latitude = l.Latitude
	u.Longitude = l.Longitude
	u.Timezone = l.TimezoneOffset
	return u
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.ZipCode == nil && p.Location == nil
}

// PatchFrom builds a patch that rewrites every field of u.
func PatchFrom(u User) Patch {
	name, zip, loc := u.Name, u.ZipCode, u.Location()
	return Patch{Name: &name, ZipCode: &zip, Location: &loc}
}

// Apply merges p over u. The id is never touched.
func (u User) Apply(p Patch) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.ZipCode != nil {
		u.ZipCode = *p.ZipCode
	}
	if p.Location != nil {
		u = u.withLocation(*p.Location)
	}
	return u
}
