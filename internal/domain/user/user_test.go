package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/rentredi/internal/domain/location"
	"github.com/khoahotran/rentredi/pkg/apperror"
)

func ptr[T any](v T) *T { return &v }

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name, zip string
		wantMsg   string
	}{
		{"", "", `"name" is required`},
		{"", "10001", `"name" is required`},
		{"Jane", "", `"zipCode" is required`},
		{"Jane", "10001", ""},
	}
	for _, tt := range tests {
		err := ValidateDraft(tt.name, tt.zip)
		if tt.wantMsg == "" {
			assert.NoError(t, err)
			continue
		}
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		assert.Equal(t, tt.wantMsg, apperror.Message(err))
	}
}

func TestApply(t *testing.T) {
	base := User{
		ID: "u1", Name: "Jane", ZipCode: "10001",
		Latitude: ptr(40.71), Longitude: ptr(-74.01), Timezone: ptr(-14400),
	}

	t.Run("name only retains the rest", func(t *testing.T) {
		got := base.Apply(Patch{Name: ptr("New Name")})
		assert.Equal(t, "New Name", got.Name)
		assert.Equal(t, "10001", got.ZipCode)
		assert.Equal(t, base.Latitude, got.Latitude)
		assert.Equal(t, base.Timezone, got.Timezone)
		assert.Equal(t, "Jane", base.Name, "receiver must not change")
	})

	t.Run("location replaces all derived fields", func(t *testing.T) {
		got := base.Apply(Patch{
			ZipCode:  ptr("94105"),
			Location: &location.Location{Latitude: ptr(37.79), TimezoneOffset: ptr(-25200)},
		})
		assert.Equal(t, "94105", got.ZipCode)
		assert.Equal(t, 37.79, *got.Latitude)
		assert.Nil(t, got.Longitude)
		assert.Equal(t, -25200, *got.Timezone)
	})

	t.Run("empty patch is identity", func(t *testing.T) {
		assert.True(t, Patch{}.IsEmpty())
		assert.Equal(t, base, base.Apply(Patch{}))
	})

	t.Run("patch from user rewrites the same values", func(t *testing.T) {
		p := PatchFrom(base)
		assert.False(t, p.IsEmpty())
		assert.Equal(t, base, User{ID: "u1"}.Apply(p))
	})
}

func TestDraftWithID(t *testing.T) {
	d := Draft{Name: "Jane", ZipCode: "10001", Location: location.Location{Longitude: ptr(-74.01)}}
	u := d.WithID("abc")
	assert.Equal(t, "abc", u.ID)
	assert.Nil(t, u.Latitude)
	assert.Equal(t, -74.01, *u.Longitude)
	assert.Equal(t, d.Location, u.Location())
}
