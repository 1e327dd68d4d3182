package user

import (
	"context"
	"errors"
	"sync"

	"github.com/khoahotran/rentredi/internal/application/service"
	"github.com/khoahotran/rentredi/internal/domain/location"
	"github.com/khoahotran/rentredi/internal/domain/user"
)

func ptr[T any](v T) *T { return &v }

type fakeLookup struct {
	mu     sync.Mutex
	calls  []string
	result map[string]location.Location
	err    error
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{result: map[string]location.Location{
		"10001": {Latitude: ptr(40.71), Longitude: ptr(-74.01), TimezoneOffset: ptr(-14400)},
		"94105": {Latitude: ptr(37.79), Longitude: ptr(-122.39), TimezoneOffset: ptr(-25200)},
	}}
}

func (f *fakeLookup) Lookup(_ context.Context, zipCode string) (location.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, zipCode)
	if f.err != nil {
		return location.Location{}, f.err
	}
	return f.result[zipCode], nil
}

func (f *fakeLookup) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakePublisher struct {
	events chan service.UserEvent
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan service.UserEvent, 16)}
}

func (p *fakePublisher) PublishUserEvent(_ context.Context, e service.UserEvent) error {
	p.events <- e
	return nil
}

type failingRepo struct {
	user.Repository
}

var errStoreDown = errors.New("store down")

func (failingRepo) Create(context.Context, user.Draft) (user.User, error) {
	return user.User{}, errStoreDown
}

func (failingRepo) List(context.Context) ([]user.User, error) {
	return nil, errStoreDown
}

// nilListRepo returns a nil slice from List.
type nilListRepo struct {
	user.Repository
}

func (nilListRepo) List(context.Context) ([]user.User, error) {
	return nil, nil
}
