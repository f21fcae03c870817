// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package listing

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petway/cli/internal/backend"
	"petway/cli/internal/domain"
	apperrors "petway/cli/internal/errors"
	"petway/cli/internal/keychain"
	"petway/cli/internal/session"
	"petway/cli/internal/validate"
)

type fakeAPI struct {
	backend.API
	pets      []domain.Pet
	created   *backend.NewPet
	photo     *backend.Photo
	statusSet domain.Status
	deleted   string
	near      [3]float64
	calls     int
}

func (f *fakeAPI) ListPets(context.Context) ([]domain.Pet, error) {
	f.calls++
	return f.pets, nil
}

func (f *fakeAPI) ListMyPets(context.Context) ([]domain.Pet, error) {
	f.calls++
	return f.pets, nil
}

func (f *fakeAPI) GetPet(_ context.Context, id string) (*domain.Pet, error) {
	f.calls++
	for _, p := range f.pets {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperrors.New(apperrors.Rejected, "Mascota no encontrada")
}

func (f *fakeAPI) NearPets(_ context.Context, lat, lng float64, radius int) ([]domain.Pet, error) {
	f.calls++
	f.near = [3]float64{lat, lng, float64(radius)}
	return f.pets, nil
}

func (f *fakeAPI) CreatePet(_ context.Context, p backend.NewPet, photo *backend.Photo) (*domain.Pet, error) {
	f.calls++
	f.created = &p
	f.photo = photo
	return &domain.Pet{ID: "new", Name: p.Name}, nil
}

func (f *fakeAPI) SetPetStatus(_ context.Context, _ string, s domain.Status) (string, error) {
	f.calls++
	f.statusSet = s
	return "Estado actualizado", nil
}

func (f *fakeAPI) DeletePet(_ context.Context, id string) (string, error) {
	f.calls++
	f.deleted = id
	return "Mascota eliminada", nil
}

func tokenFor(t *testing.T, id string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": id}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func newTestService(t *testing.T, api backend.API, viewer string) (*Service, *session.Store) {
	t.Helper()
	store := session.New(keychain.NewMemoryManager(), nil)
	if viewer != "" {
		require.NoError(t, store.Save(tokenFor(t, viewer), nil))
	}
	return NewService(api, store, "https://api.example.com", nil), store
}

func rex() domain.Pet {
	return domain.Pet{
		ID: "p1", Name: "Rex", Kind: "Perro", City: "Quito", Status: domain.StatusLost,
		Owner:    domain.OwnerRef{ID: "u1", Name: "Ana"},
		Location: &domain.Location{Type: "Point", Coordinates: []float64{-78.5, -0.2}},
	}
}

func TestPhoneAffordance(t *testing.T) {
	tests := []struct {
		name   string
		phone  string
		detail Detail
		want   string
		login  bool
	}{
		{name: "anonymous redacted", want: PhoneLoginPrompt, login: true},
		{name: "logged in without phone", detail: Detail{HasToken: true}, want: NotSpecified},
		{name: "viewer id only", detail: Detail{ViewerID: "u2"}, want: NotSpecified},
		{name: "phone present", phone: "0999", detail: Detail{HasToken: true}, want: "0999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.detail
			d.Pet = rex()
			d.Pet.Phone = tt.phone
			assert.Equal(t, tt.want, d.PhoneLine())
			assert.Equal(t, tt.login, d.NeedsLoginForPhone())
			assert.Equal(t, tt.phone != "", d.PhoneVisible())
		})
	}
}

func TestOwnerControls(t *testing.T) {
	api := &fakeAPI{pets: []domain.Pet{rex()}}
	for viewer, owner := range map[string]bool{"u1": true, "u2": false, "": false} {
		t.Run("viewer="+viewer, func(t *testing.T) {
			svc, _ := newTestService(t, api, viewer)
			d, err := svc.Get(context.Background(), "p1")
			require.NoError(t, err)
			assert.Equal(t, owner, d.CanManage())
			if owner {
				assert.Empty(t, d.LocationNote())
			} else {
				assert.Equal(t, ApproximateNote, d.LocationNote())
			}
		})
	}
}

func TestOwnerlessListingIsNeverOwned(t *testing.T) {
	d := Detail{Pet: domain.Pet{ID: "p"}, ViewerID: ""}
	assert.False(t, d.IsOwner())
}

func TestCoordinatesAndMaps(t *testing.T) {
	d := Detail{Pet: rex()}
	assert.Equal(t, "-0.2,-78.5", d.CoordinatesText())
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=-0.2,-78.5", d.MapsURL())

	d.Pet.Location = nil
	assert.Empty(t, d.CoordinatesText())
	assert.Empty(t, d.MapsURL())
	assert.Empty(t, d.LocationNote())
}

func TestFilter(t *testing.T) {
	pets := []domain.Pet{
		{Name: "Rex", Kind: "Perro", City: "Quito", Status: domain.StatusLost},
		{Name: "Michi", Kind: "Gato", City: "Cuenca", Status: domain.StatusFound},
		{Name: "Toby", Kind: "Perro", City: "Guayaquil", Status: domain.StatusFound},
	}
	names := func(ps []domain.Pet) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Rex", "Toby"}, names(Filter(pets, "PERRO")))
	assert.Equal(t, []string{"Michi", "Toby"}, names(Filter(pets, "encontrado")))
	assert.Equal(t, []string{"Michi"}, names(Filter(pets, "cuen")))
	assert.Len(t, Filter(pets, ""), 3)
	assert.Empty(t, Filter(pets, "loro"))
}

func TestPhotoURL(t *testing.T) {
	assert.Equal(t, PlaceholderPhoto, PhotoURL("https://api.example.com", ""))
	assert.Equal(t, "https://cdn.example.com/a.jpg", PhotoURL("https://api.example.com", "https://cdn.example.com/a.jpg"))
	assert.Equal(t, "https://api.example.com/uploads/a.jpg", PhotoURL("https://api.example.com/", "/uploads/a.jpg"))
}

func TestNearDefaultsRadiusAndKeepsResult(t *testing.T) {
	far := rex()
	far.Location = &domain.Location{Coordinates: []float64{10, 10}}
	api := &fakeAPI{pets: []domain.Pet{far}}
	svc, _ := newTestService(t, api, "")

	got, err := svc.Near(context.Background(), -0.2, -78.5, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, [3]float64{-0.2, -78.5, DefaultRadius}, api.near)

	_, err = svc.Near(context.Background(), 91, 0, 0)
	assert.True(t, apperrors.Is(err, apperrors.Validation))
	assert.Equal(t, 1, api.calls)
}

func TestPublish(t *testing.T) {
	lat, lng := -0.2, -78.5
	form := validate.PetForm{Name: " Rex ", Kind: "Perro", City: "Quito", Lat: &lat, Lng: &lng}

	t.Run("missing location sends nothing", func(t *testing.T) {
		api := &fakeAPI{}
		svc, _ := newTestService(t, api, "u1")
		f := form
		f.Lat = nil
		_, err := svc.Publish(context.Background(), f, nil)
		assert.True(t, apperrors.Is(err, apperrors.Validation))
		assert.Zero(t, api.calls)
	})

	t.Run("requires token", func(t *testing.T) {
		api := &fakeAPI{}
		svc, _ := newTestService(t, api, "")
		_, err := svc.Publish(context.Background(), form, nil)
		assert.True(t, apperrors.Is(err, apperrors.Unauthenticated))
		assert.Zero(t, api.calls)
	})

	t.Run("sends trimmed fields and photo", func(t *testing.T) {
		api := &fakeAPI{}
		svc, _ := newTestService(t, api, "u1")
		photo := &backend.Photo{Filename: "rex.jpg"}
		p, err := svc.Publish(context.Background(), form, photo)
		require.NoError(t, err)
		assert.Equal(t, "new", p.ID)
		require.NotNil(t, api.created)
		assert.Equal(t, "Rex", api.created.Name)
		assert.Empty(t, api.created.Phone)
		assert.Equal(t, lat, api.created.Lat)
		assert.Same(t, photo, api.photo)
	})
}

func TestToggleStatus(t *testing.T) {
	api := &fakeAPI{pets: []domain.Pet{rex()}}

	svc, _ := newTestService(t, api, "u2")
	d, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	_, err = svc.ToggleStatus(context.Background(), d)
	assert.Error(t, err)
	assert.Empty(t, api.statusSet)

	svc, _ = newTestService(t, api, "u1")
	d, err = svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	msg, err := svc.ToggleStatus(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "Estado actualizado", msg)
	assert.Equal(t, domain.StatusFound, api.statusSet)
	assert.Equal(t, domain.StatusFound, d.Pet.Status)
}

func TestDeleteAsksFirst(t *testing.T) {
	api := &fakeAPI{pets: []domain.Pet{rex()}}
	svc, _ := newTestService(t, api, "u1")
	d := svc.Describe(rex())

	var asked string
	ok, _, err := svc.Delete(context.Background(), d, func(q string) bool { asked = q; return false })
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, DeleteQuestion, asked)
	assert.Empty(t, api.deleted)

	ok, msg, err := svc.Delete(context.Background(), d, func(string) bool { return true })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Mascota eliminada", msg)
	assert.Equal(t, "p1", api.deleted)
}

func TestDeleteAnonymous(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newTestService(t, api, "")
	_, _, err := svc.Delete(context.Background(), svc.Describe(rex()), func(string) bool { return true })
	assert.True(t, apperrors.Is(err, apperrors.Unauthenticated))
	assert.Empty(t, api.deleted)
}

func TestMineRequiresToken(t *testing.T) {
	svc, _ := newTestService(t, &fakeAPI{}, "")
	_, err := svc.Mine(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.Unauthenticated))
}
