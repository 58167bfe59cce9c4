package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivebook/car-rental-api/internal/httperr"
	"github.com/drivebook/car-rental-api/internal/models"
)

type fakeRepo struct {
	contacts map[string]*models.Contact
	getErr   error
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{contacts: make(map[string]*models.Contact)}
}

func (f *fakeRepo) GetContact(_ context.Context, id string) (*models.Contact, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	c, ok := f.contacts[id]
	if !ok {
		return nil, httperr.ErrBusiness("contact_not_found")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepo) SaveExclusive(_ context.Context, c *models.Contact) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.IsMain {
		for _, other := range f.contacts {
			if other.Type == c.Type && other.ID != c.ID {
				other.IsMain = false
			}
		}
	}
	stored := *c
	f.contacts[c.ID] = &stored
	return nil
}

func (f *fakeRepo) mainContacts(contactType string) []*models.Contact {
	var out []*models.Contact
	for _, c := range f.contacts {
		if c.Type == contactType && c.IsMain {
			out = append(out, c)
		}
	}
	return out
}

func TestSaveContact_Create(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSave(repo)

	c, err := uc.Create(context.Background(), models.ContactPhone, "+55 11 99999-0000", true)
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.True(t, c.IsMain)
}

func TestSaveContact_InvalidType(t *testing.T) {
	uc := NewSave(newFakeRepo())

	_, err := uc.Create(context.Background(), "PAGER", "12345", false)
	assert.True(t, httperr.IsBusiness(err, "invalid_contact_type"))
}

func TestSaveContact_MainIsExclusivePerType(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSave(repo)

	first, err := uc.Create(context.Background(), models.ContactPhone, "+55 11 1111-1111", true)
	require.NoError(t, err)

	second, err := uc.Create(context.Background(), models.ContactPhone, "+55 11 2222-2222", true)
	require.NoError(t, err)

	mains := repo.mainContacts(models.ContactPhone)
	require.Len(t, mains, 1)
	assert.Equal(t, second.ID, mains[0].ID)
	assert.False(t, repo.contacts[first.ID].IsMain)
}

func TestSaveContact_MainScopedToType(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSave(repo)

	_, err := uc.Create(context.Background(), models.ContactPhone, "+55 11 1111-1111", true)
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), models.ContactEmail, "hello@example.com", true)
	require.NoError(t, err)

	// A main email does not demote the main phone.
	assert.Len(t, repo.mainContacts(models.ContactPhone), 1)
	assert.Len(t, repo.mainContacts(models.ContactEmail), 1)
}

func TestSaveContact_Update(t *testing.T) {
	repo := newFakeRepo()
	uc := NewSave(repo)

	c, err := uc.Create(context.Background(), models.ContactPhone, "+55 11 1111-1111", false)
	require.NoError(t, err)

	promote := true
	updated, err := uc.Update(context.Background(), c.ID, "+55 11 3333-3333", &promote)
	require.NoError(t, err)

	assert.Equal(t, "+55 11 3333-3333", updated.Value)
	assert.True(t, updated.IsMain)

	// Empty value keeps the stored one.
	updated, err = uc.Update(context.Background(), c.ID, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "+55 11 3333-3333", updated.Value)
}

func TestSaveContact_UpdateNotFound(t *testing.T) {
	uc := NewSave(newFakeRepo())

	_, err := uc.Update(context.Background(), "missing", "x", nil)
	assert.True(t, httperr.IsBusiness(err, "contact_not_found"))
}

func TestSaveContact_RepoErrorIsNotANotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("connection refused")
	uc := NewSave(repo)

	_, err := uc.Update(context.Background(), "contact-1", "x", nil)
	require.Error(t, err)
	assert.False(t, httperr.IsBusiness(err, "contact_not_found"))
	assert.EqualError(t, err, "connection refused")
}
