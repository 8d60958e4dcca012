package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caselink/caselink-backend/internal/google"
	"github.com/caselink/caselink-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func remoteContact(resourceName, firstName, email string) models.Contact {
	return models.Contact{
		GoogleResourceName: &resourceName,
		FirstName:          firstName,
		EmailMain:          email,
	}
}

func TestImportIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, nil)

	directory := []models.Contact{
		remoteContact("people/c1", "Ann", "ann@x.com"),
		remoteContact("people/c2", "Bob", "bob@x.com"),
	}

	first, err := svc.Import(directory)
	require.NoError(t, err)
	assert.Len(t, first.Created, 2)
	assert.Zero(t, first.Skipped)

	second, err := svc.Import(directory)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Equal(t, 2, second.Skipped)

	var count int64
	require.NoError(t, db.Model(&models.Contact{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestImportSkipsExistingAndKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, nil)

	// people/c1 was imported on an earlier run.
	preexisting := remoteContact("people/c1", "Ann", "ann@x.com")
	preexisting.ID = uuid.New()
	require.NoError(t, db.Create(&preexisting).Error)

	result, err := svc.Import([]models.Contact{
		remoteContact("people/c1", "Ann", "ann@x.com"),
		remoteContact("people/c2", "Bob", "bob@x.com"),
		remoteContact("people/c3", "Cid", "cid@x.com"),
	})
	require.NoError(t, err)

	require.Len(t, result.Created, 2)
	assert.Equal(t, "people/c2", *result.Created[0].GoogleResourceName)
	assert.Equal(t, "people/c3", *result.Created[1].GoogleResourceName)
	assert.Equal(t, 1, result.Skipped)

	var count int64
	require.NoError(t, db.Model(&models.Contact{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestImportAbortsWithoutPartialApplication(t *testing.T) {
	db := newTestDB(t)

	// Fail the store on the second record only; the first create must
	// roll back with it.
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("import_failpoint", func(tx *gorm.DB) {
		if c, ok := tx.Statement.Dest.(*models.Contact); ok && c.FirstName == "Bob" {
			_ = tx.AddError(errors.New("store offline"))
		}
	}))

	svc := NewContactService(db, nil)
	_, err := svc.Import([]models.Contact{
		remoteContact("people/c1", "Ann", "ann@x.com"),
		remoteContact("people/c2", "Bob", "bob@x.com"),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, gorm.ErrDuplicatedKey)

	var count int64
	require.NoError(t, db.Model(&models.Contact{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFetchRemoteNormalizesSparseRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people/me/connections", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]google.Person{
			"connections": {
				{
					ResourceName:   "people/c1",
					Names:          []google.Name{{GivenName: "Jane", FamilyName: "Doe"}},
					EmailAddresses: []google.EmailAddress{{Value: "jane@x.com"}},
				},
				{ResourceName: "people/c2"}, // no name, no email
			},
		})
	}))
	defer srv.Close()

	svc := NewContactService(newTestDB(t), newTestGoogle(srv))

	contacts, err := svc.FetchRemote(context.Background(), "tok1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	assert.Equal(t, "Jane", contacts[0].FirstName)
	assert.Equal(t, "Doe", contacts[0].LastName)
	assert.Equal(t, "jane@x.com", contacts[0].EmailMain)

	// Sparse records normalize to empty strings, never null.
	require.NotNil(t, contacts[1].GoogleResourceName)
	assert.Equal(t, "people/c2", *contacts[1].GoogleResourceName)
	assert.Equal(t, "", contacts[1].FirstName)
	assert.Equal(t, "", contacts[1].LastName)
	assert.Equal(t, "", contacts[1].EmailMain)
}

func TestFetchRemoteFailsAsAWhole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewContactService(newTestDB(t), newTestGoogle(srv))

	_, err := svc.FetchRemote(context.Background(), "tok1")
	require.Error(t, err)
	assert.ErrorIs(t, err, google.ErrRemoteFetch)
}

func TestCreateMirrorsToGoogle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people:createContact", r.URL.Path)
		json.NewEncoder(w).Encode(google.Person{ResourceName: "people/c99"})
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := NewContactService(db, newTestGoogle(srv))

	contact := &models.Contact{FirstName: "Ann", EmailMain: "a@x.com"}
	require.NoError(t, svc.Create(context.Background(), "tok1", contact))

	var stored models.Contact
	require.NoError(t, db.First(&stored, "id = ?", contact.ID).Error)
	require.NotNil(t, stored.GoogleResourceName)
	assert.Equal(t, "people/c99", *stored.GoogleResourceName)
}

func TestCreateKeepsLocalRowWhenMirrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	db := newTestDB(t)
	svc := NewContactService(db, newTestGoogle(srv))

	contact := &models.Contact{FirstName: "Ann"}
	require.NoError(t, svc.Create(context.Background(), "tok1", contact))

	var stored models.Contact
	require.NoError(t, db.First(&stored, "id = ?", contact.ID).Error)
	assert.Nil(t, stored.GoogleResourceName)
}

func TestListFuzzyFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, nil)

	for _, c := range []models.Contact{
		{ID: uuid.New(), FirstName: "John", LastName: "Smith"},
		{ID: uuid.New(), FirstName: "Jane", LastName: "Doe"},
		{ID: uuid.New(), FirstName: "Johnny", LastName: "Appleseed"},
	} {
		require.NoError(t, db.Create(&c).Error)
	}

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matched, err := svc.List("john")
	require.NoError(t, err)
	require.NotEmpty(t, matched)
	for _, c := range matched {
		assert.Contains(t, []string{"John", "Johnny"}, c.FirstName)
	}
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(db, nil)

	contact := models.Contact{ID: uuid.New(), FirstName: "Ann"}
	require.NoError(t, db.Create(&contact).Error)

	found, err := svc.GetByID(contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", found.FirstName)

	_, err = svc.GetByID(uuid.New())
	assert.ErrorIs(t, err, ErrContactNotFound)
}
