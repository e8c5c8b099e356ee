// internal/services/content_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkrights/ledger-backend/internal/apperrors"
	"github.com/inkrights/ledger-backend/internal/models"
	"github.com/inkrights/ledger-backend/internal/services"
)

func TestCreateContentAssignsDenseIDs(t *testing.T) {
	f := newFixture(t, 5)
	creator := uuid.New()

	for want := uint64(1); want <= 5; want++ {
		id := f.createContent(t, creator, "artwork")
		assert.Equal(t, want, id)
	}
}

func TestCreateContentEstablishesInitialOwnership(t *testing.T) {
	f := newFixture(t, 5)
	creator := uuid.New()

	id := f.createContent(t, creator, "artwork")

	owner, err := f.rights.OwnerOf(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, creator, owner)
}

func TestCreateContentValidation(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	creator := uuid.New()

	_, err := f.content.Create(ctx, creator, &services.CreateContentRequest{
		ContentHash: "not-a-hash",
		Description: "artwork",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	_, err = f.content.Create(ctx, creator, &services.CreateContentRequest{
		ContentHash: testHash,
		Description: "",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))

	_, err = f.content.Create(ctx, models.ZeroAddress, &services.CreateContentRequest{
		ContentHash: testHash,
		Description: "artwork",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestCreateContentFailsCleanlyWhenRegistryMisconfigured(t *testing.T) {
	f := newFixture(t, 5)
	ctx := context.Background()
	creator := uuid.New()

	// A registry whose collaborator identity the rights registry does
	// not trust must not leave a record behind.
	misconfigured := services.NewContentService(f.stores.Content, f.stores.Events, f.rights, f.stores.Runner, uuid.New())
	_, err := misconfigured.Create(ctx, creator, &services.CreateContentRequest{
		ContentHash: testHash,
		Description: "artwork",
	})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeUnauthorized))

	_, err = misconfigured.Get(ctx, 1)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	// The failed attempt consumed no ID.
	id := f.createContent(t, creator, "artwork")
	assert.Equal(t, uint64(1), id)
}

func TestGetContentNotFound(t *testing.T) {
	f := newFixture(t, 5)

	_, err := f.content.Get(context.Background(), 99)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestGetContentReturnsRecord(t *testing.T) {
	f := newFixture(t, 5)
	creator := uuid.New()
	id := f.createContent(t, creator, "first piece")

	record, err := f.content.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, creator, record.Creator)
	assert.Equal(t, models.Hash(testHash), record.ContentHash)
	assert.Equal(t, "first piece", record.Description)
}

func TestListContentByCreator(t *testing.T) {
	f := newFixture(t, 5)
	alice := uuid.New()
	bob := uuid.New()

	first := f.createContent(t, alice, "one")
	f.createContent(t, bob, "two")
	third := f.createContent(t, alice, "three")

	ids, err := f.content.ListIDsByCreator(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{first, third}, ids)

	none, err := f.content.ListIDsByCreator(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateContentEmitsEvent(t *testing.T) {
	f := newFixture(t, 5)
	creator := uuid.New()
	id := f.createContent(t, creator, "artwork")

	events, _, err := f.stores.Events.List(context.Background(), eventFilterByContent(models.EventContentCreated, id))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, creator, events[0].Actor)
}
