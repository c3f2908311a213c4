package petstoretests

import (
	"github.com/launchdarkly/petstore-contract-tests/framework/harness"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"
	"github.com/launchdarkly/petstore-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	petPath       = "/pet"
	findPetsPath  = "/pet/findByStatus"
	orderPath     = "/store/order"
	inventoryPath = "/store/inventory"

	// nonexistentID is an id that no scenario ever creates.
	nonexistentID int64 = 9999
)

type PetstoreTestContext struct {
	harness *harness.TestHarness
}

func requireContext(t *ldtest.T) PetstoreTestContext {
	if c, ok := t.Context().(PetstoreTestContext); ok {
		return c
	}
	panic("PetstoreTestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

// SendRequest sends a request to the service, failing the test if there was no response at all.
func SendRequest(t *ldtest.T, req harness.Request) *harness.Response {
	resp, err := requireContext(t).harness.Do(req, t.DebugLogger())
	require.NoError(t, err)
	return resp
}

func fixturePet() servicedef.Pet {
	return servicedef.Pet{
		ID:        1,
		Name:      "Buddy",
		PhotoURLs: []string{"https://example.com/photos/buddy.jpg"},
		Status:    servicedef.PetStatusAvailable,
	}
}

func fixtureOrder() servicedef.Order {
	return servicedef.Order{
		ID:       1,
		PetID:    1,
		Quantity: ldvalue.NewOptionalInt(1),
		Status:   servicedef.OrderStatusPlaced,
		Complete: true,
	}
}

// NewPetFixture creates a pet in the service for the current test. The pet is deleted when
// the test exits, unless the test has already deleted it.
func NewPetFixture(t *ldtest.T) *harness.Entity {
	return newFixture(t, harness.EntityParams{
		Description: "pet",
		CreatePath:  petPath,
		ItemPath:    petPath,
		Body:        fixturePet(),
	})
}

// NewOrderFixture creates an order in the service for the current test. The order is deleted
// when the test exits, unless the test has already deleted it.
func NewOrderFixture(t *ldtest.T) *harness.Entity {
	return newFixture(t, harness.EntityParams{
		Description: "order",
		CreatePath:  orderPath,
		ItemPath:    orderPath,
		Body:        fixtureOrder(),
	})
}

func newFixture(t *ldtest.T, params harness.EntityParams) *harness.Entity {
	var entity *harness.Entity
	t.Step("create "+params.Description, func() {
		e, err := requireContext(t).harness.NewEntity(params, t.DebugLogger())
		require.NoError(t, err)
		entity = e
	})
	t.Defer(func() {
		assert.NoError(t, entity.Close())
	})
	return entity
}

// deleteAfterTest makes sure that an entity which the test created by its own request is
// removed from the service when the test exits.
func deleteAfterTest(t *ldtest.T, description, itemPath string, id int64) {
	entity := requireContext(t).harness.TrackEntity(description, itemPath, id, t.DebugLogger())
	t.Defer(func() {
		assert.NoError(t, entity.Close())
	})
}
