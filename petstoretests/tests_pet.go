package petstoretests

import (
	"net/http"

	"github.com/launchdarkly/petstore-contract-tests/framework/harness"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"
	"github.com/launchdarkly/petstore-contract-tests/schemas"
	"github.com/launchdarkly/petstore-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoPetTests(t *ldtest.T) {
	t.Run("delete nonexistent pet", func(t *ldtest.T) {
		var resp *harness.Response
		t.Step("send request to delete a nonexistent pet", func() {
			resp = SendRequest(t, harness.Request{Method: http.MethodDelete, Path: petPath, ID: nonexistentID})
		})
		t.Step("check response status", func() {
			// The service does not distinguish between existing and nonexistent pets here.
			RequireStatus(t, resp, http.StatusOK)
		})
		t.Step("check response text", func() {
			RequireText(t, resp, servicedef.MessagePetDeleted)
		})
	})

	t.Run("update nonexistent pet", func(t *ldtest.T) {
		var resp *harness.Response
		t.Step("send request to update a nonexistent pet", func() {
			payload := servicedef.Pet{ID: nonexistentID, Name: "Non-existent Pet", Status: servicedef.PetStatusAvailable}
			resp = SendRequest(t, harness.Request{Method: http.MethodPut, Path: petPath, Body: payload})
		})
		t.Step("check response status", func() {
			RequireStatus(t, resp, http.StatusNotFound)
		})
		t.Step("check response text", func() {
			RequireText(t, resp, servicedef.MessagePetNotFound)
		})
	})

	t.Run("get nonexistent pet", func(t *ldtest.T) {
		var resp *harness.Response
		t.Step("send request to get a nonexistent pet", func() {
			resp = SendRequest(t, harness.Request{Path: petPath, ID: nonexistentID})
		})
		t.Step("check response status", func() {
			RequireStatus(t, resp, http.StatusNotFound)
		})
		t.Step("check response text", func() {
			RequireText(t, resp, servicedef.MessagePetNotFound)
		})
	})

	t.Run("add pet with minimal data", func(t *ldtest.T) {
		payload := servicedef.Pet{ID: 1, Name: "Buddy", Status: servicedef.PetStatusAvailable}
		doAddPetTest(t, payload, "id", "name", "status")
	})

	t.Run("add pet with complete data", func(t *ldtest.T) {
		payload := servicedef.Pet{
			ID:        10,
			Name:      "doggie",
			Category:  &servicedef.Category{ID: 1, Name: "Dogs"},
			PhotoURLs: []string{"string"},
			Tags:      []servicedef.Tag{{ID: 0, Name: "string"}},
			Status:    servicedef.PetStatusAvailable,
		}
		doAddPetTest(t, payload, "id", "name", "category", "photoUrls", "tags", "status")
	})

	t.Run("get pet by ID", func(t *ldtest.T) {
		pet := NewPetFixture(t)
		requirePetExists(t, pet)
	})

	t.Run("update pet", func(t *ldtest.T) {
		pet := NewPetFixture(t)
		requirePetExists(t, pet)

		payload := servicedef.Pet{ID: pet.ID(), Name: "Buddy Updated", Status: servicedef.PetStatusSold}
		var resp *harness.Response
		t.Step("send request to update the pet", func() {
			resp = SendRequest(t, harness.Request{Method: http.MethodPut, Path: petPath, Body: payload})
		})
		t.Step("check response status and updated pet", func() {
			RequireStatus(t, resp, http.StatusOK)
			requireProperties(t, RequireJSON(t, resp), payload, "id", "name", "status")
		})
	})

	t.Run("delete pet by ID", func(t *ldtest.T) {
		pet := NewPetFixture(t)
		requirePetExists(t, pet)

		t.Step("send request to delete the pet", func() {
			resp := SendRequest(t, pet.Request(http.MethodDelete))
			RequireStatus(t, resp, http.StatusOK)
		})
		t.Step("check that the pet no longer exists", func() {
			resp := SendRequest(t, pet.Request(http.MethodGet))
			RequireStatus(t, resp, http.StatusNotFound)
			RequireText(t, resp, servicedef.MessagePetNotFound)
		})
	})

	t.Run("find by status", DoPetFindByStatusTests)
}

// doAddPetTest creates a pet and verifies that the service echoes back each named property of
// the payload unchanged.
func doAddPetTest(t *ldtest.T, payload servicedef.Pet, echoedProperties ...string) {
	var resp *harness.Response
	t.Step("send request to add the pet", func() {
		resp = SendRequest(t, harness.Request{Method: http.MethodPost, Path: petPath, Body: payload})
	})
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		deleteAfterTest(t, "pet", petPath, payload.ID)
	}

	var body ldvalue.Value
	t.Step("check response status and validate against the Pet schema", func() {
		RequireStatus(t, resp, http.StatusOK)
		body = RequireJSON(t, resp)
		RequireSchema(t, schemas.Pet, body)
	})
	t.Step("check pet properties in response", func() {
		requireProperties(t, body, payload, echoedProperties...)
	})
}

func requirePetExists(t *ldtest.T, pet *harness.Entity) {
	t.Step("get the pet by ID", func() {
		resp := SendRequest(t, pet.Request(http.MethodGet))
		RequireStatus(t, resp, http.StatusOK)
		requireProperty(t, RequireJSON(t, resp), "id", ldvalue.Float64(float64(pet.ID())))
	})
}
