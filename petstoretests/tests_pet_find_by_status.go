package petstoretests

import (
	"net/http"
	"net/url"

	"github.com/launchdarkly/petstore-contract-tests/framework/harness"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"
	"github.com/launchdarkly/petstore-contract-tests/schemas"
	"github.com/launchdarkly/petstore-contract-tests/servicedef"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoPetFindByStatusTests(t *ldtest.T) {
	for _, status := range servicedef.AllPetStatuses {
		status := status
		t.Run(string(status), func(t *ldtest.T) {
			resp := findPetsByStatus(t, url.Values{"status": {string(status)}})
			t.Step("check response status", func() {
				RequireStatus(t, resp, http.StatusOK)
			})
			t.Step("check that the response is a list of pets", func() {
				pets := RequireJSON(t, resp)
				require.Equal(t, ldvalue.ArrayType, pets.Type(), "response should be a list of pets")
				for i := 0; i < pets.Count(); i++ {
					require.NoError(t, schemas.Pet.ValidateJSON(pets.GetByIndex(i)), "pet at index %d", i)
				}
			})
		})
	}

	t.Run("missing status", func(t *ldtest.T) {
		resp := findPetsByStatus(t, nil)
		t.Step("check response status", func() {
			RequireStatus(t, resp, http.StatusBadRequest)
		})
		t.Step("check error message", func() {
			RequireErrorMessage(t, resp, servicedef.MessageNoStatus)
		})
	})

	t.Run("invalid status", func(t *ldtest.T) {
		resp := findPetsByStatus(t, url.Values{"status": {"new"}})
		t.Step("check response status", func() {
			RequireStatus(t, resp, http.StatusBadRequest)
		})
		t.Step("check error message", func() {
			RequireErrorMessage(t, resp, servicedef.InvalidStatusMessage("new"))
		})
	})
}

func findPetsByStatus(t *ldtest.T, query url.Values) *harness.Response {
	label := "send request to find pets by status"
	if status := query.Get("status"); status != "" {
		label += " " + status
	}
	var resp *harness.Response
	t.Step(label, func() {
		resp = SendRequest(t, harness.Request{Path: findPetsPath, Query: query})
	})
	return resp
}
