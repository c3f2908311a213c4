package petstoretests

import (
	"net/http"

	"github.com/launchdarkly/petstore-contract-tests/framework/harness"
	"github.com/launchdarkly/petstore-contract-tests/framework/ldtest"
	"github.com/launchdarkly/petstore-contract-tests/schemas"
	"github.com/launchdarkly/petstore-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoStoreTests(t *ldtest.T) {
	t.Run("place order", func(t *ldtest.T) {
		payload := fixtureOrder()
		var resp *harness.Response
		t.Step("send request to place the order", func() {
			resp = SendRequest(t, harness.Request{Method: http.MethodPost, Path: orderPath, Body: payload})
		})
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			deleteAfterTest(t, "order", orderPath, payload.ID)
		}
		t.Step("check response status and order properties", func() {
			RequireStatus(t, resp, http.StatusOK)
			requireProperties(t, RequireJSON(t, resp), payload, "id", "petId", "quantity", "status", "complete")
		})
	})

	t.Run("get order by ID", func(t *ldtest.T) {
		order := NewOrderFixture(t)
		requireOrderExists(t, order)
	})

	t.Run("delete order by ID", func(t *ldtest.T) {
		order := NewOrderFixture(t)
		requireOrderExists(t, order)

		t.Step("send request to delete the order", func() {
			resp := SendRequest(t, order.Request(http.MethodDelete))
			RequireStatus(t, resp, http.StatusOK)
		})
		t.Step("check that the order no longer exists", func() {
			resp := SendRequest(t, order.Request(http.MethodGet))
			RequireStatus(t, resp, http.StatusNotFound)
			RequireText(t, resp, servicedef.MessageOrderNotFound)
		})
	})

	t.Run("get nonexistent order", func(t *ldtest.T) {
		var resp *harness.Response
		t.Step("send request to get a nonexistent order", func() {
			resp = SendRequest(t, harness.Request{Path: orderPath, ID: nonexistentID})
		})
		t.Step("check response status", func() {
			RequireStatus(t, resp, http.StatusNotFound)
		})
		t.Step("check response text", func() {
			RequireText(t, resp, servicedef.MessageOrderNotFound)
		})
	})

	t.Run("get inventory", func(t *ldtest.T) {
		var resp *harness.Response
		t.Step("send request to get the store inventory", func() {
			resp = SendRequest(t, harness.Request{Path: inventoryPath})
		})
		t.Step("check response status", func() {
			RequireStatus(t, resp, http.StatusOK)
		})
		t.Step("validate against the Inventory schema", func() {
			RequireSchema(t, schemas.Inventory, RequireJSON(t, resp))
		})
	})
}

func requireOrderExists(t *ldtest.T, order *harness.Entity) {
	t.Step("get the order by ID", func() {
		resp := SendRequest(t, order.Request(http.MethodGet))
		RequireStatus(t, resp, http.StatusOK)
		requireProperty(t, RequireJSON(t, resp), "id", ldvalue.Float64(float64(order.ID())))
	})
}
