// Package servicedef contains the JSON representations of the Petstore resources that the
// tests send to and receive from the service.
package servicedef

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusSold      PetStatus = "sold"
)

// AllPetStatuses is the set of values the service accepts for a pet's status.
var AllPetStatuses = []PetStatus{PetStatusAvailable, PetStatusPending, PetStatusSold}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Pet is the body of POST /pet and PUT /pet. Optional fields are omitted when unset, so that
// a minimal payload really is minimal on the wire.
type Pet struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  *Category `json:"category,omitempty"`
	PhotoURLs []string  `json:"photoUrls,omitempty"`
	Tags      []Tag     `json:"tags,omitempty"`
	Status    PetStatus `json:"status,omitempty"`
}

const OrderStatusPlaced = "placed"

// Order is the body of POST /store/order.
type Order struct {
	ID       int64               `json:"id"`
	PetID    int64               `json:"petId"`
	Quantity ldvalue.OptionalInt `json:"quantity"`
	Status   string              `json:"status,omitempty"`
	Complete bool                `json:"complete"`
}

// Inventory is the body returned by GET /store/inventory.
type Inventory map[string]int

// APIError is the JSON form of an error body. The service sends some errors this way and
// others as plain text.
type APIError struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

const (
	MessagePetDeleted       = "Pet deleted"
	MessagePetNotFound      = "Pet not found"
	MessageOrderNotFound    = "Order not found"
	MessageNoStatus         = "No status provided. Try again?"
	invalidStatusMessageFmt = "Input error: query parameter `status value `%s` is not in the allowable values `[available, pending, sold]`"
)

// InvalidStatusMessage is the error message the service returns when findByStatus is given a
// status that is not one of AllPetStatuses.
func InvalidStatusMessage(status string) string {
	return fmt.Sprintf(invalidStatusMessageFmt, status)
}
