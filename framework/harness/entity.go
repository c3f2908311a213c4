package harness

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/launchdarkly/petstore-contract-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// EntityParams describes how to create an entity in the service and where it lives afterward.
type EntityParams struct {
	// Description is used in log output and error messages, for instance "pet".
	Description string

	// CreatePath is the resource that the creation request is POSTed to.
	CreatePath string

	// ItemPath is the resource that, followed by the entity's id, addresses the entity.
	ItemPath string

	// Body is the creation payload.
	Body interface{}
}

// Entity represents something that we have asked the service to create, and that the test
// harness is responsible for disposing of when the test is done with it.
type Entity struct {
	owner          *TestHarness
	description    string
	itemPath       string
	id             int64
	representation ldvalue.Value
	logger         framework.Logger
	closed         bool
}

// NewEntity tells the service to create a new entity, based on the parameters we provide. The
// service must respond with a 2xx status and a JSON representation of the entity containing a
// numeric "id" property. The entity is assumed to remain in the service until we explicitly
// close it.
func (h *TestHarness) NewEntity(params EntityParams, logger framework.Logger) (*Entity, error) {
	if logger == nil {
		logger = h.logger
	}
	logger.Printf("Creating %s", params.Description)
	resp, err := h.Do(Request{Method: http.MethodPost, Path: params.CreatePath, Body: params.Body}, logger)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected response status %d from service while creating %s: %s",
			resp.StatusCode, params.Description, resp.Text())
	}
	value, err := resp.JSON()
	if err != nil {
		return nil, fmt.Errorf("malformed %s representation from service: %w", params.Description, err)
	}
	idValue := value.GetByKey("id")
	if !idValue.IsNumber() {
		return nil, errors.New("service did not return a numeric id for the new " + params.Description)
	}

	return &Entity{
		owner:          h,
		description:    params.Description,
		itemPath:       params.ItemPath,
		id:             int64(idValue.Float64Value()),
		representation: value,
		logger:         logger,
	}, nil
}

// TrackEntity returns an Entity for something that the caller already created in the service
// with its own request, so that it can be disposed of the same way as one made by NewEntity.
func (h *TestHarness) TrackEntity(description, itemPath string, id int64, logger framework.Logger) *Entity {
	if logger == nil {
		logger = h.logger
	}
	return &Entity{
		owner:          h,
		description:    description,
		itemPath:       itemPath,
		id:             id,
		representation: ldvalue.Null(),
		logger:         logger,
	}
}

// ID returns the identifier the service assigned to the entity.
func (e *Entity) ID() int64 {
	return e.id
}

// Representation returns the entity as the service described it when it was created.
func (e *Entity) Representation() ldvalue.Value {
	return e.representation
}

// Request returns a request addressed to this entity.
func (e *Entity) Request(method string) Request {
	return Request{Method: method, Path: e.itemPath, ID: e.id}
}

// Close tells the service to dispose of this entity. It is not an error if the entity was
// already deleted, since tests are allowed to do that themselves.
func (e *Entity) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.logger.Printf("Deleting %s %d", e.description, e.id)
	resp, err := e.owner.Do(e.Request(http.MethodDelete), e.logger)
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return fmt.Errorf("DELETE request for %s %d returned HTTP status %d", e.description, e.id, resp.StatusCode)
	}
}
