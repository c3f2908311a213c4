package petstoretests

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/launchdarkly/petstore-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
)

const twinBasePath = "/api/v3"

// petstoreTwin is an in-memory Petstore that behaves the way the real service does for every
// request the suite makes. Setting one of the "break" fields makes it deviate, so that we can
// verify the suite notices.
type petstoreTwin struct {
	lock   sync.Mutex
	pets          map[int64]servicedef.Pet
	orders        map[int64]servicedef.Order
	deletedPets   map[int64]bool
	deletedOrders map[int64]bool

	extraPetProperty   string
	extraInventoryKey  string
	deleteDoesNotStick bool

	// deletedNotFoundBody, if set, replaces the not-found message for entities that existed
	// and were then deleted.
	deletedNotFoundBody string
}

func newPetstoreTwin() *petstoreTwin {
	return &petstoreTwin{
		pets:          make(map[int64]servicedef.Pet),
		orders:        make(map[int64]servicedef.Order),
		deletedPets:   make(map[int64]bool),
		deletedOrders: make(map[int64]bool),
	}
}

func (p *petstoreTwin) router() http.Handler {
	r := chi.NewRouter()
	r.Route(twinBasePath, func(r chi.Router) {
		r.Get("/openapi.json", p.getOpenAPI)

		r.Post("/pet", p.addPet)
		r.Put("/pet", p.updatePet)
		r.Get("/pet/findByStatus", p.findPetsByStatus)
		r.Get("/pet/{petId}", p.getPet)
		r.Delete("/pet/{petId}", p.deletePet)

		r.Post("/store/order", p.placeOrder)
		r.Get("/store/order/{orderId}", p.getOrder)
		r.Delete("/store/order/{orderId}", p.deleteOrder)
		r.Get("/store/inventory", p.getInventory)
	})
	return r
}

func (p *petstoreTwin) counts() (pets, orders int) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.pets), len(p.orders)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func (p *petstoreTwin) notFoundText(deleted bool, message string) string {
	if deleted && p.deletedNotFoundBody != "" {
		return p.deletedNotFoundBody
	}
	return message
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil
}

func (p *petstoreTwin) getOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"openapi": "3.0.2",
		"info":    map[string]interface{}{"title": "Swagger Petstore - OpenAPI 3.0", "version": "1.0.19"},
		"paths":   map[string]interface{}{},
	})
}

// petRepresentation renders a pet the way the service does: photoUrls and tags are always
// present, and category only if the pet has one.
func (p *petstoreTwin) petRepresentation(pet servicedef.Pet) map[string]interface{} {
	m := map[string]interface{}{
		"id":        pet.ID,
		"name":      pet.Name,
		"photoUrls": append([]string{}, pet.PhotoURLs...),
		"tags":      append([]servicedef.Tag{}, pet.Tags...),
		"status":    pet.Status,
	}
	if pet.Category != nil {
		m["category"] = pet.Category
	}
	if p.extraPetProperty != "" {
		m[p.extraPetProperty] = "unexpected"
	}
	return m
}

func (p *petstoreTwin) addPet(w http.ResponseWriter, r *http.Request) {
	var pet servicedef.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid input")
		return
	}
	p.lock.Lock()
	p.pets[pet.ID] = pet
	delete(p.deletedPets, pet.ID)
	p.lock.Unlock()
	writeJSON(w, http.StatusOK, p.petRepresentation(pet))
}

func (p *petstoreTwin) updatePet(w http.ResponseWriter, r *http.Request) {
	var pet servicedef.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid input")
		return
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	if _, ok := p.pets[pet.ID]; !ok {
		writeText(w, http.StatusNotFound, servicedef.MessagePetNotFound)
		return
	}
	p.pets[pet.ID] = pet
	writeJSON(w, http.StatusOK, p.petRepresentation(pet))
}

func (p *petstoreTwin) findPetsByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		writeJSON(w, http.StatusBadRequest, servicedef.APIError{Code: 400, Message: servicedef.MessageNoStatus})
		return
	}
	valid := false
	for _, s := range servicedef.AllPetStatuses {
		valid = valid || string(s) == status
	}
	if !valid {
		writeJSON(w, http.StatusBadRequest, servicedef.APIError{Code: 400, Message: servicedef.InvalidStatusMessage(status)})
		return
	}

	p.lock.Lock()
	defer p.lock.Unlock()
	ids := make([]int64, 0, len(p.pets))
	for id, pet := range p.pets {
		if string(pet.Status) == status {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		result = append(result, p.petRepresentation(p.pets[id]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (p *petstoreTwin) getPet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "petId")
	if !ok {
		writeText(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	pet, ok := p.pets[id]
	if !ok {
		writeText(w, http.StatusNotFound, p.notFoundText(p.deletedPets[id], servicedef.MessagePetNotFound))
		return
	}
	writeJSON(w, http.StatusOK, p.petRepresentation(pet))
}

func (p *petstoreTwin) deletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "petId")
	if !ok {
		writeText(w, http.StatusBadRequest, "Invalid pet value")
		return
	}
	p.lock.Lock()
	if _, ok := p.pets[id]; ok && !p.deleteDoesNotStick {
		delete(p.pets, id)
		p.deletedPets[id] = true
	}
	p.lock.Unlock()
	writeText(w, http.StatusOK, servicedef.MessagePetDeleted)
}

func (p *petstoreTwin) placeOrder(w http.ResponseWriter, r *http.Request) {
	var order servicedef.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeText(w, http.StatusBadRequest, "Invalid input")
		return
	}
	p.lock.Lock()
	p.orders[order.ID] = order
	delete(p.deletedOrders, order.ID)
	p.lock.Unlock()
	writeJSON(w, http.StatusOK, order)
}

func (p *petstoreTwin) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "orderId")
	if !ok {
		writeText(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	order, ok := p.orders[id]
	if !ok {
		writeText(w, http.StatusNotFound, p.notFoundText(p.deletedOrders[id], servicedef.MessageOrderNotFound))
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (p *petstoreTwin) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "orderId")
	if !ok {
		writeText(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	p.lock.Lock()
	if _, ok := p.orders[id]; ok && !p.deleteDoesNotStick {
		delete(p.orders, id)
		p.deletedOrders[id] = true
	}
	p.lock.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (p *petstoreTwin) getInventory(w http.ResponseWriter, r *http.Request) {
	p.lock.Lock()
	defer p.lock.Unlock()
	inventory := servicedef.Inventory{"approved": 0, "available": 0, "delivered": 0}
	for _, pet := range p.pets {
		if pet.Status == servicedef.PetStatusAvailable {
			inventory["available"]++
		}
	}
	for _, order := range p.orders {
		if order.Complete {
			inventory["delivered"]++
		} else {
			inventory["approved"]++
		}
	}
	if p.extraInventoryKey != "" {
		inventory[p.extraInventoryKey] = 1
	}
	writeJSON(w, http.StatusOK, inventory)
}
