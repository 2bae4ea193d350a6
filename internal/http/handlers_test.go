package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sbvanyo/expense-tracker-server/internal/events"
	"github.com/sbvanyo/expense-tracker-server/internal/services"
	"github.com/sbvanyo/expense-tracker-server/internal/storage"
)

type HandlersTestSuite struct {
	suite.Suite
	store   *storage.Store
	handler http.Handler
}

func (s *HandlersTestSuite) SetupTest() {
	store, err := storage.New(":memory:")
	require.NoError(s.T(), err, "failed to create test store")
	s.store = store

	pub := events.NopPublisher{}
	h := NewHandlers(
		services.NewUserService(store, pub),
		services.NewTripService(store, pub),
		services.NewExpenseService(store, pub),
		services.NewCategoryService(store, pub),
		services.NewExpenseCategoryService(store, pub),
		store,
	)
	s.handler = NewServer(":0", h).Handler
}

func (s *HandlersTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

// do sends a request through the full routing and middleware stack and
// decodes the JSON body into out when out is non-nil.
func (s *HandlersTestSuite) do(method, path string, body any, out any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), out),
			"body: %s", rec.Body.String())
	}
	return rec
}

func (s *HandlersTestSuite) register(uid, name string) map[string]any {
	var u map[string]any
	rec := s.do(http.MethodPost, "/register", map[string]string{"uid": uid, "name": name}, &u)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	return u
}

func (s *HandlersTestSuite) createCategory(name string) map[string]any {
	var c map[string]any
	rec := s.do(http.MethodPost, "/categories", map[string]string{"name": name}, &c)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	return c
}

func (s *HandlersTestSuite) createExpense(body map[string]any) map[string]any {
	var e map[string]any
	rec := s.do(http.MethodPost, "/expenses", body, &e)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	return e
}

func (s *HandlersTestSuite) createTrip(userID any, name string) map[string]any {
	var t map[string]any
	rec := s.do(http.MethodPost, "/trips", map[string]any{
		"user":        userID,
		"name":        name,
		"date":        "2024-05-01",
		"description": "spring trip",
	}, &t)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	return t
}

func id(v map[string]any) int64 {
	return int64(v["id"].(float64))
}

func (s *HandlersTestSuite) TestRegisterIsIdempotentPerUID() {
	first := s.register("ext-1", "Sam")

	var second map[string]any
	rec := s.do(http.MethodPost, "/register", map[string]string{"uid": "ext-1", "name": "Other"}, &second)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), first["id"], second["id"])
	assert.Equal(s.T(), "Sam", second["name"])
}

func (s *HandlersTestSuite) TestCheckUser() {
	u := s.register("ext-1", "Sam")

	var found map[string]any
	rec := s.do(http.MethodGet, "/checkuser?uid=ext-1", nil, &found)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), u["id"], found["id"])

	var missing map[string]string
	rec = s.do(http.MethodGet, "/checkuser?uid=nobody", nil, &missing)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.Equal(s.T(), "User not found", missing["message"])

	rec = s.do(http.MethodGet, "/checkuser", nil, nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlersTestSuite) TestCategoryCRUD() {
	c := s.createCategory("Food")

	var got map[string]any
	rec := s.do(http.MethodGet, fmt.Sprintf("/categories/%d", id(c)), nil, &got)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), "Food", got["name"])

	rec = s.do(http.MethodPut, fmt.Sprintf("/categories/%d", id(c)), map[string]string{"name": "Groceries"}, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/categories/%d", id(c)), nil, &got)
	assert.Equal(s.T(), "Groceries", got["name"])

	rec = s.do(http.MethodDelete, fmt.Sprintf("/categories/%d", id(c)), nil, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	var body map[string]string
	rec = s.do(http.MethodGet, fmt.Sprintf("/categories/%d", id(c)), nil, &body)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.Equal(s.T(), "Category not found", body["message"])
}

func (s *HandlersTestSuite) TestCreateExpenseWithCategories() {
	u := s.register("ext-1", "Sam")
	food := s.createCategory("Food")
	travel := s.createCategory("Travel")

	e := s.createExpense(map[string]any{
		"user":        u["id"],
		"name":        "Dinner",
		"amount":      "12.34",
		"description": "ramen",
		"date":        "2024-05-02",
		"categories":  []any{food["id"], travel["id"]},
	})
	assert.Equal(s.T(), "12.34", e["amount"])
	assert.Equal(s.T(), "2024-05-02", e["date"])
	assert.Nil(s.T(), e["trip"])
	assert.Equal(s.T(), u["id"], e["user"].(map[string]any)["id"])

	tags := e["categories"].([]any)
	require.Len(s.T(), tags, 2)
	names := []string{
		tags[0].(map[string]any)["category"].(map[string]any)["name"].(string),
		tags[1].(map[string]any)["category"].(map[string]any)["name"].(string),
	}
	assert.ElementsMatch(s.T(), []string{"Food", "Travel"}, names)

	var got map[string]any
	rec := s.do(http.MethodGet, fmt.Sprintf("/expenses/%d", id(e)), nil, &got)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Equal(s.T(), e["id"], got["id"])
	assert.Len(s.T(), got["categories"].([]any), 2)
}

func (s *HandlersTestSuite) TestCreateExpenseNumericAmount() {
	u := s.register("ext-1", "Sam")
	e := s.createExpense(map[string]any{
		"user":   u["id"],
		"name":   "Taxi",
		"amount": 7.5,
		"date":   "2024-05-02",
	})
	assert.Equal(s.T(), "7.50", e["amount"])
	assert.Equal(s.T(), []any{}, e["categories"])
}

func (s *HandlersTestSuite) TestCreateExpenseRejectsBadAmount() {
	u := s.register("ext-1", "Sam")

	for _, amount := range []string{"12.345", "0", "-3.00", "abc", "100000.00"} {
		rec := s.do(http.MethodPost, "/expenses", map[string]any{
			"user":   u["id"],
			"name":   "Dinner",
			"amount": amount,
			"date":   "2024-05-02",
		}, nil)
		assert.Equal(s.T(), http.StatusBadRequest, rec.Code, "amount %q", amount)
	}
}

func (s *HandlersTestSuite) TestCreateExpenseUnknownUser() {
	var body map[string]string
	rec := s.do(http.MethodPost, "/expenses", map[string]any{
		"user":   999,
		"name":   "Dinner",
		"amount": "5.00",
		"date":   "2024-05-02",
	}, &body)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.Equal(s.T(), "User not found", body["message"])
}

func (s *HandlersTestSuite) TestMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(s.T(), "malformed request body", body["message"])
}

func (s *HandlersTestSuite) TestUpdateExpenseReplacesCategories() {
	u := s.register("ext-1", "Sam")
	food := s.createCategory("Food")
	travel := s.createCategory("Travel")

	e := s.createExpense(map[string]any{
		"user":       u["id"],
		"name":       "Dinner",
		"amount":     "12.34",
		"date":       "2024-05-02",
		"categories": []any{food["id"]},
	})

	rec := s.do(http.MethodPut, fmt.Sprintf("/expenses/%d", id(e)), map[string]any{
		"user":       u["id"],
		"name":       "Dinner out",
		"amount":     "15.00",
		"date":       "2024-05-03",
		"categories": []any{travel["id"]},
	}, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	var got map[string]any
	s.do(http.MethodGet, fmt.Sprintf("/expenses/%d", id(e)), nil, &got)
	assert.Equal(s.T(), "Dinner out", got["name"])
	assert.Equal(s.T(), "15.00", got["amount"])
	tags := got["categories"].([]any)
	require.Len(s.T(), tags, 1)
	assert.Equal(s.T(), "Travel",
		tags[0].(map[string]any)["category"].(map[string]any)["name"])
}

func (s *HandlersTestSuite) TestUpdateExpenseKeepsCategoriesWhenOmitted() {
	u := s.register("ext-1", "Sam")
	food := s.createCategory("Food")

	e := s.createExpense(map[string]any{
		"user":       u["id"],
		"name":       "Dinner",
		"amount":     "12.34",
		"date":       "2024-05-02",
		"categories": []any{food["id"]},
	})

	rec := s.do(http.MethodPut, fmt.Sprintf("/expenses/%d", id(e)), map[string]any{
		"user":   u["id"],
		"name":   "Dinner",
		"amount": "12.34",
		"date":   "2024-05-02",
	}, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	var got map[string]any
	s.do(http.MethodGet, fmt.Sprintf("/expenses/%d", id(e)), nil, &got)
	assert.Len(s.T(), got["categories"].([]any), 1)
}

func (s *HandlersTestSuite) TestTripAttachDetach() {
	u := s.register("ext-1", "Sam")
	trip := s.createTrip(u["id"], "Tokyo")
	e := s.createExpense(map[string]any{
		"user":   u["id"],
		"name":   "Dinner",
		"amount": "12.34",
		"date":   "2024-05-02",
	})

	var msg map[string]string
	rec := s.do(http.MethodPost, fmt.Sprintf("/trips/%d/add_expense", id(trip)),
		map[string]any{"expense": e["id"]}, &msg)
	assert.Equal(s.T(), http.StatusCreated, rec.Code)
	assert.Equal(s.T(), "Expense added to trip", msg["message"])

	var got map[string]any
	s.do(http.MethodGet, fmt.Sprintf("/trips/%d", id(trip)), nil, &got)
	expenses := got["expenses"].([]any)
	require.Len(s.T(), expenses, 1)
	assert.Equal(s.T(), e["id"], expenses[0].(map[string]any)["id"])

	rec = s.do(http.MethodDelete,
		fmt.Sprintf("/trips/%d/remove_trip_expense/%d", id(trip), id(e)), nil, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	// Detaching again is a 404 with the association message.
	var errBody map[string]string
	rec = s.do(http.MethodDelete,
		fmt.Sprintf("/trips/%d/remove_trip_expense/%d", id(trip), id(e)), nil, &errBody)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.Equal(s.T(), "Expense not associated with trip.", errBody["error"])
}

func (s *HandlersTestSuite) TestTripAttachChecksExpenseFirst() {
	var body map[string]string
	rec := s.do(http.MethodPost, "/trips/999/add_expense",
		map[string]any{"expense": 888}, &body)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.Equal(s.T(), "Expense not found", body["error"])
}

func (s *HandlersTestSuite) TestTripListFilterByUser() {
	alice := s.register("ext-1", "Alice")
	bob := s.register("ext-2", "Bob")
	s.createTrip(alice["id"], "Tokyo")
	s.createTrip(bob["id"], "Paris")

	var all []map[string]any
	rec := s.do(http.MethodGet, "/trips", nil, &all)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Len(s.T(), all, 2)

	var filtered []map[string]any
	rec = s.do(http.MethodGet, fmt.Sprintf("/trips?userId=%d", id(bob)), nil, &filtered)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	require.Len(s.T(), filtered, 1)
	assert.Equal(s.T(), "Paris", filtered[0]["name"])

	rec = s.do(http.MethodGet, "/trips?userId=abc", nil, nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlersTestSuite) TestTripDeleteCascadesExpenses() {
	u := s.register("ext-1", "Sam")
	trip := s.createTrip(u["id"], "Tokyo")
	e := s.createExpense(map[string]any{
		"user":   u["id"],
		"name":   "Dinner",
		"amount": "12.34",
		"date":   "2024-05-02",
		"trip":   trip["id"],
	})

	rec := s.do(http.MethodDelete, fmt.Sprintf("/trips/%d", id(trip)), nil, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/expenses/%d", id(e)), nil, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlersTestSuite) TestExpenseCategoryResource() {
	u := s.register("ext-1", "Sam")
	food := s.createCategory("Food")
	e := s.createExpense(map[string]any{
		"user":   u["id"],
		"name":   "Dinner",
		"amount": "12.34",
		"date":   "2024-05-02",
	})

	var ec map[string]any
	rec := s.do(http.MethodPost, "/expensecategories",
		map[string]any{"expense": e["id"], "category": food["id"]}, &ec)
	assert.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(s.T(), e["id"], ec["expense"].(map[string]any)["id"])
	assert.Equal(s.T(), "Food", ec["category"].(map[string]any)["name"])

	var body map[string]string
	rec = s.do(http.MethodPut, fmt.Sprintf("/expensecategories/%d", id(ec)),
		map[string]any{"expense": e["id"], "category": food["id"]}, &body)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(s.T(), "Not supported", body["message"])

	rec = s.do(http.MethodDelete, fmt.Sprintf("/expensecategories/%d", id(ec)), nil, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, fmt.Sprintf("/expensecategories/%d", id(ec)), nil, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlersTestSuite) TestRemoveExpenseCategoryScopedToExpense() {
	u := s.register("ext-1", "Sam")
	food := s.createCategory("Food")
	first := s.createExpense(map[string]any{
		"user":   u["id"],
		"name":   "Dinner",
		"amount": "12.34",
		"date":   "2024-05-02",
	})
	second := s.createExpense(map[string]any{
		"user":   u["id"],
		"name":   "Lunch",
		"amount": "8.00",
		"date":   "2024-05-03",
	})

	var msg map[string]string
	rec := s.do(http.MethodPost, fmt.Sprintf("/expenses/%d/add_expense_category", id(first)),
		map[string]any{"category": food["id"]}, &msg)
	assert.Equal(s.T(), http.StatusCreated, rec.Code)
	assert.Equal(s.T(), "Category added to expense", msg["message"])

	var got map[string]any
	s.do(http.MethodGet, fmt.Sprintf("/expenses/%d", id(first)), nil, &got)
	tags := got["categories"].([]any)
	require.Len(s.T(), tags, 1)
	joinID := int64(tags[0].(map[string]any)["id"].(float64))

	// The join row belongs to the first expense; removing it through the
	// second is a 404.
	rec = s.do(http.MethodDelete,
		fmt.Sprintf("/expenses/%d/remove_expense_category/%d", id(second), joinID), nil, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete,
		fmt.Sprintf("/expenses/%d/remove_expense_category/%d", id(first), joinID), nil, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)
}

func (s *HandlersTestSuite) TestHealthEndpoints() {
	rec := s.do(http.MethodGet, "/healthz", nil, nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/readyz", nil, nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}
