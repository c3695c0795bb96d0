package accountdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/projection"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("relations", web.ValidRelations); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func newServer(h Handler) *gin.Engine {
	server := gin.New()

	server.GET("/accounts", h.List(projection.ViewDefault))
	server.GET("/accounts/single/:id", h.Get(projection.ViewDefault))
	server.GET("/accounts/with-synthetic", h.List(projection.ViewWithSynthetic))
	server.GET("/accounts/with-synthetic/single/:id", h.Get(projection.ViewWithSynthetic))
	server.GET("/accounts/query", h.Query)
	server.GET("/accounts/query/:id", h.QueryOne)
	server.POST("/accounts", h.Create)
	server.PUT("/accounts/:id", h.Update)
	server.DELETE("/accounts/:id", h.Delete)

	return server
}

type accountResponse struct {
	Data struct {
		Account  map[string]any   `json:"account"`
		Accounts []map[string]any `json:"accounts"`
	} `json:"data"`
	Error string `json:"error"`
}

func TestRoutes(t *testing.T) {
	account := projection.Object{"id": int32(1), "title": "Assets"}
	withSynthetic := projection.Object{"id": int32(1), "title": "Assets", "syntheticAccounts": []projection.Object{}}

	testCases := []struct {
		name           string
		method         string
		url            string
		body           any
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
		checkData      func(t *testing.T, res accountResponse)
	}{
		{
			name:   "ListDefault",
			method: http.MethodGet,
			url:    "/accounts",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetAll(gomock.Any(), gomock.Eq([]string{}), gomock.Eq(projection.ViewDefault)).
					Times(1).
					Return([]projection.Object{account}, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(t *testing.T, res accountResponse) {
				want := []map[string]any{{"id": float64(1), "title": "Assets"}}
				if diff := cmp.Diff(want, res.Data.Accounts); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:   "GetWithSynthetic",
			method: http.MethodGet,
			url:    "/accounts/with-synthetic/single/1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetOne(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq([]string{"syntheticAccounts"}), gomock.Eq(projection.ViewWithSynthetic)).
					Times(1).
					Return(withSynthetic, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(t *testing.T, res accountResponse) {
				want := map[string]any{"id": float64(1), "title": "Assets", "syntheticAccounts": []any{}}
				if diff := cmp.Diff(want, res.Data.Account); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:   "ListWithSynthetic",
			method: http.MethodGet,
			url:    "/accounts/with-synthetic",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetAll(gomock.Any(), gomock.Eq([]string{"syntheticAccounts"}), gomock.Eq(projection.ViewWithSynthetic)).
					Times(1).
					Return([]projection.Object{withSynthetic}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "GetNotFound",
			method: http.MethodGet,
			url:    "/accounts/single/7",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetOne(gomock.Any(), gomock.Eq(int32(7)), gomock.Any(), gomock.Eq(projection.ViewDefault)).
					Times(1).
					Return(nil, domain.NotFound(domain.EntityAccount, 7))
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.NotFound(domain.EntityAccount, 7).Error(),
		},
		{
			name:   "GetInvalidID",
			method: http.MethodGet,
			url:    "/accounts/single/-1",
			buildStubs: func(service *MockService) {
				service.EXPECT().GetOne(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ID must be at least 1",
		},
		{
			name:   "QueryRelationsAndView",
			method: http.MethodGet,
			url:    "/accounts/query/1?relations=syntheticAccounts&view=withSynthetic",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetOne(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq([]string{"syntheticAccounts"}), gomock.Eq(projection.ViewWithSynthetic)).
					Times(1).
					Return(withSynthetic, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "QueryUnknownView",
			method: http.MethodGet,
			url:    "/accounts/query?view=atomic",
			buildStubs: func(service *MockService) {
				service.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "QueryMalformedRelations",
			method: http.MethodGet,
			url:    "/accounts/query?relations=syntheticAccounts,,x",
			buildStubs: func(service *MockService) {
				service.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Relations contains an unknown relation",
		},
		{
			name:   "QueryInvalidRelation",
			method: http.MethodGet,
			url:    "/accounts/query?relations=subAccounts",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					GetAll(gomock.Any(), gomock.Eq([]string{"subAccounts"}), gomock.Eq(projection.ViewDefault)).
					Times(1).
					Return(nil, &domain.Error{Kind: domain.ErrInvalidRelation, Entity: domain.EntityAccount, Field: "relations", Name: "subAccounts"})
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      `invalid relation: account relations "subAccounts"`,
		},
		{
			name:   "Create",
			method: http.MethodPost,
			url:    "/accounts",
			body:   map[string]any{"title": "Assets"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(domain.CreateAccountParams{Title: "Assets"})).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:   "CreateMissingTitle",
			method: http.MethodPost,
			url:    "/accounts",
			body:   map[string]any{},
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Title field is required",
		},
		{
			name:   "CreateInternal",
			method: http.MethodPost,
			url:    "/accounts",
			body:   map[string]any{"title": "Assets"},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
		{
			name:   "UpdateEmpty",
			method: http.MethodPut,
			url:    "/accounts/1",
			body:   map[string]any{},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Update(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq(domain.UpdateAccountParams{})).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "Delete",
			method: http.MethodDelete,
			url:    "/accounts/1",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Delete(gomock.Any(), gomock.Eq(int32(1))).
					Times(1).
					Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
			checkData: func(t *testing.T, res accountResponse) {
				if got := res.Data.Account["id"]; got != float64(1) {
					t.Errorf("res.Data.Account.id=%v, want 1", got)
				}
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Initialize mocks
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newServer(NewHandler(service))

			// Send request
			var body bytes.Buffer
			if tc.body != nil {
				if err := json.NewEncoder(&body).Encode(tc.body); err != nil {
					t.Fatalf("Encoding request body error: %v", err)
				}
			}

			req, err := http.NewRequest(tc.method, tc.url, &body)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			// Test response
			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			var res accountResponse
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantError != "" && res.Error != tc.wantError {
				t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
			}

			if tc.checkData != nil {
				tc.checkData(t, res)
			}
		})
	}
}
