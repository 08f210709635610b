package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshelf/storefront/internal/handler/http/mocks"
	"github.com/styleshelf/storefront/internal/models"
)

func TestPricingHandler_ListPricing(t *testing.T) {
	discount := int32(10)
	pkg := models.PricingPackage{
		ID:          "p1",
		Name:        "Starter",
		Description: "Single room design",
		Price:       500,
		Discount:    &discount,
		CreatedAt:   time.Now(),
	}

	tests := []struct {
		name           string
		setup          func(t *testing.T) *mocks.MockCatalogService
		wantStatusCode int
		wantLen        int
	}{
		{
			// 200 — request handled successfully
			name: "valid_request_return_200",
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().ListPackages(gomock.Any()).Return([]models.PricingPackage{pkg}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantLen:        1,
		},
		{
			// 500 — internal server error
			name: "internal_error_return_500",
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().ListPackages(gomock.Any()).Return(nil, errors.New("boom")).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/pricing", nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			handler := NewPricingHandler(tt.setup(t))
			h := handler.ListPricing()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantStatusCode == http.StatusOK {
				var got []packageResponse
				require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
				require.Len(t, got, tt.wantLen)
				assert.Equal(t, pkg.Name, got[0].Name)
				assert.Equal(t, pkg.Price, got[0].Price)
				require.NotNil(t, got[0].Discount)
				assert.Equal(t, discount, *got[0].Discount)
			}
		})
	}
}

func TestPricingHandler_CreatePricing(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockCatalogService
		wantStatusCode int
	}{
		{
			// 200 — package created
			name: "valid_request_return_200",
			body: `{"package_name":"Starter","package_description":"Single room design","package_price":500}`,
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().CreatePackage(gomock.Any(), gomock.Any()).
					Return(&models.PricingPackage{ID: "p1", Name: "Starter", Price: 500}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 400 — malformed request
			name: "invalid_body_return_400",
			body: `{"package_name":`,
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().CreatePackage(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 422 — invalid package fields
			name: "invalid_package_return_422",
			body: `{"package_name":"","package_price":0}`,
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().CreatePackage(gomock.Any(), gomock.Any()).
					Return(nil, models.ErrInvalidPackage).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/admin/pricing", strings.NewReader(tt.body))
			require.NoError(t, err)

			w := httptest.NewRecorder()
			handler := NewPricingHandler(tt.setup(t))
			h := handler.CreatePricing()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestPricingHandler_UpdatePricing(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		body           string
		setup          func(t *testing.T) *mocks.MockCatalogService
		wantStatusCode int
	}{
		{
			// 200 — package updated
			name: "valid_request_return_200",
			id:   "p1",
			body: `{"package_name":"Starter","package_price":600}`,
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().UpdatePackage(gomock.Any(), gomock.Any()).
					Return(&models.PricingPackage{ID: "p1", Name: "Starter", Price: 600}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 404 — package not found
			name: "unknown_package_return_404",
			id:   "nope",
			body: `{"package_name":"Starter","package_price":600}`,
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().UpdatePackage(gomock.Any(), gomock.Any()).
					Return(nil, models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			// 422 — invalid package fields
			name: "invalid_package_return_422",
			id:   "p1",
			body: `{"package_name":"","package_price":0}`,
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().UpdatePackage(gomock.Any(), gomock.Any()).
					Return(nil, models.ErrInvalidPackage).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPut, "/api/admin/pricing/"+tt.id, strings.NewReader(tt.body))
			require.NoError(t, err)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler := NewPricingHandler(tt.setup(t))
			h := handler.UpdatePricing()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestPricingHandler_DeletePricing(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setup          func(t *testing.T) *mocks.MockCatalogService
		wantStatusCode int
	}{
		{
			// 200 — package removed
			name: "valid_request_return_200",
			id:   "p1",
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().DeletePackage(gomock.Any(), "p1").Return(nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 404 — package not found
			name: "unknown_package_return_404",
			id:   "nope",
			setup: func(t *testing.T) *mocks.MockCatalogService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCatalogService(ctrl)
				svcMock.EXPECT().DeletePackage(gomock.Any(), gomock.Any()).
					Return(models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodDelete, "/api/admin/pricing/"+tt.id, nil)
			require.NoError(t, err)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler := NewPricingHandler(tt.setup(t))
			h := handler.DeletePricing()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}
