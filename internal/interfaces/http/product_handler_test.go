package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
)

func TestPostProducts_Creado(t *testing.T) {
	api := buildTestAPI(t)

	resp := api.doJSON(t, http.MethodPost, "/api/products/", dto.CreateProductRequest{
		Name:         "Notebook Dell Inspiron",
		Description:  "14 pulgadas",
		UnitPrice:    decimal.NewFromFloat(2500.00),
		InitialStock: 10,
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decodeJSON[dto.ProductResponse](t, resp)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "Notebook Dell Inspiron", product.Name)
	assert.Equal(t, int64(10), product.Stock)
	assert.True(t, product.UnitPrice.Equal(decimal.NewFromFloat(2500.00)))
}

func TestPostProducts_NombreVacio(t *testing.T) {
	api := buildTestAPI(t)

	resp := api.doJSON(t, http.MethodPost, "/api/products/", dto.CreateProductRequest{Name: "   "})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errResp.Code)
}

func TestPostProducts_NombreDuplicado(t *testing.T) {
	api := buildTestAPI(t)
	api.seedProduct(t, "Teclado", 0)

	resp := api.doJSON(t, http.MethodPost, "/api/products/", dto.CreateProductRequest{Name: "Teclado"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_NAME", errResp.Code)
}

func TestGetProducts_ListaOrdenada(t *testing.T) {
	api := buildTestAPI(t)
	api.seedProduct(t, "Zócalo", 1)
	api.seedProduct(t, "Adaptador", 2)

	resp := api.doJSON(t, http.MethodGet, "/api/products/", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products := decodeJSON[[]dto.ProductResponse](t, resp)
	require.Len(t, products, 2)
	assert.Equal(t, "Adaptador", products[0].Name)
	assert.Equal(t, "Zócalo", products[1].Name)
}

func TestGetProducts_BusquedaPorNombre(t *testing.T) {
	api := buildTestAPI(t)
	id := api.seedProduct(t, "Cable HDMI", 8)

	resp := api.doJSON(t, http.MethodGet, "/api/products/?name=Cable+HDMI", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	product := decodeJSON[dto.ProductResponse](t, resp)
	assert.Equal(t, id, product.ID)

	resp = api.doJSON(t, http.MethodGet, "/api/products/?name=Cable+VGA", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGetProductByID(t *testing.T) {
	api := buildTestAPI(t)
	id := api.seedProduct(t, "Monitor", 4)

	resp := api.doJSON(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	product := decodeJSON[dto.ProductResponse](t, resp)
	assert.Equal(t, "Monitor", product.Name)
}

func TestGetProductByID_Inexistente(t *testing.T) {
	api := buildTestAPI(t)

	resp := api.doJSON(t, http.MethodGet, "/api/products/404", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errResp := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestGetProductByID_IDInvalido(t *testing.T) {
	api := buildTestAPI(t)

	resp := api.doJSON(t, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decodeJSON[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_ID", errResp.Code)
}

func TestPutProduct_NoModificaStock(t *testing.T) {
	api := buildTestAPI(t)
	id := api.seedProduct(t, "SSD", 7)

	resp := api.doJSON(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), dto.UpdateProductRequest{
		Name:        "SSD Samsung",
		Description: "500GB",
		UnitPrice:   decimal.NewFromInt(380),
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	product := decodeJSON[dto.ProductResponse](t, resp)
	assert.Equal(t, "SSD Samsung", product.Name)
	assert.Equal(t, int64(7), product.Stock)
}

func TestDeleteProduct(t *testing.T) {
	api := buildTestAPI(t)
	id := api.seedProduct(t, "Parlante", 2)

	resp := api.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = api.doJSON(t, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
