package routes

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func names(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	var out []string
	for _, p := range body["products"].([]interface{}) {
		out = append(out, p.(map[string]interface{})["name"].(string))
	}
	return out
}

func TestCreateProductValidation(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory("Kitchen", "60")
	path := "/api/v1/product/create-product"

	valid := func() map[string]string {
		return map[string]string{"name": "Pan", "description": "steel", "price": "30", "quantity": "4", "category": jsonNumber(cat)}
	}

	for _, missing := range []string{"name", "description", "price", "quantity", "category"} {
		fields := valid()
		delete(fields, missing)
		w := s.form(http.MethodPost, path, s.admin, fields)
		assert.Equal(t, http.StatusBadRequest, w.Code, missing)
	}

	fields := valid()
	fields["price"] = "-1"
	assert.Equal(t, http.StatusBadRequest, s.form(http.MethodPost, path, s.admin, fields).Code)

	fields = valid()
	fields["category"] = "999"
	assert.Equal(t, http.StatusBadRequest, s.form(http.MethodPost, path, s.admin, fields).Code)

	w := s.form(http.MethodPost, path, s.admin, valid(), upload{field: "photo", contentType: "image/jpeg", data: bytes.Repeat([]byte("x"), 2048)})
	assert.Equal(t, http.StatusBadRequest, w.Code, "photo over the size limit")

	assert.Equal(t, http.StatusForbidden, s.form(http.MethodPost, path, s.user, valid()).Code)

	w = s.form(http.MethodPost, path, s.admin, valid(), upload{field: "photo", contentType: "image/jpeg", data: []byte("jpeg")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, "pan", product["slug"])
	assert.NotContains(t, product, "photo")

	w = s.json(http.MethodGet, "/api/v1/product/get-product-photo/"+jsonNumber(product["id"].(float64)), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg", w.Body.String())
}

func TestProductReadEndpoints(t *testing.T) {
	s := newTestServer(t)
	kitchen := s.createCategory("Kitchen", "60")
	garden := s.createCategory("Garden", "1440")
	pan := s.createProduct("Steel Pan", "30", "4", kitchen)
	s.createProduct("Wooden Spoon", "5", "20", kitchen)
	s.createProduct("Kettle", "45", "2", kitchen)
	s.createProduct("Hose", "25", "7", garden)

	w := s.json(http.MethodGet, "/api/v1/product/getall-products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, 4.0, body["countTotal"])
	first := body["products"].([]interface{})[0].(map[string]interface{})
	assert.NotNil(t, first["category"], "category is populated")

	w = s.json(http.MethodGet, "/api/v1/product/get-product/steel-pan", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Steel Pan", decode(t, w)["product"].(map[string]interface{})["name"])
	assert.Equal(t, http.StatusNotFound, s.json(http.MethodGet, "/api/v1/product/get-product/999", "", nil).Code)

	w = s.json(http.MethodGet, "/api/v1/product/product-count", "", nil)
	assert.Equal(t, 4.0, decode(t, w)["total"])

	// two per page in the test config
	w = s.json(http.MethodGet, "/api/v1/product/product-list/1", "", nil)
	assert.Len(t, names(t, decode(t, w)), 2)
	w = s.json(http.MethodGet, "/api/v1/product/product-list/2", "", nil)
	assert.Len(t, names(t, decode(t, w)), 2)
	w = s.json(http.MethodGet, "/api/v1/product/product-list/3", "", nil)
	assert.Empty(t, names(t, decode(t, w)))

	w = s.json(http.MethodGet, "/api/v1/product/search/STEEL", "", nil)
	assert.Equal(t, []string{"Steel Pan"}, names(t, decode(t, w)))
	w = s.json(http.MethodGet, "/api/v1/product/search/spoon%20description", "", nil)
	assert.Equal(t, []string{"Wooden Spoon"}, names(t, decode(t, w)))

	w = s.json(http.MethodPost, "/api/v1/product/product-filters", "", map[string]interface{}{
		"checked": []float64{kitchen},
		"radio":   []float64{10, 40},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Steel Pan"}, names(t, decode(t, w)))

	w = s.json(http.MethodPost, "/api/v1/product/product-filters", "", map[string]interface{}{"checked": []float64{}, "radio": []float64{}})
	assert.Len(t, names(t, decode(t, w)), 4)

	w = s.json(http.MethodPost, "/api/v1/product/product-filters", "", map[string]interface{}{"radio": []float64{1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.json(http.MethodGet, "/api/v1/product/related-product/"+jsonNumber(pan)+"/"+jsonNumber(kitchen), "", nil)
	related := names(t, decode(t, w))
	assert.ElementsMatch(t, []string{"Wooden Spoon", "Kettle"}, related)

	w = s.json(http.MethodGet, "/api/v1/product/productsbycategory/garden", "", nil)
	body = decode(t, w)
	assert.Equal(t, []string{"Hose"}, names(t, body))
	assert.Equal(t, "Garden", body["category"].(map[string]interface{})["name"])
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory("Kitchen", "60")
	pan := s.createProduct("Pan", "30", "4", cat)
	id := jsonNumber(pan)

	w := s.form(http.MethodPut, "/api/v1/product/update-product/"+id, s.admin, map[string]string{"price": "35.5", "shipping": "false"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	product := decode(t, w)["product"].(map[string]interface{})
	assert.Equal(t, 35.5, product["price"])
	assert.Equal(t, false, product["shipping"])
	assert.Equal(t, "Pan", product["name"], "absent fields are kept")

	assert.Equal(t, http.StatusBadRequest, s.form(http.MethodPut, "/api/v1/product/update-product/"+id, s.admin, map[string]string{"quantity": "lots"}).Code)
	assert.Equal(t, http.StatusNotFound, s.form(http.MethodPut, "/api/v1/product/update-product/999", s.admin, map[string]string{"price": "1"}).Code)

	w = s.json(http.MethodDelete, "/api/v1/product/delete-product/"+id, s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, s.json(http.MethodDelete, "/api/v1/product/delete-product/"+id, s.admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.json(http.MethodGet, "/api/v1/product/get-product/"+id, "", nil).Code)
}

func TestExcelRoundTrip(t *testing.T) {
	s := newTestServer(t)
	cat := s.createCategory("Kitchen", "60")
	pan := s.createProduct("Pan", "30", "4", cat)

	w := s.json(http.MethodGet, "/api/v1/product/export-excel", s.admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats"))

	book, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	sheet := book.Sheets[0]
	require.Equal(t, 2, sheet.MaxRow)
	assert.Equal(t, "Name", sheet.Rows[0].Cells[1].String())
	assert.Equal(t, "Pan", sheet.Rows[1].Cells[1].String())

	// edit the exported row and append a new product, then import it back
	sheet.Rows[1].Cells[4].SetFloat(32)
	row := sheet.AddRow()
	for _, v := range []string{"", "Lid", "", "glass lid", "8", "6", jsonNumber(cat), "true"} {
		row.AddCell().SetString(v)
	}
	bad := sheet.AddRow()
	for _, v := range []string{"", "Broken", "", "", "not-a-price", "1", jsonNumber(cat), "true"} {
		bad.AddCell().SetString(v)
	}
	var buf bytes.Buffer
	require.NoError(t, book.Write(&buf))

	w = s.form(http.MethodPost, "/api/v1/product/import-excel", s.admin, nil,
		upload{field: "file", contentType: "application/octet-stream", data: buf.Bytes()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 1.0, body["created_count"])
	assert.Equal(t, 1.0, body["updated_count"])
	assert.Equal(t, 1.0, body["skipped_count"])

	w = s.json(http.MethodGet, "/api/v1/product/get-product/"+jsonNumber(pan), "", nil)
	assert.Equal(t, 32.0, decode(t, w)["product"].(map[string]interface{})["price"])
	w = s.json(http.MethodGet, "/api/v1/product/get-product/lid", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusForbidden, s.json(http.MethodGet, "/api/v1/product/export-excel", s.user, nil).Code)
}
