package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/fathy2028/shopeklopek/config"
	"github.com/fathy2028/shopeklopek/db"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testSecret = []byte("route-test-secret")

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	admin  string
	user   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := db.OpenTest(t)
	cfg := &config.Config{
		Port:        "0",
		JWTSecret:   testSecret,
		CORSOrigins: []string{"*"},
		Store:       config.StoreConfig{DeliveryFee: 25, MaxPhotoBytes: 1 << 10, ProductsPerPage: 2},
	}
	return &testServer{
		t:      t,
		router: NewRouter(conn, cfg),
		db:     conn,
		admin:  signToken(t, "admin-1", "admin"),
		user:   signToken(t, "user-1", 0),
	}
}

func signToken(t *testing.T, userID string, role interface{}) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"name":    "Test " + userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func (s *testServer) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) json(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return s.serve(req, token)
}

type upload struct {
	field       string
	contentType string
	data        []byte
}

func (s *testServer) form(method, path, token string, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="upload.bin"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(s.t, err)
		_, err = part.Write(f.data)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.serve(req, token)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// createCategory creates a category through the API and returns its id.
func (s *testServer) createCategory(name, minutes string) float64 {
	s.t.Helper()
	w := s.form(http.MethodPost, "/api/v1/category/create-category", s.admin, map[string]string{
		"name": name, "deliveryDuration": minutes,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)["category"].(map[string]interface{})["id"].(float64)
}

// createProduct creates a product through the API and returns its id.
func (s *testServer) createProduct(name, price, quantity string, categoryID float64) float64 {
	s.t.Helper()
	w := s.form(http.MethodPost, "/api/v1/product/create-product", s.admin, map[string]string{
		"name":        name,
		"description": name + " description",
		"price":       price,
		"quantity":    quantity,
		"category":    jsonNumber(categoryID),
		"shipping":    "true",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)["product"].(map[string]interface{})["id"].(float64)
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
