package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mobishop/mobishop-backend/internal/catalog"
	"github.com/mobishop/mobishop-backend/internal/media"
	productsvc "github.com/mobishop/mobishop-backend/internal/products"
	"github.com/mobishop/mobishop-backend/internal/users"
	"github.com/mobishop/mobishop-backend/pkg/config"
	"github.com/mobishop/mobishop-backend/pkg/enums"
	pkgerrors "github.com/mobishop/mobishop-backend/pkg/errors"
	"github.com/mobishop/mobishop-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

type stubProductService struct {
	listInput productsvc.ListProductsInput
	deleted   uuid.UUID
	deleteErr error
}

func (s *stubProductService) CreateProduct(context.Context, productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (s *stubProductService) GetProduct(context.Context, uuid.UUID) (*productsvc.ProductDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubProductService) UpdateProduct(context.Context, uuid.UUID, productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

func (s *stubProductService) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.deleted = id
	return s.deleteErr
}

func (s *stubProductService) ListProducts(_ context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
	s.listInput = input
	return &productsvc.ProductListResult{Items: []productsvc.ProductDTO{}, Page: input.Pagination.Page, Limit: input.Pagination.Limit}, nil
}

func TestProductListParsesFilters(t *testing.T) {
	stub := &stubProductService{}
	req := httptest.NewRequest(http.MethodGet, "/products?category=Kad%C4%B1n/Giyim&category=Erkek&color=red,blue&size=M&minPrice=10&maxPrice=99.90&sort=price_asc&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	ProductList(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	in := stub.listInput
	if len(in.Categories) != 2 || in.Categories[0] != "Kadın/Giyim" {
		t.Fatalf("unexpected categories %v", in.Categories)
	}
	if len(in.Colors) != 2 || len(in.Sizes) != 1 {
		t.Fatalf("unexpected colors=%v sizes=%v", in.Colors, in.Sizes)
	}
	if in.MinPrice == nil || in.MinPrice.String() != "10" || in.MaxPrice == nil || in.MaxPrice.String() != "99.9" {
		t.Fatalf("unexpected price range %v..%v", in.MinPrice, in.MaxPrice)
	}
	if in.Sort != enums.ProductSortPriceAsc {
		t.Fatalf("unexpected sort %q", in.Sort)
	}
	if in.Pagination.Page != 2 || in.Pagination.Limit != 5 {
		t.Fatalf("unexpected pagination %+v", in.Pagination)
	}
}

func TestProductListDefaultsAndValidation(t *testing.T) {
	stub := &stubProductService{}
	rec := httptest.NewRecorder()
	ProductList(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.listInput.Pagination.Page != 1 || stub.listInput.Pagination.Limit != 20 {
		t.Fatalf("unexpected defaults %+v", stub.listInput.Pagination)
	}
	if stub.listInput.Sort != enums.ProductSortNewest {
		t.Fatalf("expected newest by default, got %q", stub.listInput.Sort)
	}

	for _, query := range []string{"limit=500", "sort=random", "minPrice=50&maxPrice=10", "minPrice=abc"} {
		rec := httptest.NewRecorder()
		ProductList(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products?"+query, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestProductGetAndDelete(t *testing.T) {
	logg := testLogger()
	stub := &stubProductService{}
	id := uuid.New()

	rec := httptest.NewRecorder()
	ProductGet(stub, logg).ServeHTTP(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/products/x", nil), "productId", "not-a-uuid"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	ProductGet(stub, logg).ServeHTTP(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/products/x", nil), "productId", id.String()))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	ProductDelete(stub, logg).ServeHTTP(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/products/x", nil), "productId", id.String()))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.deleted != id {
		t.Fatalf("expected delete of %s, got %s", id, stub.deleted)
	}
}

type stubUserService struct {
	users.Service
	emailInput users.UpdateEmailInput
	emailErr   error
}

func (s *stubUserService) UpdateEmail(_ context.Context, input users.UpdateEmailInput) (*users.UpdateEmailResult, error) {
	s.emailInput = input
	if s.emailErr != nil {
		return nil, s.emailErr
	}
	return &users.UpdateEmailResult{OK: true}, nil
}

func TestUserUpdateEmail(t *testing.T) {
	logg := testLogger()
	stub := &stubUserService{}

	body := `{"oldEmail":"a@example.com","newEmail":"b@example.com"}`
	rec := httptest.NewRecorder()
	UserUpdateEmail(stub, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/update-email", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.emailInput.NewEmail != "b@example.com" {
		t.Fatalf("unexpected input %+v", stub.emailInput)
	}

	rec = httptest.NewRecorder()
	UserUpdateEmail(stub, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/update-email", strings.NewReader(`{"oldEmail":"a@example.com"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing newEmail, got %d", rec.Code)
	}

	stub.emailErr = pkgerrors.New(pkgerrors.CodeDependency, "email update incomplete").WithDetails(map[string][]string{"failed": {"orders"}})
	rec = httptest.NewRecorder()
	UserUpdateEmail(stub, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/update-email", strings.NewReader(body)))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on partial failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "orders") {
		t.Fatalf("expected failed collections in body, got %s", rec.Body.String())
	}
}

type stubCatalogService struct {
	catalog.Service
	deleted catalog.LevelInput
}

func (s *stubCatalogService) Delete(_ context.Context, in catalog.LevelInput) (*catalog.Tree, error) {
	s.deleted = in
	return catalog.NewTree(), nil
}

func TestCatalogDeleteReadsQuery(t *testing.T) {
	stub := &stubCatalogService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/catalog?gender=Kad%C4%B1n&group=Giyim&sub=Elbise", nil)
	CatalogDelete(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.deleted != (catalog.LevelInput{Gender: "Kadın", Group: "Giyim", Sub: "Elbise"}) {
		t.Fatalf("unexpected level %+v", stub.deleted)
	}
}

type stubMediaService struct {
	productID string
	names     []string
}

func (s *stubMediaService) SaveProductMedia(_ context.Context, productID string, files []media.Upload) ([]string, error) {
	s.productID = productID
	paths := make([]string, 0, len(files))
	for _, f := range files {
		s.names = append(s.names, f.Name)
		paths = append(paths, "/uploads/products/"+productID+"/"+f.Name)
	}
	return paths, nil
}

func TestMediaUpload(t *testing.T) {
	stub := &stubMediaService{}
	productID := uuid.NewString()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("productId", productID); err != nil {
		t.Fatalf("write field: %v", err)
	}
	for _, name := range []string{"a.png", "b.png"} {
		part, err := mw.CreateFormFile("files[]", name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		part.Write([]byte("\x89PNG\r\n\x1a\n"))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	MediaUpload(stub, 1<<20, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.productID != productID || len(stub.names) != 2 {
		t.Fatalf("unexpected upload call product=%s names=%v", stub.productID, stub.names)
	}
	var envelope struct {
		Data struct {
			Paths []string `json:"paths"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data.Paths) != 2 {
		t.Fatalf("expected two paths, got %v", envelope.Data.Paths)
	}
}

func TestMediaUploadRequiresFiles(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("productId", uuid.NewString())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	MediaUpload(&stubMediaService{}, 0, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

type pingerFunc func(context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("dial tcp: refused") })

	rec := httptest.NewRecorder()
	HealthReady(cfg, testLogger(), map[string]Pinger{"db": ok, "redis": nil}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(envHeader) != "dev" {
		t.Fatalf("expected env header")
	}

	rec = httptest.NewRecorder()
	HealthReady(cfg, testLogger(), map[string]Pinger{"db": ok, "redis": down}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when a dependency is down, got %d", rec.Code)
	}
}
