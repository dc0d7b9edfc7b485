package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eggslist/internal/http/middleware"
	"eggslist/internal/model"
	"eggslist/internal/repository"
	"eggslist/internal/service"
	serviceMocks "eggslist/internal/service/mocks"
	"eggslist/internal/storage"

	cacheMocks "eggslist/internal/cache/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Use(middleware.RequestID())
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	part.Write(content)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth(t *testing.T) {
	app := newTestApp()
	app.Get("/api/health", Health())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "ok", body["status"])
}

func TestReadiness(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mockCache := new(cacheMocks.MockCache)

	app := newTestApp()
	app.Get("/readyz", Readiness(db, mockCache))

	t.Run("ready", func(t *testing.T) {
		dbMock.ExpectPing()
		mockCache.On("Ping", mock.Anything).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockCache.AssertExpectations(t)
	})

	t.Run("database down", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
		assert.Equal(t, "database unavailable", body.Error.Message)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("cache down", func(t *testing.T) {
		dbMock.ExpectPing()
		mockCache.On("Ping", mock.Anything).Return(errors.New("redis down")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "cache unavailable", decodeError(t, resp).Error.Message)
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestListStates(t *testing.T) {
	mockSvc := new(serviceMocks.MockLocationService)
	app := newTestApp()
	app.Get("/states", ListStates(mockSvc))

	t.Run("success", func(t *testing.T) {
		states := []model.StateView{{Slug: "ma", Name: "MA", Country: "USA"}}
		mockSvc.On("ListStates", mock.Anything).Return(states, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/states", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []model.StateView
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, states, result)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("ListStates", mock.Anything).Return(nil, errors.New("db down")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/states", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListCities(t *testing.T) {
	mockSvc := new(serviceMocks.MockLocationService)
	app := newTestApp()
	app.Get("/cities", ListCities(mockSvc))

	f := repository.CityFilter{StateSlug: "ma", Search: "new bed"}
	mockSvc.On("ListCities", mock.Anything, f).Return([]model.CityView{{Slug: "new-bedford", Name: "New Bedford"}}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/cities?state=ma&search=new+bed", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestListZipCodes(t *testing.T) {
	mockSvc := new(serviceMocks.MockLocationService)
	app := newTestApp()
	app.Get("/zip-codes", ListZipCodes(mockSvc))

	f := repository.ZipCodeFilter{Name: "02740", CitySlug: "new-bedford"}
	mockSvc.On("ListZipCodes", mock.Anything, f).Return([]model.ZipCodeView{}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/zip-codes?name=02740&city=new-bedford", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestNearbyZipCodes(t *testing.T) {
	mockSvc := new(serviceMocks.MockLocationService)
	app := newTestApp()
	app.Get("/nearby", NearbyZipCodes(mockSvc))

	t.Run("success without radius", func(t *testing.T) {
		mockSvc.On("NearbyZipCodes", mock.Anything, 41.6, -70.9, 0.0).Return([]model.ZipCodeView{{Name: "02740"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/nearby?lat=41.6&lng=-70.9", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("with radius", func(t *testing.T) {
		mockSvc.On("NearbyZipCodes", mock.Anything, 41.6, -70.9, 5.0).Return([]model.ZipCodeView{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/nearby?lat=41.6&lng=-70.9&radius=5", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing and malformed params", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/nearby?lng=abc&radius=x", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Equal(t, map[string]string{
			"lat":    "this field is required",
			"lng":    "a valid number is required",
			"radius": "a valid number is required",
		}, body.Error.Fields)
	})

	t.Run("out of range point", func(t *testing.T) {
		verr := &service.ValidationError{Fields: map[string]string{"lat": "must be 90 or less"}}
		mockSvc.On("NearbyZipCodes", mock.Anything, 100.0, 0.0, 0.0).Return(nil, verr).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/nearby?lat=100&lng=0", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, verr.Fields, decodeError(t, resp).Error.Fields)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateCountry(t *testing.T) {
	mockSvc := new(serviceMocks.MockLocationService)
	app := newTestApp()
	app.Post("/countries", CreateCountry(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("CreateCountry", mock.Anything, service.CountryInput{Name: "USA"}).
			Return(&model.Country{ID: 1, Name: "USA", Slug: "usa"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/countries", `{"name":"USA"}`))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result model.Country
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "usa", result.Slug)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/countries", `{"name":`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, resp).Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		verr := &service.ValidationError{Fields: map[string]string{"name": "this field is required"}}
		mockSvc.On("CreateCountry", mock.Anything, service.CountryInput{}).Return(nil, verr).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/countries", `{}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Equal(t, "this field is required", body.Error.Fields["name"])
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateCity(t *testing.T) {
	mockSvc := new(serviceMocks.MockLocationService)
	app := newTestApp()
	app.Post("/cities", CreateCity(mockSvc))

	in := service.CityInput{State: "ma", Name: "Boston", Location: &model.GeoPoint{Lat: 42.36, Lng: -71.06}}
	mockSvc.On("CreateCity", mock.Anything, in).Return(&model.City{ID: 3, Name: "Boston", Slug: "boston"}, nil).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPost, "/cities",
		`{"state":"ma","name":"Boston","location":{"lat":42.36,"lng":-71.06}}`))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDeleteLocation(t *testing.T) {
	mockSvc := new(serviceMocks.MockLocationService)
	app := newTestApp()
	app.Delete("/states/:slug", DeleteLocation(mockSvc, repository.LevelState))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, repository.LevelState, "ma").Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/states/ma", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, repository.LevelState, "zz").Return(service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/states/zz", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestPublicContent(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := newTestApp()
	app.Get("/testimonials", ListTestimonials(mockSvc))
	app.Get("/faqs", ListFAQs(mockSvc))
	app.Get("/team-members", ListTeamMembers(mockSvc))

	img := "https://media.example/about/a.jpg"
	mockSvc.On("TestimonialViews", mock.Anything).Return([]model.TestimonialView{{AuthorName: "Ann", Body: "Great eggs"}}, nil).Once()
	mockSvc.On("FAQViews", mock.Anything).Return([]model.FAQView{{Question: "Q?", Answer: "A."}}, nil).Once()
	mockSvc.On("TeamMemberViews", mock.Anything).Return([]model.TeamMemberView{
		{FirstName: "Bo", LastName: "Li", JobTitle: "CEO", Image: &img},
		{FirstName: "Cy", LastName: "Ng", JobTitle: "CTO"},
	}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/testimonials", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[{"author_name":"Ann","body":"Great eggs"}]`, string(raw))

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/faqs", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/team-members", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ = io.ReadAll(resp.Body)
	assert.JSONEq(t, fmt.Sprintf(`[
		{"first_name":"Bo","last_name":"Li","job_title":"CEO","image":%q},
		{"first_name":"Cy","last_name":"Ng","job_title":"CTO","image":null}
	]`, img), string(raw))

	mockSvc.AssertExpectations(t)
}

func TestUpdateFAQ(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := newTestApp()
	app.Put("/faqs/:id", UpdateFAQ(mockSvc))

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/faqs/abc", `{}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("non positive id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/faqs/0", `{}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("success", func(t *testing.T) {
		in := service.FAQInput{Question: "Q?", Answer: "A.", Position: 2}
		mockSvc.On("UpdateFAQ", mock.Anything, int64(7), in).Return(&model.FAQ{ID: 7, Question: "Q?", Answer: "A.", Position: 2}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/faqs/7", `{"question":"Q?","answer":"A.","position":2}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.FAQ
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(7), result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("UpdateFAQ", mock.Anything, int64(8), mock.Anything).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/faqs/8", `{"question":"Q?","answer":"A."}`))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateTestimonial(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := newTestApp()
	app.Post("/testimonials", CreateTestimonial(mockSvc))

	in := service.TestimonialInput{AuthorName: "Ann", Body: "Great eggs"}
	mockSvc.On("CreateTestimonial", mock.Anything, in).Return(&model.Testimonial{ID: 1, AuthorName: "Ann", Body: "Great eggs", Position: 3}, nil).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPost, "/testimonials", `{"author_name":"Ann","body":"Great eggs"}`))

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestDeleteContent(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := newTestApp()
	app.Delete("/team-members/:id", DeleteContent(mockSvc, repository.KindTeamMember))

	mockSvc.On("Delete", mock.Anything, repository.KindTeamMember, int64(4)).Return(nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/team-members/4", nil))

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestReorderContent(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := newTestApp()
	app.Post("/faqs/reorder", ReorderContent(mockSvc, repository.KindFAQ))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Reorder", mock.Anything, repository.KindFAQ, service.ReorderInput{IDs: []int64{3, 1, 2}}).Return(nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/faqs/reorder", `{"ids":[3,1,2]}`))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockSvc.On("Reorder", mock.Anything, repository.KindFAQ, service.ReorderInput{IDs: []int64{42}}).
			Return(fmt.Errorf("reorder id 42: %w", service.ErrNotFound)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/faqs/reorder", `{"ids":[42]}`))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestUploadTeamImage(t *testing.T) {
	mockSvc := new(serviceMocks.MockContentService)
	app := newTestApp()
	app.Post("/team-members/:id/image", UploadTeamImage(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("UploadTeamImage", mock.Anything, int64(5), mock.Anything).
			Return(&model.TeamMember{ID: 5, Image: "about/x.jpg"}, nil).Once()

		resp, _ := app.Test(uploadRequest(t, "/team-members/5/image", "me.png", []byte("img")))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/team-members/5/image", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "FILE_REQUIRED", decodeError(t, resp).Error.Code)
	})

	t.Run("not an image", func(t *testing.T) {
		mockSvc.On("UploadTeamImage", mock.Anything, int64(5), mock.Anything).
			Return(nil, fmt.Errorf("decode: %w", storage.ErrInvalidImage)).Once()

		resp, _ := app.Test(uploadRequest(t, "/team-members/5/image", "me.txt", []byte("text")))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Contains(t, body.Error.Fields, "file")
		mockSvc.AssertExpectations(t)
	})
}

func TestGetBranding(t *testing.T) {
	mockSvc := new(serviceMocks.MockBrandingService)
	app := newTestApp()
	app.Get("/branding", GetBranding(mockSvc))

	view := &model.BrandingView{SiteName: "Eggslist", ColorPrimary: "#F9AA29"}
	mockSvc.On("Get", mock.Anything).Return(view, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/branding", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result model.BrandingView
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Eggslist", result.SiteName)
	assert.Nil(t, result.Logo)
	mockSvc.AssertExpectations(t)
}

func TestUpdateBranding(t *testing.T) {
	mockSvc := new(serviceMocks.MockBrandingService)
	app := newTestApp()
	app.Put("/branding", UpdateBranding(mockSvc))

	mockSvc.On("Update", mock.Anything, mock.MatchedBy(func(p service.BrandingPatch) bool {
		return p.SiteName != nil && *p.SiteName == "Farm" &&
			p.ColorScheme != nil && *p.ColorScheme == "ocean" &&
			p.Tagline == nil
	})).Return(&model.SiteBranding{SiteName: "Farm", ColorScheme: "ocean"}, nil).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPut, "/branding", `{"site_name":"Farm","color_scheme":"ocean"}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestUploadFavicon(t *testing.T) {
	mockSvc := new(serviceMocks.MockBrandingService)
	app := newTestApp()
	app.Post("/branding/favicon", UploadFavicon(mockSvc))

	mockSvc.On("UploadFavicon", mock.Anything, mock.MatchedBy(func(f service.FileUpload) bool {
		return f.Filename == "favicon.ico" && f.ContentType == "application/octet-stream" && f.Size == 4 && f.Reader != nil
	})).Return(&model.SiteBranding{Favicon: "branding/x.ico"}, nil).Once()

	resp, _ := app.Test(uploadRequest(t, "/branding/favicon", "favicon.ico", []byte("icon")))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestUploadLogo(t *testing.T) {
	mockSvc := new(serviceMocks.MockBrandingService)
	app := newTestApp()
	app.Post("/branding/logo", UploadLogo(mockSvc))

	mockSvc.On("UploadLogo", mock.Anything, mock.Anything).Return(&model.SiteBranding{Logo: "branding/x.png"}, nil).Once()

	resp, _ := app.Test(uploadRequest(t, "/branding/logo", "logo.png", []byte("png")))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := newTestApp()
	app.Post("/login", Login(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.LoginInput{Email: "admin@example.com", Password: "secret"}
		mockSvc.On("Login", mock.Anything, in).Return("token-123", nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", `{"email":"admin@example.com","password":"secret"}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "token-123", body["access"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("bad credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, mock.Anything).Return("", service.ErrInvalidCredentials).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", `{"email":"admin@example.com","password":"nope"}`))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestSendMailing(t *testing.T) {
	mockSvc := new(serviceMocks.MockMailingService)
	app := newTestApp()
	app.Post("/mailings", SendMailing(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Send", mock.Anything, mock.MatchedBy(func(in service.MailingInput) bool {
			return in.Template == "announcement.html" && len(in.UserIDs) == 2 && in.Object["title"] == "Hi"
		})).Return(2, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/mailings",
			`{"subject":"News","template":"announcement.html","object":{"title":"Hi"},"user_ids":[1,2]}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]int
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, 2, body["sent"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("breaker open", func(t *testing.T) {
		mockSvc.On("Send", mock.Anything, mock.Anything).Return(0, fmt.Errorf("send mailing: %w", gobreaker.ErrOpenState)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/mailings", `{"subject":"News","template":"welcome.html","addresses":["a@b.co"]}`))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp()
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot) })
	app.Get("/forbidden", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusForbidden, "staff only") })
	app.Post("/only-post", func(c *fiber.Ctx) error { return nil })

	cases := []struct {
		name, method, target string
		status               int
		code                 string
	}{
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, "NOT_FOUND"},
		{"method not allowed", http.MethodGet, "/only-post", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"forbidden", http.MethodGet, "/forbidden", http.StatusForbidden, "FORBIDDEN"},
		{"other status", http.MethodGet, "/teapot", http.StatusTeapot, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest(tc.method, tc.target, nil))

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Error.Code)
		})
	}
}

func TestRegisterRoutes_Admin(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	authSvc := new(serviceMocks.MockAuthService)
	contentSvc := new(serviceMocks.MockContentService)
	svcs := Services{
		Location: new(serviceMocks.MockLocationService),
		Branding: new(serviceMocks.MockBrandingService),
		Content:  contentSvc,
		Auth:     authSvc,
		Mailing:  new(serviceMocks.MockMailingService),
	}

	app := newTestApp()
	RegisterRoutes(app, db, new(cacheMocks.MockCache), svcs)

	t.Run("no token", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/faqs", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("non staff", func(t *testing.T) {
		authSvc.On("Verify", mock.Anything, "user-token").Return(&service.Principal{UserID: 9}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/faqs", nil)
		req.Header.Set("Authorization", "Bearer user-token")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})

	t.Run("staff", func(t *testing.T) {
		authSvc.On("Verify", mock.Anything, "staff-token").Return(&service.Principal{UserID: 1, IsStaff: true}, nil).Once()
		contentSvc.On("ListFAQs", mock.Anything).Return([]model.FAQ{{ID: 1, Question: "Q?", Answer: "A.", Position: 1}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/faqs", nil)
		req.Header.Set("Authorization", "Bearer staff-token")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result []model.FAQ
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 1)
	})

	t.Run("public route needs no token", func(t *testing.T) {
		contentSvc.On("FAQViews", mock.Anything).Return([]model.FAQView{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/site-configuration/faqs", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	authSvc.AssertExpectations(t)
	contentSvc.AssertExpectations(t)
}
