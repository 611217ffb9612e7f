package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"healthoffice_backend/internal/attachments"
	"healthoffice_backend/internal/auth"
	"healthoffice_backend/internal/handlers"
	"healthoffice_backend/internal/middleware"
	"healthoffice_backend/internal/models"
	"healthoffice_backend/internal/repositories"
	"healthoffice_backend/internal/storage"
	"healthoffice_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	store  *storage.LocalStore
	db     *gorm.DB
	issuer *auth.TokenIssuer
}

type filePart struct {
	field    string
	filename string
	content  []byte
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithGate(t, false)
}

func newTestEnvWithGate(t *testing.T, protectMutations bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.News{}, &models.Ita{}, &models.Link{}, &models.User{}))

	store, err := storage.NewLocalStore(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	binder := attachments.NewBinder(store)
	base := handlers.NewBaseHandler(validator.New())

	dataDir := t.TempDir()
	staff, err := repositories.NewStaffCollection(dataDir)
	require.NoError(t, err)
	jobs, err := repositories.NewJobCollection(dataDir)
	require.NoError(t, err)
	activities, err := repositories.NewActivityCollection(dataDir)
	require.NoError(t, err)
	downloads, err := repositories.NewDownloadCollection(dataDir)
	require.NoError(t, err)
	procurement, err := repositories.NewProcurementCollection(dataDir)
	require.NoError(t, err)
	donors, err := repositories.NewDonorCollection(dataDir)
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	gate := middleware.AdminGate(protectMutations, issuer)

	router := gin.New()
	api := router.Group("/api")
	handlers.NewAuthHandler(base, repositories.NewUserRepository(db), issuer).RegisterRoutes(api)
	handlers.NewNewsHandler(base, repositories.NewNewsRepository(db), binder).RegisterRoutes(api, gate)
	handlers.NewItaHandler(base, repositories.NewItaRepository(db), binder).RegisterRoutes(api, gate)
	handlers.NewLinkHandler(base, repositories.NewLinkRepository(db), binder).RegisterRoutes(api, gate)
	handlers.NewStaffHandler(base, staff, binder).RegisterRoutes(api, gate)
	handlers.NewJobHandler(base, jobs, binder).RegisterRoutes(api, gate)
	handlers.NewActivityHandler(base, activities, binder).RegisterRoutes(api, gate)
	handlers.NewDownloadHandler(base, downloads, binder).RegisterRoutes(api, gate)
	handlers.NewProcurementHandler(base, procurement, binder).RegisterRoutes(api, gate)
	handlers.NewDonorHandler(base, donors, binder).RegisterRoutes(api, gate)
	handlers.NewUploadHandler(base, store).RegisterRoutes(api, gate)

	return &testEnv{router: router, store: store, db: db, issuer: issuer}
}

// sendForm performs a multipart request with scalar fields and file parts.
func (e *testEnv) sendForm(t *testing.T, method, path, token string, fields url.Values, parts []filePart) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(key, v))
		}
	}
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// sendJSON performs a request with a JSON body (or none).
func (e *testEnv) sendJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// jsonID renders a numeric id decoded from JSON back into path form.
func jsonID(id float64) string {
	return strconv.FormatInt(int64(id), 10)
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}
