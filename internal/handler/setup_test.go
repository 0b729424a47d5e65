package handler_test

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"Lee_Blog/internal/config"
	"Lee_Blog/internal/middleware"
	"Lee_Blog/internal/model"
	"Lee_Blog/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "pass12345"

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	cache  middleware.PageCache
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "blog.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.FollowEvent{},
	))

	cfg := &config.Config{
		PageSize:      10,
		IndexCacheTTL: time.Minute,
		MediaDir:      t.TempDir(),
	}
	cache := middleware.NewMemoryCache()
	r := router.InitRouter(db, cache, cfg, zap.NewNop().Sugar())

	return &testEnv{t: t, db: db, router: r, cache: cache, cfg: cfg}
}

type reqOption func(*http.Request)

func withCookie(ck *http.Cookie) reqOption {
	return func(req *http.Request) { req.AddCookie(ck) }
}

func withContentType(ct string) reqOption {
	return func(req *http.Request) { req.Header.Set("Content-Type", ct) }
}

func (e *testEnv) do(method, path string, body io.Reader, opts ...reqOption) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for _, opt := range opts {
		opt(req)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string, opts ...reqOption) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, nil, opts...)
}

func (e *testEnv) postForm(path string, form url.Values, opts ...reqOption) *httptest.ResponseRecorder {
	opts = append(opts, withContentType("application/x-www-form-urlencoded"))
	return e.do(http.MethodPost, path, strings.NewReader(form.Encode()), opts...)
}

func (e *testEnv) createUser(username string) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(e.t, err)
	u := &model.User{
		Username: username,
		Password: string(hash),
		Email:    username + "@example.com",
	}
	require.NoError(e.t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) createGroup(slug, title string) *model.Group {
	g := &model.Group{Title: title, Slug: slug, Description: "test group"}
	require.NoError(e.t, e.db.Create(g).Error)
	return g
}

func (e *testEnv) createPost(author *model.User, text string, group *model.Group, createdAt time.Time) *model.Post {
	p := &model.Post{
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: createdAt,
	}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(e.t, e.db.Create(p).Error)
	return p
}

// login 走真实登录接口，拿到带 token 的 cookie
func (e *testEnv) login(username string) *http.Cookie {
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, testPassword)
	w := e.do(http.MethodPost, "/auth/login/", strings.NewReader(body), withContentType("application/json"))
	require.Equal(e.t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.AuthCookieName {
			return ck
		}
	}
	e.t.Fatal("no auth cookie in login response")
	return nil
}

func (e *testEnv) userAndCookie(username string) (*model.User, *http.Cookie) {
	u := e.createUser(username)
	return u, e.login(username)
}

// 2x1 gif，最小可识别的图片
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func multipartForm(t *testing.T, fields map[string]string, fileField, filename string, content []byte) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

// 列表响应的解码结构
type pageJSON struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	Total       int64 `json:"total"`
}

type postJSON struct {
	ID     uint64 `json:"id"`
	Text   string `json:"text"`
	Author struct {
		Username string `json:"username"`
	} `json:"author"`
	Group *struct {
		Slug string `json:"slug"`
	} `json:"group"`
	Image string `json:"image"`
}

type listJSON struct {
	Posts []postJSON `json:"posts"`
	Page  pageJSON   `json:"page"`
}
