package httptransport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emailbook/backend/internal/service"
	"emailbook/backend/internal/storage/memory"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	svc := service.NewEmailAddressService(store, nil)

	return NewRouter(RouterDependencies{
		EmailAddressService: svc,
	})
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestIndexRoute(t *testing.T) {
	router := newTestRouter()

	recorder := doRequest(router, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Validations Technical Lesson", recorder.Body.String())
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/plain")
}

func TestCreateEmailAddress(t *testing.T) {
	t.Run("合法请求返回201", func(t *testing.T) {
		router := newTestRouter()

		recorder := doRequest(router, http.MethodPost, "/v1/email-addresses",
			`{"email": "user@example.com", "backup_email": "backup@example.com"}`)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, CodeCreated, resp.Code)

		data := resp.Data.(map[string]any)
		assert.Equal(t, float64(1), data["id"])
		assert.Equal(t, "user@example.com", data["email"])
		assert.Equal(t, "backup@example.com", data["backupEmail"])
	})

	t.Run("验证失败返回400并携带消息", func(t *testing.T) {
		cases := []struct {
			name string
			body string
			msg  string
		}{
			{"email缺失", `{}`, "Email must be present."},
			{"email为null", `{"email": null}`, "Email must be present."},
			{"email为空串", `{"email": ""}`, "Email must be present."},
			{"email为数字", `{"email": 42}`, "Email must be a string."},
			{"email缺少@", `{"email": "not-an-email"}`, "Email must have an '@' in the address."},
			{"hotmail被拒", `{"email": "user@hotmail.com"}`, "Email cannot be a hotmail or yahoo address."},
			{"yahoo被拒", `{"email": "user@yahoo.com"}`, "Email cannot be a hotmail or yahoo address."},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				router := newTestRouter()

				recorder := doRequest(router, http.MethodPost, "/v1/email-addresses", tc.body)

				require.Equal(t, http.StatusBadRequest, recorder.Code)

				var resp Response
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
				assert.Equal(t, tc.msg, resp.Msg)
			})
		}
	})

	t.Run("重复email返回400唯一性消息", func(t *testing.T) {
		router := newTestRouter()

		recorder := doRequest(router, http.MethodPost, "/v1/email-addresses",
			`{"email": "a@b.com"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)

		recorder = doRequest(router, http.MethodPost, "/v1/email-addresses",
			`{"email": "a@b.com"}`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "Email must be unique.", resp.Msg)
	})

	t.Run("请求体不是JSON返回400", func(t *testing.T) {
		router := newTestRouter()

		recorder := doRequest(router, http.MethodPost, "/v1/email-addresses", "not json")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetEmailAddress(t *testing.T) {
	router := newTestRouter()

	recorder := doRequest(router, http.MethodPost, "/v1/email-addresses",
		`{"email": "a@b.com"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	t.Run("存在的记录返回200", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/v1/email-addresses/1", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "a@b.com", data["email"])
	})

	t.Run("不存在的记录返回404", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/v1/email-addresses/999", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("非数字ID返回400", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/v1/email-addresses/abc", "")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestListEmailAddresses(t *testing.T) {
	router := newTestRouter()

	recorder := doRequest(router, http.MethodGet, "/v1/email-addresses", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(0), data["count"])
}

func TestUpdateEmailAddress(t *testing.T) {
	t.Run("改动字段更新成功", func(t *testing.T) {
		router := newTestRouter()

		recorder := doRequest(router, http.MethodPost, "/v1/email-addresses",
			`{"email": "a@b.com"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)

		recorder = doRequest(router, http.MethodPatch, "/v1/email-addresses/1",
			`{"email": "new@b.com"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "new@b.com", data["email"])
	})

	t.Run("验证失败返回400且记录不变", func(t *testing.T) {
		router := newTestRouter()

		recorder := doRequest(router, http.MethodPost, "/v1/email-addresses",
			`{"email": "a@b.com"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)

		recorder = doRequest(router, http.MethodPatch, "/v1/email-addresses/1",
			`{"email": "user@yahoo.com"}`)
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		recorder = doRequest(router, http.MethodGet, "/v1/email-addresses/1", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "a@b.com", data["email"])
	})

	t.Run("不存在的记录返回404", func(t *testing.T) {
		router := newTestRouter()

		recorder := doRequest(router, http.MethodPatch, "/v1/email-addresses/999",
			`{"email": "a@b.com"}`)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
