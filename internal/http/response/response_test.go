package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 2, PageSize: 20, Total: 41, TotalPage: 3}, BuildPagination(2, 20, 41))
	assert.Equal(t, int64(0), BuildPagination(1, 0, 10).TotalPage)
}

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	ErrorWithData(c, CodeBadRequest, "Promo code not found", gin.H{"valid": false})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		StatusCode int                    `json:"status_code"`
		Msg        string                 `json:"msg"`
		Data       map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeBadRequest, body.StatusCode)
	assert.Equal(t, "Promo code not found", body.Msg)
	assert.Equal(t, "req-1", body.Data["request_id"])
	assert.Equal(t, false, body.Data["valid"])
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	err := WrapError(CodeInternal, "failed", inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "failed: "+inner.Error(), err.Error())
	assert.Equal(t, "bare", WrapError(CodeBadRequest, "bare", nil).Error())
}
