package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestOKPage_EmptyListAndMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OKPage(c, []int{}, Pagination{Page: 4, PageSize: 10, Total: 23, TotalPages: 3})

	raw := w.Body.String()
	if !strings.Contains(raw, `"list":[]`) {
		t.Errorf("越界页应返回空数组: %s", raw)
	}
	var body struct {
		Code int `json:"code"`
		Data struct {
			Pagination Pagination `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if body.Code != 0 {
		t.Errorf("成功响应 code 应为 0，实际 %d", body.Code)
	}
	if p := body.Data.Pagination; p.Page != 4 || p.TotalPages != 3 || p.Total != 23 {
		t.Errorf("分页元数据应原样返回: %+v", p)
	}
}

func TestAttachment_EncodesFilename(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Attachment(c, "hồ sơ 2024.xlsx", "application/octet-stream", []byte("x"))

	cd := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment; filename*=UTF-8''") {
		t.Fatalf("Content-Disposition 格式不符: %s", cd)
	}
	if strings.ContainsAny(strings.TrimPrefix(cd, "attachment; filename*=UTF-8''"), " +") {
		t.Errorf("空格应编码为 %%20: %s", cd)
	}
	if w.Body.String() != "x" || w.Header().Get("Content-Type") != "application/octet-stream" {
		t.Error("文件内容或类型不符")
	}
}

func TestErrorWithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	ErrorWithDetails(c, http.StatusConflict, 10006, "仍有依赖", gin.H{"dependents": 4})
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), `"dependents":4`) {
		t.Errorf("详情未写入响应: %d %s", w.Code, w.Body.String())
	}
}
