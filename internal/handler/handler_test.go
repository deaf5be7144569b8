package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/dto"
)

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		raw    string
		wantID uint
		wantOK bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Params = gin.Params{{Key: "id", Value: tc.raw}}

		id, ok := parseIDParam(c, "id")
		if ok != tc.wantOK || id != tc.wantID {
			t.Errorf("parseIDParam(%q) = (%d, %v), want (%d, %v)", tc.raw, id, ok, tc.wantID, tc.wantOK)
		}
		if !tc.wantOK && rec.Code != http.StatusBadRequest {
			t.Errorf("parseIDParam(%q) wrote status %d, want 400", tc.raw, rec.Code)
		}
	}
}

func TestBindingErrorsUseEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/login", func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SuccessResponse(nil, "ok"))
	})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body dto.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the envelope: %v", err)
	}
	if body.Success {
		t.Error("Success = true on a failed request")
	}
	if body.Message != "Validation failed" {
		t.Errorf("Message = %q", body.Message)
	}
	if len(body.Errors) == 0 || !strings.Contains(body.Errors[0], "password") {
		t.Errorf("Errors = %v, want a password message", body.Errors)
	}
}
