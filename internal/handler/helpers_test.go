package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dignition/colizeum-api/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWriteServiceErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		// Authorization denials answer 403, everything else stays 400.
		{apierror.Forbidden("клуб недоступен"), http.StatusForbidden},
		{apierror.Coded("bad_user", "выберите сотрудника"), http.StatusBadRequest},
		{errors.New("неверный формат месяца"), http.StatusBadRequest},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		writeServiceError(ctx, c.err)
		assert.Equal(t, c.want, w.Code, "error %v", c.err)
	}
}
