package dto

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindSale(t *testing.T, body string) (*RegisterSaleRequest, error) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/vendas", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req RegisterSaleRequest
	err := c.ShouldBindJSON(&req)
	return &req, err
}

func TestRegisterSaleRequestBindsEmptyCart(t *testing.T) {
	// an empty cart must pass binding so the use case can report the
	// dedicated empty-cart error instead of a generic bind failure
	req, err := bindSale(t, `{"itens":[],"subtotal":0,"desconto":0,"total":0,"pagamentos":[]}`)
	require.NoError(t, err)
	assert.Empty(t, req.Items)
}

func TestRegisterSaleRequestBindsMissingCart(t *testing.T) {
	req, err := bindSale(t, `{"subtotal":0,"desconto":0,"total":0}`)
	require.NoError(t, err)
	assert.Nil(t, req.Items)
}

func TestRegisterSaleRequestRejectsInvalidLine(t *testing.T) {
	_, err := bindSale(t, `{"itens":[{"livro_id":1,"quantidade":0,"preco_unitario":10}],"subtotal":0,"desconto":0,"total":0}`)
	require.Error(t, err)
}

func TestRegisterSaleRequestLegacyMethod(t *testing.T) {
	req, err := bindSale(t, `{"itens":[{"livro_id":1,"quantidade":1,"preco_unitario":10}],"subtotal":10,"desconto":0,"total":10,"formaPagamento":"Pix"}`)
	require.NoError(t, err)
	assert.Equal(t, "Pix", req.LegacyMethod)
	assert.Empty(t, req.Payments)
}
