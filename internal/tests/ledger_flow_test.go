// internal/tests/ledger_flow_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/inkrights/ledger-backend/internal/config"
	"github.com/inkrights/ledger-backend/internal/payout"
	"github.com/inkrights/ledger-backend/internal/router"
	"github.com/inkrights/ledger-backend/internal/store/memory"
	"github.com/inkrights/ledger-backend/internal/utils"
)

// testContentHash is a well-formed 64-hex digest.
const testContentHash = "abababababababababababababababababababababababababababababababab"

type LedgerFlowTestSuite struct {
	suite.Suite
	router *gin.Engine
	bank   *payout.MemoryBank
	cfg    *config.Config

	admin    uuid.UUID
	creator  uuid.UUID
	buyer    uuid.UUID
	platform uuid.UUID
}

func (suite *LedgerFlowTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.admin = uuid.New()
	suite.creator = uuid.New()
	suite.buyer = uuid.New()
	suite.platform = uuid.New()

	suite.cfg = &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Ledger: config.LedgerConfig{
			AdminAddress:           suite.admin,
			PlatformWallet:         suite.platform,
			ContentRegistryAddress: uuid.New(),
			InitialFeePercent:      10,
		},
	}

	suite.bank = payout.NewMemoryBank()
	r, err := router.Initialize(memory.NewStores(), suite.bank, suite.cfg)
	suite.Require().NoError(err)
	suite.router = r
}

func (suite *LedgerFlowTestSuite) request(method, path string, caller uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != uuid.Nil {
		token, err := utils.GenerateJWT(caller, 1)
		suite.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *LedgerFlowTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *LedgerFlowTestSuite) data(w *httptest.ResponseRecorder) map[string]interface{} {
	response := suite.decode(w)
	suite.Require().Equal(true, response["success"], "body: %s", w.Body.String())
	data, _ := response["data"].(map[string]interface{})
	return data
}

func (suite *LedgerFlowTestSuite) TestHealthCheck() {
	w := suite.request("GET", "/health", uuid.Nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *LedgerFlowTestSuite) TestFullSaleFlow() {
	// Register content as the creator.
	w := suite.request("POST", "/v1/contents", suite.creator, map[string]interface{}{
		"content_hash": testContentHash,
		"description":  "d1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	content := suite.data(w)
	suite.Equal(float64(1), content["id"])

	// The creator is the initial owner.
	w = suite.request("GET", "/v1/rights/1/owner", uuid.Nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(suite.creator.String(), suite.data(w)["owner"])

	// List a product for sale.
	w = suite.request("POST", "/v1/products", suite.creator, map[string]interface{}{
		"content_id":  1,
		"price":       100,
		"design_hash": testContentHash,
		"description": "poster print",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	product := suite.data(w)
	suite.Equal(float64(1), product["product_id"])
	suite.Equal(true, product["active"])

	// The buyer overpays; exactly the excess comes back.
	w = suite.request("POST", "/v1/products/1/purchase", suite.buyer, map[string]interface{}{
		"paid_amount": 150,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	receipt := suite.data(w)
	suite.Equal(float64(50), receipt["change"])
	suite.Equal(uint64(50), suite.bank.TotalSent(suite.buyer))

	// 10% fee: 90 to the creator, 10 to the platform.
	w = suite.request("GET", "/v1/revenue/balance", suite.creator, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(float64(90), suite.data(w)["amount"])

	w = suite.request("GET", "/v1/revenue/balance", suite.platform, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(float64(10), suite.data(w)["amount"])

	// The creator withdraws their share.
	w = suite.request("POST", "/v1/revenue/withdrawals/creator", suite.creator, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal(float64(90), suite.data(w)["amount"])
	suite.Equal(uint64(90), suite.bank.TotalSent(suite.creator))
}

func (suite *LedgerFlowTestSuite) TestOwnershipTransferOverHTTP() {
	next := uuid.New()

	w := suite.request("POST", "/v1/contents", suite.creator, map[string]interface{}{
		"content_hash": testContentHash,
		"description":  "d1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request("POST", "/v1/rights/1/transfer", suite.creator, map[string]interface{}{
		"from": suite.creator,
		"to":   next,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request("GET", "/v1/rights/1/owner", uuid.Nil, nil)
	suite.Equal(next.String(), suite.data(w)["owner"])
}

func (suite *LedgerFlowTestSuite) TestMutationsRequireAuth() {
	w := suite.request("POST", "/v1/contents", uuid.Nil, map[string]interface{}{
		"content_hash": testContentHash,
		"description":  "d1",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request("POST", "/v1/products/1/purchase", uuid.Nil, map[string]interface{}{
		"paid_amount": 100,
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *LedgerFlowTestSuite) TestErrorEnvelope() {
	w := suite.request("GET", "/v1/contents/42", uuid.Nil, nil)
	suite.Require().Equal(http.StatusNotFound, w.Code)

	response := suite.decode(w)
	suite.Equal(false, response["success"])
	errObj, _ := response["error"].(map[string]interface{})
	suite.Require().NotNil(errObj)
	suite.Equal("NOT_FOUND", errObj["code"])
}

func (suite *LedgerFlowTestSuite) TestAdminEndpoints() {
	// Non-admin callers are rejected.
	w := suite.request("PUT", "/v1/admin/revenue/fee", suite.creator, map[string]interface{}{
		"fee_percentage": 20,
	})
	suite.Equal(http.StatusForbidden, w.Code)

	// Zero timelock delay: the admin change applies immediately.
	w = suite.request("PUT", "/v1/admin/revenue/fee", suite.admin, map[string]interface{}{
		"fee_percentage": 20,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request("GET", "/v1/revenue/config", uuid.Nil, nil)
	suite.Equal(float64(20), suite.data(w)["fee_percentage"])
}

func (suite *LedgerFlowTestSuite) TestEventJournal() {
	w := suite.request("POST", "/v1/contents", suite.creator, map[string]interface{}{
		"content_hash": testContentHash,
		"description":  "d1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request("GET", "/v1/events?type=content.created", uuid.Nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	response := suite.decode(w)
	events, _ := response["data"].([]interface{})
	suite.Require().Len(events, 1)
}

func TestLedgerFlowTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerFlowTestSuite))
}
