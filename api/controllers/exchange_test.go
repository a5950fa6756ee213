package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rewearhq/rewear-backend/api/middleware"
	"github.com/rewearhq/rewear-backend/internal/exchange"
	pkgerrors "github.com/rewearhq/rewear-backend/pkg/errors"
	"github.com/rewearhq/rewear-backend/pkg/logger"
)

type testExchangeService struct {
	redeemFn  func(ctx context.Context, userID, itemID uuid.UUID) (*exchange.RedemptionDTO, error)
	proposeFn func(ctx context.Context, proposerID uuid.UUID, req exchange.ProposeRequest) (*exchange.SwapProposalDTO, error)
	respondFn func(ctx context.Context, proposalID, actorID uuid.UUID, accept bool) (*exchange.SwapProposalDTO, error)
	listFn    func(ctx context.Context, userID uuid.UUID) (*exchange.SwapListDTO, error)
}

func (s *testExchangeService) Redeem(ctx context.Context, userID, itemID uuid.UUID) (*exchange.RedemptionDTO, error) {
	if s.redeemFn != nil {
		return s.redeemFn(ctx, userID, itemID)
	}
	return &exchange.RedemptionDTO{}, nil
}

func (s *testExchangeService) Propose(ctx context.Context, proposerID uuid.UUID, req exchange.ProposeRequest) (*exchange.SwapProposalDTO, error) {
	if s.proposeFn != nil {
		return s.proposeFn(ctx, proposerID, req)
	}
	return &exchange.SwapProposalDTO{}, nil
}

func (s *testExchangeService) Respond(ctx context.Context, proposalID, actorID uuid.UUID, accept bool) (*exchange.SwapProposalDTO, error) {
	if s.respondFn != nil {
		return s.respondFn(ctx, proposalID, actorID, accept)
	}
	return &exchange.SwapProposalDTO{}, nil
}

func (s *testExchangeService) ListSwaps(ctx context.Context, userID uuid.UUID) (*exchange.SwapListDTO, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID)
	}
	return &exchange.SwapListDTO{}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	return req
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestExchangeRedeemSuccess(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	called := false
	svc := &testExchangeService{
		redeemFn: func(ctx context.Context, uid, iid uuid.UUID) (*exchange.RedemptionDTO, error) {
			called = true
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			if iid != itemID {
				t.Fatalf("unexpected item %s", iid)
			}
			return &exchange.RedemptionDTO{PointsSpent: 200, BalanceAfter: 800}, nil
		},
	}

	req := authedRequest(http.MethodPost, "/api/v1/exchange/redeem", `{"item_id":"`+itemID.String()+`"}`, userID)
	resp := httptest.NewRecorder()
	ExchangeRedeem(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data exchange.RedemptionDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.BalanceAfter != 800 {
		t.Fatalf("unexpected balance %d", envelope.Data.BalanceAfter)
	}
}

func TestExchangeRedeemMissingUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exchange/redeem", strings.NewReader(`{"item_id":"`+uuid.NewString()+`"}`))
	resp := httptest.NewRecorder()
	ExchangeRedeem(&testExchangeService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestExchangeRedeemInsufficientPoints(t *testing.T) {
	svc := &testExchangeService{
		redeemFn: func(ctx context.Context, uid, iid uuid.UUID) (*exchange.RedemptionDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeInsufficientPoints, "balance too low")
		},
	}
	req := authedRequest(http.MethodPost, "/api/v1/exchange/redeem", `{"item_id":"`+uuid.NewString()+`"}`, uuid.New())
	resp := httptest.NewRecorder()
	ExchangeRedeem(svc, testLogger())(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestExchangeRedeemRejectsBadBody(t *testing.T) {
	req := authedRequest(http.MethodPost, "/api/v1/exchange/redeem", `{"item_id":"not-a-uuid"}`, uuid.New())
	resp := httptest.NewRecorder()
	ExchangeRedeem(&testExchangeService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSwapsProposeSuccess(t *testing.T) {
	userID := uuid.New()
	mine := uuid.New()
	theirs := uuid.New()
	svc := &testExchangeService{
		proposeFn: func(ctx context.Context, pid uuid.UUID, req exchange.ProposeRequest) (*exchange.SwapProposalDTO, error) {
			if pid != userID {
				t.Fatalf("unexpected proposer %s", pid)
			}
			if req.ProposerItemID != mine || req.ReceiverItemID != theirs {
				t.Fatalf("unexpected request %+v", req)
			}
			return &exchange.SwapProposalDTO{ID: uuid.New(), ProposerID: pid}, nil
		},
	}

	body := `{"proposer_item_id":"` + mine.String() + `","receiver_item_id":"` + theirs.String() + `"}`
	req := authedRequest(http.MethodPost, "/api/v1/swaps", body, userID)
	resp := httptest.NewRecorder()
	SwapsPropose(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSwapsRespondAccept(t *testing.T) {
	userID := uuid.New()
	proposalID := uuid.New()
	var gotAccept bool
	svc := &testExchangeService{
		respondFn: func(ctx context.Context, pid, actor uuid.UUID, accept bool) (*exchange.SwapProposalDTO, error) {
			if pid != proposalID {
				t.Fatalf("unexpected proposal %s", pid)
			}
			if actor != userID {
				t.Fatalf("unexpected actor %s", actor)
			}
			gotAccept = accept
			return &exchange.SwapProposalDTO{ID: pid}, nil
		},
	}

	req := authedRequest(http.MethodPost, "/api/v1/swaps/"+proposalID.String()+"/respond", `{"decision":"accept"}`, userID)
	req = addRouteParam(req, "proposalId", proposalID.String())
	resp := httptest.NewRecorder()
	SwapsRespond(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !gotAccept {
		t.Fatal("expected accept decision")
	}
}

func TestSwapsRespondRejectsUnknownDecision(t *testing.T) {
	proposalID := uuid.New()
	req := authedRequest(http.MethodPost, "/api/v1/swaps/"+proposalID.String()+"/respond", `{"decision":"maybe"}`, uuid.New())
	req = addRouteParam(req, "proposalId", proposalID.String())
	resp := httptest.NewRecorder()
	SwapsRespond(&testExchangeService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSwapsRespondStaleProposalConflict(t *testing.T) {
	proposalID := uuid.New()
	svc := &testExchangeService{
		respondFn: func(ctx context.Context, pid, actor uuid.UUID, accept bool) (*exchange.SwapProposalDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeProposalStale, "an item is no longer available")
		},
	}
	req := authedRequest(http.MethodPost, "/api/v1/swaps/"+proposalID.String()+"/respond", `{"decision":"accept"}`, uuid.New())
	req = addRouteParam(req, "proposalId", proposalID.String())
	resp := httptest.NewRecorder()
	SwapsRespond(svc, testLogger())(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestSwapsListSplitsDirections(t *testing.T) {
	userID := uuid.New()
	svc := &testExchangeService{
		listFn: func(ctx context.Context, uid uuid.UUID) (*exchange.SwapListDTO, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			return &exchange.SwapListDTO{
				Sent:     []exchange.SwapProposalDTO{{ID: uuid.New()}},
				Received: []exchange.SwapProposalDTO{},
			}, nil
		},
	}

	req := authedRequest(http.MethodGet, "/api/v1/swaps", "", userID)
	resp := httptest.NewRecorder()
	SwapsList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data exchange.SwapListDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data.Sent) != 1 {
		t.Fatalf("expected one sent proposal, got %d", len(envelope.Data.Sent))
	}
}
