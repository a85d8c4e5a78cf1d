// Copyright (c) 2022 Gobalsky Labs Limited
//
// Use of this software is governed by the Business Source License included
// in the LICENSE.VEGA file and at https://www.mariadb.com/bsl11.
//
// Change Date: 18 months from the later of the date of the first publicly
// available Distribution of this version of the repository, and 25 June 2022.
//
// On the date above, in accordance with the Business Source License, use
// of this software will be governed by version 3 or later of the GNU General
// Public License.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"code.vegaprotocol.io/marketplace/accounts"
	"code.vegaprotocol.io/marketplace/logging"
	"code.vegaprotocol.io/marketplace/marketplace"
	"code.vegaprotocol.io/marketplace/registry"
	"code.vegaprotocol.io/marketplace/types/num"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
)

// Server exposes the marketplace ledger operations over a small JSON
// REST surface.
type Server struct {
	*httprouter.Router

	log *logging.Logger
	cfg Config

	mkt  *marketplace.Engine
	reg  *registry.Engine
	bank *accounts.Engine

	s *http.Server
}

// New wires the marketplace engine and its in memory collaborators
// behind the REST routes.
func New(log *logging.Logger, cfg Config, mkt *marketplace.Engine, reg *registry.Engine, bank *accounts.Engine) *Server {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	srv := &Server{
		Router: httprouter.New(),
		log:    log,
		cfg:    cfg,
		mkt:    mkt,
		reg:    reg,
		bank:   bank,
	}

	srv.POST("/api/v1/assets", srv.MintAsset)
	srv.POST("/api/v1/deposits", srv.Deposit)
	srv.POST("/api/v1/listings", srv.SubmitListing)
	srv.GET("/api/v1/listings/:id", srv.GetListing)
	srv.POST("/api/v1/listings/:id/buy", srv.Buy)
	srv.POST("/api/v1/listings/:id/price", srv.AmendPrice)
	srv.POST("/api/v1/listings/:id/cancel", srv.Cancel)
	srv.GET("/api/v1/stats", srv.Stats)
	srv.GET("/api/v1/fees", srv.GetFees)
	srv.POST("/api/v1/fees", srv.UpdateFees)
	return srv
}

type MintAssetRequest struct {
	AssetContract string `json:"assetContract"`
	AssetID       string `json:"assetId"`
	Owner         string `json:"owner"`
}

// MintAsset records a new asset in the in memory registry, this is the
// faucet of the standalone marketplace.
func (s *Server) MintAsset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := MintAssetRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	assetID, err := parseUint(req.AssetID)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.reg.Mint(req.AssetContract, assetID, req.Owner); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	writeSuccess(w, SuccessResponse{true}, http.StatusOK)
}

type DepositRequest struct {
	Party  string `json:"party"`
	Amount string `json:"amount"`
}

// Deposit credits a party balance on the in memory ledger so it can be
// attached to purchases.
func (s *Server) Deposit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := DepositRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	amount, err := parseUint(req.Amount)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.bank.Deposit(req.Party, amount); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	writeSuccess(w, SuccessResponse{true}, http.StatusOK)
}

type SubmitListingRequest struct {
	Party         string `json:"party"`
	AssetContract string `json:"assetContract"`
	AssetID       string `json:"assetId"`
	Price         string `json:"price"`
}

type SubmitListingResponse struct {
	ListingID uint64 `json:"listingId"`
}

func (s *Server) SubmitListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := SubmitListingRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	assetID, err := parseUint(req.AssetID)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	price, err := parseUint(req.Price)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	id, err := s.mkt.SubmitListing(r.Context(), req.Party, req.AssetContract, assetID, price)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, SubmitListingResponse{ListingID: id}, http.StatusOK)
}

type ListingResponse struct {
	ListingID     uint64 `json:"listingId"`
	Seller        string `json:"seller"`
	AssetContract string `json:"assetContract"`
	AssetID       string `json:"assetId"`
	Price         string `json:"price"`
	Status        string `json:"status"`
}

func (s *Server) GetListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseListingID(ps)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	listing, err := s.mkt.GetListing(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, ListingResponse{
		ListingID:     listing.ID,
		Seller:        listing.Seller,
		AssetContract: listing.AssetContract,
		AssetID:       listing.AssetID.String(),
		Price:         listing.Price.String(),
		Status:        listing.Status.String(),
	}, http.StatusOK)
}

type BuyRequest struct {
	Party         string `json:"party"`
	AttachedValue string `json:"attachedValue"`
}

// Buy attaches the given value from the buyer's balance and settles the
// listing. When settlement fails the attached value goes back to the
// buyer; when it succeeds any excess over the price stays with the
// marketplace, it is not refunded.
func (s *Server) Buy(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseListingID(ps)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	req := BuyRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	attached, err := parseUint(req.AttachedValue)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	if err := s.bank.Attach(req.Party, attached); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.mkt.Buy(r.Context(), req.Party, id, attached); err != nil {
		if rerr := s.bank.Transfer(r.Context(), req.Party, attached); rerr != nil {
			s.log.Error("could not return attached value",
				logging.String("party", req.Party),
				logging.Error(rerr),
			)
		}
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, SuccessResponse{true}, http.StatusOK)
}

type AmendPriceRequest struct {
	Party    string `json:"party"`
	NewPrice string `json:"newPrice"`
}

func (s *Server) AmendPrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseListingID(ps)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	req := AmendPriceRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	newPrice, err := parseUint(req.NewPrice)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.mkt.AmendListingPrice(r.Context(), req.Party, id, newPrice); err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, SuccessResponse{true}, http.StatusOK)
}

type CancelRequest struct {
	Party string `json:"party"`
}

func (s *Server) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := parseListingID(ps)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	req := CancelRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.mkt.CancelListing(r.Context(), req.Party, id); err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, SuccessResponse{true}, http.StatusOK)
}

type StatsResponse struct {
	TotalListings uint64 `json:"totalListings"`
	TotalSales    uint64 `json:"totalSales"`
}

func (s *Server) Stats(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeSuccess(w, StatsResponse{
		TotalListings: s.mkt.ListingsCount(),
		TotalSales:    s.mkt.SalesCount(),
	}, http.StatusOK)
}

type FeesResponse struct {
	Percentage uint64 `json:"percentage"`
	Fraction   string `json:"fraction"`
	Collector  string `json:"collector"`
}

func (s *Server) GetFees(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeSuccess(w, FeesResponse{
		Percentage: s.mkt.FeePercentage(),
		Fraction:   s.mkt.FeeFraction().String(),
		Collector:  s.mkt.FeeCollector(),
	}, http.StatusOK)
}

type UpdateFeesRequest struct {
	Party         string `json:"party"`
	NewPercentage uint64 `json:"newPercentage"`
	NewCollector  string `json:"newCollector"`
}

func (s *Server) UpdateFees(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := UpdateFeesRequest{}
	if err := unmarshalBody(r, &req); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if err := s.mkt.UpdateFeeSettings(r.Context(), req.Party, req.NewPercentage, req.NewCollector); err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, SuccessResponse{true}, http.StatusOK)
}

// Start begins serving, it blocks until the server stops.
func (s *Server) Start() error {
	s.s = &http.Server{
		Addr:    fmt.Sprintf("%s:%v", s.cfg.IP, s.cfg.Port),
		Handler: cors.AllowAll().Handler(s), // middleware with cors
	}

	s.log.Info("starting marketplace server", logging.String("address", s.s.Addr))
	return s.s.ListenAndServe()
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	return s.s.Shutdown(context.Background())
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseListingID(ps httprouter.Params) (uint64, error) {
	id, err := strconv.ParseUint(ps.ByName("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: listing id must be a positive integer", ErrInvalidRequest)
	}
	return id, nil
}

func parseUint(s string) (*num.Uint, error) {
	u, overflow := num.UintFromString(s, 10)
	if overflow {
		return nil, fmt.Errorf("%w: not a valid unsigned integer: %s", ErrInvalidRequest, s)
	}
	return u, nil
}

func unmarshalBody(r *http.Request, into interface{}) error {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ErrInvalidRequest
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// writeEngineError maps the ledger failure kinds onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, marketplace.ErrListingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, marketplace.ErrListingNotActive):
		status = http.StatusConflict
	case errors.Is(err, marketplace.ErrNotListingSeller),
		errors.Is(err, marketplace.ErrNotFeeCollector),
		errors.Is(err, marketplace.ErrNotAssetOwner):
		status = http.StatusForbidden
	case errors.Is(err, marketplace.ErrInvalidAssetContract),
		errors.Is(err, marketplace.ErrInvalidAssetID),
		errors.Is(err, marketplace.ErrInvalidListingPrice),
		errors.Is(err, marketplace.ErrInvalidFeeCollector),
		errors.Is(err, marketplace.ErrInsufficientPayment):
		status = http.StatusBadRequest
	case errors.Is(err, marketplace.ErrCustodyTransferFailed),
		errors.Is(err, marketplace.ErrValueTransferFailed):
		status = http.StatusBadGateway
	}
	writeError(w, err, status)
}

func writeError(w http.ResponseWriter, e error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	buf, _ := json.Marshal(ErrorResponse{Error: e.Error()})
	w.Write(buf)
}

func writeSuccess(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	buf, _ := json.Marshal(data)
	w.Write(buf)
}
